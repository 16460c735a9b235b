package capacityconfig

import "github.com/v-demidov/HCS-AdmissionService/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
