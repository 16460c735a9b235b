package request_admission

import (
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

// Request модель запроса на допуск бронирования
type Request struct {
	ServiceType string         // Тип услуги ("standard", "deep", ...)
	Date        time.Time      // Дата бронирования (без времени)
	Bedrooms    int            // Количество спален
	Bathrooms   int            // Количество ванных
	Extras      map[string]int // ID допуслуги -> количество
	Frequency   string         // Периодичность (пустая строка = one-time)
}

// Response модель ответа с удержанной резервацией и снапшотом цены
type Response struct {
	ReservationID  string                // ID резервации, нужен для Confirm/Abandon
	ServiceType    domain.ServiceType    // Тип услуги
	Date           string                // Дата, YYYY-MM-DD
	ExpiresAt      time.Time             // Момент истечения удержания
	TeamName       *string               // Назначенная команда (nil для услуг без команд)
	SlotsRemaining int                   // Свободные места после этой резервации
	SurgeActive    bool                  // Применена ли surge-наценка
	Snapshot       *domain.PriceSnapshot // Итемизированный снапшот цены
}
