package check_availability

import "time"

// Request модель запроса на проверку доступности слота
type Request struct {
	ServiceType string    // Тип услуги ("standard", "deep", ...)
	Date        time.Time // Дата бронирования (без времени)
}
