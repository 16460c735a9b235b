// Package surge правило наценки за спрос: фиксированный процент сверх цены,
// когда число допущенных бронирований на дату достигает порога
package surge

import "github.com/v-demidov/HCS-AdmissionService/internal/domain"

// Decision результат вычисления surge-правила
type Decision struct {
	Active     bool
	Percentage float64
}

// Evaluate вычисляет surge-наценку для слота по числу занятых мест.
// count — счетчик ПОСЛЕ резервации текущего бронирования: N-е бронирование,
// пересекающее порог, само платит наценку, а не только (N+1)-е.
//
// Конфигурация с одним заполненным surge-полем из двух считается сломанной:
// surge деактивируется, решение о деградации принимает вызывающая сторона
// через IsMisconfigured.
func Evaluate(count int, cfg *domain.CapacityConfig) Decision {
	if cfg == nil || !cfg.SurgeConfigured() {
		return Decision{}
	}
	if count < *cfg.SurgeThreshold {
		return Decision{}
	}
	return Decision{
		Active:     true,
		Percentage: *cfg.SurgePercentage,
	}
}

// IsMisconfigured возвращает true для конфигурации, у которой заполнено ровно
// одно из двух surge-полей. Такая конфигурация логируется администраторам,
// а surge трактуется как неактивный — бронирования не блокируются.
func IsMisconfigured(cfg *domain.CapacityConfig) bool {
	return cfg != nil && cfg.SurgeMisconfigured()
}
