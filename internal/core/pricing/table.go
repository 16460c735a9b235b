package pricing

import "github.com/v-demidov/HCS-AdmissionService/internal/domain"

// ServiceRates цены одного типа услуги, в центах
type ServiceRates struct {
	BaseCents     int64
	BedroomCents  int64
	BathroomCents int64
}

// Table версионируемый прайс-лист: базовые ставки, каталог допуслуг,
// сервисный сбор и скидки за периодичность. Читается калькулятором как есть;
// загрузка и кеширование — забота infra-слоя.
type Table struct {
	Services           map[domain.ServiceType]ServiceRates
	Extras             map[string]int64 // extra ID -> цена за единицу, центы
	ServiceFeeCents    int64
	FrequencyDiscounts map[domain.Frequency]float64 // проценты, one-time = 0
}

// DiscountPercent возвращает процент скидки для периодичности (0, если не задан)
func (t *Table) DiscountPercent(frequency domain.Frequency) float64 {
	if t.FrequencyDiscounts == nil {
		return 0
	}
	return t.FrequencyDiscounts[frequency]
}
