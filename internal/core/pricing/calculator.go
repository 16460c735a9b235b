// Package pricing детерминированный расчет цены бронирования.
// Все суммы в центах; округление до цента на каждом шаге умножения,
// чтобы бит-в-бит совпадать с историческими снапшотами.
package pricing

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

// Input входные данные расчета
type Input struct {
	ServiceType     domain.ServiceType
	Bedrooms        int
	Bathrooms       int
	Extras          map[string]int // extra ID -> количество
	Frequency       domain.Frequency
	SurgeActive     bool
	SurgePercentage float64
}

// Calculate вычисляет итемизированный снапшот цены. Чистая функция: один и
// тот же вход всегда дает один и тот же снапшот (кроме поля SnapshotAt).
//
// Порядок формулы фиксирован:
//  1. base + спальни*ставка + ванные*ставка
//  2. + допуслуги (неизвестный ID — ошибка валидации)
//  3. - скидка за периодичность (процент от subtotal)
//  4. + сервисный сбор (фиксированный, не зависит от периодичности)
//  5. + surge-наценка (процент от суммы после скидки и сбора)
func Calculate(table *Table, in Input) (*domain.PriceSnapshot, error) {
	rates, ok := table.Services[in.ServiceType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownServiceType, in.ServiceType)
	}

	bedroomCents := int64(in.Bedrooms) * rates.BedroomCents
	bathroomCents := int64(in.Bathrooms) * rates.BathroomCents

	extras, extrasCents, err := priceExtras(table, in.Extras)
	if err != nil {
		return nil, err
	}

	subtotal := rates.BaseCents + bedroomCents + bathroomCents + extrasCents

	discountPercent := table.DiscountPercent(in.Frequency)
	discountCents := roundCents(float64(subtotal) * discountPercent / 100)

	afterDiscount := subtotal - discountCents + table.ServiceFeeCents

	var surgeCents int64
	surgePercent := 0.0
	if in.SurgeActive {
		surgePercent = in.SurgePercentage
		surgeCents = roundCents(float64(afterDiscount) * in.SurgePercentage / 100)
	}

	return &domain.PriceSnapshot{
		ServiceType:              in.ServiceType,
		Bedrooms:                 in.Bedrooms,
		Bathrooms:                in.Bathrooms,
		BaseCents:                rates.BaseCents,
		BedroomCents:             bedroomCents,
		BathroomCents:            bathroomCents,
		Extras:                   extras,
		ExtrasCents:              extrasCents,
		SubtotalCents:            subtotal,
		Frequency:                in.Frequency,
		FrequencyDiscountPercent: discountPercent,
		FrequencyDiscountCents:   discountCents,
		ServiceFeeCents:          table.ServiceFeeCents,
		SurgeActive:              in.SurgeActive,
		SurgePercentage:          surgePercent,
		SurgeCents:               surgeCents,
		TotalCents:               afterDiscount + surgeCents,
		SnapshotAt:               time.Now().UTC(),
	}, nil
}

// priceExtras оценивает допуслуги в детерминированном порядке (по ID)
func priceExtras(table *Table, requested map[string]int) ([]domain.ExtraLine, int64, error) {
	if len(requested) == 0 {
		return nil, 0, nil
	}

	ids := make([]string, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lines := make([]domain.ExtraLine, 0, len(ids))
	var total int64
	for _, id := range ids {
		quantity := requested[id]
		if quantity <= 0 || quantity > domain.MaxExtraQuantity {
			return nil, 0, fmt.Errorf("%w: %q x%d", ErrInvalidQuantity, id, quantity)
		}
		unit, ok := table.Extras[id]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q", ErrUnknownExtra, id)
		}
		cents := unit * int64(quantity)
		lines = append(lines, domain.ExtraLine{
			ExtraID:   id,
			Quantity:  quantity,
			UnitCents: unit,
			Cents:     cents,
		})
		total += cents
	}
	return lines, total, nil
}

// roundCents округляет до ближайшего целого цента (half up)
func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
