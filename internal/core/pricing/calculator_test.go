package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

func testTable() *Table {
	return &Table{
		Services: map[domain.ServiceType]ServiceRates{
			domain.ServiceStandard: {BaseCents: 20000, BedroomCents: 5000, BathroomCents: 3000},
			domain.ServiceDeep:     {BaseCents: 45000, BedroomCents: 8000, BathroomCents: 6000},
		},
		Extras: map[string]int64{
			"deep-fridge": 5000,
			"ironing":     3000,
			"inside-oven": 3000,
		},
		ServiceFeeCents: 5000,
		FrequencyDiscounts: map[domain.Frequency]float64{
			domain.FrequencyOneTime:  0,
			domain.FrequencyWeekly:   15,
			domain.FrequencyBiWeekly: 10,
			domain.FrequencyMonthly:  5,
		},
	}
}

func TestCalculate_BaseFormula(t *testing.T) {
	// base=200.00, 2 спальни по 50.00, 1 ванная по 30.00, one-time, без surge
	snapshot, err := Calculate(testTable(), Input{
		ServiceType: domain.ServiceStandard,
		Bedrooms:    2,
		Bathrooms:   1,
		Frequency:   domain.FrequencyOneTime,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20000), snapshot.BaseCents)
	assert.Equal(t, int64(10000), snapshot.BedroomCents)
	assert.Equal(t, int64(3000), snapshot.BathroomCents)
	assert.Equal(t, int64(33000), snapshot.SubtotalCents)
	assert.Equal(t, int64(0), snapshot.FrequencyDiscountCents)
	assert.Equal(t, int64(5000), snapshot.ServiceFeeCents)
	assert.False(t, snapshot.SurgeActive)
	assert.Equal(t, int64(38000), snapshot.TotalCents)
}

func TestCalculate_Deterministic(t *testing.T) {
	in := Input{
		ServiceType: domain.ServiceStandard,
		Bedrooms:    2,
		Bathrooms:   1,
		Frequency:   domain.FrequencyOneTime,
	}

	first, err := Calculate(testTable(), in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		next, err := Calculate(testTable(), in)
		require.NoError(t, err)
		assert.Equal(t, first.TotalCents, next.TotalCents)
	}
}

func TestCalculate_ExtrasItemized(t *testing.T) {
	snapshot, err := Calculate(testTable(), Input{
		ServiceType: domain.ServiceStandard,
		Bedrooms:    1,
		Bathrooms:   1,
		Extras: map[string]int{
			"deep-fridge": 1,
			"ironing":     2,
		},
		Frequency: domain.FrequencyOneTime,
	})
	require.NoError(t, err)

	// 50.00 + 2*30.00 = 110.00
	assert.Equal(t, int64(11000), snapshot.ExtrasCents)
	require.Len(t, snapshot.Extras, 2)
	// детерминированный порядок по ID
	assert.Equal(t, "deep-fridge", snapshot.Extras[0].ExtraID)
	assert.Equal(t, int64(5000), snapshot.Extras[0].Cents)
	assert.Equal(t, "ironing", snapshot.Extras[1].ExtraID)
	assert.Equal(t, int64(6000), snapshot.Extras[1].Cents)
}

func TestCalculate_UnknownExtraRejected(t *testing.T) {
	_, err := Calculate(testTable(), Input{
		ServiceType: domain.ServiceStandard,
		Extras:      map[string]int{"gold-polish": 1},
		Frequency:   domain.FrequencyOneTime,
	})
	assert.ErrorIs(t, err, ErrUnknownExtra)
}

func TestCalculate_InvalidQuantityRejected(t *testing.T) {
	_, err := Calculate(testTable(), Input{
		ServiceType: domain.ServiceStandard,
		Extras:      map[string]int{"ironing": 0},
		Frequency:   domain.FrequencyOneTime,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCalculate_UnknownServiceRejected(t *testing.T) {
	_, err := Calculate(testTable(), Input{
		ServiceType: domain.ServiceCarpet,
		Frequency:   domain.FrequencyOneTime,
	})
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestCalculate_FrequencyDiscountBeforeServiceFee(t *testing.T) {
	// subtotal = 200+50+30 = 280.00, weekly 15% = 42.00
	// afterDiscount = 280.00 - 42.00 + 50.00 = 288.00
	snapshot, err := Calculate(testTable(), Input{
		ServiceType: domain.ServiceStandard,
		Bedrooms:    1,
		Bathrooms:   1,
		Frequency:   domain.FrequencyWeekly,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4200), snapshot.FrequencyDiscountCents)
	assert.Equal(t, 15.0, snapshot.FrequencyDiscountPercent)
	assert.Equal(t, int64(28800), snapshot.TotalCents)
}

func TestCalculate_SurgeAppliedAfterDiscountAndFee(t *testing.T) {
	// afterDiscount = 288.00, surge 10% = 28.80
	snapshot, err := Calculate(testTable(), Input{
		ServiceType:     domain.ServiceStandard,
		Bedrooms:        1,
		Bathrooms:       1,
		Frequency:       domain.FrequencyWeekly,
		SurgeActive:     true,
		SurgePercentage: 10,
	})
	require.NoError(t, err)

	assert.True(t, snapshot.SurgeActive)
	assert.Equal(t, int64(2880), snapshot.SurgeCents)
	assert.Equal(t, int64(31680), snapshot.TotalCents)
}

func TestCalculate_RoundingPerStep(t *testing.T) {
	table := testTable()
	table.FrequencyDiscounts[domain.FrequencyMonthly] = 3.33

	// subtotal = 280.00, 3.33% = 932.4 цента -> 932 (округление на шаге скидки)
	snapshot, err := Calculate(table, Input{
		ServiceType: domain.ServiceStandard,
		Bedrooms:    1,
		Bathrooms:   1,
		Frequency:   domain.FrequencyMonthly,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(932), snapshot.FrequencyDiscountCents)
	// afterDiscount = 28000 - 932 + 5000 = 32068
	assert.Equal(t, int64(32068), snapshot.TotalCents)
}
