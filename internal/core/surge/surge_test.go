package surge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	"github.com/v-demidov/HCS-AdmissionService/pkg/ptr"
)

func cfgWithSurge(threshold int, percentage float64) *domain.CapacityConfig {
	return &domain.CapacityConfig{
		ServiceType:        domain.ServiceStandard,
		MaxBookingsPerDate: 10,
		SurgeThreshold:     ptr.Ptr(threshold),
		SurgePercentage:    ptr.Ptr(percentage),
	}
}

func TestEvaluate_ThresholdIsInclusive(t *testing.T) {
	cfg := cfgWithSurge(5, 10)

	// 4-е бронирование не платит наценку, 5-е уже платит
	assert.False(t, Evaluate(4, cfg).Active)

	decision := Evaluate(5, cfg)
	assert.True(t, decision.Active)
	assert.Equal(t, 10.0, decision.Percentage)

	assert.True(t, Evaluate(6, cfg).Active)
}

func TestEvaluate_DisabledWithoutConfig(t *testing.T) {
	cfg := &domain.CapacityConfig{
		ServiceType:        domain.ServiceStandard,
		MaxBookingsPerDate: 10,
	}

	assert.False(t, Evaluate(100, cfg).Active)
	assert.False(t, Evaluate(100, nil).Active)
}

func TestEvaluate_MisconfiguredPairIsInactive(t *testing.T) {
	onlyThreshold := &domain.CapacityConfig{
		ServiceType:        domain.ServiceStandard,
		MaxBookingsPerDate: 10,
		SurgeThreshold:     ptr.Ptr(3),
	}
	onlyPercentage := &domain.CapacityConfig{
		ServiceType:        domain.ServiceStandard,
		MaxBookingsPerDate: 10,
		SurgePercentage:    ptr.Ptr(15.0),
	}

	assert.False(t, Evaluate(10, onlyThreshold).Active)
	assert.False(t, Evaluate(10, onlyPercentage).Active)
	assert.True(t, IsMisconfigured(onlyThreshold))
	assert.True(t, IsMisconfigured(onlyPercentage))
	assert.False(t, IsMisconfigured(cfgWithSurge(3, 15)))
}

func TestEvaluate_ZeroPercentageStillActivates(t *testing.T) {
	decision := Evaluate(5, cfgWithSurge(5, 0))
	assert.True(t, decision.Active)
	assert.Equal(t, 0.0, decision.Percentage)
}
