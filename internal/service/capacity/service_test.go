package capacity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	configRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/capacityconfig"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/capacity/models"
	"github.com/v-demidov/HCS-AdmissionService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type memConfigRepo struct {
	configs map[domain.ServiceType]*domain.CapacityConfig
	nextID  int64
}

func newMemConfigRepo() *memConfigRepo {
	return &memConfigRepo{configs: make(map[domain.ServiceType]*domain.CapacityConfig)}
}

func (m *memConfigRepo) GetByServiceType(ctx context.Context, serviceType domain.ServiceType) (*domain.CapacityConfig, error) {
	cfg, ok := m.configs[serviceType]
	if !ok {
		return nil, configRepo.ErrConfigNotFound
	}
	return cfg, nil
}

func (m *memConfigRepo) List(ctx context.Context) ([]*domain.CapacityConfig, error) {
	var out []*domain.CapacityConfig
	for _, st := range domain.ServiceTypes {
		if cfg, ok := m.configs[st]; ok {
			out = append(out, cfg)
		}
	}
	return out, nil
}

func (m *memConfigRepo) Upsert(ctx context.Context, cfg *domain.CapacityConfig) (*domain.CapacityConfig, error) {
	if existing, ok := m.configs[cfg.ServiceType]; ok {
		cfg.ID = existing.ID
	} else {
		m.nextID++
		cfg.ID = m.nextID
	}
	m.configs[cfg.ServiceType] = cfg
	return cfg, nil
}

func TestService_Update_CreatesConfig(t *testing.T) {
	svc := NewService(newMemConfigRepo(), nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
		ServiceType:        "standard",
		MaxBookingsPerDate: 12,
		SurgeThreshold:     ptr.Ptr(8),
		SurgePercentage:    ptr.Ptr(15.0),
	})
	require.NoError(t, err)

	assert.Equal(t, "standard", resp.ServiceType)
	assert.Equal(t, 12, resp.MaxBookingsPerDate)
	assert.False(t, resp.SurgeMisconfigured)
}

func TestService_Update_RejectsHalfConfiguredSurge(t *testing.T) {
	svc := NewService(newMemConfigRepo(), nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
		ServiceType:        "standard",
		MaxBookingsPerDate: 12,
		SurgeThreshold:     ptr.Ptr(8),
	})
	assert.ErrorIs(t, err, ErrConfigInvalid)

	_, err = svc.Update(context.Background(), &models.UpdateConfigRequest{
		ServiceType:        "standard",
		MaxBookingsPerDate: 12,
		SurgePercentage:    ptr.Ptr(15.0),
	})
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestService_Update_AllowsUnreachableThreshold(t *testing.T) {
	svc := NewService(newMemConfigRepo(), nopLogger{})

	// Порог выше лимита валиден: он просто никогда не сработает
	resp, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
		ServiceType:        "deep",
		MaxBookingsPerDate: 5,
		UsesTeams:          true,
		SurgeThreshold:     ptr.Ptr(50),
		SurgePercentage:    ptr.Ptr(20.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 50, *resp.SurgeThreshold)
}

func TestService_Update_BoundsValidation(t *testing.T) {
	svc := NewService(newMemConfigRepo(), nopLogger{})

	cases := []struct {
		name string
		req  *models.UpdateConfigRequest
	}{
		{"unknown service", &models.UpdateConfigRequest{ServiceType: "window", MaxBookingsPerDate: 5}},
		{"negative max", &models.UpdateConfigRequest{ServiceType: "standard", MaxBookingsPerDate: -1}},
		{"max too large", &models.UpdateConfigRequest{ServiceType: "standard", MaxBookingsPerDate: 10000}},
		{"zero threshold", &models.UpdateConfigRequest{
			ServiceType: "standard", MaxBookingsPerDate: 5,
			SurgeThreshold: ptr.Ptr(0), SurgePercentage: ptr.Ptr(10.0),
		}},
		{"percentage above 100", &models.UpdateConfigRequest{
			ServiceType: "standard", MaxBookingsPerDate: 5,
			SurgeThreshold: ptr.Ptr(3), SurgePercentage: ptr.Ptr(150.0),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Get_And_List(t *testing.T) {
	repo := newMemConfigRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
		ServiceType: "standard", MaxBookingsPerDate: 10,
	})
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), &models.UpdateConfigRequest{
		ServiceType: "deep", MaxBookingsPerDate: 4, UsesTeams: true,
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), "deep")
	require.NoError(t, err)
	assert.True(t, got.UsesTeams)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list.Configs, 2)
}

func TestService_Get_NotFound(t *testing.T) {
	svc := NewService(newMemConfigRepo(), nopLogger{})

	_, err := svc.Get(context.Background(), "carpet")
	assert.ErrorIs(t, err, ErrConfigNotFound)

	_, err = svc.Get(context.Background(), "window")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
