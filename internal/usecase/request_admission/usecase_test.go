package request_admission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v-demidov/HCS-AdmissionService/internal/core/ledger"
	"github.com/v-demidov/HCS-AdmissionService/internal/core/pricing"
	"github.com/v-demidov/HCS-AdmissionService/internal/core/teamalloc"
	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	configRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/capacityconfig"
	"github.com/v-demidov/HCS-AdmissionService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubConfigRepo struct {
	configs map[domain.ServiceType]*domain.CapacityConfig
	err     error
}

func (s *stubConfigRepo) GetByServiceType(ctx context.Context, serviceType domain.ServiceType) (*domain.CapacityConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	cfg, ok := s.configs[serviceType]
	if !ok {
		return nil, configRepo.ErrConfigNotFound
	}
	return cfg, nil
}

type stubTeamRepo struct {
	teams []*domain.Team
	err   error
}

func (s *stubTeamRepo) ListActive(ctx context.Context) ([]*domain.Team, error) {
	return s.teams, s.err
}

type stubPriceSource struct {
	table *pricing.Table
	err   error
}

func (s *stubPriceSource) Get(ctx context.Context) (*pricing.Table, error) {
	return s.table, s.err
}

type stubMetrics struct {
	admissions map[string]int
	surges     int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{admissions: make(map[string]int)}
}

func (s *stubMetrics) IncAdmission(serviceType, result string) { s.admissions[result]++ }
func (s *stubMetrics) IncSurgePriced(serviceType string)       { s.surges++ }

func testPriceTable() *pricing.Table {
	return &pricing.Table{
		Services: map[domain.ServiceType]pricing.ServiceRates{
			domain.ServiceStandard: {BaseCents: 20000, BedroomCents: 5000, BathroomCents: 3000},
			domain.ServiceDeep:     {BaseCents: 35000, BedroomCents: 7000, BathroomCents: 5000},
		},
		Extras:          map[string]int64{"ironing": 3000},
		ServiceFeeCents: 5000,
		FrequencyDiscounts: map[domain.Frequency]float64{
			domain.FrequencyOneTime: 0,
			domain.FrequencyWeekly:  15,
		},
	}
}

type fixture struct {
	uc        *UseCase
	ledger    *ledger.Ledger
	allocator *teamalloc.Allocator
	metrics   *stubMetrics
}

func newFixture(t *testing.T, configs map[domain.ServiceType]*domain.CapacityConfig, teams []*domain.Team) *fixture {
	t.Helper()

	l := ledger.New(15*time.Minute, nopLogger{})
	a := teamalloc.New()
	m := newStubMetrics()

	uc := NewUseCase(
		l,
		a,
		&stubConfigRepo{configs: configs},
		&stubTeamRepo{teams: teams},
		&stubPriceSource{table: testPriceTable()},
		m,
		nopLogger{},
	)

	return &fixture{uc: uc, ledger: l, allocator: a, metrics: m}
}

func tomorrow() time.Time {
	return time.Now().AddDate(0, 0, 1)
}

func TestUseCase_Execute_AdmitsAndPrices(t *testing.T) {
	f := newFixture(t, map[domain.ServiceType]*domain.CapacityConfig{
		domain.ServiceStandard: {ServiceType: domain.ServiceStandard, MaxBookingsPerDate: 10},
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ServiceType: "standard",
		Date:        tomorrow(),
		Bedrooms:    2,
		Bathrooms:   1,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ReservationID)
	assert.Nil(t, resp.TeamName)
	assert.Equal(t, 9, resp.SlotsRemaining)
	assert.False(t, resp.SurgeActive)
	// 20000 + 2*5000 + 1*3000 + 5000 fee
	assert.Equal(t, int64(38000), resp.Snapshot.TotalCents)
	assert.Equal(t, 1, f.metrics.admissions["admitted"])
}

func TestUseCase_Execute_CapacityExceeded(t *testing.T) {
	f := newFixture(t, map[domain.ServiceType]*domain.CapacityConfig{
		domain.ServiceStandard: {ServiceType: domain.ServiceStandard, MaxBookingsPerDate: 1},
	}, nil)

	date := tomorrow()
	req := &Request{ServiceType: "standard", Date: date, Bedrooms: 1, Bathrooms: 1}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 1, f.metrics.admissions["rejected"])
}

func TestUseCase_Execute_SurgeOnThresholdCrossing(t *testing.T) {
	f := newFixture(t, map[domain.ServiceType]*domain.CapacityConfig{
		domain.ServiceStandard: {
			ServiceType:        domain.ServiceStandard,
			MaxBookingsPerDate: 10,
			SurgeThreshold:     ptr.Ptr(2),
			SurgePercentage:    ptr.Ptr(10.0),
		},
	}, nil)

	date := tomorrow()
	req := &Request{ServiceType: "standard", Date: date, Bedrooms: 0, Bathrooms: 0}

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.SurgeActive)

	// Второе бронирование достигает порога и само платит наценку
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.SurgeActive)
	// (20000 + 5000 fee) * 10% = 2500
	assert.Equal(t, int64(2500), second.Snapshot.SurgeCents)
	assert.Equal(t, int64(27500), second.Snapshot.TotalCents)
	assert.Equal(t, 1, f.metrics.surges)
}

// racingLedger вклинивает конкурирующую резервацию того же слота сразу после
// того, как Reserve вернул управление
type racingLedger struct {
	*ledger.Ledger
}

func (r *racingLedger) Reserve(serviceType domain.ServiceType, date time.Time, maxBookings int) (*domain.Reservation, int, error) {
	res, count, err := r.Ledger.Reserve(serviceType, date, maxBookings)
	if err == nil {
		_, _, _ = r.Ledger.Reserve(serviceType, date, maxBookings)
	}
	return res, count, err
}

func TestUseCase_Execute_SurgeUnaffectedByConcurrentReserve(t *testing.T) {
	l := ledger.New(15*time.Minute, nopLogger{})
	m := newStubMetrics()
	uc := NewUseCase(
		&racingLedger{Ledger: l},
		teamalloc.New(),
		&stubConfigRepo{configs: map[domain.ServiceType]*domain.CapacityConfig{
			domain.ServiceStandard: {
				ServiceType:        domain.ServiceStandard,
				MaxBookingsPerDate: 10,
				SurgeThreshold:     ptr.Ptr(2),
				SurgePercentage:    ptr.Ptr(10.0),
			},
		}},
		&stubTeamRepo{},
		&stubPriceSource{table: testPriceTable()},
		m,
		nopLogger{},
	)

	date := tomorrow()
	resp, err := uc.Execute(context.Background(), &Request{ServiceType: "standard", Date: date})
	require.NoError(t, err)

	// Соседняя резервация успела пересечь порог, но первый допуск платит по
	// собственному счетчику (1 < 2) — без наценки и без дрейфа остатка мест
	assert.False(t, resp.SurgeActive)
	assert.Equal(t, int64(25000), resp.Snapshot.TotalCents) // 20000 + 5000 fee
	assert.Equal(t, 9, resp.SlotsRemaining)
	assert.Equal(t, 0, m.surges)
	assert.Equal(t, 2, l.CurrentCount(domain.ServiceStandard, date))
}

func TestUseCase_Execute_AttachesSnapshotToReservation(t *testing.T) {
	f := newFixture(t, map[domain.ServiceType]*domain.CapacityConfig{
		domain.ServiceStandard: {ServiceType: domain.ServiceStandard, MaxBookingsPerDate: 10},
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ServiceType: "standard",
		Date:        tomorrow(),
		Bedrooms:    2,
		Bathrooms:   1,
	})
	require.NoError(t, err)

	// Снапшот зафиксирован в резервации: подтверждение возьмет цену отсюда
	res, ok := f.ledger.Get(resp.ReservationID)
	require.True(t, ok)
	require.NotNil(t, res.Snapshot)
	assert.Equal(t, resp.Snapshot.TotalCents, res.Snapshot.TotalCents)
}

func TestUseCase_Execute_MisconfiguredSurgeDisabled(t *testing.T) {
	f := newFixture(t, map[domain.ServiceType]*domain.CapacityConfig{
		domain.ServiceStandard: {
			ServiceType:        domain.ServiceStandard,
			MaxBookingsPerDate: 10,
			SurgeThreshold:     ptr.Ptr(1),
		},
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ServiceType: "standard",
		Date:        tomorrow(),
	})
	require.NoError(t, err)
	assert.False(t, resp.SurgeActive)
}

func TestUseCase_Execute_AssignsTeamForTeamService(t *testing.T) {
	teams := []*domain.Team{
		{Name: "Alpha", Position: 1, IsActive: true, EligibleServices: []domain.ServiceType{domain.ServiceDeep}},
		{Name: "Bravo", Position: 2, IsActive: true, EligibleServices: []domain.ServiceType{domain.ServiceDeep}},
	}
	f := newFixture(t, map[domain.ServiceType]*domain.CapacityConfig{
		domain.ServiceDeep: {ServiceType: domain.ServiceDeep, MaxBookingsPerDate: 10, UsesTeams: true},
	}, teams)

	date := tomorrow()
	req := &Request{ServiceType: "deep", Date: date, Bedrooms: 1, Bathrooms: 1}

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, first.TeamName)
	assert.Equal(t, "Alpha", *first.TeamName)

	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, second.TeamName)
	assert.Equal(t, "Bravo", *second.TeamName)
}

func TestUseCase_Execute_NoTeamReleasesCapacity(t *testing.T) {
	teams := []*domain.Team{
		{Name: "Alpha", Position: 1, IsActive: true, EligibleServices: []domain.ServiceType{domain.ServiceDeep}},
	}
	f := newFixture(t, map[domain.ServiceType]*domain.CapacityConfig{
		domain.ServiceDeep: {ServiceType: domain.ServiceDeep, MaxBookingsPerDate: 10, UsesTeams: true},
	}, teams)

	date := tomorrow()
	req := &Request{ServiceType: "deep", Date: date, Bedrooms: 1, Bathrooms: 1}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoTeamAvailable)

	// Компенсация вернула место: занята ровно одна единица вместимости
	assert.Equal(t, 1, f.ledger.CurrentCount(domain.ServiceDeep, date))
}

func TestUseCase_Execute_DefaultsWhenConfigMissing(t *testing.T) {
	f := newFixture(t, nil, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ServiceType: "airbnb",
		Date:        tomorrow(),
	})
	assert.Error(t, err) // airbnb отсутствует в прайсе теста

	resp, err = f.uc.Execute(context.Background(), &Request{
		ServiceType: "standard",
		Date:        tomorrow(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMaxBookingsPerDate-1, resp.SlotsRemaining)
}

func TestUseCase_Execute_RejectsInvalidInput(t *testing.T) {
	f := newFixture(t, nil, nil)

	cases := []struct {
		name string
		req  *Request
	}{
		{"unknown service", &Request{ServiceType: "window", Date: tomorrow()}},
		{"past date", &Request{ServiceType: "standard", Date: time.Now().AddDate(0, 0, -1)}},
		{"zero date", &Request{ServiceType: "standard"}},
		{"negative bedrooms", &Request{ServiceType: "standard", Date: tomorrow(), Bedrooms: -1}},
		{"unknown frequency", &Request{ServiceType: "standard", Date: tomorrow(), Frequency: "daily"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_PricingFailureReleasesHold(t *testing.T) {
	f := newFixture(t, map[domain.ServiceType]*domain.CapacityConfig{
		domain.ServiceStandard: {ServiceType: domain.ServiceStandard, MaxBookingsPerDate: 10},
	}, nil)

	date := tomorrow()
	_, err := f.uc.Execute(context.Background(), &Request{
		ServiceType: "standard",
		Date:        date,
		Extras:      map[string]int{"unknown-extra": 1},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, f.ledger.CurrentCount(domain.ServiceStandard, date))
}

func TestUseCase_Execute_ConfigRepoFailure(t *testing.T) {
	l := ledger.New(15*time.Minute, nopLogger{})
	uc := NewUseCase(
		l,
		teamalloc.New(),
		&stubConfigRepo{err: errors.New("db is down")},
		&stubTeamRepo{},
		&stubPriceSource{table: testPriceTable()},
		newStubMetrics(),
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceType: "standard", Date: tomorrow()})
	assert.ErrorIs(t, err, ErrInternal)
}
