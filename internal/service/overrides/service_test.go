package overrides

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	bookingRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/booking"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/overrides/models"
	"github.com/v-demidov/HCS-AdmissionService/pkg/ptr"
	"github.com/v-demidov/HCS-AdmissionService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type memStore struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
	notes    []*domain.AdjustmentNote
}

func newMemStore() *memStore {
	return &memStore{bookings: make(map[string]*domain.Booking)}
}

func (m *memStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memStore) UpdateSchedule(ctx context.Context, id string, date time.Time, startTime string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.BookingDate = date
	ts, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return err
	}
	b.StartTime = ts
	return nil
}

func (m *memStore) UpdateEarnings(ctx context.Context, id string, earningsCents int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.EarningsCents = earningsCents
	return nil
}

func (m *memStore) Append(ctx context.Context, note *domain.AdjustmentNote) (*domain.AdjustmentNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	note.CreatedAt = time.Now()
	m.notes = append(m.notes, note)
	return note, nil
}

func (m *memStore) ListByBooking(ctx context.Context, bookingID string) ([]*domain.AdjustmentNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.AdjustmentNote
	for _, n := range m.notes {
		if n.BookingID == bookingID {
			out = append(out, n)
		}
	}
	return out, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newFixture(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	start, _ := types.NewTimeStringFromString("10:00")
	store.bookings["bk-1"] = &domain.Booking{
		ID:            "bk-1",
		ServiceType:   domain.ServiceStandard,
		BookingDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     start,
		Status:        domain.StatusConfirmed,
		EarningsCents: 33000,
	}
	store.bookings["bk-cancelled"] = &domain.Booking{
		ID:     "bk-cancelled",
		Status: domain.StatusCancelled,
	}
	svc := NewService(store, store, passthroughTxManager{}, nopLogger{})
	return svc, store
}

func TestService_AdjustEarnings_AppendsNoteAndUpdates(t *testing.T) {
	svc, store := newFixture(t)

	resp, err := svc.AdjustEarnings(context.Background(), &models.AdjustEarningsRequest{
		BookingID:        "bk-1",
		ActorID:          "admin-7",
		AmountDeltaCents: -2000,
		Reason:           "customer complaint discount",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.EffectiveEarnings)
	assert.Equal(t, int64(31000), *resp.EffectiveEarnings)
	assert.Equal(t, "earnings", resp.Note.Kind)
	assert.Equal(t, int64(31000), store.bookings["bk-1"].EarningsCents)
	assert.Len(t, store.notes, 1)
}

func TestService_AdjustEarnings_DeltasAccumulate(t *testing.T) {
	svc, store := newFixture(t)

	_, err := svc.AdjustEarnings(context.Background(), &models.AdjustEarningsRequest{
		BookingID: "bk-1", ActorID: "admin-7", AmountDeltaCents: -2000, Reason: "discount",
	})
	require.NoError(t, err)

	resp, err := svc.AdjustEarnings(context.Background(), &models.AdjustEarningsRequest{
		BookingID: "bk-1", ActorID: "admin-7", AmountDeltaCents: 500, Reason: "extra room cleaned",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(31500), *resp.EffectiveEarnings)
	assert.Equal(t, int64(31500), domain.EffectiveEarnings(33000, store.notes))
}

func TestService_AdjustEarnings_RequiresReason(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.AdjustEarnings(context.Background(), &models.AdjustEarningsRequest{
		BookingID: "bk-1", ActorID: "admin-7", AmountDeltaCents: 100, Reason: "   ",
	})
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestService_AdjustEarnings_RejectsZeroDelta(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.AdjustEarnings(context.Background(), &models.AdjustEarningsRequest{
		BookingID: "bk-1", ActorID: "admin-7", AmountDeltaCents: 0, Reason: "noop",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_AdjustEarnings_CancelledBooking(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.AdjustEarnings(context.Background(), &models.AdjustEarningsRequest{
		BookingID: "bk-cancelled", ActorID: "admin-7", AmountDeltaCents: 100, Reason: "late fix",
	})
	assert.ErrorIs(t, err, ErrBookingNotAdjustable)
}

func TestService_AdjustSchedule_MovesBookingAndRecordsAudit(t *testing.T) {
	svc, store := newFixture(t)

	resp, err := svc.AdjustSchedule(context.Background(), &models.AdjustScheduleRequest{
		BookingID: "bk-1",
		ActorID:   "admin-7",
		NewDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		NewTime:   "14:30",
		Reason:    "customer requested move",
		FreeText:  ptr.Ptr("called on Friday"),
	})
	require.NoError(t, err)

	assert.Equal(t, "schedule", resp.Note.Kind)
	assert.Equal(t, "2026-09-10", *resp.Note.PreviousDate)
	assert.Equal(t, "2026-09-12", *resp.Note.NewDate)
	assert.Equal(t, "10:00", *resp.Note.PreviousTime)
	assert.Equal(t, "14:30", *resp.Note.NewTime)

	moved := store.bookings["bk-1"]
	assert.Equal(t, "2026-09-12", moved.BookingDate.Format(domain.DateFormat))
	assert.Equal(t, "14:30", moved.StartTime.String())
}

func TestService_AdjustSchedule_InvalidTime(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.AdjustSchedule(context.Background(), &models.AdjustScheduleRequest{
		BookingID: "bk-1",
		ActorID:   "admin-7",
		NewDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		NewTime:   "25:99",
		Reason:    "typo",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_AdjustSchedule_UnknownBooking(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.AdjustSchedule(context.Background(), &models.AdjustScheduleRequest{
		BookingID: "no-such-booking",
		ActorID:   "admin-7",
		NewDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		NewTime:   "14:30",
		Reason:    "move",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_ListAdjustments_ReturnsAllNotesInOrder(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.AdjustEarnings(context.Background(), &models.AdjustEarningsRequest{
		BookingID: "bk-1", ActorID: "admin-7", AmountDeltaCents: -2000, Reason: "discount",
	})
	require.NoError(t, err)

	_, err = svc.AdjustSchedule(context.Background(), &models.AdjustScheduleRequest{
		BookingID: "bk-1",
		ActorID:   "admin-8",
		NewDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		NewTime:   "09:00",
		Reason:    "team availability",
	})
	require.NoError(t, err)

	list, err := svc.ListAdjustments(context.Background(), "bk-1")
	require.NoError(t, err)

	require.Len(t, list.Notes, 2)
	assert.Equal(t, "earnings", list.Notes[0].Kind)
	assert.Equal(t, "schedule", list.Notes[1].Kind)
}

func TestService_ConcurrentEarningsAdjustments(t *testing.T) {
	svc, store := newFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AdjustEarnings(context.Background(), &models.AdjustEarningsRequest{
				BookingID: "bk-1", ActorID: "admin-7", AmountDeltaCents: 100, Reason: "bonus",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(34000), store.bookings["bk-1"].EarningsCents)
	assert.Len(t, store.notes, 10)
}
