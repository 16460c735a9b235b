package overrides

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	bookingRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/booking"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/overrides/models"
	"github.com/v-demidov/HCS-AdmissionService/pkg/types"
)

// Service сервис административных корректировок. Узкий write-путь мимо правил
// допуска: изменения уже допущенного бронирования фиксируются append-only
// записью аудита, снапшот цены никогда не мутируется.
type Service struct {
	bookingRepo    BookingRepository
	adjustmentRepo AdjustmentRepository
	txManager      TransactionManager
	logger         Logger

	// Последовательность корректировок сериализуется по бронированию,
	// чтобы конкурирующие override не потеряли чужую запись аудита
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService создает новый экземпляр сервиса корректировок
func NewService(
	bookingRepo BookingRepository,
	adjustmentRepo AdjustmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		adjustmentRepo: adjustmentRepo,
		txManager:      txManager,
		logger:         logger,
		locks:          make(map[string]*sync.Mutex),
	}
}

// AdjustEarnings корректирует заработок бронирования на дельту в центах.
// Причина обязательна; итоговое значение выводится из снапшота плюс все дельты.
func (s *Service) AdjustEarnings(ctx context.Context, req *models.AdjustEarningsRequest) (*models.AdjustmentResponse, error) {
	s.logger.Info("AdjustEarnings: booking=%s, actor=%s, delta=%d", req.BookingID, req.ActorID, req.AmountDeltaCents)

	if err := validateBase(req.BookingID, req.ActorID, req.Reason); err != nil {
		s.logger.Warn("AdjustEarnings: validation failed: %v", err)
		return nil, err
	}
	if req.AmountDeltaCents == 0 {
		return nil, fmt.Errorf("%w: amount delta must be non-zero", ErrInvalidInput)
	}

	unlock := s.lockBooking(req.BookingID)
	defer unlock()

	booking, err := s.loadAdjustable(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	note := &domain.AdjustmentNote{
		ID:               uuid.NewString(),
		BookingID:        req.BookingID,
		ActorID:          req.ActorID,
		Kind:             domain.AdjustmentEarnings,
		Reason:           strings.TrimSpace(req.Reason),
		AmountDeltaCents: &req.AmountDeltaCents,
		FreeText:         req.FreeText,
	}

	effective := booking.EarningsCents + req.AmountDeltaCents

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.adjustmentRepo.Append(txCtx, note); err != nil {
			return fmt.Errorf("%w: failed to append note: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.UpdateEarnings(txCtx, req.BookingID, effective); err != nil {
			return fmt.Errorf("%w: failed to update earnings: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("AdjustEarnings: failed for booking %s: %v", req.BookingID, err)
		return nil, err
	}

	s.logger.Warn("OVERRIDE: earnings of booking %s adjusted by %d to %d by actor %s, reason: %s",
		req.BookingID, req.AmountDeltaCents, effective, req.ActorID, note.Reason)

	return &models.AdjustmentResponse{
		Note:              models.FromDomainNote(note),
		EffectiveEarnings: &effective,
	}, nil
}

// AdjustSchedule переносит бронирование на новую дату и время.
// Правила допуска повторно не проверяются: административный перенос может
// сознательно переполнить слот, и это решение остается в записи аудита.
func (s *Service) AdjustSchedule(ctx context.Context, req *models.AdjustScheduleRequest) (*models.AdjustmentResponse, error) {
	s.logger.Info("AdjustSchedule: booking=%s, actor=%s, newDate=%s, newTime=%s",
		req.BookingID, req.ActorID, req.NewDate.Format(domain.DateFormat), req.NewTime)

	if err := validateBase(req.BookingID, req.ActorID, req.Reason); err != nil {
		s.logger.Warn("AdjustSchedule: validation failed: %v", err)
		return nil, err
	}
	if req.NewDate.IsZero() {
		return nil, fmt.Errorf("%w: new date is required", ErrInvalidInput)
	}
	newTime, err := types.NewTimeStringFromString(req.NewTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid new time: %v", ErrInvalidInput, err)
	}

	unlock := s.lockBooking(req.BookingID)
	defer unlock()

	booking, err := s.loadAdjustable(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	prevDate := booking.BookingDate.Format(domain.DateFormat)
	prevTime := booking.StartTime.String()
	newDateStr := req.NewDate.Format(domain.DateFormat)
	newTimeStr := newTime.String()

	note := &domain.AdjustmentNote{
		ID:           uuid.NewString(),
		BookingID:    req.BookingID,
		ActorID:      req.ActorID,
		Kind:         domain.AdjustmentSchedule,
		Reason:       strings.TrimSpace(req.Reason),
		PreviousDate: &prevDate,
		NewDate:      &newDateStr,
		PreviousTime: &prevTime,
		NewTime:      &newTimeStr,
		FreeText:     req.FreeText,
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.adjustmentRepo.Append(txCtx, note); err != nil {
			return fmt.Errorf("%w: failed to append note: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.UpdateSchedule(txCtx, req.BookingID, req.NewDate, newTimeStr); err != nil {
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("AdjustSchedule: failed for booking %s: %v", req.BookingID, err)
		return nil, err
	}

	s.logger.Warn("OVERRIDE: booking %s rescheduled from %s %s to %s %s by actor %s, reason: %s",
		req.BookingID, prevDate, prevTime, newDateStr, newTimeStr, req.ActorID, note.Reason)

	return &models.AdjustmentResponse{Note: models.FromDomainNote(note)}, nil
}

// ListAdjustments возвращает полный аудит корректировок бронирования
func (s *Service) ListAdjustments(ctx context.Context, bookingID string) (*models.NoteListResponse, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("ListAdjustments: failed to load booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
	}

	notes, err := s.adjustmentRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("ListAdjustments: failed to list notes for booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to list notes: %v", ErrInternal, err)
	}

	return models.FromDomainNoteList(bookingID, notes), nil
}

// lockBooking берет мьютекс конкретного бронирования
func (s *Service) lockBooking(bookingID string) func() {
	s.mu.Lock()
	m, ok := s.locks[bookingID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[bookingID] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// loadAdjustable загружает бронирование и проверяет, что его можно корректировать
func (s *Service) loadAdjustable(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("overrides: booking %s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("overrides: failed to load booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
	}
	if !booking.CanBeAdjusted() {
		s.logger.Warn("overrides: booking %s is cancelled, adjustments rejected", bookingID)
		return nil, ErrBookingNotAdjustable
	}
	return booking, nil
}

func validateBase(bookingID, actorID, reason string) error {
	if bookingID == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if actorID == "" {
		return fmt.Errorf("%w: actorId is required", ErrInvalidInput)
	}
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return ErrReasonRequired
	}
	if len(trimmed) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	return nil
}
