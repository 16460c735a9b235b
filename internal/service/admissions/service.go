package admissions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/core/ledger"
	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	bookingRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/booking"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/admissions/models"
)

// Service сервис подтверждения и отмены удержанных резерваций
type Service struct {
	ledger      CapacityLedger
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса допуска
func NewService(
	capacityLedger CapacityLedger,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ledger:      capacityLedger,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// ConfirmAdmission превращает удержанную резервацию в бронирование.
// Идемпотентен: повторное подтверждение возвращает уже созданное бронирование.
func (s *Service) ConfirmAdmission(ctx context.Context, req *models.ConfirmAdmissionRequest) (*models.BookingResponse, error) {
	s.logger.Info("ConfirmAdmission: reservation=%s", req.ReservationID)

	if err := validateConfirmRequest(req); err != nil {
		s.logger.Warn("ConfirmAdmission: validation failed: %v", err)
		return nil, err
	}

	reservation, ok := s.ledger.Get(req.ReservationID)
	if !ok {
		s.logger.Warn("ConfirmAdmission: reservation %s not found", req.ReservationID)
		return nil, ErrReservationNotFound
	}

	// Снапшот цены зафиксирован при допуске; запрос клиента на цену не влияет.
	// Резервация без снапшота — восстановленная при старте, ее бронирование
	// уже лежит в базе
	if reservation.Snapshot == nil {
		existing, err := s.bookingRepo.GetByID(ctx, req.ReservationID)
		if err != nil {
			s.logger.Error("ConfirmAdmission: reservation %s has no snapshot and no stored booking: %v",
				req.ReservationID, err)
			return nil, fmt.Errorf("%w: reservation has no price snapshot", ErrInternal)
		}
		return models.FromDomainBooking(existing), nil
	}
	snapshot := reservation.Snapshot

	// 1. Подтверждаем удержание: с этого момента TTL больше не снимет место
	if err := s.ledger.Confirm(req.ReservationID); err != nil {
		switch {
		case errors.Is(err, ledger.ErrReservationExpired):
			s.logger.Warn("ConfirmAdmission: reservation %s expired before confirmation", req.ReservationID)
			return nil, ErrReservationExpired
		case errors.Is(err, ledger.ErrReservationNotFound):
			s.logger.Warn("ConfirmAdmission: reservation %s was abandoned", req.ReservationID)
			return nil, ErrReservationNotFound
		default:
			s.logger.Error("ConfirmAdmission: failed to confirm reservation %s: %v", req.ReservationID, err)
			return nil, fmt.Errorf("%w: failed to confirm reservation: %v", ErrInternal, err)
		}
	}

	bookingDate, err := parseDate(reservation.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad reservation date %q: %v", ErrInternal, reservation.Date, err)
	}

	booking := &domain.Booking{
		ID:            reservation.ID,
		ServiceType:   reservation.ServiceType,
		BookingDate:   bookingDate,
		StartTime:     req.StartTime,
		Bedrooms:      snapshot.Bedrooms,
		Bathrooms:     snapshot.Bathrooms,
		Frequency:     snapshot.Frequency,
		TeamName:      reservation.TeamName,
		Status:        domain.StatusConfirmed,
		Customer:      req.Customer,
		TotalCents:    snapshot.TotalCents,
		EarningsCents: snapshot.TotalCents - snapshot.ServiceFeeCents,
		Snapshot:      *snapshot,
	}

	// 2. Сохраняем бронирование. ID строки равен ID резервации, поэтому
	// повторный Confirm упирается в unique violation и возвращает существующую строку
	var result *domain.Booking
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := s.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingExists) {
				existing, getErr := s.bookingRepo.GetByID(txCtx, reservation.ID)
				if getErr != nil {
					return fmt.Errorf("%w: failed to load existing booking: %v", ErrInternal, getErr)
				}
				result = existing
				return nil
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		result = created
		return nil
	})
	if err != nil {
		// Запись не сохранилась: возвращаем место, чтобы слот не протекал
		if relErr := s.ledger.Release(req.ReservationID); relErr != nil {
			s.logger.Error("ConfirmAdmission: failed to release reservation %s after storage error: %v",
				req.ReservationID, relErr)
		}
		s.logger.Error("ConfirmAdmission: failed to persist booking for reservation %s: %v", req.ReservationID, err)
		return nil, err
	}

	s.logger.Info("ConfirmAdmission: booking %s confirmed, total=%d", result.ID, result.TotalCents)
	return models.FromDomainBooking(result), nil
}

// AbandonAdmission явно освобождает удержанную резервацию.
// Идемпотентен: освобождение уже освобожденной резервации — no-op success.
func (s *Service) AbandonAdmission(ctx context.Context, reservationID string) error {
	s.logger.Info("AbandonAdmission: reservation=%s", reservationID)

	if reservationID == "" {
		return fmt.Errorf("%w: reservationId is required", ErrInvalidInput)
	}

	if err := s.ledger.Release(reservationID); err != nil {
		if errors.Is(err, ledger.ErrReservationNotFound) {
			s.logger.Warn("AbandonAdmission: reservation %s not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("AbandonAdmission: failed to release reservation %s: %v", reservationID, err)
		return fmt.Errorf("%w: failed to release reservation: %v", ErrInternal, err)
	}

	return nil
}

func parseDate(date string) (time.Time, error) {
	return time.Parse(domain.DateFormat, date)
}

func validateConfirmRequest(req *models.ConfirmAdmissionRequest) error {
	if req.ReservationID == "" {
		return fmt.Errorf("%w: reservationId is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.Customer.Name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	return nil
}
