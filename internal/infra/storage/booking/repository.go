package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	"github.com/v-demidov/HCS-AdmissionService/pkg/dbmetrics"
	"github.com/v-demidov/HCS-AdmissionService/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"service_type",
	"booking_date",
	"start_time",
	"bedrooms",
	"bathrooms",
	"frequency",
	"team_name",
	"status",
	"customer_name",
	"customer_email",
	"customer_phone",
	"address_line1",
	"suburb",
	"city",
	"total_cents",
	"earnings_cents",
	"price_snapshot",
	"created_at",
	"updated_at",
}

// Repository репозиторий подтвержденных бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет подтвержденное бронирование. ID строки равен ID резервации,
// поэтому повторная вставка того же подтверждения дает ErrBookingExists.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	snapshot, err := json.Marshal(b.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal snapshot: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"service_type",
			"booking_date",
			"start_time",
			"bedrooms",
			"bathrooms",
			"frequency",
			"team_name",
			"status",
			"customer_name",
			"customer_email",
			"customer_phone",
			"address_line1",
			"suburb",
			"city",
			"total_cents",
			"earnings_cents",
			"price_snapshot",
		).
		Values(
			b.ID,
			b.ServiceType,
			b.BookingDate,
			b.StartTime,
			b.Bedrooms,
			b.Bathrooms,
			b.Frequency,
			b.TeamName,
			b.Status,
			b.Customer.Name,
			b.Customer.Email,
			b.Customer.Phone,
			b.Customer.AddressLine1,
			b.Customer.Suburb,
			b.Customer.City,
			b.TotalCents,
			b.EarningsCents,
			snapshot,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrBookingExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID резервации
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListActiveFromDate возвращает не отмененные бронирования начиная с даты.
// Используется при старте сервиса для восстановления занятости слотов.
func (r *Repository) ListActiveFromDate(ctx context.Context, from time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.GtOrEq{"booking_date": from}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("booking_date", "created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveFromDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveFromDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveFromDate - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveFromDate - iterate rows: %v", ErrExecQuery, err)
	}

	return bookings, nil
}

// UpdateSchedule переносит бронирование на новую дату и время
func (r *Repository) UpdateSchedule(ctx context.Context, id string, date time.Time, startTime string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("booking_date", date).
		Set("start_time", startTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateEarnings устанавливает текущий заработок по бронированию
func (r *Repository) UpdateEarnings(ctx context.Context, id string, earningsCents int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("earnings_cents", earningsCents).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateEarnings - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateEarnings - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateEarnings - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var teamName sql.NullString
	var snapshotRaw []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.ServiceType,
		&b.BookingDate,
		&b.StartTime,
		&b.Bedrooms,
		&b.Bathrooms,
		&b.Frequency,
		&teamName,
		&b.Status,
		&b.Customer.Name,
		&b.Customer.Email,
		&b.Customer.Phone,
		&b.Customer.AddressLine1,
		&b.Customer.Suburb,
		&b.Customer.City,
		&b.TotalCents,
		&b.EarningsCents,
		&snapshotRaw,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(snapshotRaw) > 0 {
		if err := json.Unmarshal(snapshotRaw, &b.Snapshot); err != nil {
			return nil, fmt.Errorf("unmarshal price snapshot: %v", err)
		}
	}

	if teamName.Valid {
		b.TeamName = &teamName.String
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
