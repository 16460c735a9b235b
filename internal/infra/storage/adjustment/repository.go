package adjustment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	"github.com/v-demidov/HCS-AdmissionService/pkg/dbmetrics"
	"github.com/v-demidov/HCS-AdmissionService/pkg/psqlbuilder"
)

const table = "booking_adjustments"

var columns = []string{
	"id",
	"booking_id",
	"actor_id",
	"kind",
	"reason",
	"amount_delta_cents",
	"previous_date",
	"new_date",
	"previous_time",
	"new_time",
	"free_text",
	"created_at",
}

// Repository репозиторий аудита корректировок. Таблица append-only:
// записи никогда не обновляются и не удаляются.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория корректировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись аудита
func (r *Repository) Append(ctx context.Context, note *domain.AdjustmentNote) (*domain.AdjustmentNote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"booking_id",
			"actor_id",
			"kind",
			"reason",
			"amount_delta_cents",
			"previous_date",
			"new_date",
			"previous_time",
			"new_time",
			"free_text",
		).
		Values(
			note.ID,
			note.BookingID,
			note.ActorID,
			note.Kind,
			note.Reason,
			note.AmountDeltaCents,
			note.PreviousDate,
			note.NewDate,
			note.PreviousTime,
			note.NewTime,
			note.FreeText,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	note.CreatedAt = createdAt.Time

	return note, nil
}

// ListByBooking возвращает записи аудита бронирования в порядке добавления
func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.AdjustmentNote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var notes []*domain.AdjustmentNote
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan note: %v", ErrScanRow, err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - iterate rows: %v", ErrExecQuery, err)
	}

	return notes, nil
}

func scanNote(rows *sql.Rows) (*domain.AdjustmentNote, error) {
	var note domain.AdjustmentNote
	var amountDelta sql.NullInt64
	var prevDate, newDate, prevTime, newTime, freeText sql.NullString
	var createdAt sql.NullTime

	err := rows.Scan(
		&note.ID,
		&note.BookingID,
		&note.ActorID,
		&note.Kind,
		&note.Reason,
		&amountDelta,
		&prevDate,
		&newDate,
		&prevTime,
		&newTime,
		&freeText,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if amountDelta.Valid {
		note.AmountDeltaCents = &amountDelta.Int64
	}
	if prevDate.Valid {
		note.PreviousDate = &prevDate.String
	}
	if newDate.Valid {
		note.NewDate = &newDate.String
	}
	if prevTime.Valid {
		note.PreviousTime = &prevTime.String
	}
	if newTime.Valid {
		note.NewTime = &newTime.String
	}
	if freeText.Valid {
		note.FreeText = &freeText.String
	}
	note.CreatedAt = createdAt.Time

	return &note, nil
}
