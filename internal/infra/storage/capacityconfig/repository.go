package capacityconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	"github.com/v-demidov/HCS-AdmissionService/pkg/dbmetrics"
	"github.com/v-demidov/HCS-AdmissionService/pkg/psqlbuilder"
)

const table = "scheduling_limits"

var columns = []string{
	"id",
	"service_type",
	"max_bookings_per_date",
	"uses_teams",
	"surge_threshold",
	"surge_percentage",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации допуска (лимиты и surge per тип услуги)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации допуска
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByServiceType получает конфигурацию для типа услуги
func (r *Repository) GetByServiceType(ctx context.Context, serviceType domain.ServiceType) (*domain.CapacityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"service_type": serviceType}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceType - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceType - scan config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// List возвращает конфигурации всех типов услуг
func (r *Repository) List(ctx context.Context) ([]*domain.CapacityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("service_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var configs []*domain.CapacityConfig
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan config: %v", ErrScanRow, err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrExecQuery, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию типа услуги
func (r *Repository) Upsert(ctx context.Context, cfg *domain.CapacityConfig) (*domain.CapacityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"service_type",
			"max_bookings_per_date",
			"uses_teams",
			"surge_threshold",
			"surge_percentage",
		).
		Values(
			cfg.ServiceType,
			cfg.MaxBookingsPerDate,
			cfg.UsesTeams,
			cfg.SurgeThreshold,
			cfg.SurgePercentage,
		).
		Suffix(`ON CONFLICT (service_type) DO UPDATE SET
			max_bookings_per_date = EXCLUDED.max_bookings_per_date,
			uses_teams = EXCLUDED.uses_teams,
			surge_threshold = EXCLUDED.surge_threshold,
			surge_percentage = EXCLUDED.surge_percentage,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.CapacityConfig, error) {
	var cfg domain.CapacityConfig
	var surgeThreshold sql.NullInt64
	var surgePercentage sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&cfg.ID,
		&cfg.ServiceType,
		&cfg.MaxBookingsPerDate,
		&cfg.UsesTeams,
		&surgeThreshold,
		&surgePercentage,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if surgeThreshold.Valid {
		v := int(surgeThreshold.Int64)
		cfg.SurgeThreshold = &v
	}
	if surgePercentage.Valid {
		v := surgePercentage.Float64
		cfg.SurgePercentage = &v
	}
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}
