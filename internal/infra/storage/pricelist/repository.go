package pricelist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/v-demidov/HCS-AdmissionService/internal/core/pricing"
	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	"github.com/v-demidov/HCS-AdmissionService/pkg/dbmetrics"
	"github.com/v-demidov/HCS-AdmissionService/pkg/psqlbuilder"
)

const (
	ratesTable    = "service_rates"
	extrasTable   = "service_extras"
	settingsTable = "pricing_settings"
)

// Repository репозиторий прайс-листа. Собирает pricing.Table из трех таблиц:
// ставки услуг, каталог допуслуг и общие настройки (сбор, скидки).
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория прайс-листа
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Load читает полный прайс-лист из БД
func (r *Repository) Load(ctx context.Context) (*pricing.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	table := &pricing.Table{
		Services:           make(map[domain.ServiceType]pricing.ServiceRates),
		Extras:             make(map[string]int64),
		FrequencyDiscounts: make(map[domain.Frequency]float64),
	}

	if err := r.loadRates(ctx, executor, table); err != nil {
		return nil, err
	}
	if len(table.Services) == 0 {
		return nil, ErrPriceListEmpty
	}
	if err := r.loadExtras(ctx, executor, table); err != nil {
		return nil, err
	}
	if err := r.loadSettings(ctx, executor, table); err != nil {
		return nil, err
	}

	return table, nil
}

func (r *Repository) loadRates(ctx context.Context, executor DBExecutor, table *pricing.Table) error {
	query, args, err := psqlbuilder.Select("service_type", "base_cents", "bedroom_cents", "bathroom_cents").
		From(ratesTable).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Load - build rates query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Load - query rates: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var serviceType string
		var rates pricing.ServiceRates
		if err := rows.Scan(&serviceType, &rates.BaseCents, &rates.BedroomCents, &rates.BathroomCents); err != nil {
			return fmt.Errorf("%w: Load - scan rates: %v", ErrScanRow, err)
		}
		st, err := domain.ParseServiceType(serviceType)
		if err != nil {
			return fmt.Errorf("%w: Load - rates row: %v", ErrScanRow, err)
		}
		table.Services[st] = rates
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: Load - iterate rates: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) loadExtras(ctx context.Context, executor DBExecutor, table *pricing.Table) error {
	query, args, err := psqlbuilder.Select("id", "unit_cents").
		From(extrasTable).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Load - build extras query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Load - query extras: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var unitCents int64
		if err := rows.Scan(&id, &unitCents); err != nil {
			return fmt.Errorf("%w: Load - scan extras: %v", ErrScanRow, err)
		}
		table.Extras[id] = unitCents
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: Load - iterate extras: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) loadSettings(ctx context.Context, executor DBExecutor, table *pricing.Table) error {
	query, args, err := psqlbuilder.Select(
		"service_fee_cents",
		"weekly_discount_percent",
		"biweekly_discount_percent",
		"monthly_discount_percent",
	).
		From(settingsTable).
		OrderBy("updated_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Load - build settings query: %v", ErrBuildQuery, err)
	}

	var weekly, biweekly, monthly float64
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&table.ServiceFeeCents,
		&weekly,
		&biweekly,
		&monthly,
	)
	if err == sql.ErrNoRows {
		// Нет строки настроек: сбор 0, скидок нет
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: Load - scan settings: %v", ErrScanRow, err)
	}

	table.FrequencyDiscounts[domain.FrequencyOneTime] = 0
	table.FrequencyDiscounts[domain.FrequencyWeekly] = weekly
	table.FrequencyDiscounts[domain.FrequencyBiWeekly] = biweekly
	table.FrequencyDiscounts[domain.FrequencyMonthly] = monthly

	return nil
}
