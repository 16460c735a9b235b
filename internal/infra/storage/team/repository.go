package team

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	"github.com/v-demidov/HCS-AdmissionService/pkg/dbmetrics"
	"github.com/v-demidov/HCS-AdmissionService/pkg/psqlbuilder"
)

const table = "teams"

var columns = []string{
	"name",
	"supervisor_id",
	"members",
	"eligible_services",
	"position",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий команд клинеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория команд
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByName получает команду по имени
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Team, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - build select query: %v", ErrBuildQuery, err)
	}

	team, err := scanTeam(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - scan team: %v", ErrScanRow, err)
	}

	return team, nil
}

// ListActive возвращает активные команды в порядке приоритета назначения
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Team, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan team: %v", ErrScanRow, err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - iterate rows: %v", ErrExecQuery, err)
	}

	return teams, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTeam(row rowScanner) (*domain.Team, error) {
	var team domain.Team
	var membersRaw []byte
	var services pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&team.Name,
		&team.SupervisorID,
		&membersRaw,
		&services,
		&team.Position,
		&team.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(membersRaw) > 0 {
		if err := json.Unmarshal(membersRaw, &team.Members); err != nil {
			return nil, fmt.Errorf("unmarshal members: %v", err)
		}
	}

	team.EligibleServices = make([]domain.ServiceType, 0, len(services))
	for _, s := range services {
		st, err := domain.ParseServiceType(s)
		if err != nil {
			return nil, fmt.Errorf("parse eligible service: %v", err)
		}
		team.EligibleServices = append(team.EligibleServices, st)
	}

	team.CreatedAt = createdAt.Time
	team.UpdatedAt = updatedAt.Time

	return &team, nil
}
