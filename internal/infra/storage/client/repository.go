package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/pgerr"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var clientColumns = []string{"id", "tenant_id", "name", "phone", "email", "created_at", "updated_at"}

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента в пределах тенанта
func (r *Repository) GetByID(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Client, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id, "tenant_id": tenantID})
}

// GetByPhone получает клиента по нормализованному телефону
func (r *Repository) GetByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*domain.Client, error) {
	return r.getOne(ctx, "GetByPhone", squirrel.Eq{"tenant_id": tenantID, "phone": phone})
}

// FindOrCreate возвращает клиента с тем же (tenant_id, phone) или создает нового.
// Второй результат true, если клиент создан этим вызовом.
//
// INSERT ... ON CONFLICT DO NOTHING ничего не возвращает, если строка уже есть
// (в том числе вставленная конкурентным запросом), тогда читаем существующую.
func (r *Repository) FindOrCreate(ctx context.Context, c *domain.Client) (*domain.Client, bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("tenant_id", "name", "phone", "email").
		Values(c.TenantID, c.Name, c.Phone, c.Email).
		Suffix("ON CONFLICT (tenant_id, phone) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, false, fmt.Errorf("%w: FindOrCreate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt)

	switch {
	case err == nil:
		c.CreatedAt = createdAt.Time
		c.UpdatedAt = updatedAt.Time
		return c, true, nil
	case errors.Is(err, sql.ErrNoRows), pgerr.IsUniqueViolation(err):
		existing, getErr := r.GetByPhone(ctx, c.TenantID, c.Phone)
		if getErr != nil {
			return nil, false, fmt.Errorf("FindOrCreate - reload existing: %w", getErr)
		}
		return existing, false, nil
	default:
		return nil, false, fmt.Errorf("%w: FindOrCreate - execute insert: %v", ErrExecQuery, err)
	}
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var c domain.Client
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.TenantID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan client: %v", ErrScanRow, op, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
