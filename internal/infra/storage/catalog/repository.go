package catalog

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

// Repository чтение тенантов, специалистов и услуг.
// Каталог ведёт внешний сервис, здесь только то, что нужно расписанию.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTenant получает тенанта (нужен его часовой пояс)
func (r *Repository) GetTenant(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "time_zone").
		From("tenants").
		Where(squirrel.Eq{"id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTenant - build select query: %v", ErrBuildQuery, err)
	}

	var tenant domain.Tenant
	var timeZone sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(&tenant.ID, &timeZone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTenant - scan tenant: %v", ErrScanRow, err)
	}

	tenant.TimeZone = timeZone.String
	return &tenant, nil
}

// GetProfessional получает специалиста в пределах тенанта
func (r *Repository) GetProfessional(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"name",
		"specialty",
		"default_session_price",
		"created_at",
		"updated_at",
	).
		From("professionals").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - build select query: %v", ErrBuildQuery, err)
	}

	var professional domain.Professional
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&professional.ID,
		&professional.TenantID,
		&professional.Name,
		&professional.Specialty,
		&professional.DefaultSessionPrice,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - scan professional: %v", ErrScanRow, err)
	}

	professional.CreatedAt = createdAt.Time
	professional.UpdatedAt = updatedAt.Time

	return &professional, nil
}

// GetService получает услугу в пределах тенанта
func (r *Repository) GetService(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tenant_id", "name", "duration_minutes", "price").
		From("services").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.TenantID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &service, nil
}

// DeleteProfessional удаляет специалиста; расписание удаляется каскадно.
// Если на специалиста ссылаются записи, БД отклоняет удаление (ErrProfessionalReferenced).
func (r *Repository) DeleteProfessional(ctx context.Context, tenantID uuid.UUID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("professionals").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteProfessional - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", ErrProfessionalReferenced, pgerr.Constraint(err))
		}
		return fmt.Errorf("%w: DeleteProfessional - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteProfessional - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProfessionalNotFound
	}

	return nil
}
