package finance

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

// Repository репозиторий финансовых записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория финансовых записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет финансовую запись.
// UNIQUE(appointment_id) гарантирует не больше одной записи на визит:
// повторная вставка возвращает ErrEntryExists.
func (r *Repository) Create(ctx context.Context, entry *domain.FinancialEntry) (*domain.FinancialEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("financial_entries").
		Columns("tenant_id", "appointment_id", "amount", "category").
		Values(entry.TenantID, entry.AppointmentID, entry.Amount, entry.Category).
		Suffix("ON CONFLICT (appointment_id) DO NOTHING RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt)

	switch {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows), pgerr.IsUniqueViolation(err):
		return nil, fmt.Errorf("%w: appointment_id=%d", ErrEntryExists, entry.AppointmentID)
	default:
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	return entry, nil
}

// GetByAppointment получает финансовую запись визита
func (r *Repository) GetByAppointment(ctx context.Context, tenantID uuid.UUID, appointmentID int64) (*domain.FinancialEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tenant_id", "appointment_id", "amount", "category", "created_at").
		From("financial_entries").
		Where(squirrel.Eq{"tenant_id": tenantID, "appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.FinancialEntry
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.TenantID,
		&entry.AppointmentID,
		&entry.Amount,
		&entry.Category,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - scan entry: %v", ErrScanRow, err)
	}

	entry.CreatedAt = createdAt.Time
	return &entry, nil
}
