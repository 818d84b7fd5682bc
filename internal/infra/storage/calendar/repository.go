package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/pgerr"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var entryColumns = []string{
	"id",
	"tenant_id",
	"professional_id",
	"weekday",
	"start_time",
	"end_time",
	"break_start",
	"break_end",
	"created_at",
	"updated_at",
}

// Repository репозиторий рабочего календаря специалистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByWeekday получает расписание специалиста на день недели
func (r *Repository) GetByWeekday(ctx context.Context, tenantID uuid.UUID, professionalID int64, weekday time.Weekday) (*domain.WorkCalendarEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("work_calendar_entries").
		Where(squirrel.Eq{
			"tenant_id":       tenantID,
			"professional_id": professionalID,
			"weekday":         int(weekday),
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// ListByProfessional получает всё расписание специалиста, упорядоченное по дню недели
func (r *Repository) ListByProfessional(ctx context.Context, tenantID uuid.UUID, professionalID int64) ([]*domain.WorkCalendarEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("work_calendar_entries").
		Where(squirrel.Eq{"tenant_id": tenantID, "professional_id": professionalID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WorkCalendarEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProfessional - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// Create добавляет запись расписания
func (r *Repository) Create(ctx context.Context, entry *domain.WorkCalendarEntry) (*domain.WorkCalendarEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("work_calendar_entries").
		Columns(
			"tenant_id",
			"professional_id",
			"weekday",
			"start_time",
			"end_time",
			"break_start",
			"break_end",
		).
		Values(
			entry.TenantID,
			entry.ProfessionalID,
			int(entry.Weekday),
			entry.StartTime,
			entry.EndTime,
			entry.BreakStart,
			entry.BreakEnd,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&createdAt,
		&updatedAt,
	)

	switch {
	case err == nil:
	case pgerr.IsUniqueViolation(err):
		return nil, fmt.Errorf("%w: weekday %d", ErrDuplicateWeekday, entry.Weekday)
	case pgerr.IsCheckViolation(err):
		return nil, fmt.Errorf("%w: %s", ErrInvalidEntry, pgerr.Constraint(err))
	default:
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// DeleteByProfessional удаляет всё расписание специалиста, возвращает число удалённых строк
func (r *Repository) DeleteByProfessional(ctx context.Context, tenantID uuid.UUID, professionalID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("work_calendar_entries").
		Where(squirrel.Eq{"tenant_id": tenantID, "professional_id": professionalID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByProfessional - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByProfessional - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByProfessional - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WorkCalendarEntry, error) {
	var entry domain.WorkCalendarEntry
	var weekday int
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.TenantID,
		&entry.ProfessionalID,
		&weekday,
		&entry.StartTime,
		&entry.EndTime,
		&entry.BreakStart,
		&entry.BreakEnd,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Weekday = time.Weekday(weekday)
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}
