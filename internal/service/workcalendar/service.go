package workcalendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/internal/service/workcalendar/models"
)

// Service сервис рабочего календаря специалистов
type Service struct {
	calendarRepo     CalendarRepository
	professionalRepo ProfessionalRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	calendarRepo CalendarRepository,
	professionalRepo ProfessionalRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		calendarRepo:     calendarRepo,
		professionalRepo: professionalRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Get получает расписание специалиста на день недели
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID, professionalID int64, weekday time.Weekday) (*models.EntryResponse, error) {
	s.logger.Info("Get: tenant=%s professional=%d weekday=%d", tenantID, professionalID, weekday)

	if weekday < time.Sunday || weekday > time.Saturday {
		return nil, ErrInvalidWeekday
	}

	entry, err := s.calendarRepo.GetByWeekday(ctx, tenantID, professionalID, weekday)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrEntryNotFound) {
			s.logger.Warn("Get: no entry for professional=%d weekday=%d", professionalID, weekday)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntry(entry), nil
}

// List получает всё расписание специалиста по дням недели
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, professionalID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("List: tenant=%s professional=%d", tenantID, professionalID)

	if err := s.ensureProfessional(ctx, "List", tenantID, professionalID); err != nil {
		return nil, err
	}

	entries, err := s.calendarRepo.ListByProfessional(ctx, tenantID, professionalID)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(professionalID, entries), nil
}

// Replace заменяет расписание специалиста целиком.
// Сначала проверяются все строки; при любой ошибке ничего не записывается.
// Удаление старого и вставка нового выполняются в одной транзакции.
func (s *Service) Replace(
	ctx context.Context,
	tenantID uuid.UUID,
	professionalID int64,
	req *models.ReplaceScheduleRequest,
) (*models.ScheduleResponse, error) {
	s.logger.Info("Replace: tenant=%s professional=%d entries=%d", tenantID, professionalID, len(req.Entries))

	// 1. Проверяем формат и бизнес-правила всех строк
	entries, err := req.ToDomainEntries(tenantID, professionalID)
	if err != nil {
		s.logger.Warn("Replace: invalid request: %v", err)
		return nil, err
	}
	if err := domain.ValidateSchedule(entries); err != nil {
		s.logger.Warn("Replace: invalid schedule: %v", err)
		return nil, err
	}

	created := make([]*domain.WorkCalendarEntry, 0, len(entries))

	// 2. Заменяем расписание в транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.ensureProfessional(txCtx, "Replace", tenantID, professionalID); err != nil {
			return err
		}

		deleted, err := s.calendarRepo.DeleteByProfessional(txCtx, tenantID, professionalID)
		if err != nil {
			return fmt.Errorf("%w: Replace - delete entries: %v", ErrInternal, err)
		}
		s.logger.Info("Replace: removed %d old entries of professional=%d", deleted, professionalID)

		for i := range entries {
			entry, err := s.calendarRepo.Create(txCtx, &entries[i])
			if err != nil {
				if errors.Is(err, calendarRepo.ErrDuplicateWeekday) || errors.Is(err, calendarRepo.ErrInvalidEntry) {
					return fmt.Errorf("%w: %v", domain.ErrValidation, err)
				}
				return fmt.Errorf("%w: Replace - create entry: %v", ErrInternal, err)
			}
			created = append(created, entry)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInternal) {
			s.logger.Error("Replace: %v", err)
		}
		return nil, err
	}

	s.logger.Info("Replace: professional=%d now has %d entries", professionalID, len(created))
	return models.FromDomainSchedule(professionalID, created), nil
}

func (s *Service) ensureProfessional(ctx context.Context, op string, tenantID uuid.UUID, professionalID int64) error {
	_, err := s.professionalRepo.GetProfessional(ctx, tenantID, professionalID)
	if err == nil {
		return nil
	}
	if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
		s.logger.Warn("%s: professional=%d not found", op, professionalID)
		return ErrProfessionalNotFound
	}
	return fmt.Errorf("%w: %s - get professional: %v", ErrInternal, op, err)
}
