package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case для изменения записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	clientRepo      ClientRepository
	tz              TimeZoneResolver
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	clientRepo ClientRepository,
	tz TimeZoneResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		clientRepo:      clientRepo,
		tz:              tz,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case изменения записи.
// Заметку можно менять в любом статусе, остальные поля только в scheduled и confirmed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AppointmentResponse, error) {
	uc.logger.Info("UpdateAppointment: tenant=%s, appointment=%d", req.TenantID, req.AppointmentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Часовой пояс тенанта
	loc, err := uc.tz.Location(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	var result *domain.Appointment

	// 3. Выполняем операции с БД в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем запись
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.TenantID, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 3.2. Вне scheduled и confirmed меняется только заметка
		if !req.onlyNote() && !appt.IsEditable() {
			uc.logger.Warn("UpdateAppointment: appointment id=%d is %s, only note can be changed", appt.ID, appt.Status)
			return ErrNotEditable
		}

		changes, err := uc.buildChanges(txCtx, req, appt, loc)
		if err != nil {
			return err
		}
		if changes.IsEmpty() {
			result = appt
			return nil
		}

		// 3.3. Новый клиент должен существовать в тенанте
		if changes.ClientID != nil && *changes.ClientID != appt.ClientID {
			if _, err := uc.clientRepo.GetByID(txCtx, req.TenantID, *changes.ClientID); err != nil {
				if errors.Is(err, clientRepo.ErrClientNotFound) {
					return ErrClientNotFound
				}
				return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
			}
		}

		applyChanges(appt, changes)

		// 3.4. Окно изменилось - та же проверка пересечения, что и при создании, без самой записи
		if changes.StartAt != nil && appt.IsActive() {
			filter := domain.AppointmentFilter{
				TenantID:       appt.TenantID,
				ProfessionalID: appt.ProfessionalID,
				From:           appt.StartAt,
				To:             appt.EndAt,
				ExcludeID:      &appt.ID,
			}
			conflicts, err := uc.appointmentRepo.List(txCtx, filter, true)
			if err != nil {
				return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
			}
			if len(conflicts) > 0 {
				uc.logger.Warn("UpdateAppointment: new window of id=%d overlaps appointment id=%d", appt.ID, conflicts[0].ID)
				return ErrSlotTaken
			}
		}

		// 3.5. Сохраняем
		if err := uc.appointmentRepo.Update(txCtx, appt); err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrOverlap):
				uc.logger.Warn("UpdateAppointment: rejected by overlap constraint: %v", err)
				return ErrSlotTaken
			case errors.Is(err, appointmentRepo.ErrReferenceNotFound):
				return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			default:
				return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
			}
		}

		result = appt
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrInternal) {
			uc.logger.Error("UpdateAppointment: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d", result.ID)

	return models.FromDomainAppointment(result, loc), nil
}

// buildChanges переводит запрос в изменения записи.
// Новое окончание считается, если меняется дата, время или услуга.
func (uc *UseCase) buildChanges(ctx context.Context, req *Request, appt *domain.Appointment, loc *time.Location) (domain.AppointmentChanges, error) {
	changes := domain.AppointmentChanges{
		ServiceID:    req.ServiceID,
		ClientID:     req.ClientID,
		SessionPrice: req.SessionPrice,
		Note:         req.Note,
	}

	duration := time.Duration(appt.DurationMinutes()) * time.Minute
	if req.ServiceID != nil && *req.ServiceID != appt.ServiceID {
		service, err := uc.catalogRepo.GetService(ctx, req.TenantID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				return changes, ErrServiceNotFound
			}
			return changes, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if service.DurationMinutes <= 0 {
			return changes, fmt.Errorf("%w: service id=%d has duration %d", ErrInvalidInput, service.ID, service.DurationMinutes)
		}
		duration = service.Duration()
	}

	start := appt.StartAt
	if req.Date != nil || req.StartTime != nil {
		local := appt.StartAt.In(loc)
		date := types.DateOf(local, loc)
		startTime := types.NewTimeString(local)
		if req.Date != nil {
			date = *req.Date
		}
		if req.StartTime != nil {
			startTime = *req.StartTime
		}

		var err error
		start, err = date.At(startTime, loc)
		if err != nil {
			return changes, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	end := start.Add(duration)
	if !start.Equal(appt.StartAt) || !end.Equal(appt.EndAt) {
		changes.StartAt = &start
		changes.EndAt = &end
	}

	return changes, nil
}

func applyChanges(appt *domain.Appointment, c domain.AppointmentChanges) {
	if c.StartAt != nil {
		appt.StartAt = *c.StartAt
	}
	if c.EndAt != nil {
		appt.EndAt = *c.EndAt
	}
	if c.ServiceID != nil {
		appt.ServiceID = *c.ServiceID
	}
	if c.ClientID != nil {
		appt.ClientID = *c.ClientID
	}
	if c.SessionPrice != nil {
		appt.SessionPrice = c.SessionPrice
	}
	if c.Note != nil {
		appt.Note = c.Note
	}
}
