package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service сервис чтения записей и простых переходов статуса
type Service struct {
	appointmentRepo  AppointmentRepository
	professionalRepo ProfessionalRepository
	outboxRepo       OutboxRepository
	txManager        TransactionManager
	tz               TimeZoneResolver
	metrics          Metrics
	logger           Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	professionalRepo ProfessionalRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	tz TimeZoneResolver,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:  appointmentRepo,
		professionalRepo: professionalRepo,
		outboxRepo:       outboxRepo,
		txManager:        txManager,
		tz:               tz,
		metrics:          metrics,
		logger:           logger,
	}
}

// Get получает запись по ID в пределах тенанта
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Get: fetching appointment id=%d tenant=%s", id, tenantID)

	loc, err := s.tz.Location(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	appt, err := s.appointmentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, s.mapRepoError("Get", id, err)
	}

	return models.FromDomainAppointment(appt, loc), nil
}

// ListByProfessional получает записи специалиста на гражданскую дату тенанта
func (s *Service) ListByProfessional(
	ctx context.Context,
	tenantID uuid.UUID,
	professionalID int64,
	date types.Date,
	includeCanceled bool,
) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByProfessional: tenant=%s professional=%d date=%s includeCanceled=%t",
		tenantID, professionalID, date, includeCanceled)

	loc, err := s.tz.Location(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var list []*domain.Appointment
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		if _, err := s.professionalRepo.GetProfessional(txCtx, tenantID, professionalID); err != nil {
			if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
				s.logger.Warn("ListByProfessional: professional=%d not found", professionalID)
				return ErrProfessionalNotFound
			}
			return fmt.Errorf("%w: ListByProfessional - get professional: %v", ErrInternal, err)
		}

		filter := domain.AppointmentFilter{
			TenantID:        tenantID,
			ProfessionalID:  professionalID,
			From:            date.StartOfDay(loc),
			To:              date.AddDays(1).StartOfDay(loc),
			IncludeCanceled: includeCanceled,
		}

		var err error
		list, err = s.appointmentRepo.List(txCtx, filter, false)
		if err != nil {
			return fmt.Errorf("%w: ListByProfessional - list appointments: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("ListByProfessional: %v", err)
		}
		return nil, err
	}

	s.logger.Info("ListByProfessional: found %d appointments for professional=%d", len(list), professionalID)
	return models.FromDomainAppointmentList(list, loc), nil
}

// Cancel отменяет запись. Окно сразу становится свободным, строка остаётся в истории.
// Повторная отмена отменённой записи ничего не меняет.
func (s *Service) Cancel(ctx context.Context, tenantID uuid.UUID, id int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "Cancel", tenantID, id, domain.StatusCanceled, domain.EventAppointmentCanceled)
}

// Confirm подтверждает запись (scheduled -> confirmed)
func (s *Service) Confirm(ctx context.Context, tenantID uuid.UUID, id int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "Confirm", tenantID, id, domain.StatusConfirmed, "")
}

// MarkNoShow отмечает неявку клиента
func (s *Service) MarkNoShow(ctx context.Context, tenantID uuid.UUID, id int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "MarkNoShow", tenantID, id, domain.StatusNoShow, domain.EventAppointmentNoShow)
}

// transition переводит запись в target в одной транзакции:
// блокировка строки, проверка машины состояний, обновление статуса, событие outbox.
// Если запись уже в target, возвращается как есть без записи события.
func (s *Service) transition(
	ctx context.Context,
	op string,
	tenantID uuid.UUID,
	id int64,
	target domain.AppointmentStatus,
	eventType string,
) (*models.AppointmentResponse, error) {
	s.logger.Info("%s: appointment id=%d tenant=%s -> %s", op, id, tenantID, target)

	loc, err := s.tz.Location(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var (
		result  *domain.Appointment
		changed bool
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(txCtx, tenantID, id)
		if err != nil {
			return s.mapRepoError(op, id, err)
		}

		if appt.Status == target {
			result = appt
			return nil
		}

		if !appt.Status.CanTransitionTo(target) {
			s.logger.Warn("%s: appointment id=%d transition %s -> %s rejected", op, id, appt.Status, target)
			return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, appt.Status, target)
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, tenantID, id, target); err != nil {
			return s.mapRepoError(op, id, err)
		}
		appt.Status = target

		if eventType != "" {
			event, err := domain.NewOutboxEvent(tenantID, domain.AggregateAppointment, appt.ID, eventType,
				domain.NewAppointmentEventPayload(appt))
			if err != nil {
				return err
			}
			if err := s.outboxRepo.Insert(txCtx, event); err != nil {
				return fmt.Errorf("%w: %s - insert outbox event: %v", ErrInternal, op, err)
			}
		}

		result = appt
		changed = true
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInternal) {
			s.logger.Error("%s: appointment id=%d: %v", op, id, err)
		}
		return nil, err
	}

	if changed {
		s.metrics.IncStatusTransition(string(target))
		s.logger.Info("%s: appointment id=%d is now %s", op, id, target)
	} else {
		s.logger.Info("%s: appointment id=%d already %s", op, id, target)
	}

	return models.FromDomainAppointment(result, loc), nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment id=%d not found", op, id)
		return ErrAppointmentNotFound
	}
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
