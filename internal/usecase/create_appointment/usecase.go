package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// Стадии отказа по пересечению (метка метрик)
const (
	stagePrecheck   = "precheck"
	stageConstraint = "constraint"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	clientRepo      ClientRepository
	outboxRepo      OutboxRepository
	tz              TimeZoneResolver
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	clientRepo ClientRepository,
	outboxRepo OutboxRepository,
	tz TimeZoneResolver,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		clientRepo:      clientRepo,
		outboxRepo:      outboxRepo,
		tz:              tz,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
//
// Проверка пересечения и вставка идут в одной транзакции: сначала блокируются
// (FOR UPDATE) активные записи специалиста в окне, затем INSERT. Если два запроса
// на один слот всё же разминулись с блокировкой, ограничение appointments_no_overlap
// отклонит второй, и он получит ErrSlotTaken.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AppointmentResponse, error) {
	uc.logger.Info("CreateAppointment: tenant=%s, professional=%d, client=%d, service=%d, date=%s, time=%s",
		req.TenantID, req.ProfessionalID, req.ClientID, req.ServiceID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Часовой пояс тенанта и момент начала
	loc, err := uc.tz.Location(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	startAt, err := req.Date.At(req.StartTime, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.Appointment

	// 3. Выполняем операции с БД в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Специалист
		professional, err := uc.catalogRepo.GetProfessional(txCtx, req.TenantID, req.ProfessionalID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
				uc.logger.Warn("CreateAppointment: professional id=%d not found", req.ProfessionalID)
				return ErrProfessionalNotFound
			}
			return fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
		}

		// 3.2. Услуга определяет длительность; конец фиксируется сейчас
		service, err := uc.catalogRepo.GetService(txCtx, req.TenantID, req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if service.DurationMinutes <= 0 {
			return fmt.Errorf("%w: service id=%d has duration %d", ErrInvalidInput, service.ID, service.DurationMinutes)
		}

		// 3.3. Клиент
		if _, err := uc.clientRepo.GetByID(txCtx, req.TenantID, req.ClientID); err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
				return ErrClientNotFound
			}
			return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}

		appt := &domain.Appointment{
			TenantID:       req.TenantID,
			ProfessionalID: req.ProfessionalID,
			ClientID:       req.ClientID,
			ServiceID:      req.ServiceID,
			StartAt:        startAt,
			EndAt:          startAt.Add(service.Duration()),
			Status:         domain.StatusScheduled,
			Note:           req.Note,
			SessionPrice:   req.SessionPrice,
		}
		if appt.SessionPrice == nil {
			price := professional.DefaultSessionPrice
			appt.SessionPrice = &price
		}

		// 3.4. Блокируем активные записи специалиста в окне и проверяем пересечение
		filter := domain.AppointmentFilter{
			TenantID:       req.TenantID,
			ProfessionalID: req.ProfessionalID,
			From:           appt.StartAt,
			To:             appt.EndAt,
		}
		conflicts, err := uc.appointmentRepo.List(txCtx, filter, true)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.metrics.IncOverlapRejected(stagePrecheck)
			uc.logger.Warn("CreateAppointment: window %s-%s overlaps appointment id=%d",
				appt.StartAt.Format(domain.TimeFormat), appt.EndAt.Format(domain.TimeFormat), conflicts[0].ID)
			return ErrSlotTaken
		}

		// 3.5. Сохраняем; ограничение БД - окончательная проверка
		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			return uc.mapCreateError(err)
		}

		// 3.6. Событие в той же транзакции
		event, err := domain.NewOutboxEvent(req.TenantID, domain.AggregateAppointment, created.ID,
			domain.EventAppointmentCreated, domain.NewAppointmentEventPayload(created))
		if err != nil {
			return err
		}
		if err := uc.outboxRepo.Insert(txCtx, event); err != nil {
			return fmt.Errorf("%w: failed to insert outbox event: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrInternal) {
			uc.logger.Error("CreateAppointment: %v", err)
		}
		return nil, err
	}

	uc.metrics.IncAppointmentCreated(req.Channel)
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return models.FromDomainAppointment(result, loc), nil
}

func (uc *UseCase) mapCreateError(err error) error {
	switch {
	case errors.Is(err, appointmentRepo.ErrOverlap):
		uc.metrics.IncOverlapRejected(stageConstraint)
		uc.logger.Warn("CreateAppointment: rejected by overlap constraint: %v", err)
		return ErrSlotTaken
	case errors.Is(err, appointmentRepo.ErrReferenceNotFound):
		uc.logger.Warn("CreateAppointment: referenced row disappeared: %v", err)
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	default:
		return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}
}
