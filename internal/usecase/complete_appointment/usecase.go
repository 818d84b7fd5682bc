package complete_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	financeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/finance"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase use case для завершения визита
type UseCase struct {
	appointmentRepo AppointmentRepository
	financeRepo     FinanceRepository
	outboxRepo      OutboxRepository
	tz              TimeZoneResolver
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	financeRepo FinanceRepository,
	outboxRepo OutboxRepository,
	tz TimeZoneResolver,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		financeRepo:     financeRepo,
		outboxRepo:      outboxRepo,
		tz:              tz,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case завершения визита.
//
// Статус completed, финансовая запись и события пишутся в одной транзакции.
// Повторное завершение возвращает существующую финансовую запись и ничего не пишет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteAppointment: tenant=%s, appointment=%d", req.TenantID, req.AppointmentID)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	// 2. Часовой пояс тенанта
	loc, err := uc.tz.Location(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	var (
		appt         *domain.Appointment
		entry        *domain.FinancialEntry
		alreadyDone  bool
		entryCreated bool
	)

	// 3. Выполняем операции с БД в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем запись: параллельное завершение ждёт здесь
		current, err := uc.appointmentRepo.GetByID(txCtx, req.TenantID, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CompleteAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}
		appt = current

		// 3.2. Уже завершена - no-op
		if current.Status == domain.StatusCompleted {
			alreadyDone = true
			existing, err := uc.financeRepo.GetByAppointment(txCtx, req.TenantID, current.ID)
			if err != nil && !errors.Is(err, financeRepo.ErrEntryNotFound) {
				return fmt.Errorf("%w: failed to get financial entry: %v", ErrInternal, err)
			}
			entry = existing
			return nil
		}

		if !current.Status.CanTransitionTo(domain.StatusCompleted) {
			uc.logger.Warn("CompleteAppointment: appointment id=%d is %s", current.ID, current.Status)
			return fmt.Errorf("%w: status %s", ErrCompleteNotAllowed, current.Status)
		}

		// 3.3. Меняем статус
		if err := uc.appointmentRepo.UpdateStatus(txCtx, req.TenantID, current.ID, domain.StatusCompleted); err != nil {
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}
		appt.Status = domain.StatusCompleted

		// 3.4. Финансовая запись; UNIQUE(appointment_id) - вторая защита от дубля
		created, err := uc.financeRepo.Create(txCtx, &domain.FinancialEntry{
			TenantID:      req.TenantID,
			AppointmentID: current.ID,
			Amount:        ptr.Value(current.SessionPrice),
			Category:      domain.CategoryServiceRevenue,
		})
		switch {
		case err == nil:
			entry = created
			entryCreated = true
		case errors.Is(err, financeRepo.ErrEntryExists):
			uc.logger.Warn("CompleteAppointment: financial entry for appointment id=%d already exists", current.ID)
			existing, err := uc.financeRepo.GetByAppointment(txCtx, req.TenantID, current.ID)
			if err != nil {
				return fmt.Errorf("%w: failed to get financial entry: %v", ErrInternal, err)
			}
			entry = existing
		default:
			return fmt.Errorf("%w: failed to create financial entry: %v", ErrInternal, err)
		}

		// 3.5. События в той же транзакции
		return uc.insertEvents(txCtx, appt, entry, entryCreated)
	})

	if err != nil {
		if errors.Is(err, domain.ErrInternal) {
			uc.logger.Error("CompleteAppointment: %v", err)
		}
		return nil, err
	}

	if alreadyDone {
		uc.logger.Info("CompleteAppointment: appointment id=%d already completed", appt.ID)
	} else {
		uc.metrics.IncStatusTransition(string(domain.StatusCompleted))
		if entryCreated {
			uc.metrics.IncFinancialEntry()
		}
		uc.logger.Info("CompleteAppointment: successfully completed appointment id=%d", appt.ID)
	}

	resp := &Response{
		Appointment: models.FromDomainAppointment(appt, loc),
		AlreadyDone: alreadyDone,
	}
	if entry != nil {
		resp.FinancialEntry = models.FromDomainFinancialEntry(entry)
	}

	return resp, nil
}

func (uc *UseCase) insertEvents(ctx context.Context, appt *domain.Appointment, entry *domain.FinancialEntry, entryCreated bool) error {
	events := make([]*domain.OutboxEvent, 0, 2)

	if entryCreated {
		event, err := domain.NewOutboxEvent(entry.TenantID, domain.AggregateFinanceEntry, entry.ID,
			domain.EventFinanceEntryCreated, domain.FinanceEntryEventPayload{
				EntryID:       entry.ID,
				TenantID:      entry.TenantID.String(),
				AppointmentID: entry.AppointmentID,
				Amount:        entry.Amount,
				Category:      string(entry.Category),
			})
		if err != nil {
			return err
		}
		events = append(events, event)
	}

	event, err := domain.NewOutboxEvent(appt.TenantID, domain.AggregateAppointment, appt.ID,
		domain.EventAppointmentCompleted, domain.NewAppointmentEventPayload(appt))
	if err != nil {
		return err
	}
	events = append(events, event)

	for _, e := range events {
		if err := uc.outboxRepo.Insert(ctx, e); err != nil {
			return fmt.Errorf("%w: failed to insert outbox event %s: %v", ErrInternal, e.EventType, err)
		}
	}

	return nil
}
