package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case для получения доступных слотов специалиста
type UseCase struct {
	appointmentRepo AppointmentRepository
	calendarRepo    CalendarRepository
	catalogRepo     CatalogRepository
	tz              TimeZoneResolver
	txManager       TransactionManager
	defaultDuration int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// defaultDurationMinutes используется, если услуга не найдена в каталоге.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calendarRepo CalendarRepository,
	catalogRepo CatalogRepository,
	tz TimeZoneResolver,
	txManager TransactionManager,
	defaultDurationMinutes int,
	logger Logger,
) *UseCase {
	if defaultDurationMinutes <= 0 {
		defaultDurationMinutes = domain.DefaultServiceDurationMinutes
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calendarRepo:    calendarRepo,
		catalogRepo:     catalogRepo,
		tz:              tz,
		txManager:       txManager,
		defaultDuration: defaultDurationMinutes,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Отсутствие расписания на день недели - пустой список, а не ошибка.
// Прошедшие слоты сегодняшнего дня не отфильтровываются: это делает вызывающая сторона.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%s, professional=%d, service=%d, date=%s",
		req.TenantID, req.ProfessionalID, req.ServiceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Часовой пояс тенанта
	loc, err := uc.tz.Location(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Date:           req.Date,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		TimeZone:       loc.String(),
		Slots:          []types.TimeString{},
	}

	// 3. Календарь и записи читаем из одного снимка
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 3.1. Специалист должен существовать
		if _, err := uc.catalogRepo.GetProfessional(txCtx, req.TenantID, req.ProfessionalID); err != nil {
			if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
				uc.logger.Warn("GetAvailableSlots: professional id=%d not found", req.ProfessionalID)
				return ErrProfessionalNotFound
			}
			return fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
		}

		// 3.2. Длительность услуги
		duration, err := uc.resolveDuration(txCtx, req)
		if err != nil {
			return err
		}
		resp.DurationMinutes = duration

		// 3.3. Расписание на день недели гражданской даты
		weekday := req.Date.Weekday()
		entry, err := uc.calendarRepo.GetByWeekday(txCtx, req.TenantID, req.ProfessionalID, weekday)
		if err != nil {
			if errors.Is(err, calendarRepo.ErrEntryNotFound) {
				uc.logger.Info("GetAvailableSlots: professional=%d does not work on %s", req.ProfessionalID, weekday)
				return nil
			}
			return fmt.Errorf("%w: failed to get work calendar: %v", ErrInternal, err)
		}

		// 3.4. Неотменённые записи специалиста на эту дату
		filter := domain.AppointmentFilter{
			TenantID:       req.TenantID,
			ProfessionalID: req.ProfessionalID,
			From:           req.Date.StartOfDay(loc),
			To:             req.Date.AddDays(1).StartOfDay(loc),
		}
		appointments, err := uc.appointmentRepo.List(txCtx, filter, false)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 3.5. Генерируем слоты
		slots, err := generateSlots(entry, duration, busyIntervals(appointments, req.Date, loc))
		if err != nil {
			return err
		}
		resp.Slots = slots
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInternal) {
			uc.logger.Error("GetAvailableSlots: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for professional=%d, date=%s",
		len(resp.Slots), req.ProfessionalID, req.Date)

	return resp, nil
}

func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	service, err := uc.catalogRepo.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found, using default duration %d",
				req.ServiceID, uc.defaultDuration)
			return uc.defaultDuration, nil
		}
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	return service.DurationMinutes, nil
}

