package professionals

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
)

// Service сервис специалистов. Каталог ведётся снаружи, здесь только политика удаления.
type Service struct {
	appointmentRepo  AppointmentRepository
	professionalRepo ProfessionalRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса специалистов
func NewService(
	appointmentRepo AppointmentRepository,
	professionalRepo ProfessionalRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:  appointmentRepo,
		professionalRepo: professionalRepo,
		txManager:        txManager,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Delete удаляет специалиста вместе с его рабочим календарём.
// Отказ с ErrConflict, пока есть неотменённые записи, которые ещё не закончились.
// Прошлые записи удерживает внешний ключ appointments.professional_id (ON DELETE RESTRICT).
func (s *Service) Delete(ctx context.Context, tenantID uuid.UUID, professionalID int64) error {
	s.logger.Info("Delete: tenant=%s professional=%d", tenantID, professionalID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Проверяем будущие записи
		upcoming, err := s.appointmentRepo.CountUpcoming(txCtx, tenantID, professionalID, s.timeProvider.Now())
		if err != nil {
			return fmt.Errorf("%w: Delete - count upcoming: %v", ErrInternal, err)
		}
		if upcoming > 0 {
			s.logger.Warn("Delete: professional=%d has %d upcoming appointments", professionalID, upcoming)
			return fmt.Errorf("%w: %d", ErrHasUpcomingAppointments, upcoming)
		}

		// 2. Удаляем; календарь удаляется каскадно
		if err := s.professionalRepo.DeleteProfessional(txCtx, tenantID, professionalID); err != nil {
			switch {
			case errors.Is(err, catalogRepo.ErrProfessionalNotFound):
				s.logger.Warn("Delete: professional=%d not found", professionalID)
				return ErrProfessionalNotFound
			case errors.Is(err, catalogRepo.ErrProfessionalReferenced):
				s.logger.Warn("Delete: professional=%d is referenced by past appointments", professionalID)
				return ErrHasHistory
			default:
				return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Delete: professional=%d: %v", professionalID, err)
		}
		return err
	}

	s.logger.Info("Delete: professional=%d deleted", professionalID)
	return nil
}
