package public_booking

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	clientModels "github.com/m04kA/SMC-SchedulingService/internal/service/clients/models"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
)

// UseCase use case публичной записи: клиент по телефону + создание записи
type UseCase struct {
	clients ClientResolver
	creator AppointmentCreator
	tz      TimeZoneResolver
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(clients ClientResolver, creator AppointmentCreator, tz TimeZoneResolver, logger Logger) *UseCase {
	return &UseCase{
		clients: clients,
		creator: creator,
		tz:      tz,
		logger:  logger,
	}
}

// Execute выполняет use case публичной записи.
// Клиент создаётся до транзакции записи: если слот уже занят, клиент остаётся,
// и повторная попытка с тем же телефоном найдёт его.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AppointmentResponse, error) {
	uc.logger.Info("PublicBooking: tenant=%s, professional=%d, service=%d, date=%s, time=%s",
		req.TenantID, req.ProfessionalID, req.ServiceID, req.Date, req.StartTime)

	// 1. Тенант должен существовать до создания клиента
	if _, err := uc.tz.Location(ctx, req.TenantID); err != nil {
		return nil, err
	}

	// 2. Клиент по нормализованному телефону
	client, err := uc.clients.Resolve(ctx, req.TenantID, &clientModels.FindOrCreateRequest{
		Name:  req.ClientName,
		Phone: req.ClientPhone,
		Email: req.ClientEmail,
	})
	if err != nil {
		uc.logger.Warn("PublicBooking: failed to resolve client: %v", err)
		return nil, err
	}

	// 3. Запись с ценой специалиста по умолчанию
	resp, err := uc.creator.Execute(ctx, &create_appointment.Request{
		TenantID:       req.TenantID,
		ProfessionalID: req.ProfessionalID,
		ClientID:       client.ID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		StartTime:      req.StartTime,
		Note:           req.Note,
		Channel:        domain.ChannelPublic,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("PublicBooking: appointment id=%d booked for client id=%d", resp.ID, client.ID)
	return resp, nil
}
