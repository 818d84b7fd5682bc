package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/service/clients/models"
)

// Service сервис клиентов
type Service struct {
	clientRepo ClientRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// FindOrCreate находит клиента по телефону в тенанте или создает нового.
// Телефон нормализуется до цифр, поэтому "+55 11 91234-5678" и "5511912345678" - один клиент.
// Два одновременных вызова с одним телефоном получают один и тот же ID.
func (s *Service) FindOrCreate(ctx context.Context, tenantID uuid.UUID, req *models.FindOrCreateRequest) (*models.ClientResponse, error) {
	client, created, err := s.findOrCreate(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	return models.FromDomainClient(client, created), nil
}

// Resolve то же, что FindOrCreate, но возвращает domain модель (для usecase публичной записи)
func (s *Service) Resolve(ctx context.Context, tenantID uuid.UUID, req *models.FindOrCreateRequest) (*domain.Client, error) {
	client, _, err := s.findOrCreate(ctx, tenantID, req)
	return client, err
}

// Get получает клиента по ID
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID, id int64) (*models.ClientResponse, error) {
	client, err := s.clientRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("Get: client id=%d not found in tenant=%s", id, tenantID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("Get: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainClient(client, false), nil
}

func (s *Service) findOrCreate(ctx context.Context, tenantID uuid.UUID, req *models.FindOrCreateRequest) (*domain.Client, bool, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > domain.MaxClientNameLength {
		s.logger.Warn("FindOrCreate: invalid client name length")
		return nil, false, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	phone, err := domain.NormalizePhone(req.Phone)
	if err != nil {
		s.logger.Warn("FindOrCreate: invalid phone for tenant=%s: %v", tenantID, err)
		return nil, false, err
	}

	var email *string
	if req.Email != nil {
		if e := strings.TrimSpace(*req.Email); e != "" {
			email = &e
		}
	}

	client, created, err := s.clientRepo.FindOrCreate(ctx, &domain.Client{
		TenantID: tenantID,
		Name:     name,
		Phone:    phone,
		Email:    email,
	})
	if err != nil {
		s.logger.Error("FindOrCreate: repository error for tenant=%s: %v", tenantID, err)
		return nil, false, fmt.Errorf("%w: FindOrCreate - repository error: %v", ErrInternal, err)
	}

	if created {
		s.logger.Info("FindOrCreate: created client id=%d in tenant=%s", client.ID, tenantID)
	} else {
		s.logger.Info("FindOrCreate: reusing client id=%d in tenant=%s", client.ID, tenantID)
	}
	return client, created, nil
}
