package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// FindOrCreateRequest данные клиента из формы записи
type FindOrCreateRequest struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// ClientResponse ответ с данными клиента
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Created   bool      `json:"created"` // true, если клиент создан этим запросом
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainClient конвертирует domain.Client в ClientResponse
func FromDomainClient(c *domain.Client, created bool) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Created:   created,
		CreatedAt: c.CreatedAt,
	}
}
