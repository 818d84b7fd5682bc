package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Tenant read-only view of a tenant: only what scheduling needs
type Tenant struct {
	ID       uuid.UUID
	TimeZone string // IANA name, пусто - часовой пояс по умолчанию
}

// Professional provides services and owns a work calendar
type Professional struct {
	ID                  int64
	TenantID            uuid.UUID
	Name                string
	Specialty           *string
	DefaultSessionPrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service bookable service with a fixed duration
type Service struct {
	ID              int64
	TenantID        uuid.UUID
	Name            string
	DurationMinutes int
	Price           float64
}

// Duration returns the service length
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Client person booked into appointments, unique per (tenant, phone)
type Client struct {
	ID       int64
	TenantID uuid.UUID
	Name     string
	Phone    string
	Email    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizePhone keeps digits only: "+55 (11) 9-1234" -> "551191234"
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	phone := b.String()
	if len(phone) < MinPhoneDigits || len(phone) > MaxPhoneDigits {
		return "", fmt.Errorf("%w: phone must contain %d..%d digits", ErrValidation, MinPhoneDigits, MaxPhoneDigits)
	}
	return phone, nil
}
