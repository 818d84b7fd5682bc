package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// EntryRequest расписание на один день недели
type EntryRequest struct {
	Weekday    int     `json:"weekday"`              // 0 = воскресенье ... 6 = суббота
	StartTime  string  `json:"startTime"`            // "09:00"
	EndTime    string  `json:"endTime"`              // "18:00"
	BreakStart *string `json:"breakStart,omitempty"` // "13:00", вместе с breakEnd
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// ReplaceScheduleRequest новое расписание специалиста целиком
type ReplaceScheduleRequest struct {
	Entries []EntryRequest `json:"entries"`
}

// ToDomainEntries конвертирует запрос в domain модели.
// Форматы времени проверяются здесь, бизнес-правила - в domain.ValidateSchedule.
func (r *ReplaceScheduleRequest) ToDomainEntries(tenantID uuid.UUID, professionalID int64) ([]domain.WorkCalendarEntry, error) {
	entries := make([]domain.WorkCalendarEntry, 0, len(r.Entries))
	for i, e := range r.Entries {
		entry, err := e.toDomain(tenantID, professionalID)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (e EntryRequest) toDomain(tenantID uuid.UUID, professionalID int64) (domain.WorkCalendarEntry, error) {
	entry := domain.WorkCalendarEntry{
		TenantID:       tenantID,
		ProfessionalID: professionalID,
		Weekday:        time.Weekday(e.Weekday),
	}

	var err error
	if entry.StartTime, err = parseTime("startTime", e.StartTime); err != nil {
		return entry, err
	}
	if entry.EndTime, err = parseTime("endTime", e.EndTime); err != nil {
		return entry, err
	}
	if e.BreakStart != nil {
		bs, err := parseTime("breakStart", *e.BreakStart)
		if err != nil {
			return entry, err
		}
		entry.BreakStart = &bs
	}
	if e.BreakEnd != nil {
		be, err := parseTime("breakEnd", *e.BreakEnd)
		if err != nil {
			return entry, err
		}
		entry.BreakEnd = &be
	}

	return entry, nil
}

func parseTime(field, value string) (types.TimeString, error) {
	ts, err := types.NewTimeStringFromString(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrValidation, field, err)
	}
	return ts, nil
}

// Response модели

// EntryResponse расписание на день недели
type EntryResponse struct {
	ID             int64   `json:"id"`
	ProfessionalID int64   `json:"professionalId"`
	Weekday        int     `json:"weekday"`
	WeekdayName    string  `json:"weekdayName"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	BreakStart     *string `json:"breakStart,omitempty"`
	BreakEnd       *string `json:"breakEnd,omitempty"`
}

// ScheduleResponse расписание специалиста по дням недели
type ScheduleResponse struct {
	ProfessionalID int64           `json:"professionalId"`
	Entries        []EntryResponse `json:"entries"`
}

// FromDomainEntry конвертирует domain.WorkCalendarEntry в EntryResponse
func FromDomainEntry(e *domain.WorkCalendarEntry) *EntryResponse {
	if e == nil {
		return nil
	}

	resp := &EntryResponse{
		ID:             e.ID,
		ProfessionalID: e.ProfessionalID,
		Weekday:        int(e.Weekday),
		WeekdayName:    e.Weekday.String(),
		StartTime:      e.StartTime.String(),
		EndTime:        e.EndTime.String(),
	}
	if e.HasBreak() {
		bs, be := e.BreakStart.String(), e.BreakEnd.String()
		resp.BreakStart = &bs
		resp.BreakEnd = &be
	}
	return resp
}

// FromDomainSchedule конвертирует список строк расписания
func FromDomainSchedule(professionalID int64, entries []*domain.WorkCalendarEntry) *ScheduleResponse {
	resp := &ScheduleResponse{
		ProfessionalID: professionalID,
		Entries:        make([]EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, *FromDomainEntry(e))
	}
	return resp
}
