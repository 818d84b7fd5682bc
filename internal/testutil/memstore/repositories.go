package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	financeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/finance"
)

// AppointmentRepo записи
type AppointmentRepo struct{ s *Store }

// Create вставка с проверкой appointments_no_overlap и внешних ключей
func (r *AppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRefs(appt); err != nil {
		return nil, err
	}
	if appt.Status != domain.StatusCanceled && s.overlaps(appt, 0) {
		return nil, fmt.Errorf("%w: appointments_no_overlap", appointmentRepo.ErrOverlap)
	}

	stored := *appt
	stored.ID = s.nextID()
	stored.CreatedAt = s.Now()
	stored.UpdatedAt = stored.CreatedAt
	if err := s.write(ctx, func() { delete(s.appointments, stored.ID) }); err != nil {
		return nil, err
	}
	s.appointments[stored.ID] = &stored

	out := stored
	return &out, nil
}

// GetByID чтение; внутри транзакции строка блокируется
func (r *AppointmentRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Appointment, error) {
	s := r.s
	s.lockRow(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.appointments[id]
	if !ok || a.TenantID != tenantID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	out := *a
	return &out, nil
}

// List выборка по фильтру в порядке start_at
func (r *AppointmentRepo) List(_ context.Context, filter domain.AppointmentFilter, _ bool) ([]*domain.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Appointment, 0)
	for _, a := range s.appointments {
		if a.TenantID != filter.TenantID || a.ProfessionalID != filter.ProfessionalID {
			continue
		}
		if !filter.From.IsZero() && !a.EndAt.After(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !a.StartAt.Before(filter.To) {
			continue
		}
		if !filter.IncludeCanceled && a.Status == domain.StatusCanceled {
			continue
		}
		if filter.ExcludeID != nil && a.ID == *filter.ExcludeID {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

// Update сохранение изменяемых полей
func (r *AppointmentRepo) Update(ctx context.Context, appt *domain.Appointment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.appointments[appt.ID]
	if !ok || current.TenantID != appt.TenantID {
		return appointmentRepo.ErrAppointmentNotFound
	}

	next := *current
	next.StartAt = appt.StartAt
	next.EndAt = appt.EndAt
	next.ServiceID = appt.ServiceID
	next.ClientID = appt.ClientID
	next.SessionPrice = appt.SessionPrice
	next.Note = appt.Note
	next.UpdatedAt = s.Now()

	if err := s.checkRefs(&next); err != nil {
		return err
	}
	if next.Status != domain.StatusCanceled && s.overlaps(&next, next.ID) {
		return fmt.Errorf("%w: appointments_no_overlap", appointmentRepo.ErrOverlap)
	}

	prev := *current
	if err := s.write(ctx, func() { s.appointments[prev.ID] = &prev }); err != nil {
		return err
	}
	s.appointments[next.ID] = &next
	appt.UpdatedAt = next.UpdatedAt
	return nil
}

// UpdateStatus смена статуса
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, tenantID uuid.UUID, id int64, status domain.AppointmentStatus) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.appointments[id]
	if !ok || current.TenantID != tenantID {
		return appointmentRepo.ErrAppointmentNotFound
	}

	prev := *current
	if err := s.write(ctx, func() { s.appointments[prev.ID] = &prev }); err != nil {
		return err
	}
	next := *current
	next.Status = status
	next.UpdatedAt = s.Now()
	s.appointments[id] = &next
	return nil
}

// CountUpcoming неотменённые записи специалиста с end_at > now
func (r *AppointmentRepo) CountUpcoming(_ context.Context, tenantID uuid.UUID, professionalID int64, now time.Time) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, a := range s.appointments {
		if a.TenantID == tenantID && a.ProfessionalID == professionalID &&
			a.Status != domain.StatusCanceled && a.EndAt.After(now) {
			n++
		}
	}
	return n, nil
}

func (s *Store) overlaps(appt *domain.Appointment, excludeID int64) bool {
	for _, other := range s.appointments {
		if other.ID == excludeID || other.ProfessionalID != appt.ProfessionalID || !other.IsActive() {
			continue
		}
		if other.Overlaps(appt.StartAt, appt.EndAt) {
			return true
		}
	}
	return false
}

func (s *Store) checkRefs(appt *domain.Appointment) error {
	if _, ok := s.professionals[appt.ProfessionalID]; !ok {
		return fmt.Errorf("%w: professional_id", appointmentRepo.ErrReferenceNotFound)
	}
	if _, ok := s.clients[appt.ClientID]; !ok {
		return fmt.Errorf("%w: client_id", appointmentRepo.ErrReferenceNotFound)
	}
	if _, ok := s.services[appt.ServiceID]; !ok {
		return fmt.Errorf("%w: service_id", appointmentRepo.ErrReferenceNotFound)
	}
	return nil
}

// CatalogRepo тенанты, специалисты и услуги
type CatalogRepo struct{ s *Store }

// GetTenant чтение тенанта
func (r *CatalogRepo) GetTenant(_ context.Context, tenantID uuid.UUID) (*domain.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tenants[tenantID]
	if !ok {
		return nil, catalogRepo.ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

// GetProfessional чтение специалиста в тенанте
func (r *CatalogRepo) GetProfessional(_ context.Context, tenantID uuid.UUID, id int64) (*domain.Professional, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.professionals[id]
	if !ok || p.TenantID != tenantID {
		return nil, catalogRepo.ErrProfessionalNotFound
	}
	cp := *p
	return &cp, nil
}

// GetService чтение услуги в тенанте
func (r *CatalogRepo) GetService(_ context.Context, tenantID uuid.UUID, id int64) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.TenantID != tenantID {
		return nil, catalogRepo.ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}

// DeleteProfessional удаление с ON DELETE RESTRICT для записей и CASCADE для календаря
func (r *CatalogRepo) DeleteProfessional(ctx context.Context, tenantID uuid.UUID, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.professionals[id]
	if !ok || p.TenantID != tenantID {
		return catalogRepo.ErrProfessionalNotFound
	}
	for _, a := range s.appointments {
		if a.ProfessionalID == id {
			return fmt.Errorf("%w: appointments_professional_id_fkey", catalogRepo.ErrProfessionalReferenced)
		}
	}

	removed := make([]*domain.WorkCalendarEntry, 0)
	for _, e := range s.entries {
		if e.ProfessionalID == id {
			removed = append(removed, e)
		}
	}
	if err := s.write(ctx, func() {
		s.professionals[p.ID] = p
		for _, e := range removed {
			s.entries[e.ID] = e
		}
	}); err != nil {
		return err
	}
	for _, e := range removed {
		delete(s.entries, e.ID)
	}
	delete(s.professionals, id)
	return nil
}

// CalendarRepo рабочий календарь
type CalendarRepo struct{ s *Store }

// GetByWeekday расписание на день недели
func (r *CalendarRepo) GetByWeekday(_ context.Context, tenantID uuid.UUID, professionalID int64, weekday time.Weekday) (*domain.WorkCalendarEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.entries {
		if e.TenantID == tenantID && e.ProfessionalID == professionalID && e.Weekday == weekday {
			cp := *e
			return &cp, nil
		}
	}
	return nil, calendarRepo.ErrEntryNotFound
}

// ListByProfessional расписание по дням недели
func (r *CalendarRepo) ListByProfessional(_ context.Context, tenantID uuid.UUID, professionalID int64) ([]*domain.WorkCalendarEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.WorkCalendarEntry, 0)
	for _, e := range r.s.entries {
		if e.TenantID == tenantID && e.ProfessionalID == professionalID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

// Create вставка с UNIQUE(professional_id, weekday)
func (r *CalendarRepo) Create(ctx context.Context, entry *domain.WorkCalendarEntry) (*domain.WorkCalendarEntry, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.professionals[entry.ProfessionalID]; !ok {
		return nil, fmt.Errorf("%w: professional_id", calendarRepo.ErrExecQuery)
	}
	for _, e := range s.entries {
		if e.ProfessionalID == entry.ProfessionalID && e.Weekday == entry.Weekday {
			return nil, fmt.Errorf("%w: weekday=%d", calendarRepo.ErrDuplicateWeekday, entry.Weekday)
		}
	}

	stored := *entry
	stored.ID = s.nextID()
	stored.CreatedAt = s.Now()
	stored.UpdatedAt = stored.CreatedAt
	if err := s.write(ctx, func() { delete(s.entries, stored.ID) }); err != nil {
		return nil, err
	}
	s.entries[stored.ID] = &stored

	out := stored
	return &out, nil
}

// DeleteByProfessional удаляет всё расписание специалиста
func (r *CalendarRepo) DeleteByProfessional(ctx context.Context, tenantID uuid.UUID, professionalID int64) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make([]*domain.WorkCalendarEntry, 0)
	for _, e := range s.entries {
		if e.TenantID == tenantID && e.ProfessionalID == professionalID {
			removed = append(removed, e)
		}
	}
	if err := s.write(ctx, func() {
		for _, e := range removed {
			s.entries[e.ID] = e
		}
	}); err != nil {
		return 0, err
	}
	for _, e := range removed {
		delete(s.entries, e.ID)
	}
	return int64(len(removed)), nil
}

// ClientRepo клиенты
type ClientRepo struct{ s *Store }

// GetByID чтение клиента в тенанте
func (r *ClientRepo) GetByID(_ context.Context, tenantID uuid.UUID, id int64) (*domain.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok || c.TenantID != tenantID {
		return nil, clientRepo.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

// GetByPhone чтение по нормализованному телефону
func (r *ClientRepo) GetByPhone(_ context.Context, tenantID uuid.UUID, phone string) (*domain.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c := r.s.clientByPhone(tenantID, phone); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, clientRepo.ErrClientNotFound
}

// FindOrCreate атомарный аналог INSERT ... ON CONFLICT (tenant_id, phone) DO NOTHING
func (r *ClientRepo) FindOrCreate(ctx context.Context, c *domain.Client) (*domain.Client, bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.clientByPhone(c.TenantID, c.Phone); existing != nil {
		cp := *existing
		return &cp, false, nil
	}

	stored := *c
	stored.ID = s.nextID()
	stored.CreatedAt = s.Now()
	stored.UpdatedAt = stored.CreatedAt
	if err := s.write(ctx, func() { delete(s.clients, stored.ID) }); err != nil {
		return nil, false, err
	}
	s.clients[stored.ID] = &stored

	out := stored
	return &out, true, nil
}

func (s *Store) clientByPhone(tenantID uuid.UUID, phone string) *domain.Client {
	for _, c := range s.clients {
		if c.TenantID == tenantID && c.Phone == phone {
			return c
		}
	}
	return nil
}

// FinanceRepo финансовые записи
type FinanceRepo struct{ s *Store }

// Create вставка с UNIQUE(appointment_id)
func (r *FinanceRepo) Create(ctx context.Context, entry *domain.FinancialEntry) (*domain.FinancialEntry, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.finance {
		if e.AppointmentID == entry.AppointmentID {
			return nil, fmt.Errorf("%w: appointment_id=%d", financeRepo.ErrEntryExists, entry.AppointmentID)
		}
	}

	stored := *entry
	stored.ID = s.nextID()
	stored.CreatedAt = s.Now()
	if err := s.write(ctx, func() { delete(s.finance, stored.ID) }); err != nil {
		return nil, err
	}
	s.finance[stored.ID] = &stored

	out := stored
	return &out, nil
}

// GetByAppointment финансовая запись визита
func (r *FinanceRepo) GetByAppointment(_ context.Context, tenantID uuid.UUID, appointmentID int64) (*domain.FinancialEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.finance {
		if e.TenantID == tenantID && e.AppointmentID == appointmentID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, financeRepo.ErrEntryNotFound
}

// OutboxRepo события outbox
type OutboxRepo struct{ s *Store }

// Insert сохраняет событие
func (r *OutboxRepo) Insert(ctx context.Context, event *domain.OutboxEvent) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *event
	stored.ID = s.nextID()
	stored.CreatedAt = s.Now()
	if err := s.write(ctx, func() { delete(s.outbox, stored.ID) }); err != nil {
		return err
	}
	s.outbox[stored.ID] = &stored
	event.ID = stored.ID
	event.CreatedAt = stored.CreatedAt
	return nil
}

// FetchUnpublished неотправленные события по возрастанию id
func (r *OutboxRepo) FetchUnpublished(_ context.Context, limit int) ([]*domain.OutboxEvent, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.OutboxEvent, 0)
	for _, e := range s.outbox {
		if e.PublishedAt == nil {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MarkPublished отмечает события отправленными
func (r *OutboxRepo) MarkPublished(ctx context.Context, ids []int64, at time.Time) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := make([]domain.OutboxEvent, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.outbox[id]; ok {
			prev = append(prev, *e)
		}
	}
	if err := s.write(ctx, func() {
		for i := range prev {
			e := prev[i]
			s.outbox[e.ID] = &e
		}
	}); err != nil {
		return err
	}
	for _, id := range ids {
		if e, ok := s.outbox[id]; ok {
			published := at
			next := *e
			next.PublishedAt = &published
			s.outbox[id] = &next
		}
	}
	return nil
}
