// Package memstore in-memory хранилище для тестов сервисов и usecase.
//
// Повторяет поведение PostgreSQL, на которое опирается код: ограничение
// appointments_no_overlap, UNIQUE(tenant_id, phone), UNIQUE(appointment_id),
// блокировку строки записи (FOR UPDATE) и откат транзакции.
// Ошибки возвращаются теми же sentinel-значениями, что и настоящие репозитории.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ErrReadOnly запись внутри DoReadOnly
var ErrReadOnly = errors.New("memstore: write in read-only transaction")

// Store общее состояние всех репозиториев
type Store struct {
	mu sync.Mutex

	seq           int64
	tenants       map[uuid.UUID]*domain.Tenant
	professionals map[int64]*domain.Professional
	services      map[int64]*domain.Service
	clients       map[int64]*domain.Client
	entries       map[int64]*domain.WorkCalendarEntry
	appointments  map[int64]*domain.Appointment
	finance       map[int64]*domain.FinancialEntry
	outbox        map[int64]*domain.OutboxEvent
	rowLocks      map[int64]*sync.Mutex

	Now func() time.Time

	Appointments *AppointmentRepo
	Catalog      *CatalogRepo
	Calendar     *CalendarRepo
	Clients      *ClientRepo
	Finance      *FinanceRepo
	Outbox       *OutboxRepo
	TxManager    *TxManager
}

// New создает пустое хранилище
func New() *Store {
	s := &Store{
		tenants:       make(map[uuid.UUID]*domain.Tenant),
		professionals: make(map[int64]*domain.Professional),
		services:      make(map[int64]*domain.Service),
		clients:       make(map[int64]*domain.Client),
		entries:       make(map[int64]*domain.WorkCalendarEntry),
		appointments:  make(map[int64]*domain.Appointment),
		finance:       make(map[int64]*domain.FinancialEntry),
		outbox:        make(map[int64]*domain.OutboxEvent),
		rowLocks:      make(map[int64]*sync.Mutex),
		Now:           time.Now,
	}
	s.Appointments = &AppointmentRepo{s: s}
	s.Catalog = &CatalogRepo{s: s}
	s.Calendar = &CalendarRepo{s: s}
	s.Clients = &ClientRepo{s: s}
	s.Finance = &FinanceRepo{s: s}
	s.Outbox = &OutboxRepo{s: s}
	s.TxManager = &TxManager{s: s}
	return s
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// Наполнение

// AddTenant добавляет тенанта с часовым поясом (пустая строка - по умолчанию)
func (s *Store) AddTenant(timeZone string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.tenants[id] = &domain.Tenant{ID: id, TimeZone: timeZone}
	return id
}

// AddProfessional добавляет специалиста
func (s *Store) AddProfessional(tenantID uuid.UUID, name string, defaultPrice float64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	s.professionals[id] = &domain.Professional{
		ID:                  id,
		TenantID:            tenantID,
		Name:                name,
		DefaultSessionPrice: defaultPrice,
		CreatedAt:           s.Now(),
		UpdatedAt:           s.Now(),
	}
	return id
}

// AddService добавляет услугу
func (s *Store) AddService(tenantID uuid.UUID, name string, durationMinutes int, price float64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	s.services[id] = &domain.Service{
		ID:              id,
		TenantID:        tenantID,
		Name:            name,
		DurationMinutes: durationMinutes,
		Price:           price,
	}
	return id
}

// AddClient добавляет клиента с уже нормализованным телефоном
func (s *Store) AddClient(tenantID uuid.UUID, name, phone string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	s.clients[id] = &domain.Client{
		ID:        id,
		TenantID:  tenantID,
		Name:      name,
		Phone:     phone,
		CreatedAt: s.Now(),
		UpdatedAt: s.Now(),
	}
	return id
}

// AddEntry добавляет строку рабочего календаря без проверок
func (s *Store) AddEntry(entry domain.WorkCalendarEntry) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.nextID()
	s.entries[entry.ID] = &entry
	return entry.ID
}

// AddAppointment добавляет запись без проверки пересечений
func (s *Store) AddAppointment(appt domain.Appointment) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt.ID = s.nextID()
	if appt.Status == "" {
		appt.Status = domain.StatusScheduled
	}
	s.appointments[appt.ID] = &appt
	return appt.ID
}

// Чтение состояния

// Appointment копия записи (nil, если нет)
func (s *Store) Appointment(id int64) *domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

// AppointmentCount количество записей специалиста в любом статусе
func (s *Store) AppointmentCount(professionalID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.appointments {
		if a.ProfessionalID == professionalID {
			n++
		}
	}
	return n
}

// FinancialEntries копии всех финансовых записей
func (s *Store) FinancialEntries() []domain.FinancialEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.FinancialEntry, 0, len(s.finance))
	for _, e := range s.finance {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OutboxEvents копии всех событий в порядке вставки
func (s *Store) OutboxEvents() []domain.OutboxEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.OutboxEvent, 0, len(s.outbox))
	for _, e := range s.outbox {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ClientCount количество клиентов тенанта
func (s *Store) ClientCount(tenantID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.clients {
		if c.TenantID == tenantID {
			n++
		}
	}
	return n
}

// Entries копии расписания специалиста по дням недели
func (s *Store) Entries(professionalID int64) []domain.WorkCalendarEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.WorkCalendarEntry, 0)
	for _, e := range s.entries {
		if e.ProfessionalID == professionalID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out
}

// Транзакции

type txKey struct{}

type txLog struct {
	readOnly bool
	undo     []func()
	held     map[int64]bool
	locks    []*sync.Mutex
}

func txFrom(ctx context.Context) *txLog {
	log, _ := ctx.Value(txKey{}).(*txLog)
	return log
}

// TxManager выполняет функции в "транзакции": ошибка откатывает все записи fn
type TxManager struct {
	s *Store

	mu      sync.Mutex
	Commits int
	Aborts  int
}

// Do транзакция на запись
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, false, fn)
}

// DoSerializable то же, что Do
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, false, fn)
}

// DoReadOnly транзакция только на чтение
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, true, fn)
}

func (m *TxManager) run(ctx context.Context, readOnly bool, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	log := &txLog{readOnly: readOnly, held: make(map[int64]bool)}
	err := fn(context.WithValue(ctx, txKey{}, log))

	if err != nil {
		m.s.mu.Lock()
		for i := len(log.undo) - 1; i >= 0; i-- {
			log.undo[i]()
		}
		m.s.mu.Unlock()
	}
	for _, l := range log.locks {
		l.Unlock()
	}

	m.mu.Lock()
	if err != nil {
		m.Aborts++
	} else {
		m.Commits++
	}
	m.mu.Unlock()

	return err
}

// write проверяет режим транзакции и запоминает откат. Вызывать под s.mu.
func (s *Store) write(ctx context.Context, undo func()) error {
	log := txFrom(ctx)
	if log == nil {
		return nil
	}
	if log.readOnly {
		return ErrReadOnly
	}
	log.undo = append(log.undo, undo)
	return nil
}

// lockRow блокирует строку записи до конца транзакции (FOR UPDATE)
func (s *Store) lockRow(ctx context.Context, id int64) {
	log := txFrom(ctx)
	if log == nil || log.readOnly || log.held[id] {
		return
	}

	s.mu.Lock()
	l, ok := s.rowLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[id] = l
	}
	s.mu.Unlock()

	l.Lock()
	log.held[id] = true
	log.locks = append(log.locks, l)
}
