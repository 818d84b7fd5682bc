package complete_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/timezone"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeMetrics struct {
	mu          sync.Mutex
	transitions int
	entries     int
}

func (f *fakeMetrics) IncStatusTransition(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transitions++
}

func (f *fakeMetrics) IncFinancialEntry() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries++
}

type fixture struct {
	store    *memstore.Store
	uc       *UseCase
	metrics  *fakeMetrics
	tenantID uuid.UUID
	appt     domain.Appointment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	tenantID := store.AddTenant("Europe/Lisbon")
	start := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)

	f := &fixture{
		store:    store,
		metrics:  &fakeMetrics{},
		tenantID: tenantID,
		appt: domain.Appointment{
			TenantID:       tenantID,
			ProfessionalID: store.AddProfessional(tenantID, "Dr. Costa", 120),
			ClientID:       store.AddClient(tenantID, "Rita", "351912345678"),
			ServiceID:      store.AddService(tenantID, "Sessão", 50, 120),
			StartAt:        start,
			EndAt:          start.Add(50 * time.Minute),
			SessionPrice:   ptr.Ptr(95.5),
		},
	}

	resolver := timezone.NewResolver(store.Catalog, time.UTC, logger.NewNop())
	f.uc = NewUseCase(store.Appointments, store.Finance, store.Outbox, resolver, store.TxManager, f.metrics, logger.NewNop())
	return f
}

func (f *fixture) add(status domain.AppointmentStatus) int64 {
	appt := f.appt
	appt.Status = status
	return f.store.AddAppointment(appt)
}

func eventTypes(events []domain.OutboxEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.EventType)
	}
	return out
}

func TestUseCase_Execute_CreatesEntry(t *testing.T) {
	f := newFixture(t)
	id := f.add(domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), &Request{TenantID: f.tenantID, AppointmentID: id})
	require.NoError(t, err)

	assert.False(t, resp.AlreadyDone)
	assert.Equal(t, string(domain.StatusCompleted), resp.Appointment.Status)
	require.NotNil(t, resp.FinancialEntry)
	assert.Equal(t, 95.5, resp.FinancialEntry.Amount)
	assert.Equal(t, string(domain.CategoryServiceRevenue), resp.FinancialEntry.Category)

	assert.Equal(t, domain.StatusCompleted, f.store.Appointment(id).Status)
	assert.Len(t, f.store.FinancialEntries(), 1)
	assert.Equal(t,
		[]string{domain.EventFinanceEntryCreated, domain.EventAppointmentCompleted},
		eventTypes(f.store.OutboxEvents()))
	assert.Equal(t, 1, f.metrics.entries)
	assert.Equal(t, 1, f.metrics.transitions)
}

func TestUseCase_Execute_Twice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.add(domain.StatusScheduled)

	first, err := f.uc.Execute(ctx, &Request{TenantID: f.tenantID, AppointmentID: id})
	require.NoError(t, err)

	second, err := f.uc.Execute(ctx, &Request{TenantID: f.tenantID, AppointmentID: id})
	require.NoError(t, err)

	assert.True(t, second.AlreadyDone)
	require.NotNil(t, second.FinancialEntry)
	assert.Equal(t, first.FinancialEntry.ID, second.FinancialEntry.ID)
	assert.Len(t, f.store.FinancialEntries(), 1)
	assert.Len(t, f.store.OutboxEvents(), 2)
	assert.Equal(t, 1, f.metrics.entries)
}

func TestUseCase_Execute_Concurrent(t *testing.T) {
	f := newFixture(t)
	id := f.add(domain.StatusScheduled)

	const workers = 4
	responses := make([]*Response, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			responses[i], errs[i] = f.uc.Execute(context.Background(), &Request{TenantID: f.tenantID, AppointmentID: id})
		}(i)
	}
	close(start)
	wg.Wait()

	fresh := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		if !responses[i].AlreadyDone {
			fresh++
		}
	}

	assert.Equal(t, 1, fresh)
	assert.Len(t, f.store.FinancialEntries(), 1)
	assert.Equal(t, 1, f.metrics.entries)
}

func TestUseCase_Execute_ZeroPriceWithoutSessionPrice(t *testing.T) {
	f := newFixture(t)
	f.appt.SessionPrice = nil
	id := f.add(domain.StatusScheduled)

	resp, err := f.uc.Execute(context.Background(), &Request{TenantID: f.tenantID, AppointmentID: id})
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.FinancialEntry.Amount)
}

func TestUseCase_Execute_NotAllowed(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCanceled, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			id := f.add(status)

			_, err := f.uc.Execute(context.Background(), &Request{TenantID: f.tenantID, AppointmentID: id})
			assert.ErrorIs(t, err, ErrCompleteNotAllowed)
			assert.ErrorIs(t, err, domain.ErrImmutableState)
			assert.Empty(t, f.store.FinancialEntries())
			assert.Empty(t, f.store.OutboxEvents())
			assert.Equal(t, status, f.store.Appointment(id).Status)
		})
	}
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	f := newFixture(t)
	id := f.add(domain.StatusScheduled)

	_, err := f.uc.Execute(context.Background(), &Request{TenantID: f.store.AddTenant(""), AppointmentID: id})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{TenantID: f.tenantID})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
