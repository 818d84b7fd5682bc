package workcalendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/workcalendar/models"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func newService(store *memstore.Store) *Service {
	return NewService(store.Calendar, store.Catalog, store.TxManager, logger.NewNop())
}

func TestService_ReplaceAndRead(t *testing.T) {
	store := memstore.New()
	tenantID := store.AddTenant("")
	profID := store.AddProfessional(tenantID, "Dr. Silva", 100)
	svc := newService(store)
	ctx := context.Background()

	store.AddEntry(domain.WorkCalendarEntry{
		TenantID: tenantID, ProfessionalID: profID, Weekday: time.Friday,
		StartTime: "10:00", EndTime: "12:00",
	})

	resp, err := svc.Replace(ctx, tenantID, profID, &models.ReplaceScheduleRequest{Entries: []models.EntryRequest{
		{Weekday: 3, StartTime: "08:00", EndTime: "12:00", BreakStart: ptr.Ptr("09:00"), BreakEnd: ptr.Ptr("10:00")},
		{Weekday: 1, StartTime: "09:00", EndTime: "17:00"},
	}})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)

	list, err := svc.List(ctx, tenantID, profID)
	require.NoError(t, err)
	require.Len(t, list.Entries, 2)
	assert.Equal(t, 1, list.Entries[0].Weekday)
	assert.Equal(t, "Wednesday", list.Entries[1].WeekdayName)
	assert.Equal(t, "09:00", *list.Entries[1].BreakStart)

	entry, err := svc.Get(ctx, tenantID, profID, time.Wednesday)
	require.NoError(t, err)
	assert.Equal(t, "08:00", entry.StartTime)

	// старая пятница удалена заменой
	_, err = svc.Get(ctx, tenantID, profID, time.Friday)
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(ctx, tenantID, profID, time.Weekday(7))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_ReplaceIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.EntryRequest
	}{
		{
			name: "break outside window",
			entries: []models.EntryRequest{
				{Weekday: 1, StartTime: "09:00", EndTime: "17:00"},
				{Weekday: 2, StartTime: "09:00", EndTime: "12:00", BreakStart: ptr.Ptr("11:30"), BreakEnd: ptr.Ptr("12:30")},
			},
		},
		{
			name: "only break start",
			entries: []models.EntryRequest{
				{Weekday: 1, StartTime: "09:00", EndTime: "17:00", BreakStart: ptr.Ptr("12:00")},
			},
		},
		{
			name: "duplicate weekday",
			entries: []models.EntryRequest{
				{Weekday: 4, StartTime: "09:00", EndTime: "12:00"},
				{Weekday: 4, StartTime: "13:00", EndTime: "17:00"},
			},
		},
		{
			name: "end before start",
			entries: []models.EntryRequest{
				{Weekday: 5, StartTime: "18:00", EndTime: "09:00"},
			},
		},
		{
			name: "bad time format",
			entries: []models.EntryRequest{
				{Weekday: 5, StartTime: "9am", EndTime: "17:00"},
			},
		},
		{
			name: "weekday out of range",
			entries: []models.EntryRequest{
				{Weekday: 7, StartTime: "09:00", EndTime: "17:00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			tenantID := store.AddTenant("")
			profID := store.AddProfessional(tenantID, "Dr. Silva", 100)
			store.AddEntry(domain.WorkCalendarEntry{
				TenantID: tenantID, ProfessionalID: profID, Weekday: time.Monday,
				StartTime: types.TimeString("08:00"), EndTime: types.TimeString("12:00"),
			})

			_, err := newService(store).Replace(context.Background(), tenantID, profID,
				&models.ReplaceScheduleRequest{Entries: tt.entries})
			assert.ErrorIs(t, err, domain.ErrValidation)

			entries := store.Entries(profID)
			require.Len(t, entries, 1)
			assert.Equal(t, types.TimeString("08:00"), entries[0].StartTime)
		})
	}
}

func TestService_ReplaceUnknownProfessional(t *testing.T) {
	store := memstore.New()
	tenantID := store.AddTenant("")
	otherTenant := store.AddTenant("")
	profID := store.AddProfessional(otherTenant, "Dr. Costa", 100)

	_, err := newService(store).Replace(context.Background(), tenantID, profID, &models.ReplaceScheduleRequest{
		Entries: []models.EntryRequest{{Weekday: 1, StartTime: "09:00", EndTime: "17:00"}},
	})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
	assert.Empty(t, store.Entries(profID))
}
