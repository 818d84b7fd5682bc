package relay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, events []*domain.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

type fakeMetrics struct {
	published map[string]int
}

func (m *fakeMetrics) AddOutboxPublished(eventType string, n int) {
	if m.published == nil {
		m.published = make(map[string]int)
	}
	m.published[eventType] += n
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func insertEvents(t *testing.T, store *memstore.Store, types ...string) {
	t.Helper()
	tenantID := uuid.New()
	for i, eventType := range types {
		event, err := domain.NewOutboxEvent(tenantID, domain.AggregateAppointment, int64(i+1), eventType, struct{}{})
		require.NoError(t, err)
		require.NoError(t, store.Outbox.Insert(context.Background(), event))
	}
}

func TestRelay_PublishBatch(t *testing.T) {
	store := memstore.New()
	insertEvents(t, store,
		domain.EventAppointmentCreated,
		domain.EventAppointmentCreated,
		domain.EventAppointmentCanceled,
	)

	pub := &fakePublisher{}
	metrics := &fakeMetrics{}
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	relay := NewRelay(store.Outbox, pub, store.TxManager, metrics, fixedTime{now}, logger.NewNop(), Config{BatchSize: 2})

	n, err := relay.PublishBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = relay.PublishBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = relay.PublishBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	require.Len(t, pub.events, 3)
	for _, e := range store.OutboxEvents() {
		require.NotNil(t, e.PublishedAt)
		assert.True(t, e.PublishedAt.Equal(now))
	}
	assert.Equal(t, map[string]int{
		domain.EventAppointmentCreated:  2,
		domain.EventAppointmentCanceled: 1,
	}, metrics.published)
}

func TestRelay_PublishFailureKeepsEvents(t *testing.T) {
	store := memstore.New()
	insertEvents(t, store, domain.EventAppointmentCompleted)

	pub := &fakePublisher{err: errors.New("broker down")}
	relay := NewRelay(store.Outbox, pub, store.TxManager, &fakeMetrics{}, RealTimeProvider{}, logger.NewNop(), Config{})

	_, err := relay.PublishBatch(context.Background())
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Nil(t, store.OutboxEvents()[0].PublishedAt)

	// брокер вернулся - событие уходит
	pub.err = nil
	n, err := relay.PublishBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotNil(t, store.OutboxEvents()[0].PublishedAt)
}

func TestRelay_RunStopsOnCancel(t *testing.T) {
	store := memstore.New()
	insertEvents(t, store, domain.EventAppointmentNoShow)

	pub := &fakePublisher{}
	relay := NewRelay(store.Outbox, pub, store.TxManager, &fakeMetrics{}, RealTimeProvider{}, logger.NewNop(),
		Config{PollInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		relay.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return store.OutboxEvents()[0].PublishedAt != nil
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
