package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Config параметры relay
type Config struct {
	PollInterval time.Duration
	BatchSize    int
}

// Relay переносит события из outbox_events в брокер.
// Выборка, отправка и отметка идут в одной транзакции: строки заблокированы
// (FOR UPDATE SKIP LOCKED), поэтому несколько экземпляров не отправят одно событие параллельно.
// Доставка at-least-once: если отметка не закоммитилась, событие уйдёт повторно.
type Relay struct {
	outboxRepo OutboxRepository
	publisher  Publisher
	txManager  TransactionManager
	metrics    Metrics
	clock      TimeProvider
	logger     Logger
	cfg        Config
}

// NewRelay создает relay; нулевые значения Config заменяются значениями по умолчанию
func NewRelay(
	outboxRepo OutboxRepository,
	publisher Publisher,
	txManager TransactionManager,
	metrics Metrics,
	clock TimeProvider,
	logger Logger,
	cfg Config,
) *Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Relay{
		outboxRepo: outboxRepo,
		publisher:  publisher,
		txManager:  txManager,
		metrics:    metrics,
		clock:      clock,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run опрашивает outbox до отмены ctx
func (r *Relay) Run(ctx context.Context) {
	r.logger.Info("Outbox relay started: interval=%s, batch=%d", r.cfg.PollInterval, r.cfg.BatchSize)

	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Outbox relay stopped")
			return
		case <-ticker.C:
			// Полный батч - сразу следующий, не дожидаясь тика
			for {
				n, err := r.PublishBatch(ctx)
				if err != nil {
					r.logger.Error("Outbox relay: %v", err)
					break
				}
				if n < r.cfg.BatchSize || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

// PublishBatch отправляет один батч и возвращает количество отправленных событий
func (r *Relay) PublishBatch(ctx context.Context) (int, error) {
	var published []*domain.OutboxEvent

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		events, err := r.outboxRepo.FetchUnpublished(txCtx, r.cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("%w: failed to fetch outbox events: %v", domain.ErrInternal, err)
		}
		if len(events) == 0 {
			return nil
		}

		if err := r.publisher.Publish(txCtx, events); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInternal, err)
		}

		ids := make([]int64, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}
		if err := r.outboxRepo.MarkPublished(txCtx, ids, r.clock.Now()); err != nil {
			return fmt.Errorf("%w: failed to mark outbox events: %v", domain.ErrInternal, err)
		}

		published = events
		return nil
	})
	if err != nil {
		return 0, err
	}

	counts := make(map[string]int)
	for _, e := range published {
		counts[e.EventType]++
	}
	for eventType, n := range counts {
		r.metrics.AddOutboxPublished(eventType, n)
	}

	return len(published), nil
}
