package outbox

import (
	"context"
	"encoding/json"
	"time"

	"taskturf/internal/data/repository"

	"go.uber.org/zap"
)

// Publisher is the delivery channel behind the relay. pkg/mq satisfies it;
// tests swap in fakes.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Relay drains unpublished outbox events to the message broker. Events stay
// unpublished on failure and are retried on the next tick, giving
// at-least-once delivery without ever touching booking state.
type Relay struct {
	repo      repository.OutboxRepository
	publisher Publisher
	log       *zap.Logger
	interval  time.Duration
	batchSize int
}

func NewRelay(repo repository.OutboxRepository, publisher Publisher, interval time.Duration, batchSize int, log *zap.Logger) *Relay {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Relay{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("worker", "outbox-relay")),
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run blocks until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info("Outbox relay started",
		zap.Duration("interval", r.interval),
		zap.Int("batch_size", r.batchSize),
	)

	for {
		select {
		case <-ctx.Done():
			r.log.Info("Outbox relay stopped")
			return
		case <-ticker.C:
			r.Drain(ctx)
		}
	}
}

// Drain publishes one batch of pending events.
func (r *Relay) Drain(ctx context.Context) {
	events, err := r.repo.FindUnpublished(ctx, r.batchSize)
	if err != nil {
		r.log.Error("Failed to load outbox batch", zap.Error(err))
		return
	}

	for _, ev := range events {
		if err := r.publisher.PublishJSON(ctx, ev.RoutingKey, json.RawMessage(ev.Payload)); err != nil {
			r.log.Warn("Outbox publish failed, will retry",
				zap.Error(err),
				zap.String("event_id", ev.ID.String()),
				zap.String("routing_key", ev.RoutingKey),
				zap.Int("attempts", ev.Attempts),
			)
			if err := r.repo.RecordAttempt(ctx, ev.ID); err != nil {
				r.log.Error("Failed to record outbox attempt", zap.Error(err))
			}
			continue
		}

		if err := r.repo.MarkPublished(ctx, ev.ID); err != nil {
			// Event will be republished next tick; consumers must tolerate
			// duplicates.
			r.log.Error("Failed to mark outbox event published",
				zap.Error(err),
				zap.String("event_id", ev.ID.String()),
			)
		}
	}
}
