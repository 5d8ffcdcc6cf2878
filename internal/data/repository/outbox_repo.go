package repository

import (
	"context"
	"fmt"

	"taskturf/internal/data/entity"
	"taskturf/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OutboxRepository interface {
	FindUnpublished(ctx context.Context, limit int) ([]*entity.OutboxEvent, error)
	MarkPublished(ctx context.Context, id uuid.UUID) error
	RecordAttempt(ctx context.Context, id uuid.UUID) error
}

type outboxRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOutboxRepository(db database.PgxIface, log *zap.Logger) OutboxRepository {
	return &outboxRepository{
		db:  db,
		log: log.With(zap.String("repository", "outbox")),
	}
}

// insertOutboxEvent is shared with the booking repository; events are only
// ever written inside a booking transaction.
func insertOutboxEvent(ctx context.Context, q execer, ev *entity.OutboxEvent) error {
	query := `
		INSERT INTO outbox_events (id, booking_id, routing_key, payload, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		ev.ID,
		ev.BookingID,
		ev.RoutingKey,
		ev.Payload,
		ev.Attempts,
		ev.CreatedAt,
	)
	return err
}

func (r *outboxRepository) FindUnpublished(ctx context.Context, limit int) ([]*entity.OutboxEvent, error) {
	query := `
		SELECT id, booking_id, routing_key, payload, attempts, published_at, created_at
		FROM outbox_events
		WHERE published_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to load unpublished outbox events", zap.Error(err))
		return nil, fmt.Errorf("find unpublished outbox events: %w", err)
	}
	defer rows.Close()

	var events []*entity.OutboxEvent
	for rows.Next() {
		var ev entity.OutboxEvent
		err := rows.Scan(
			&ev.ID,
			&ev.BookingID,
			&ev.RoutingKey,
			&ev.Payload,
			&ev.Attempts,
			&ev.PublishedAt,
			&ev.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan outbox row", zap.Error(err))
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		events = append(events, &ev)
	}

	return events, nil
}

func (r *outboxRepository) MarkPublished(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE outbox_events SET published_at = NOW(), attempts = attempts + 1 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to mark outbox event published",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("mark outbox event %s published: %w", id.String(), err)
	}

	return nil
}

func (r *outboxRepository) RecordAttempt(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE outbox_events SET attempts = attempts + 1 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to record outbox attempt",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("record outbox attempt %s: %w", id.String(), err)
	}

	return nil
}
