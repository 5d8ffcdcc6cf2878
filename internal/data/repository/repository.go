package repository

import (
	"context"

	"taskturf/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Repository struct {
	Worker       WorkerRepository
	Booking      BookingRepository
	Notification NotificationRepository
	Outbox       OutboxRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Worker:       NewWorkerRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		Outbox:       NewOutboxRepository(db, log),
	}
}

// execer is satisfied by both the pool wrapper and pgx.Tx, so the shared
// insert helpers can run inside a booking transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
