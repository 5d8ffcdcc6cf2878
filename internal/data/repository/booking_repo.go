package repository

import (
	"context"
	"fmt"

	"taskturf/internal/data/entity"
	"taskturf/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingRepository is the single writable boundary of the core. All
// mutation goes through Create and Transition; status is never patched
// directly. Both write the advisory notification and the outbox event in the
// same transaction as the booking row, so the status change stays
// authoritative while delivery remains at-least-once.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking, notification *entity.Notification, event *entity.OutboxEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	// Transition flips status only when the stored status still equals from.
	// Returns false without mutating anything when another writer got there
	// first.
	Transition(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, finalAmount *float64, notification *entity.Notification, event *entity.OutboxEvent) (bool, error)

	FindByWorkerID(ctx context.Context, workerID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountByWorkerID(ctx context.Context, workerID uuid.UUID, status *entity.BookingStatus) (int64, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID, status *entity.BookingStatus) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference, service_category, customer_id, worker_id, status,
	scheduled_date, scheduled_time, address, description, budget,
	estimated_hours, estimated_cost, final_amount, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking, notification *entity.Notification, event *entity.OutboxEvent) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err = tx.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.ServiceCategory,
		booking.CustomerID,
		booking.WorkerID,
		booking.Status,
		booking.ScheduledDate,
		booking.ScheduledTime,
		booking.Address,
		booking.Description,
		booking.Budget,
		booking.EstimatedHours,
		booking.EstimatedCost,
		booking.FinalAmount,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("customer_id", booking.CustomerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	if notification != nil {
		if err := insertNotification(ctx, tx, notification); err != nil {
			return fmt.Errorf("create booking %s notification: %w", booking.Reference, err)
		}
	}
	if event != nil {
		if err := insertOutboxEvent(ctx, tx, event); err != nil {
			return fmt.Errorf("create booking %s outbox event: %w", booking.Reference, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) Transition(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, finalAmount *float64, notification *entity.Notification, event *entity.OutboxEvent) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transition tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Compare-and-swap on status: zero rows means a concurrent writer moved
	// the booking first (or it no longer exists).
	query := `
		UPDATE bookings
		SET status = $3, final_amount = COALESCE($4, final_amount), updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	tag, err := tx.Exec(ctx, query, id, from, to, finalAmount)
	if err != nil {
		r.log.Error("Failed to transition booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("transition booking %s to %s: %w", id.String(), string(to), err)
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if notification != nil {
		if err := insertNotification(ctx, tx, notification); err != nil {
			return false, fmt.Errorf("transition booking %s notification: %w", id.String(), err)
		}
	}
	if event != nil {
		if err := insertOutboxEvent(ctx, tx, event); err != nil {
			return false, fmt.Errorf("transition booking %s outbox event: %w", id.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transition booking %s: %w", id.String(), err)
	}

	return true, nil
}

func (r *bookingRepository) FindByWorkerID(ctx context.Context, workerID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE worker_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY scheduled_date DESC, created_at DESC
		LIMIT $3 OFFSET $4
	`

	return r.findBookings(ctx, query, "worker", workerID, status, limit, offset)
}

func (r *bookingRepository) CountByWorkerID(ctx context.Context, workerID uuid.UUID, status *entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE worker_id = $1 AND ($2::text IS NULL OR status = $2)`
	return r.countBookings(ctx, query, "worker", workerID, status)
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY scheduled_date DESC, created_at DESC
		LIMIT $3 OFFSET $4
	`

	return r.findBookings(ctx, query, "customer", customerID, status, limit, offset)
}

func (r *bookingRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID, status *entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE customer_id = $1 AND ($2::text IS NULL OR status = $2)`
	return r.countBookings(ctx, query, "customer", customerID, status)
}

func (r *bookingRepository) findBookings(ctx context.Context, query, by string, id uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, id, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.String(by+"_id", id.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by %s ID %s: %w", by, id.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) countBookings(ctx context.Context, query, by string, id uuid.UUID, status *entity.BookingStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, query, id, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings",
			zap.Error(err),
			zap.String(by+"_id", id.String()),
		)
		return 0, fmt.Errorf("count bookings by %s ID %s: %w", by, id.String(), err)
	}

	return count, nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.ServiceCategory,
		&booking.CustomerID,
		&booking.WorkerID,
		&booking.Status,
		&booking.ScheduledDate,
		&booking.ScheduledTime,
		&booking.Address,
		&booking.Description,
		&booking.Budget,
		&booking.EstimatedHours,
		&booking.EstimatedCost,
		&booking.FinalAmount,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
