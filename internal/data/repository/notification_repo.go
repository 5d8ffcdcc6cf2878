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

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, notifType *entity.NotificationType, unreadOnly bool) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

// insertNotification is shared with the booking repository so notifications
// ride in the same transaction as the mutation they announce.
func insertNotification(ctx context.Context, q execer, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, type, payload, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		n.ID,
		n.RecipientID,
		n.Type,
		n.Payload,
		n.IsRead,
		n.CreatedAt,
	)
	return err
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if err := insertNotification(ctx, r.db, notification); err != nil {
		r.log.Error("Failed to create notification",
			zap.Error(err),
			zap.String("recipient_id", notification.RecipientID.String()),
			zap.String("type", string(notification.Type)),
		)
		return fmt.Errorf("create notification for %s: %w", notification.RecipientID.String(), err)
	}
	return nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	query := `
		SELECT id, recipient_id, type, payload, is_read, created_at
		FROM notifications
		WHERE id = $1
	`

	var n entity.Notification
	err := r.db.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.RecipientID,
		&n.Type,
		&n.Payload,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find notification by ID",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return nil, fmt.Errorf("find notification by ID %s: %w", id.String(), err)
	}

	return &n, nil
}

func (r *notificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, notifType *entity.NotificationType, unreadOnly bool) ([]*entity.Notification, error) {
	query := `
		SELECT id, recipient_id, type, payload, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1
		  AND ($2::text IS NULL OR type = $2)
		  AND ($3 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, recipientID, notifType, unreadOnly)
	if err != nil {
		r.log.Error("Failed to find notifications by recipient",
			zap.Error(err),
			zap.String("recipient_id", recipientID.String()),
		)
		return nil, fmt.Errorf("find notifications for %s: %w", recipientID.String(), err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.Type,
			&n.Payload,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan notification row", zap.Error(err))
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark notification read",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return fmt.Errorf("mark notification %s read: %w", id.String(), err)
	}

	// Zero rows means the notification vanished between the caller's read
	// and this update.
	if tag.RowsAffected() == 0 {
		return entity.NewNotFoundError("notification " + id.String() + " not found")
	}

	return nil
}
