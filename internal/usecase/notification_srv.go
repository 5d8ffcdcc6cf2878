package usecase

import (
	"context"

	"taskturf/internal/data/entity"
	"taskturf/internal/data/repository"
	"taskturf/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService serves the advisory notification feed. Failures here
// are never fatal to booking correctness.
type NotificationService interface {
	ListForRecipient(ctx context.Context, recipientID, notifType string, unreadOnly bool) ([]response.NotificationResponse, error)
	MarkRead(ctx context.Context, notificationID string, actorID uuid.UUID) error
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) ListForRecipient(ctx context.Context, recipientID, notifType string, unreadOnly bool) ([]response.NotificationResponse, error) {
	id, err := uuid.Parse(recipientID)
	if err != nil {
		return nil, entity.NewValidationError("invalid recipient ID format: " + recipientID)
	}

	var typeFilter *entity.NotificationType
	if notifType != "" {
		parsed, err := entity.ParseNotificationType(notifType)
		if err != nil {
			return nil, err
		}
		typeFilter = &parsed
	}

	notifications, err := s.repo.Notification.FindByRecipient(ctx, id, typeFilter, unreadOnly)
	if err != nil {
		s.log.Error("Failed to list notifications",
			zap.Error(err),
			zap.String("recipient_id", recipientID),
		)
		return nil, entity.NewRepositoryUnavailableError(err)
	}

	results := make([]response.NotificationResponse, len(notifications))
	for i, n := range notifications {
		results[i] = response.NotificationToResponse(n)
	}

	return results, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID string, actorID uuid.UUID) error {
	id, err := uuid.Parse(notificationID)
	if err != nil {
		return entity.NewValidationError("invalid notification ID format: " + notificationID)
	}

	notification, err := s.repo.Notification.FindByID(ctx, id)
	if err != nil {
		return entity.NewRepositoryUnavailableError(err)
	}
	if notification == nil {
		return entity.NewNotFoundError("notification " + notificationID + " not found")
	}

	if notification.RecipientID != actorID {
		return entity.NewForbiddenError("notification belongs to another recipient")
	}

	if err := s.repo.Notification.MarkRead(ctx, id); err != nil {
		// The repository reports not_found itself when the row vanished
		// between the read above and the update.
		if _, ok := entity.CodeOf(err); ok {
			return err
		}
		s.log.Error("Failed to mark notification read",
			zap.Error(err),
			zap.String("notification_id", notificationID),
		)
		return entity.NewRepositoryUnavailableError(err)
	}

	return nil
}
