package usecase

import (
	"taskturf/internal/data/repository"
	"taskturf/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Matching     MatchingService
	Booking      BookingService
	Notification NotificationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Matching:     NewMatchingService(repo, config, log),
		Booking:      NewBookingService(repo, config, log),
		Notification: NewNotificationService(repo, log),
	}
}
