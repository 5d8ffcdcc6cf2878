package wire

import (
	"taskturf/internal/adaptor"
	"taskturf/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNotification(r chi.Router, notificationHandler *adaptor.NotificationHandler, log *zap.Logger) {
	r.Route("/api/notifications", func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// GET /api/notifications/{recipientId}?type=&unreadOnly= - Feed
		r.Get("/{recipientId}", notificationHandler.ListNotifications)

		// PATCH /api/notifications/{id}/read - Mark one as read
		r.Patch("/{id}/read", notificationHandler.MarkRead)
	})
}
