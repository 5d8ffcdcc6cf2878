package adaptor

import (
	"net/http"

	"taskturf/internal/usecase"
	"taskturf/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	service usecase.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service usecase.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log.With(zap.String("handler", "notification")),
	}
}

// ListNotifications handles GET /api/notifications/{recipientId} (protected)
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	recipientID := chi.URLParam(r, "recipientId")
	if recipientID == "" {
		utils.ResponseBadRequest(w, "Recipient ID is required", nil)
		return
	}

	// Actors only see their own feed.
	if recipientID != actorID.String() {
		utils.ResponseForbidden(w, "Cannot read another recipient's notifications")
		return
	}

	query := r.URL.Query()
	notifType := query.Get("type")
	unreadOnly := utils.ParseBool(query.Get("unreadOnly"), false)

	notifications, err := h.service.ListForRecipient(r.Context(), recipientID, notifType, unreadOnly)
	if err != nil {
		handleServiceError(w, h.log, err, "list notifications")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]any{"notifications": notifications})
}

// MarkRead handles PATCH /api/notifications/{id}/read (protected)
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	notificationID := chi.URLParam(r, "id")
	if notificationID == "" {
		utils.ResponseBadRequest(w, "Notification ID is required", nil)
		return
	}

	if err := h.service.MarkRead(r.Context(), notificationID, actorID); err != nil {
		handleServiceError(w, h.log, err, "mark notification read")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
