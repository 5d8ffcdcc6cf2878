package adaptor

import (
	"errors"
	"net/http"

	"taskturf/internal/data/entity"
	"taskturf/internal/usecase"
	"taskturf/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Worker       *WorkerHandler
	Booking      *BookingHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Worker:       NewWorkerHandler(service.Matching, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}

// handleServiceError maps the error taxonomy onto HTTP statuses. Validation
// and transition failures are deterministic (no retry); unavailability is
// retryable with backoff.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var svcErr *entity.Error
	if !errors.As(err, &svcErr) {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch svcErr.Code {
	case entity.CodeValidation:
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, svcErr.Message, nil)

	case entity.CodeNotFound:
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, svcErr.Message)

	case entity.CodeForbidden:
		log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, svcErr.Message)

	case entity.CodeInvalidTransition, entity.CodeStaleState:
		log.Warn(operation+" failed - conflicting state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, svcErr.Message, string(svcErr.Code))

	case entity.CodeDirectoryUnavailable, entity.CodeRepositoryUnavailable:
		log.Error(operation+" failed - downstream unavailable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnavailable(w, svcErr.Message, string(svcErr.Code))

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
