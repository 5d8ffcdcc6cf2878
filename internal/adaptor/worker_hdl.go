package adaptor

import (
	"net/http"

	"taskturf/internal/usecase"
	"taskturf/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WorkerHandler struct {
	service usecase.MatchingService
	log     *zap.Logger
}

func NewWorkerHandler(service usecase.MatchingService, log *zap.Logger) *WorkerHandler {
	return &WorkerHandler{
		service: service,
		log:     log.With(zap.String("handler", "worker")),
	}
}

// FindCandidates handles GET /api/services/{category}/workers (public)
// A request matching zero workers returns 200 with an empty list.
func (h *WorkerHandler) FindCandidates(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		utils.ResponseBadRequest(w, "Service category is required", nil)
		return
	}

	query := r.URL.Query()
	location := query.Get("location")
	date := query.Get("date")
	timeOfDay := query.Get("time")
	maxPrice := utils.ParseFloat(query.Get("maxPrice"))

	workers, err := h.service.FindCandidates(r.Context(), category, location, date, timeOfDay, maxPrice)
	if err != nil {
		handleServiceError(w, h.log, err, "find candidates")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]any{"workers": workers})
}
