package wire

import (
	"taskturf/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWorker(r chi.Router, workerHandler *adaptor.WorkerHandler) {
	// GET /api/services/{category}/workers - List candidate workers (public)
	r.Get("/api/services/{category}/workers", workerHandler.FindCandidates)
}
