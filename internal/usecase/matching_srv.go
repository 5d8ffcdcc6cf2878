package usecase

import (
	"context"
	"sort"

	"taskturf/internal/data/entity"
	"taskturf/internal/data/repository"
	"taskturf/internal/dto/response"
	"taskturf/pkg/utils"

	"go.uber.org/zap"
)

// MatchingService finds and ranks candidate workers for a service request.
type MatchingService interface {
	// FindCandidates returns eligible workers ranked by rating, then by
	// completed jobs. date and timeOfDay are advisory request details; they
	// do not exclude candidates (no calendar-conflict check exists). A zero
	// result is an empty list, not an error.
	FindCandidates(ctx context.Context, category, location, date, timeOfDay string, maxPrice *float64) ([]response.WorkerResponse, error)
}

type matchingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewMatchingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) MatchingService {
	return &matchingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "matching")),
	}
}

func (s *matchingService) FindCandidates(ctx context.Context, category, location, date, timeOfDay string, maxPrice *float64) ([]response.WorkerResponse, error) {
	canonical, err := entity.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	dirCtx, cancel := context.WithTimeout(ctx, s.config.Timeout.Directory)
	defer cancel()

	workers, err := s.repo.Worker.FindAvailableByCategory(dirCtx, canonical, location, maxPrice)
	if err != nil {
		s.log.Error("Worker directory query failed",
			zap.Error(err),
			zap.String("category", string(canonical)),
		)
		return nil, entity.NewDirectoryUnavailableError(err)
	}

	// Re-check eligibility here so the invariant holds regardless of what
	// the directory projection returned.
	candidates := make([]*entity.Worker, 0, len(workers))
	for _, w := range workers {
		if !w.IsAvailable || !w.HasSkill(canonical) {
			continue
		}
		if maxPrice != nil && w.HourlyRate > *maxPrice {
			continue
		}
		candidates = append(candidates, w)
	}

	// Stable sort keeps directory order for full ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Rating != candidates[j].Rating {
			return candidates[i].Rating > candidates[j].Rating
		}
		return candidates[i].CompletedJobs > candidates[j].CompletedJobs
	})

	results := make([]response.WorkerResponse, len(candidates))
	for i, w := range candidates {
		results[i] = response.WorkerToResponse(w)
	}

	s.log.Info("Candidates matched",
		zap.String("category", string(canonical)),
		zap.String("location", location),
		zap.String("date", date),
		zap.String("time", timeOfDay),
		zap.Int("count", len(results)),
	)

	return results, nil
}
