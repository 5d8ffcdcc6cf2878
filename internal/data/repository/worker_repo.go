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

// WorkerRepository is the read-only directory projection. Worker records are
// owned by the external account service; this side only queries them.
type WorkerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Worker, error)
	FindAvailableByCategory(ctx context.Context, category entity.ServiceCategory, city string, maxPrice *float64) ([]*entity.Worker, error)
}

type workerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWorkerRepository(db database.PgxIface, log *zap.Logger) WorkerRepository {
	return &workerRepository{
		db:  db,
		log: log.With(zap.String("repository", "worker")),
	}
}

func (r *workerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Worker, error) {
	query := `
		SELECT id, name, city, skills, hourly_rate, rating, is_available, is_verified, completed_jobs, created_at, updated_at
		FROM workers
		WHERE id = $1
	`

	worker, err := scanWorker(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find worker by ID",
			zap.Error(err),
			zap.String("worker_id", id.String()),
		)
		return nil, fmt.Errorf("find worker by ID %s: %w", id.String(), err)
	}

	return worker, nil
}

func (r *workerRepository) FindAvailableByCategory(ctx context.Context, category entity.ServiceCategory, city string, maxPrice *float64) ([]*entity.Worker, error) {
	// Insertion order of the projection breaks remaining ties, keeping the
	// ranking deterministic.
	query := `
		SELECT id, name, city, skills, hourly_rate, rating, is_available, is_verified, completed_jobs, created_at, updated_at
		FROM workers
		WHERE is_available = TRUE
		  AND $1 = ANY(skills)
		  AND ($2 = '' OR LOWER(city) = LOWER($2))
		  AND ($3::numeric IS NULL OR hourly_rate <= $3)
		ORDER BY rating DESC, completed_jobs DESC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query, string(category), city, maxPrice)
	if err != nil {
		r.log.Error("Failed to query workers by category",
			zap.Error(err),
			zap.String("category", string(category)),
			zap.String("city", city),
		)
		return nil, fmt.Errorf("find workers by category %s: %w", string(category), err)
	}
	defer rows.Close()

	var workers []*entity.Worker
	for rows.Next() {
		worker, err := scanWorker(rows)
		if err != nil {
			r.log.Error("Failed to scan worker row", zap.Error(err))
			return nil, fmt.Errorf("scan worker row: %w", err)
		}
		workers = append(workers, worker)
	}

	return workers, nil
}

func scanWorker(row pgx.Row) (*entity.Worker, error) {
	var worker entity.Worker
	var skills []string
	var rating *float64

	err := row.Scan(
		&worker.ID,
		&worker.Name,
		&worker.City,
		&skills,
		&worker.HourlyRate,
		&rating,
		&worker.IsAvailable,
		&worker.IsVerified,
		&worker.CompletedJobs,
		&worker.CreatedAt,
		&worker.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	worker.Skills = make([]entity.ServiceCategory, len(skills))
	for i, s := range skills {
		worker.Skills[i] = entity.ServiceCategory(s)
	}

	worker.Rating = entity.DefaultRating
	if rating != nil {
		worker.Rating = *rating
	}

	return &worker, nil
}
