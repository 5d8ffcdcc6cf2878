package usecase

import (
	"context"
	"errors"
	"testing"

	"taskturf/internal/data/entity"
	"taskturf/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMatchingService(workers *fakeWorkerRepo) MatchingService {
	repo := &repository.Repository{Worker: workers}
	return NewMatchingService(repo, testConfig(), zap.NewNop())
}

func testWorker(name string, rating float64, completed int, rate float64, skills ...entity.ServiceCategory) *entity.Worker {
	return &entity.Worker{
		Base:          entity.Base{ID: uuid.New()},
		Name:          name,
		City:          "Austin",
		Skills:        skills,
		HourlyRate:    rate,
		Rating:        rating,
		IsAvailable:   true,
		CompletedJobs: completed,
	}
}

func TestFindCandidatesRanking(t *testing.T) {
	workers := &fakeWorkerRepo{workers: []*entity.Worker{
		testWorker("low-rating", 3.9, 120, 40, entity.CategoryPlumbing),
		testWorker("top", 4.9, 10, 55, entity.CategoryPlumbing),
		testWorker("tie-fewer-jobs", 4.7, 30, 45, entity.CategoryPlumbing),
		testWorker("tie-more-jobs", 4.7, 80, 50, entity.CategoryPlumbing),
	}}
	svc := newMatchingService(workers)

	results, err := svc.FindCandidates(context.Background(), "plumbing", "Austin", "2026-09-01", "09:00", nil)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "top", results[0].Name)
	assert.Equal(t, "tie-more-jobs", results[1].Name)
	assert.Equal(t, "tie-fewer-jobs", results[2].Name)
	assert.Equal(t, "low-rating", results[3].Name)
}

func TestFindCandidatesTieKeepsDirectoryOrder(t *testing.T) {
	first := testWorker("first", 4.5, 20, 40, entity.CategoryCleaning)
	second := testWorker("second", 4.5, 20, 42, entity.CategoryCleaning)
	svc := newMatchingService(&fakeWorkerRepo{workers: []*entity.Worker{first, second}})

	results, err := svc.FindCandidates(context.Background(), "cleaning", "", "", "", nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, "second", results[1].Name)
}

func TestFindCandidatesEligibility(t *testing.T) {
	unavailable := testWorker("unavailable", 5.0, 99, 30, entity.CategoryElectrical)
	unavailable.IsAvailable = false
	wrongSkill := testWorker("wrong-skill", 5.0, 99, 30, entity.CategoryPainting)
	eligible := testWorker("eligible", 4.2, 12, 30, entity.CategoryElectrical)

	svc := newMatchingService(&fakeWorkerRepo{workers: []*entity.Worker{unavailable, wrongSkill, eligible}})

	results, err := svc.FindCandidates(context.Background(), "electrical", "", "", "", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "eligible", results[0].Name)
}

func TestFindCandidatesMaxPrice(t *testing.T) {
	cheap := testWorker("cheap", 4.0, 5, 25, entity.CategoryGardening)
	pricey := testWorker("pricey", 5.0, 50, 80, entity.CategoryGardening)
	svc := newMatchingService(&fakeWorkerRepo{workers: []*entity.Worker{cheap, pricey}})

	maxPrice := 30.0
	results, err := svc.FindCandidates(context.Background(), "gardening", "", "", "", &maxPrice)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "cheap", results[0].Name)
}

func TestFindCandidatesEmptyResult(t *testing.T) {
	svc := newMatchingService(&fakeWorkerRepo{})

	results, err := svc.FindCandidates(context.Background(), "moving", "Nowhere", "", "", nil)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFindCandidatesCategoryCaseInsensitive(t *testing.T) {
	w := testWorker("mover", 4.8, 40, 35, entity.CategoryMoving)
	svc := newMatchingService(&fakeWorkerRepo{workers: []*entity.Worker{w}})

	results, err := svc.FindCandidates(context.Background(), "  MoVing ", "", "", "", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestFindCandidatesUnknownCategory(t *testing.T) {
	svc := newMatchingService(&fakeWorkerRepo{})

	_, err := svc.FindCandidates(context.Background(), "exorcism", "", "", "", nil)
	require.Error(t, err)
	assertCode(t, err, entity.CodeValidation)
}

func TestFindCandidatesDirectoryUnavailable(t *testing.T) {
	svc := newMatchingService(&fakeWorkerRepo{err: errors.New("connection refused")})

	_, err := svc.FindCandidates(context.Background(), "plumbing", "", "", "", nil)
	require.Error(t, err)
	assertCode(t, err, entity.CodeDirectoryUnavailable)
}
