package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taskturf/internal/data/entity"
	"taskturf/internal/data/repository"
	"taskturf/internal/dto/request"
	"taskturf/internal/dto/response"
	"taskturf/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService owns the booking lifecycle. Every mutation goes through
// CreateBooking or one of the transition calls; there is no direct field
// patching.
type BookingService interface {
	CreateBooking(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)

	AcceptBooking(ctx context.Context, bookingID string, actorID uuid.UUID, role string) (*response.BookingResponse, error)
	RejectBooking(ctx context.Context, bookingID string, actorID uuid.UUID, role string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string, actorID uuid.UUID, role string) (*response.BookingResponse, error)
	CompleteBooking(ctx context.Context, bookingID string, actorID uuid.UUID, role string, req *request.CompleteBookingRequest) (*response.BookingResponse, error)

	ListBookings(ctx context.Context, workerID, customerID, status string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, entity.NewValidationError("validation failed: " + utils.FormatValidationErrors(errs))
	}

	category, err := entity.ParseCategory(req.ServiceCategory)
	if err != nil {
		return nil, err
	}

	// customer_id in the body is optional; when present it must match the
	// authenticated actor.
	if req.CustomerID != "" && req.CustomerID != customerID.String() {
		return nil, entity.NewForbiddenError("cannot create a booking for another customer")
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, entity.NewValidationError("invalid scheduled date: " + req.ScheduledDate)
	}
	scheduledTime, err := time.Parse("15:04", req.ScheduledTime)
	if err != nil {
		return nil, entity.NewValidationError("invalid scheduled time: " + req.ScheduledTime)
	}

	hours := req.EstimatedHours
	if hours < 1 {
		hours = 1
	}

	var workerID *uuid.UUID
	var estimatedCost float64
	if req.WorkerID != "" {
		id, err := uuid.Parse(req.WorkerID)
		if err != nil {
			return nil, entity.NewValidationError("invalid worker ID format: " + req.WorkerID)
		}

		worker, err := s.findWorker(ctx, id)
		if err != nil {
			return nil, err
		}
		if !worker.IsAvailable {
			return nil, entity.NewValidationError("worker " + id.String() + " is not available")
		}
		if !worker.HasSkill(category) {
			return nil, entity.NewValidationError("worker " + id.String() + " does not offer " + string(category))
		}

		workerID = &id
		estimatedCost = worker.HourlyRate * float64(hours)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:       utils.GenerateBookingReference(),
		ServiceCategory: category,
		CustomerID:      customerID,
		WorkerID:        workerID,
		Status:          entity.BookingStatusPending,
		ScheduledDate:   scheduledDate,
		ScheduledTime:   scheduledTime,
		Address:         req.Address,
		Description:     req.Description,
		Budget:          req.Budget,
		EstimatedHours:  hours,
		EstimatedCost:   estimatedCost,
	}

	payload, err := bookingSnapshot(booking)
	if err != nil {
		return nil, err
	}

	// The assigned worker gets a booking_request notification; deferred
	// matching leaves no recipient yet.
	var notification *entity.Notification
	if workerID != nil {
		notification = newNotification(*workerID, entity.NotificationBookingRequest, payload, now)
	}
	event := newOutboxEvent(booking.ID, entity.RKBookingRequested, payload, now)

	repoCtx, cancel := context.WithTimeout(ctx, s.config.Timeout.Repository)
	defer cancel()

	if err := s.repo.Booking.Create(repoCtx, booking, notification, event); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("category", string(category)),
		)
		return nil, entity.NewRepositoryUnavailableError(err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("customer_id", customerID.String()),
		zap.String("category", string(category)),
		zap.Float64("estimated_cost", estimatedCost),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) AcceptBooking(ctx context.Context, bookingID string, actorID uuid.UUID, role string) (*response.BookingResponse, error) {
	return s.transition(ctx, bookingID, entity.BookingStatusAccepted, actorID, role, nil)
}

func (s *bookingService) RejectBooking(ctx context.Context, bookingID string, actorID uuid.UUID, role string) (*response.BookingResponse, error) {
	return s.transition(ctx, bookingID, entity.BookingStatusRejected, actorID, role, nil)
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, actorID uuid.UUID, role string) (*response.BookingResponse, error) {
	return s.transition(ctx, bookingID, entity.BookingStatusCancelled, actorID, role, nil)
}

func (s *bookingService) CompleteBooking(ctx context.Context, bookingID string, actorID uuid.UUID, role string, req *request.CompleteBookingRequest) (*response.BookingResponse, error) {
	var finalAmount *float64
	if req != nil {
		if errs := utils.ValidateStruct(req); len(errs) > 0 {
			return nil, entity.NewValidationError("validation failed: " + utils.FormatValidationErrors(errs))
		}
		finalAmount = req.FinalAmount
	}

	return s.transition(ctx, bookingID, entity.BookingStatusCompleted, actorID, role, finalAmount)
}

func (s *bookingService) ListBookings(ctx context.Context, workerID, customerID, status string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	var statusFilter *entity.BookingStatus
	if status != "" {
		parsed, err := entity.ParseBookingStatus(status)
		if err != nil {
			return nil, err
		}
		statusFilter = &parsed
	}

	repoCtx, cancel := context.WithTimeout(ctx, s.config.Timeout.Repository)
	defer cancel()

	var bookings []*entity.Booking
	var total int64
	var err error

	switch {
	case workerID != "":
		id, parseErr := uuid.Parse(workerID)
		if parseErr != nil {
			return nil, entity.NewValidationError("invalid worker ID format: " + workerID)
		}
		bookings, err = s.repo.Booking.FindByWorkerID(repoCtx, id, statusFilter, page.Limit(), page.Offset())
		if err == nil {
			total, err = s.repo.Booking.CountByWorkerID(repoCtx, id, statusFilter)
		}
	case customerID != "":
		id, parseErr := uuid.Parse(customerID)
		if parseErr != nil {
			return nil, entity.NewValidationError("invalid customer ID format: " + customerID)
		}
		bookings, err = s.repo.Booking.FindByCustomerID(repoCtx, id, statusFilter, page.Limit(), page.Offset())
		if err == nil {
			total, err = s.repo.Booking.CountByCustomerID(repoCtx, id, statusFilter)
		}
	default:
		return nil, entity.NewValidationError("workerId or customerId is required")
	}

	if err != nil {
		s.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("worker_id", workerID),
			zap.String("customer_id", customerID),
		)
		return nil, entity.NewRepositoryUnavailableError(err)
	}

	results := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		results[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(results, page.Page, page.PerPage, total), nil
}

// transition is the single authoritative write path for status changes. The
// repository's compare-and-swap decides the winner under concurrency; the
// loser surfaces stale_state and must re-read.
func (s *bookingService) transition(ctx context.Context, bookingID string, to entity.BookingStatus, actorID uuid.UUID, role string, finalAmount *float64) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := booking.CheckTransition(to, actorID, role); err != nil {
		s.log.Warn("Transition refused",
			zap.String("booking_id", booking.ID.String()),
			zap.String("from", string(booking.Status)),
			zap.String("to", string(to)),
			zap.String("actor_id", actorID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	from := booking.Status
	now := time.Now()

	// Snapshot reflects the post-transition state for notification payloads.
	booking.Status = to
	booking.UpdatedAt = now
	if finalAmount != nil {
		booking.FinalAmount = finalAmount
	}

	payload, err := bookingSnapshot(booking)
	if err != nil {
		return nil, err
	}

	notification := newNotification(counterparty(booking, to), entity.NotificationStatusUpdate, payload, now)
	event := newOutboxEvent(booking.ID, entity.RoutingKeyFor(to), payload, now)

	repoCtx, cancel := context.WithTimeout(ctx, s.config.Timeout.Repository)
	defer cancel()

	updated, err := s.repo.Booking.Transition(repoCtx, booking.ID, from, to, finalAmount, notification, event)
	if err != nil {
		s.log.Error("Failed to transition booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return nil, entity.NewRepositoryUnavailableError(err)
	}
	if !updated {
		return nil, entity.NewStaleStateError(
			fmt.Sprintf("booking %s was modified concurrently, retry with a fresh read", booking.ID))
	}

	s.log.Info("Booking transitioned",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actor_id", actorID.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, entity.NewValidationError("invalid booking ID format: " + bookingID)
	}

	repoCtx, cancel := context.WithTimeout(ctx, s.config.Timeout.Repository)
	defer cancel()

	booking, err := s.repo.Booking.FindByID(repoCtx, id)
	if err != nil {
		return nil, entity.NewRepositoryUnavailableError(err)
	}
	if booking == nil {
		return nil, entity.NewNotFoundError("booking " + bookingID + " not found")
	}

	return booking, nil
}

func (s *bookingService) findWorker(ctx context.Context, id uuid.UUID) (*entity.Worker, error) {
	dirCtx, cancel := context.WithTimeout(ctx, s.config.Timeout.Directory)
	defer cancel()

	worker, err := s.repo.Worker.FindByID(dirCtx, id)
	if err != nil {
		return nil, entity.NewDirectoryUnavailableError(err)
	}
	if worker == nil {
		return nil, entity.NewNotFoundError("worker " + id.String() + " not found")
	}

	return worker, nil
}

// counterparty picks the notification recipient: worker actions inform the
// customer, customer cancellation informs the worker.
func counterparty(b *entity.Booking, to entity.BookingStatus) uuid.UUID {
	if to == entity.BookingStatusCancelled {
		if b.WorkerID != nil {
			return *b.WorkerID
		}
		return b.CustomerID
	}
	return b.CustomerID
}

func bookingSnapshot(b *entity.Booking) (json.RawMessage, error) {
	payload, err := json.Marshal(response.BookingToResponse(b))
	if err != nil {
		return nil, fmt.Errorf("marshal booking snapshot: %w", err)
	}
	return payload, nil
}

func newNotification(recipientID uuid.UUID, notifType entity.NotificationType, payload json.RawMessage, now time.Time) *entity.Notification {
	return &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		RecipientID: recipientID,
		Type:        notifType,
		Payload:     payload,
	}
}

func newOutboxEvent(bookingID uuid.UUID, routingKey string, payload json.RawMessage, now time.Time) *entity.OutboxEvent {
	return &entity.OutboxEvent{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		BookingID:  bookingID,
		RoutingKey: routingKey,
		Payload:    payload,
	}
}
