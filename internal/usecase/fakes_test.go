package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"taskturf/internal/data/entity"
	"taskturf/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCode(t *testing.T, err error, want entity.ErrorCode) {
	t.Helper()
	got, ok := entity.CodeOf(err)
	require.True(t, ok, "error %v carries no code", err)
	assert.Equal(t, want, got)
}

func testConfig() *utils.Config {
	return &utils.Config{
		Timeout: utils.TimeoutConfig{
			Directory:  time.Second,
			Repository: time.Second,
		},
	}
}

// fakeWorkerRepo hands back its workers verbatim, like a dumb projection,
// so the matching engine's own eligibility checks are what the tests see.
type fakeWorkerRepo struct {
	workers []*entity.Worker
	err     error
}

func (f *fakeWorkerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Worker, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, w := range f.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkerRepo) FindAvailableByCategory(_ context.Context, _ entity.ServiceCategory, _ string, _ *float64) ([]*entity.Worker, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*entity.Worker, len(f.workers))
	copy(out, f.workers)
	return out, nil
}

// fakeBookingRepo is an in-memory stand-in with the same compare-and-swap
// transition semantics as the Postgres implementation. beforeTransition, when
// set, runs inside Transition before the swap so tests can interleave a
// competing writer.
type fakeBookingRepo struct {
	mu            sync.Mutex
	bookings      map[uuid.UUID]*entity.Booking
	notifications []*entity.Notification
	events        []*entity.OutboxEvent

	err              error
	beforeTransition func()
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*entity.Booking{}}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *entity.Booking, n *entity.Notification, ev *entity.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := *b
	f.bookings[b.ID] = &stored
	if n != nil {
		f.notifications = append(f.notifications, n)
	}
	if ev != nil {
		f.events = append(f.events, ev)
	}
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) Transition(_ context.Context, id uuid.UUID, from, to entity.BookingStatus, finalAmount *float64, n *entity.Notification, ev *entity.OutboxEvent) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.beforeTransition != nil {
		hook := f.beforeTransition
		f.beforeTransition = nil
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}

	b.Status = to
	b.UpdatedAt = time.Now()
	if finalAmount != nil {
		b.FinalAmount = finalAmount
	}
	if n != nil {
		f.notifications = append(f.notifications, n)
	}
	if ev != nil {
		f.events = append(f.events, ev)
	}
	return true, nil
}

func (f *fakeBookingRepo) FindByWorkerID(_ context.Context, workerID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	return f.list(func(b *entity.Booking) bool {
		return b.WorkerID != nil && *b.WorkerID == workerID && matchesStatus(b, status)
	}, limit, offset)
}

func (f *fakeBookingRepo) CountByWorkerID(ctx context.Context, workerID uuid.UUID, status *entity.BookingStatus) (int64, error) {
	all, err := f.FindByWorkerID(ctx, workerID, status, 1<<30, 0)
	return int64(len(all)), err
}

func (f *fakeBookingRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	return f.list(func(b *entity.Booking) bool {
		return b.CustomerID == customerID && matchesStatus(b, status)
	}, limit, offset)
}

func (f *fakeBookingRepo) CountByCustomerID(ctx context.Context, customerID uuid.UUID, status *entity.BookingStatus) (int64, error) {
	all, err := f.FindByCustomerID(ctx, customerID, status, 1<<30, 0)
	return int64(len(all)), err
}

func (f *fakeBookingRepo) list(match func(*entity.Booking) bool, limit, offset int) ([]*entity.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Booking
	for _, b := range f.bookings {
		if match(b) {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledDate.After(out[j].ScheduledDate)
	})

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func matchesStatus(b *entity.Booking, status *entity.BookingStatus) bool {
	return status == nil || b.Status == *status
}

// fakeNotificationRepo mirrors the Postgres repository's contract, including
// the typed not_found when MarkRead hits zero rows. beforeMarkRead, when set,
// runs once inside MarkRead so tests can interleave a competing delete.
type fakeNotificationRepo struct {
	mu    sync.Mutex
	store map[uuid.UUID]*entity.Notification
	err   error

	beforeMarkRead func()
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{store: map[uuid.UUID]*entity.Notification{}}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *n
	f.store[n.ID] = &clone
	return nil
}

func (f *fakeNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.store[id]
	if !ok {
		return nil, nil
	}
	clone := *n
	return &clone, nil
}

func (f *fakeNotificationRepo) FindByRecipient(_ context.Context, recipientID uuid.UUID, notifType *entity.NotificationType, unreadOnly bool) ([]*entity.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Notification
	for _, n := range f.store {
		if n.RecipientID != recipientID {
			continue
		}
		if notifType != nil && n.Type != *notifType {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		clone := *n
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	if f.beforeMarkRead != nil {
		hook := f.beforeMarkRead
		f.beforeMarkRead = nil
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.store[id]
	if !ok {
		return entity.NewNotFoundError("notification " + id.String() + " not found")
	}
	n.IsRead = true
	return nil
}
