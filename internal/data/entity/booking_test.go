package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusAccepted,
		BookingStatusRejected,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}
}

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	legal := map[BookingStatus][]BookingStatus{
		BookingStatusPending:  {BookingStatusAccepted, BookingStatusRejected, BookingStatusCancelled},
		BookingStatusAccepted: {BookingStatusCompleted, BookingStatusCancelled},
	}

	// Every (state, transition) pair outside the table must be refused.
	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			want := false
			for _, allowed := range legal[from] {
				if allowed == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusAccepted.IsTerminal())
	assert.True(t, BookingStatusRejected.IsTerminal())
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("accepted")
	require.NoError(t, err)
	assert.Equal(t, BookingStatusAccepted, status)

	_, err = ParseBookingStatus("confirmed")
	require.Error(t, err)
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, code)
}

func TestBooking_CheckTransition(t *testing.T) {
	workerID := uuid.New()
	customerID := uuid.New()
	stranger := uuid.New()

	newBooking := func(status BookingStatus) *Booking {
		return &Booking{
			Base:       Base{ID: uuid.New()},
			CustomerID: customerID,
			WorkerID:   &workerID,
			Status:     status,
		}
	}

	t.Run("worker accepts pending", func(t *testing.T) {
		b := newBooking(BookingStatusPending)
		require.NoError(t, b.CheckTransition(BookingStatusAccepted, workerID, RoleWorker))
	})

	t.Run("stranger cannot accept", func(t *testing.T) {
		b := newBooking(BookingStatusPending)
		err := b.CheckTransition(BookingStatusAccepted, stranger, RoleWorker)
		code, ok := CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, CodeForbidden, code)
	})

	t.Run("customer cannot accept own booking", func(t *testing.T) {
		b := newBooking(BookingStatusPending)
		err := b.CheckTransition(BookingStatusAccepted, customerID, RoleCustomer)
		code, _ := CodeOf(err)
		assert.Equal(t, CodeForbidden, code)
	})

	t.Run("customer cancels pending", func(t *testing.T) {
		b := newBooking(BookingStatusPending)
		require.NoError(t, b.CheckTransition(BookingStatusCancelled, customerID, RoleCustomer))
	})

	t.Run("worker cannot cancel", func(t *testing.T) {
		b := newBooking(BookingStatusPending)
		err := b.CheckTransition(BookingStatusCancelled, workerID, RoleWorker)
		code, _ := CodeOf(err)
		assert.Equal(t, CodeForbidden, code)
	})

	t.Run("worker completes accepted", func(t *testing.T) {
		b := newBooking(BookingStatusAccepted)
		require.NoError(t, b.CheckTransition(BookingStatusCompleted, workerID, RoleWorker))
	})

	t.Run("operator completes accepted", func(t *testing.T) {
		b := newBooking(BookingStatusAccepted)
		require.NoError(t, b.CheckTransition(BookingStatusCompleted, stranger, RoleOperator))
	})

	t.Run("pending cannot complete", func(t *testing.T) {
		b := newBooking(BookingStatusPending)
		err := b.CheckTransition(BookingStatusCompleted, workerID, RoleWorker)
		code, _ := CodeOf(err)
		assert.Equal(t, CodeInvalidTransition, code)
	})

	t.Run("legality beats authorization", func(t *testing.T) {
		// A terminal booking answers invalid_transition even for a stranger.
		b := newBooking(BookingStatusCompleted)
		err := b.CheckTransition(BookingStatusAccepted, stranger, RoleWorker)
		code, _ := CodeOf(err)
		assert.Equal(t, CodeInvalidTransition, code)
	})

	t.Run("terminal states accept nothing", func(t *testing.T) {
		for _, from := range []BookingStatus{BookingStatusRejected, BookingStatusCompleted, BookingStatusCancelled} {
			for _, to := range allStatuses() {
				b := newBooking(from)
				err := b.CheckTransition(to, workerID, RoleWorker)
				require.Error(t, err, "%s -> %s", from, to)
				code, _ := CodeOf(err)
				assert.Equal(t, CodeInvalidTransition, code)
				assert.Equal(t, from, b.Status)
			}
		}
	})

	t.Run("unassigned booking cannot be accepted", func(t *testing.T) {
		b := newBooking(BookingStatusPending)
		b.WorkerID = nil
		err := b.CheckTransition(BookingStatusAccepted, workerID, RoleWorker)
		code, _ := CodeOf(err)
		assert.Equal(t, CodeForbidden, code)
	})
}
