package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// legalTransitions is the authoritative lifecycle table. A status missing
// from the map is terminal.
var legalTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusAccepted, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusAccepted: {BookingStatusCompleted, BookingStatusCancelled},
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected,
		BookingStatusCompleted, BookingStatusCancelled:
		return BookingStatus(s), nil
	}
	return "", NewValidationError("unknown booking status: " + s)
}

func (s BookingStatus) IsTerminal() bool {
	_, ok := legalTransitions[s]
	return !ok
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Actor roles as supplied by the upstream identity provider.
const (
	RoleCustomer = "customer"
	RoleWorker   = "worker"
	RoleOperator = "operator"
)

type Booking struct {
	Base
	Reference       string          `db:"reference"`
	ServiceCategory ServiceCategory `db:"service_category"`
	CustomerID      uuid.UUID       `db:"customer_id"`
	WorkerID        *uuid.UUID      `db:"worker_id"`
	Status          BookingStatus   `db:"status"`
	ScheduledDate   time.Time       `db:"scheduled_date"`
	ScheduledTime   time.Time       `db:"scheduled_time"`
	Address         string          `db:"address"`
	Description     string          `db:"description"`
	Budget          float64         `db:"budget"`
	EstimatedHours  int             `db:"estimated_hours"`
	EstimatedCost   float64         `db:"estimated_cost"`
	FinalAmount     *float64        `db:"final_amount"`
}

// CheckTransition validates both the lifecycle legality and the actor
// authorization for moving this booking to next. Legality is checked first
// so a terminal booking answers invalid_transition regardless of actor.
func (b *Booking) CheckTransition(next BookingStatus, actorID uuid.UUID, role string) error {
	if !b.Status.CanTransitionTo(next) {
		return NewInvalidTransitionError(
			fmt.Sprintf("booking %s cannot go from %s to %s", b.ID, b.Status, next))
	}

	switch next {
	case BookingStatusAccepted, BookingStatusRejected:
		if !b.isAssignedWorker(actorID) {
			return NewForbiddenError("only the assigned worker may accept or reject a booking")
		}
	case BookingStatusCompleted:
		if role != RoleOperator && !b.isAssignedWorker(actorID) {
			return NewForbiddenError("only the assigned worker or an operator may complete a booking")
		}
	case BookingStatusCancelled:
		if b.CustomerID != actorID {
			return NewForbiddenError("only the customer may cancel a booking")
		}
	}

	return nil
}

func (b *Booking) isAssignedWorker(actorID uuid.UUID) bool {
	return b.WorkerID != nil && *b.WorkerID == actorID
}
