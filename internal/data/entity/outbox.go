package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Outbox routing keys published to the notification exchange.
const (
	RKBookingRequested = "booking.requested"
	RKBookingAccepted  = "booking.accepted"
	RKBookingRejected  = "booking.rejected"
	RKBookingCancelled = "booking.cancelled"
	RKBookingCompleted = "booking.completed"
)

// OutboxEvent is written in the same transaction as the booking mutation it
// describes. The relay publishes it at-least-once; PublishedAt stays nil
// until a publish succeeds.
type OutboxEvent struct {
	BaseSimple
	BookingID   uuid.UUID       `db:"booking_id"`
	RoutingKey  string          `db:"routing_key"`
	Payload     json.RawMessage `db:"payload"`
	Attempts    int             `db:"attempts"`
	PublishedAt *time.Time      `db:"published_at"`
}

// RoutingKeyFor maps a booking status to the event key announcing it.
func RoutingKeyFor(status BookingStatus) string {
	switch status {
	case BookingStatusAccepted:
		return RKBookingAccepted
	case BookingStatusRejected:
		return RKBookingRejected
	case BookingStatusCancelled:
		return RKBookingCancelled
	case BookingStatusCompleted:
		return RKBookingCompleted
	default:
		return RKBookingRequested
	}
}
