package entity

import (
	"encoding/json"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationBookingRequest NotificationType = "booking_request"
	NotificationStatusUpdate   NotificationType = "status_update"
)

func ParseNotificationType(s string) (NotificationType, error) {
	switch NotificationType(s) {
	case NotificationBookingRequest, NotificationStatusUpdate:
		return NotificationType(s), nil
	}
	return "", NewValidationError("unknown notification type: " + s)
}

// Notification is advisory UI surface only. Losing one must never corrupt
// booking state.
type Notification struct {
	BaseSimple
	RecipientID uuid.UUID        `db:"recipient_id"`
	Type        NotificationType `db:"type"`
	Payload     json.RawMessage  `db:"payload"`
	IsRead      bool             `db:"is_read"`
}
