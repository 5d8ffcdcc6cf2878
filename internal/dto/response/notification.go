package response

import (
	"encoding/json"
	"time"

	"taskturf/internal/data/entity"
)

type NotificationResponse struct {
	ID          string          `json:"id"`
	RecipientID string          `json:"recipient_id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	IsRead      bool            `json:"is_read"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID.String(),
		RecipientID: n.RecipientID.String(),
		Type:        string(n.Type),
		Payload:     n.Payload,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}
