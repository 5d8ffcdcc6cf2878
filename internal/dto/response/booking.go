package response

import (
	"time"

	"taskturf/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	Reference       string               `json:"reference"`
	ServiceCategory string               `json:"service_category"`
	CustomerID      string               `json:"customer_id"`
	WorkerID        *string              `json:"worker_id,omitempty"`
	Status          entity.BookingStatus `json:"status"`
	ScheduledDate   string               `json:"scheduled_date"`
	ScheduledTime   string               `json:"scheduled_time"`
	Address         string               `json:"address"`
	Description     string               `json:"description,omitempty"`
	Budget          float64              `json:"budget,omitempty"`
	EstimatedHours  int                  `json:"estimated_hours"`
	EstimatedCost   float64              `json:"estimated_cost"`
	FinalAmount     *float64             `json:"final_amount,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	var workerID *string
	if b.WorkerID != nil {
		id := b.WorkerID.String()
		workerID = &id
	}

	return BookingResponse{
		ID:              b.ID.String(),
		Reference:       b.Reference,
		ServiceCategory: string(b.ServiceCategory),
		CustomerID:      b.CustomerID.String(),
		WorkerID:        workerID,
		Status:          b.Status,
		ScheduledDate:   b.ScheduledDate.Format("2006-01-02"),
		ScheduledTime:   b.ScheduledTime.Format("15:04"),
		Address:         b.Address,
		Description:     b.Description,
		Budget:          b.Budget,
		EstimatedHours:  b.EstimatedHours,
		EstimatedCost:   b.EstimatedCost,
		FinalAmount:     b.FinalAmount,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
