package request

type CreateBookingRequest struct {
	ServiceCategory string  `json:"service_category" validate:"required"`
	CustomerID      string  `json:"customer_id" validate:"omitempty,uuid4"`
	WorkerID        string  `json:"worker_id" validate:"omitempty,uuid4"`
	Address         string  `json:"address" validate:"required,min=5,max=500"`
	ScheduledDate   string  `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime   string  `json:"scheduled_time" validate:"required,datetime=15:04"`
	Description     string  `json:"description" validate:"max=2000"`
	Budget          float64 `json:"budget" validate:"omitempty,gt=0"`
	EstimatedHours  int     `json:"estimated_hours" validate:"omitempty,min=1,max=24"`
}

type CompleteBookingRequest struct {
	FinalAmount *float64 `json:"final_amount" validate:"omitempty,gt=0"`
}
