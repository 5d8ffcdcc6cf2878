package response

import "taskturf/internal/data/entity"

type WorkerResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Skills        []string `json:"skills"`
	HourlyRate    float64  `json:"hourly_rate"`
	Rating        float64  `json:"rating"`
	IsVerified    bool     `json:"is_verified"`
	CompletedJobs int      `json:"completed_jobs"`
}

func WorkerToResponse(w *entity.Worker) WorkerResponse {
	skills := make([]string, len(w.Skills))
	for i, s := range w.Skills {
		skills[i] = string(s)
	}

	return WorkerResponse{
		ID:            w.ID.String(),
		Name:          w.Name,
		City:          w.City,
		Skills:        skills,
		HourlyRate:    w.HourlyRate,
		Rating:        w.Rating,
		IsVerified:    w.IsVerified,
		CompletedJobs: w.CompletedJobs,
	}
}
