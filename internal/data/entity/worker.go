package entity

// Worker is a read-only projection of a worker record owned by the external
// account service. The core never writes to it.
type Worker struct {
	Base
	Name          string            `db:"name"`
	City          string            `db:"city"`
	Skills        []ServiceCategory `db:"skills"`
	HourlyRate    float64           `db:"hourly_rate"`
	Rating        float64           `db:"rating"`
	IsAvailable   bool              `db:"is_available"`
	IsVerified    bool              `db:"is_verified"`
	CompletedJobs int               `db:"completed_jobs"`
}

// DefaultRating is applied when the account service carries no rating yet.
const DefaultRating = 4.5

func (w *Worker) HasSkill(category ServiceCategory) bool {
	for _, s := range w.Skills {
		if s == category {
			return true
		}
	}
	return false
}
