package dto

import (
	"time"

	"career-autopilot/internal/model"
	"career-autopilot/internal/sla"
)

type JobCreateRequest struct {
	JobID   string     `json:"job_id"`
	Company string     `json:"company"`
	Role    string     `json:"role"`
	Track   string     `json:"track"`
	JDUrl   string     `json:"jd_url"`
	Notes   string     `json:"notes"`
	ApplyBy *time.Time `json:"apply_by"`
}

type JobUpdateRequest struct {
	Company *string `json:"company"`
	Role    *string `json:"role"`
	JDUrl   *string `json:"jd_url"`
	Track   *string `json:"track"`
	Notes   *string `json:"notes"`
}

type JobStatusRequest struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type JobDTO struct {
	JobID     string    `json:"job_id"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	Track     string    `json:"track"`
	JDUrl     string    `json:"jd_url"`
	Notes     string    `json:"notes,omitempty"`
	Status    string    `json:"status"`
	SLA       string    `json:"sla"`
	ApplyBy   time.Time `json:"apply_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewJobDTO attaches the read-time SLA classification; it is never stored on
// the job record.
func NewJobDTO(job *model.Job, now time.Time) JobDTO {
	return JobDTO{
		JobID:     job.JobID,
		Company:   job.Company,
		Role:      job.Role,
		Track:     job.Track,
		JDUrl:     job.JDUrl,
		Notes:     job.Notes,
		Status:    job.Status,
		SLA:       string(sla.Classify(job.ApplyBy, now)),
		ApplyBy:   job.ApplyBy,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
}
