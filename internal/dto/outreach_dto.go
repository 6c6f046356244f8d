package dto

import "time"

type OutreachPlanRequest struct {
	JobID   string `json:"job_id"`
	Company string `json:"company"`
	Role    string `json:"role"`
}

type OutreachResponseRequest struct {
	JobID       string `json:"job_id"`
	ContactName string `json:"contact_name"`
}

type FollowupsScheduleRequest struct {
	JobID string `json:"job_id"`
}

type ContactCreateRequest struct {
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	Company      string     `json:"company"`
	Persona      string     `json:"persona"`
	Channel      string     `json:"channel"`
	ProfileURL   string     `json:"profile_url"`
	Email        string     `json:"email"`
	Track        string     `json:"track"`
	LastActiveAt *time.Time `json:"last_active_at"`
}

type ProfileUpsertRequest struct {
	Skills  []string `json:"skills"`
	Bullets []string `json:"bullets"`
}
