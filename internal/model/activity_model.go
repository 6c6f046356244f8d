package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventJobCreated         = "job_created"
	EventStatusChanged      = "status_changed"
	EventStatusAnomaly      = "status_anomaly"
	EventApplyPackGenerated = "apply_pack_generated"
	EventOutreachPlanned    = "outreach_planned"
	EventResponseReceived   = "response_received"
	EventFollowupsScheduled = "followups_scheduled"
)

// ActivityEvent is the append-only history the daily summary and dashboard
// are recomputed from. Detail holds a small event-specific json payload.
type ActivityEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Type        string    `gorm:"size:32;index" json:"type"`
	JobID       string    `gorm:"size:64;index" json:"job_id"`
	Description string    `json:"description"`
	Detail      string    `gorm:"type:jsonb" json:"detail"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (e *ActivityEvent) TableName() string {
	return "activity_events"
}
