package model

import (
	"time"

	"github.com/google/uuid"
)

// ApplyPack persists the generated match package for a job. Nested payloads
// are stored as jsonb strings; one row per job, regeneration overwrites it.
type ApplyPack struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobID            string    `gorm:"uniqueIndex;size:64" json:"job_id"`
	MatchScore       float64   `gorm:"type:float" json:"match_score"`
	MissingSkills    string    `gorm:"type:jsonb" json:"missing_skills"`
	RewrittenBullets string    `gorm:"type:jsonb" json:"rewritten_bullets"`
	CoverLetter      string    `gorm:"type:text" json:"cover_letter"`
	Risks            string    `gorm:"type:jsonb" json:"risks"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (p *ApplyPack) TableName() string {
	return "apply_packs"
}
