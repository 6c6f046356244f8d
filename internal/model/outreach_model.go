package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PersonaPeer      = "peer"
	PersonaInsider   = "insider"
	PersonaRecruiter = "recruiter"
	PersonaReferral  = "referral"
)

const (
	ChannelLinkedin = "linkedin"
	ChannelEmail    = "email"
	ChannelOther    = "other"
)

func ValidPersona(p string) bool {
	switch p {
	case PersonaPeer, PersonaInsider, PersonaRecruiter, PersonaReferral:
		return true
	}
	return false
}

func ValidChannel(c string) bool {
	switch c {
	case ChannelLinkedin, ChannelEmail, ChannelOther:
		return true
	}
	return false
}

// Contact is a directory entry for one person at a company. Track and
// LastActiveAt feed the relevance ranking when a plan is built.
type Contact struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Company      string    `gorm:"index" json:"company"`
	Persona      string    `gorm:"size:16" json:"persona"`
	Channel      string    `gorm:"size:16" json:"channel"`
	ProfileURL   string    `json:"profile_url"`
	Email        string    `json:"email"`
	Track        string    `gorm:"size:8" json:"track"`
	LastActiveAt time.Time `json:"last_active_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *Contact) TableName() string {
	return "contacts"
}

// OutreachPlan persists the generated plan for a job: contacts, per-contact
// messages and follow-up dates as jsonb strings. One row per job.
type OutreachPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobID     string    `gorm:"uniqueIndex;size:64" json:"job_id"`
	Contacts  string    `gorm:"type:jsonb" json:"contacts"`
	Messages  string    `gorm:"type:jsonb" json:"messages"`
	Followups string    `gorm:"type:jsonb" json:"followups"`
	Notes     string    `gorm:"type:jsonb" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *OutreachPlan) TableName() string {
	return "outreach_plans"
}
