package model

import "time"

// TrackProfile is the resume/profile store entry for one track: the
// candidate's skills and the bullet bank apply-pack rewrites draw from.
type TrackProfile struct {
	Track     string    `gorm:"primaryKey;size:8" json:"track"`
	Skills    string    `gorm:"type:jsonb" json:"skills"`
	Bullets   string    `gorm:"type:jsonb" json:"bullets"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *TrackProfile) TableName() string {
	return "track_profiles"
}
