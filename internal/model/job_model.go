package model

import (
	"time"
)

const (
	StatusNew        = "new"
	StatusPrepared   = "prepared"
	StatusPdfReady   = "pdf_ready"
	StatusAutofilled = "autofilled"
	StatusSubmitted  = "submitted"
	StatusRejected   = "rejected"
	StatusInterview  = "interview"
)

const (
	TrackPO  = "PO"
	TrackPM  = "PM"
	TrackTPM = "TPM"
)

// statusOrder positions the forward pipeline; rejected/interview sit outside
// it and are reachable from anywhere as hiring-side signals.
var statusOrder = map[string]int{
	StatusNew:        0,
	StatusPrepared:   1,
	StatusPdfReady:   2,
	StatusAutofilled: 3,
	StatusSubmitted:  4,
	StatusRejected:   5,
	StatusInterview:  5,
}

func ValidStatus(s string) bool {
	_, ok := statusOrder[s]
	return ok
}

func ValidTrack(t string) bool {
	return t == TrackPO || t == TrackPM || t == TrackTPM
}

// StatusRank returns the forward-pipeline position of a status. Used to flag
// skipped or backward transitions as anomalies.
func StatusRank(s string) int {
	return statusOrder[s]
}

type Job struct {
	JobID     string    `gorm:"primaryKey;size:64" json:"job_id"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	Track     string    `gorm:"size:8" json:"track"`
	JDUrl     string    `json:"jd_url"`
	Notes     string    `gorm:"type:text" json:"notes"`
	Status    string    `gorm:"size:24;index" json:"status"`
	ApplyBy   time.Time `json:"apply_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}
