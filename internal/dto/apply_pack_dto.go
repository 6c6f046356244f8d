package dto

// ApplyPackRequest mirrors the observed client contract; company/role/track
// are accepted but the job record stays authoritative for them.
type ApplyPackRequest struct {
	JobID   string `json:"job_id"`
	Company string `json:"company"`
	Role    string `json:"role"`
	Track   string `json:"track"`
	JDText  string `json:"jd_text"`
}
