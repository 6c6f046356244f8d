package service

import (
	"context"
	"fmt"
	"strings"
)

// DraftRequest carries everything a cover letter is built from. Identical
// requests must yield identical letters on the deterministic path.
type DraftRequest struct {
	Company       string
	Role          string
	Track         string
	LeadBullet    string
	MatchedSkills []string
}

type DrafterInterface interface {
	DraftCoverLetter(ctx context.Context, req DraftRequest) (string, error)
}

// TemplateDrafter is the default cover-letter backend: a fixed
// opening/body/closing template with no external calls.
type TemplateDrafter struct{}

func NewTemplateDrafter() *TemplateDrafter {
	return &TemplateDrafter{}
}

func (d *TemplateDrafter) DraftCoverLetter(_ context.Context, req DraftRequest) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s Hiring Team,\n\n", req.Company)
	fmt.Fprintf(&b, "I am applying for the %s role. My background on the %s track maps directly onto what you are looking for.\n\n",
		req.Role, req.Track)

	if req.LeadBullet != "" {
		fmt.Fprintf(&b, "One result I would bring to %s: %s\n\n", req.Company, req.LeadBullet)
	}
	if len(req.MatchedSkills) > 0 {
		fmt.Fprintf(&b, "I have hands-on experience with %s, which your description calls out.\n\n",
			strings.Join(req.MatchedSkills, ", "))
	}

	fmt.Fprintf(&b, "I would welcome a short conversation about the %s role. Thank you for your consideration.\n\nBest regards", req.Role)

	return b.String(), nil
}
