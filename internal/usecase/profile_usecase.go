package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"career-autopilot/internal/model"
	"career-autopilot/internal/util"
	"gorm.io/gorm"
)

// ProfileUsecase is the ingestion side of the resume/profile collaborator:
// skills and the bullet bank per track.
type ProfileUsecase struct {
	profiles ProfileStore
	now      func() time.Time
}

func NewProfileUsecase(profiles ProfileStore) *ProfileUsecase {
	return &ProfileUsecase{profiles: profiles, now: time.Now}
}

func (uc *ProfileUsecase) Upsert(track string, skills, bullets []string) (*model.TrackProfile, error) {
	if !model.ValidTrack(track) {
		return nil, util.NewValidationError("invalid profile", map[string]string{
			"track": fmt.Sprintf("track must be one of %s, %s, %s", model.TrackPO, model.TrackPM, model.TrackTPM),
		})
	}
	if len(skills) == 0 {
		return nil, util.NewValidationError("invalid profile", map[string]string{
			"skills": "at least one skill is required",
		})
	}

	skillsJSON, _ := json.Marshal(skills)
	bulletsJSON, _ := json.Marshal(bullets)
	profile := &model.TrackProfile{
		Track:     track,
		Skills:    string(skillsJSON),
		Bullets:   string(bulletsJSON),
		UpdatedAt: uc.now().UTC(),
	}
	if err := uc.profiles.Upsert(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *ProfileUsecase) Get(track string) (*model.TrackProfile, error) {
	profile, err := uc.profiles.FindByTrack(track)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError(fmt.Sprintf("no profile for track %s", track))
		}
		return nil, err
	}
	return profile, nil
}
