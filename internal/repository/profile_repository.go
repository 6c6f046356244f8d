package repository

import (
	"career-autopilot/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db}
}

func (r *ProfileRepository) Upsert(profile *model.TrackProfile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "track"}},
		DoUpdates: clause.AssignmentColumns([]string{"skills", "bullets", "updated_at"}),
	}).Create(profile).Error
}

func (r *ProfileRepository) FindByTrack(track string) (*model.TrackProfile, error) {
	var p model.TrackProfile
	err := r.db.First(&p, "track = ?", track).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
