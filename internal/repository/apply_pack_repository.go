package repository

import (
	"time"

	"career-autopilot/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplyPackRepository struct {
	db *gorm.DB
}

func NewApplyPackRepository(db *gorm.DB) *ApplyPackRepository {
	return &ApplyPackRepository{db}
}

// Upsert replaces the stored pack for the job; regeneration never versions.
func (r *ApplyPackRepository) Upsert(pack *model.ApplyPack) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"match_score", "missing_skills", "rewritten_bullets",
			"cover_letter", "risks", "updated_at",
		}),
	}).Create(pack).Error
}

func (r *ApplyPackRepository) FindByJobID(jobID string) (*model.ApplyPack, error) {
	var p model.ApplyPack
	err := r.db.First(&p, "job_id = ?", jobID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ApplyPackRepository) ListByDay(from, to time.Time) ([]model.ApplyPack, error) {
	var packs []model.ApplyPack
	err := r.db.
		Where("updated_at >= ? AND updated_at < ?", from, to).
		Order("updated_at ASC").
		Find(&packs).Error
	return packs, err
}
