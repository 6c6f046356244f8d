package repository

import (
	"career-autopilot/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutreachRepository struct {
	db *gorm.DB
}

func NewOutreachRepository(db *gorm.DB) *OutreachRepository {
	return &OutreachRepository{db}
}

func (r *OutreachRepository) Upsert(plan *model.OutreachPlan) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"contacts", "messages", "followups", "notes", "updated_at",
		}),
	}).Create(plan).Error
}

func (r *OutreachRepository) FindByJobID(jobID string) (*model.OutreachPlan, error) {
	var p model.OutreachPlan
	err := r.db.First(&p, "job_id = ?", jobID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *OutreachRepository) ListAll() ([]model.OutreachPlan, error) {
	var plans []model.OutreachPlan
	err := r.db.Order("created_at ASC").Find(&plans).Error
	return plans, err
}
