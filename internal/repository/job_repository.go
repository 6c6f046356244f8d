package repository

import (
	"career-autopilot/internal/model"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

func (r *JobRepository) Create(job *model.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepository) Save(job *model.Job) error {
	return r.db.Save(job).Error
}

func (r *JobRepository) FindByID(id string) (*model.Job, error) {
	var j model.Job
	err := r.db.First(&j, "job_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) List(track, status string, offset, limit int) ([]model.Job, int64, error) {
	var jobs []model.Job
	var total int64

	q := r.db.Model(&model.Job{})
	if track != "" {
		q = q.Where("track = ?", track)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepository) ListAll() ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.Order("apply_by ASC").Find(&jobs).Error
	return jobs, err
}
