package repository

import (
	"time"

	"career-autopilot/internal/model"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db}
}

func (r *ActivityRepository) Append(event *model.ActivityEvent) error {
	return r.db.Create(event).Error
}

func (r *ActivityRepository) ListByRange(from, to time.Time) ([]model.ActivityEvent, error) {
	var events []model.ActivityEvent
	err := r.db.
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

func (r *ActivityRepository) Recent(limit int) ([]model.ActivityEvent, error) {
	var events []model.ActivityEvent
	err := r.db.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

func (r *ActivityRepository) ListByType(eventType string) ([]model.ActivityEvent, error) {
	var events []model.ActivityEvent
	err := r.db.Where("type = ?", eventType).Order("created_at ASC").Find(&events).Error
	return events, err
}
