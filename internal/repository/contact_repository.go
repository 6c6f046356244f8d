package repository

import (
	"career-autopilot/internal/model"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db}
}

func (r *ContactRepository) Create(contact *model.Contact) error {
	return r.db.Create(contact).Error
}

func (r *ContactRepository) ListByCompany(company string) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.Where("company = ?", company).Order("name ASC").Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) List() ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.Order("company ASC, name ASC").Find(&contacts).Error
	return contacts, err
}
