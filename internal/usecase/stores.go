package usecase

import (
	"time"

	"career-autopilot/internal/model"
)

// Narrow store interfaces so usecases can be exercised with in-memory fakes.
// The gorm repositories satisfy them.

type JobStore interface {
	Create(job *model.Job) error
	Save(job *model.Job) error
	FindByID(id string) (*model.Job, error)
	List(track, status string, offset, limit int) ([]model.Job, int64, error)
	ListAll() ([]model.Job, error)
}

type ApplyPackStore interface {
	Upsert(pack *model.ApplyPack) error
	FindByJobID(jobID string) (*model.ApplyPack, error)
	ListByDay(from, to time.Time) ([]model.ApplyPack, error)
}

type OutreachStore interface {
	Upsert(plan *model.OutreachPlan) error
	FindByJobID(jobID string) (*model.OutreachPlan, error)
	ListAll() ([]model.OutreachPlan, error)
}

type ContactStore interface {
	Create(contact *model.Contact) error
	ListByCompany(company string) ([]model.Contact, error)
	List() ([]model.Contact, error)
}

type ProfileStore interface {
	Upsert(profile *model.TrackProfile) error
	FindByTrack(track string) (*model.TrackProfile, error)
}

type ActivityStore interface {
	Append(event *model.ActivityEvent) error
	ListByRange(from, to time.Time) ([]model.ActivityEvent, error)
	Recent(limit int) ([]model.ActivityEvent, error)
}
