package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"career-autopilot/internal/model"
	"career-autopilot/internal/service"
	"gorm.io/gorm"
)

// In-memory stores backing the usecase tests. They return
// gorm.ErrRecordNotFound the way the real repositories do.

type fakeJobStore struct {
	jobs map[string]*model.Job
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[string]*model.Job)}
}

func (s *fakeJobStore) Create(job *model.Job) error {
	if _, ok := s.jobs[job.JobID]; ok {
		return fmt.Errorf("duplicate key")
	}
	cp := *job
	s.jobs[job.JobID] = &cp
	return nil
}

func (s *fakeJobStore) Save(job *model.Job) error {
	cp := *job
	s.jobs[job.JobID] = &cp
	return nil
}

func (s *fakeJobStore) FindByID(id string) (*model.Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *j
	return &cp, nil
}

func (s *fakeJobStore) List(track, status string, offset, limit int) ([]model.Job, int64, error) {
	all, _ := s.ListAll()
	var filtered []model.Job
	for _, j := range all {
		if track != "" && j.Track != track {
			continue
		}
		if status != "" && j.Status != status {
			continue
		}
		filtered = append(filtered, j)
	}
	total := int64(len(filtered))
	if offset > len(filtered) {
		offset = len(filtered)
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (s *fakeJobStore) ListAll() ([]model.Job, error) {
	var jobs []model.Job
	for _, j := range s.jobs {
		jobs = append(jobs, *j)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ApplyBy.Before(jobs[j].ApplyBy) })
	return jobs, nil
}

type fakeActivityStore struct {
	events []model.ActivityEvent
}

func (s *fakeActivityStore) Append(event *model.ActivityEvent) error {
	s.events = append(s.events, *event)
	return nil
}

func (s *fakeActivityStore) ListByRange(from, to time.Time) ([]model.ActivityEvent, error) {
	var out []model.ActivityEvent
	for _, e := range s.events {
		if !e.CreatedAt.Before(from) && e.CreatedAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeActivityStore) Recent(limit int) ([]model.ActivityEvent, error) {
	n := len(s.events)
	var out []model.ActivityEvent
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}

func (s *fakeActivityStore) byType(eventType string) []model.ActivityEvent {
	var out []model.ActivityEvent
	for _, e := range s.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fakeApplyPackStore struct {
	packs map[string]*model.ApplyPack
}

func newFakeApplyPackStore() *fakeApplyPackStore {
	return &fakeApplyPackStore{packs: make(map[string]*model.ApplyPack)}
}

func (s *fakeApplyPackStore) Upsert(pack *model.ApplyPack) error {
	cp := *pack
	s.packs[pack.JobID] = &cp
	return nil
}

func (s *fakeApplyPackStore) FindByJobID(jobID string) (*model.ApplyPack, error) {
	p, ok := s.packs[jobID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeApplyPackStore) ListByDay(from, to time.Time) ([]model.ApplyPack, error) {
	var out []model.ApplyPack
	for _, p := range s.packs {
		if !p.UpdatedAt.Before(from) && p.UpdatedAt.Before(to) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JobID < out[j].JobID })
	return out, nil
}

type fakeOutreachStore struct {
	plans map[string]*model.OutreachPlan
}

func newFakeOutreachStore() *fakeOutreachStore {
	return &fakeOutreachStore{plans: make(map[string]*model.OutreachPlan)}
}

func (s *fakeOutreachStore) Upsert(plan *model.OutreachPlan) error {
	cp := *plan
	s.plans[plan.JobID] = &cp
	return nil
}

func (s *fakeOutreachStore) FindByJobID(jobID string) (*model.OutreachPlan, error) {
	p, ok := s.plans[jobID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeOutreachStore) ListAll() ([]model.OutreachPlan, error) {
	var out []model.OutreachPlan
	for _, p := range s.plans {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JobID < out[j].JobID })
	return out, nil
}

type fakeContactStore struct {
	contacts []model.Contact
}

func (s *fakeContactStore) Create(contact *model.Contact) error {
	s.contacts = append(s.contacts, *contact)
	return nil
}

func (s *fakeContactStore) ListByCompany(company string) ([]model.Contact, error) {
	var out []model.Contact
	for _, c := range s.contacts {
		if c.Company == company {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeContactStore) List() ([]model.Contact, error) {
	return append([]model.Contact(nil), s.contacts...), nil
}

type fakeProfileStore struct {
	profiles map[string]*model.TrackProfile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*model.TrackProfile)}
}

func (s *fakeProfileStore) Upsert(profile *model.TrackProfile) error {
	cp := *profile
	s.profiles[profile.Track] = &cp
	return nil
}

func (s *fakeProfileStore) FindByTrack(track string) (*model.TrackProfile, error) {
	p, ok := s.profiles[track]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeReminderService struct {
	scheduled []service.Reminder
	failWith  error
}

func (s *fakeReminderService) Schedule(_ context.Context, reminder service.Reminder) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	s.scheduled = append(s.scheduled, reminder)
	return fmt.Sprintf("rem-%d", len(s.scheduled)), nil
}
