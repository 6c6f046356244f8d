package usecase

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"career-autopilot/internal/model"
	"career-autopilot/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// forwardTransitions is the expected pipeline keyed by current status. Any
// other enumerated target still succeeds but is recorded as a status anomaly
// so the daily summary can surface operator corrections and out-of-band
// hiring-side signals.
var forwardTransitions = map[string][]string{
	model.StatusNew:        {model.StatusPrepared},
	model.StatusPrepared:   {model.StatusPdfReady},
	model.StatusPdfReady:   {model.StatusAutofilled},
	model.StatusAutofilled: {model.StatusSubmitted},
	model.StatusSubmitted:  {model.StatusRejected, model.StatusInterview},
	model.StatusRejected:   {},
	model.StatusInterview:  {model.StatusRejected},
}

type CreateJobInput struct {
	JobID   string
	Company string
	Role    string
	Track   string
	JDUrl   string
	Notes   string
	ApplyBy time.Time
}

type UpdateJobInput struct {
	Company *string
	Role    *string
	JDUrl   *string
	Track   *string
	Notes   *string
}

type JobFilter struct {
	Track  string
	Status string
	Page   int
	Limit  int
}

type JobUsecase struct {
	jobs     JobStore
	activity ActivityStore
	logger   *zap.Logger

	mu       sync.Mutex
	jobLocks map[string]*sync.Mutex
	now      func() time.Time
}

func NewJobUsecase(jobs JobStore, activity ActivityStore, logger *zap.Logger) *JobUsecase {
	return &JobUsecase{
		jobs:     jobs,
		activity: activity,
		logger:   logger,
		jobLocks: make(map[string]*sync.Mutex),
		now:      time.Now,
	}
}

// lockFor serializes status mutation per job id. Different ids proceed
// independently.
func (uc *JobUsecase) lockFor(jobID string) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	l, ok := uc.jobLocks[jobID]
	if !ok {
		l = &sync.Mutex{}
		uc.jobLocks[jobID] = l
	}
	return l
}

func (uc *JobUsecase) Create(input CreateJobInput) (*model.Job, error) {
	fields := map[string]string{}
	if input.JobID == "" {
		fields["job_id"] = "job_id is required"
	}
	if input.Company == "" {
		fields["company"] = "company is required"
	}
	if input.Role == "" {
		fields["role"] = "role is required"
	}
	if input.Track == "" {
		fields["track"] = "track is required"
	} else if !model.ValidTrack(input.Track) {
		fields["track"] = fmt.Sprintf("track must be one of %s, %s, %s", model.TrackPO, model.TrackPM, model.TrackTPM)
	}
	if len(fields) > 0 {
		return nil, util.NewValidationError("invalid job payload", fields)
	}

	if _, err := uc.jobs.FindByID(input.JobID); err == nil {
		return nil, util.NewConflictError(fmt.Sprintf("job %s already exists", input.JobID))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := uc.now().UTC()
	applyBy := input.ApplyBy
	if applyBy.IsZero() {
		// Default SLA: apply within 24h of intake. Fixed from here on.
		applyBy = now.Add(24 * time.Hour)
	}

	job := &model.Job{
		JobID:     input.JobID,
		Company:   input.Company,
		Role:      input.Role,
		Track:     input.Track,
		JDUrl:     input.JDUrl,
		Notes:     input.Notes,
		Status:    model.StatusNew,
		ApplyBy:   applyBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.jobs.Create(job); err != nil {
		return nil, err
	}

	uc.record(model.EventJobCreated, job.JobID,
		fmt.Sprintf("Added %s at %s (%s)", job.Role, job.Company, job.Track), "")
	uc.logger.Info("job created",
		zap.String("job_id", job.JobID),
		zap.String("company", job.Company),
		zap.String("track", job.Track))

	return job, nil
}

func (uc *JobUsecase) SetStatus(jobID, newStatus string) (*model.Job, error) {
	if !model.ValidStatus(newStatus) {
		return nil, util.NewInvalidTransitionError(fmt.Sprintf("unknown status %q", newStatus))
	}

	lock := uc.lockFor(jobID)
	lock.Lock()
	defer lock.Unlock()

	job, err := uc.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError(fmt.Sprintf("job %s not found", jobID))
		}
		return nil, err
	}

	prev := job.Status
	job.Status = newStatus
	job.UpdatedAt = uc.now().UTC()
	if err := uc.jobs.Save(job); err != nil {
		return nil, err
	}

	detail := fmt.Sprintf(`{"from":%q,"to":%q}`, prev, newStatus)
	uc.record(model.EventStatusChanged, job.JobID,
		fmt.Sprintf("%s at %s moved %s -> %s", job.Role, job.Company, prev, newStatus), detail)

	if !isForward(prev, newStatus) {
		uc.record(model.EventStatusAnomaly, job.JobID,
			fmt.Sprintf("Out-of-sequence transition %s -> %s", prev, newStatus), detail)
		uc.logger.Warn("status transition outside forward sequence",
			zap.String("job_id", job.JobID),
			zap.String("from", prev),
			zap.String("to", newStatus))
	}

	return job, nil
}

func isForward(from, to string) bool {
	for _, next := range forwardTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (uc *JobUsecase) Update(jobID string, input UpdateJobInput) (*model.Job, error) {
	lock := uc.lockFor(jobID)
	lock.Lock()
	defer lock.Unlock()

	job, err := uc.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError(fmt.Sprintf("job %s not found", jobID))
		}
		return nil, err
	}

	if input.Track != nil && !model.ValidTrack(*input.Track) {
		return nil, util.NewValidationError("invalid job payload", map[string]string{
			"track": fmt.Sprintf("track must be one of %s, %s, %s", model.TrackPO, model.TrackPM, model.TrackTPM),
		})
	}

	if input.Company != nil {
		job.Company = *input.Company
	}
	if input.Role != nil {
		job.Role = *input.Role
	}
	if input.JDUrl != nil {
		job.JDUrl = *input.JDUrl
	}
	if input.Track != nil {
		job.Track = *input.Track
	}
	if input.Notes != nil {
		job.Notes = *input.Notes
	}
	job.UpdatedAt = uc.now().UTC()

	if err := uc.jobs.Save(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUsecase) Get(jobID string) (*model.Job, error) {
	job, err := uc.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError(fmt.Sprintf("job %s not found", jobID))
		}
		return nil, err
	}
	return job, nil
}

func (uc *JobUsecase) List(filter JobFilter) ([]model.Job, int64, error) {
	if filter.Track != "" && !model.ValidTrack(filter.Track) {
		return nil, 0, util.NewValidationError("invalid filter", map[string]string{"track": "unknown track"})
	}
	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		return nil, 0, util.NewValidationError("invalid filter", map[string]string{"status": "unknown status"})
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.jobs.List(filter.Track, filter.Status, (page-1)*limit, limit)
}

func (uc *JobUsecase) record(eventType, jobID, description, detail string) {
	event := &model.ActivityEvent{
		ID:          uuid.New(),
		Type:        eventType,
		JobID:       jobID,
		Description: description,
		Detail:      detail,
		CreatedAt:   uc.now().UTC(),
	}
	if err := uc.activity.Append(event); err != nil {
		uc.logger.Error("failed to append activity event",
			zap.String("type", eventType), zap.Error(err))
	}
}
