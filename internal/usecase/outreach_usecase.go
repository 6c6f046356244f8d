package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"career-autopilot/internal/model"
	"career-autopilot/internal/service"
	"career-autopilot/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Outreach policy tables. Quotas and cadences are data, not code, so policy
// changes never touch the selection algorithm.
var personaQuotas = []struct {
	Persona string
	Count   int
}{
	{model.PersonaPeer, 2},
	{model.PersonaInsider, 2},
	{model.PersonaRecruiter, 1},
}

// Follow-up cadence in business days per persona.
var followupOffsets = map[string]int{
	model.PersonaPeer:      5,
	model.PersonaInsider:   5,
	model.PersonaRecruiter: 3,
}

type PlanContact struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Company    string `json:"company"`
	Persona    string `json:"persona"`
	Channel    string `json:"channel"`
	ProfileURL string `json:"profile_url,omitempty"`
	Email      string `json:"email,omitempty"`
}

type OutreachPlanResult struct {
	JobID     string               `json:"job_id"`
	Contacts  []PlanContact        `json:"contacts"`
	Messages  map[string]string    `json:"messages"`
	Followups map[string]time.Time `json:"followups"`
	Notes     []string             `json:"notes"`
	CreatedAt time.Time            `json:"created_at"`
}

type OutreachUsecase struct {
	jobs      JobStore
	plans     OutreachStore
	directory ContactStore
	activity  ActivityStore
	reminders service.ReminderServiceInterface
	logger    *zap.Logger
	now       func() time.Time
}

func NewOutreachUsecase(jobs JobStore, plans OutreachStore, directory ContactStore, activity ActivityStore, reminders service.ReminderServiceInterface, logger *zap.Logger) *OutreachUsecase {
	return &OutreachUsecase{
		jobs:      jobs,
		plans:     plans,
		directory: directory,
		activity:  activity,
		reminders: reminders,
		logger:    logger,
		now:       time.Now,
	}
}

// Plan selects the persona-quota contact set for the job's company, writes a
// personalized message and a follow-up date per contact, and replaces any
// previously stored plan.
func (uc *OutreachUsecase) Plan(ctx context.Context, jobID string) (*OutreachPlanResult, error) {
	job, err := uc.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError(fmt.Sprintf("job %s not found", jobID))
		}
		return nil, err
	}

	candidates, err := uc.directory.ListByCompany(job.Company)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	planDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	contacts, notes := selectContacts(candidates, job.Track)

	messages := make(map[string]string, len(contacts))
	followups := make(map[string]time.Time, len(contacts))
	for _, c := range contacts {
		messages[c.Name] = personaMessage(c, job.Company, job.Role)
		followups[c.Name] = addBusinessDays(planDate, followupOffsets[c.Persona])
	}

	result := &OutreachPlanResult{
		JobID:     job.JobID,
		Contacts:  contacts,
		Messages:  messages,
		Followups: followups,
		Notes:     notes,
		CreatedAt: now,
	}

	if err := uc.persist(result); err != nil {
		return nil, err
	}

	detail, _ := json.Marshal(map[string]any{"contact_count": len(contacts)})
	uc.record(model.EventOutreachPlanned, job.JobID,
		fmt.Sprintf("Planned outreach to %d contacts at %s", len(contacts), job.Company), string(detail))
	uc.logger.Info("outreach plan generated",
		zap.String("job_id", job.JobID),
		zap.Int("contacts", len(contacts)),
		zap.Int("shortfalls", len(notes)))

	return result, nil
}

// selectContacts fills each persona bucket up to quota, ranked by shared
// track, then directory recency, then name. Names are unique within the plan
// because they key the message and follow-up maps.
func selectContacts(candidates []model.Contact, track string) ([]PlanContact, []string) {
	buckets := make(map[string][]model.Contact)
	for _, c := range candidates {
		buckets[c.Persona] = append(buckets[c.Persona], c)
	}

	var selected []PlanContact
	var notes []string
	seen := make(map[string]bool)

	for _, quota := range personaQuotas {
		bucket := buckets[quota.Persona]
		sort.SliceStable(bucket, func(i, j int) bool {
			iTrack := bucket[i].Track == track
			jTrack := bucket[j].Track == track
			if iTrack != jTrack {
				return iTrack
			}
			if !bucket[i].LastActiveAt.Equal(bucket[j].LastActiveAt) {
				return bucket[i].LastActiveAt.After(bucket[j].LastActiveAt)
			}
			return bucket[i].Name < bucket[j].Name
		})

		taken := 0
		for _, c := range bucket {
			if taken == quota.Count {
				break
			}
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			channel := c.Channel
			if !model.ValidChannel(channel) {
				channel = model.ChannelLinkedin
			}
			selected = append(selected, PlanContact{
				Name:       c.Name,
				Role:       c.Role,
				Company:    c.Company,
				Persona:    c.Persona,
				Channel:    channel,
				ProfileURL: c.ProfileURL,
				Email:      c.Email,
			})
			taken++
		}
		if taken < quota.Count {
			notes = append(notes, fmt.Sprintf("only %d of %d %s contacts available", taken, quota.Count, quota.Persona))
		}
	}
	return selected, notes
}

func personaMessage(c PlanContact, company, role string) string {
	switch c.Persona {
	case model.PersonaPeer:
		return fmt.Sprintf("Hi %s, I'm applying for the %s role at %s and noticed we've worked on similar problems. Would love to compare notes on what the team is like.", c.Name, role, company)
	case model.PersonaInsider:
		return fmt.Sprintf("Hi %s, I'm applying for the %s role at %s. Could you share any insight into how the hiring process runs there? Even a sentence or two would help a lot.", c.Name, role, company)
	case model.PersonaRecruiter:
		return fmt.Sprintf("Hi %s, I've applied for the %s role at %s and believe I'm a strong fit. Would you be open to a 15-minute screen this week?", c.Name, role, company)
	default:
		return fmt.Sprintf("Hi %s, I'm applying for the %s role at %s and would appreciate any guidance you can offer.", c.Name, role, company)
	}
}

// addBusinessDays advances date by n weekdays, skipping Saturday and Sunday.
func addBusinessDays(date time.Time, n int) time.Time {
	for n > 0 {
		date = date.AddDate(0, 0, 1)
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n--
		}
	}
	return date
}

// GetPlan returns the stored plan for a job.
func (uc *OutreachUsecase) GetPlan(jobID string) (*OutreachPlanResult, error) {
	plan, err := uc.plans.FindByJobID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError(fmt.Sprintf("no outreach plan for job %s", jobID))
		}
		return nil, err
	}
	return unmarshalPlan(plan)
}

// RecordResponse registers an externally observed reply from a planned
// contact. Pure pass-through signal consumed by the daily summary.
func (uc *OutreachUsecase) RecordResponse(jobID, contactName string) error {
	result, err := uc.GetPlan(jobID)
	if err != nil {
		return err
	}
	if _, ok := result.Messages[contactName]; !ok {
		return util.NewValidationError("invalid response signal", map[string]string{
			"contact_name": fmt.Sprintf("%s is not part of the plan for job %s", contactName, jobID),
		})
	}
	detail, _ := json.Marshal(map[string]string{"contact": contactName})
	uc.record(model.EventResponseReceived, jobID,
		fmt.Sprintf("%s responded on job %s", contactName, jobID), string(detail))
	return nil
}

type ScheduleResult struct {
	JobID     string            `json:"job_id"`
	Scheduled int               `json:"scheduled"`
	Reminders map[string]string `json:"reminders"`
}

// ScheduleFollowups hands the plan's follow-up dates to the external reminder
// sink. The planner itself never dispatches messages.
func (uc *OutreachUsecase) ScheduleFollowups(ctx context.Context, jobID string) (*ScheduleResult, error) {
	plan, err := uc.GetPlan(jobID)
	if err != nil {
		return nil, err
	}

	reminderIDs := make(map[string]string, len(plan.Contacts))
	for _, c := range plan.Contacts {
		id, err := uc.reminders.Schedule(ctx, service.Reminder{
			JobID:       jobID,
			ContactName: c.Name,
			Channel:     c.Channel,
			DueDate:     plan.Followups[c.Name],
			Message:     plan.Messages[c.Name],
		})
		if err != nil {
			return nil, util.NewGenerationError("reminder scheduling failed", err)
		}
		reminderIDs[c.Name] = id
	}

	detail, _ := json.Marshal(map[string]any{"scheduled": len(reminderIDs)})
	uc.record(model.EventFollowupsScheduled, jobID,
		fmt.Sprintf("Scheduled %d follow-up reminders", len(reminderIDs)), string(detail))

	return &ScheduleResult{JobID: jobID, Scheduled: len(reminderIDs), Reminders: reminderIDs}, nil
}

// AddContact ingests a directory entry from the external contact source.
func (uc *OutreachUsecase) AddContact(contact *model.Contact) error {
	fields := map[string]string{}
	if contact.Name == "" {
		fields["name"] = "name is required"
	}
	if contact.Company == "" {
		fields["company"] = "company is required"
	}
	if !model.ValidPersona(contact.Persona) {
		fields["persona"] = "persona must be one of peer, insider, recruiter, referral"
	}
	if contact.Channel != "" && !model.ValidChannel(contact.Channel) {
		fields["channel"] = "channel must be one of linkedin, email, other"
	}
	if len(fields) > 0 {
		return util.NewValidationError("invalid contact", fields)
	}
	if contact.Channel == "" {
		contact.Channel = model.ChannelLinkedin
	}
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	contact.CreatedAt = uc.now().UTC()
	return uc.directory.Create(contact)
}

func (uc *OutreachUsecase) ListContacts() ([]model.Contact, error) {
	return uc.directory.List()
}

func (uc *OutreachUsecase) persist(result *OutreachPlanResult) error {
	contactsJSON, _ := json.Marshal(result.Contacts)
	messagesJSON, _ := json.Marshal(result.Messages)
	followupsJSON, _ := json.Marshal(result.Followups)
	notesJSON, _ := json.Marshal(result.Notes)

	plan := &model.OutreachPlan{
		ID:        uuid.New(),
		JobID:     result.JobID,
		Contacts:  string(contactsJSON),
		Messages:  string(messagesJSON),
		Followups: string(followupsJSON),
		Notes:     string(notesJSON),
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.CreatedAt,
	}
	return uc.plans.Upsert(plan)
}

func unmarshalPlan(plan *model.OutreachPlan) (*OutreachPlanResult, error) {
	result := &OutreachPlanResult{
		JobID:     plan.JobID,
		CreatedAt: plan.CreatedAt,
	}
	if err := json.Unmarshal([]byte(plan.Contacts), &result.Contacts); err != nil {
		return nil, fmt.Errorf("corrupt outreach plan %s: %w", plan.JobID, err)
	}
	if err := json.Unmarshal([]byte(plan.Messages), &result.Messages); err != nil {
		return nil, fmt.Errorf("corrupt outreach plan %s: %w", plan.JobID, err)
	}
	if err := json.Unmarshal([]byte(plan.Followups), &result.Followups); err != nil {
		return nil, fmt.Errorf("corrupt outreach plan %s: %w", plan.JobID, err)
	}
	if plan.Notes != "" {
		if err := json.Unmarshal([]byte(plan.Notes), &result.Notes); err != nil {
			return nil, fmt.Errorf("corrupt outreach plan %s: %w", plan.JobID, err)
		}
	}
	return result, nil
}

func (uc *OutreachUsecase) record(eventType, jobID, description, detail string) {
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
