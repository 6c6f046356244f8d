package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"career-autopilot/internal/model"
	"career-autopilot/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOutreachUsecaseForTest(t *testing.T) (*OutreachUsecase, *fakeJobStore, *fakeContactStore, *fakeActivityStore, *fakeReminderService) {
	t.Helper()
	jobs := newFakeJobStore()
	plans := newFakeOutreachStore()
	directory := &fakeContactStore{}
	activity := &fakeActivityStore{}
	reminders := &fakeReminderService{}
	logger, _ := zap.NewDevelopment()
	uc := NewOutreachUsecase(jobs, plans, directory, activity, reminders, logger)
	// Friday, so follow-up arithmetic has a weekend to skip.
	uc.now = func() time.Time { return time.Date(2025, 6, 6, 10, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.Create(&model.Job{
		JobID:   "job-1",
		Company: "Marketly",
		Role:    "Product Manager",
		Track:   model.TrackPM,
		Status:  model.StatusNew,
		ApplyBy: time.Date(2025, 6, 10, 17, 0, 0, 0, time.UTC),
	}))
	return uc, jobs, directory, activity, reminders
}

func directoryContact(name, persona string) model.Contact {
	return model.Contact{
		Name:    name,
		Role:    "PM",
		Company: "Marketly",
		Persona: persona,
		Channel: model.ChannelLinkedin,
	}
}

func seedFullDirectory(directory *fakeContactStore) {
	for i := 1; i <= 3; i++ {
		directory.contacts = append(directory.contacts, directoryContact(fmt.Sprintf("Peer %d", i), model.PersonaPeer))
	}
	for i := 1; i <= 2; i++ {
		directory.contacts = append(directory.contacts, directoryContact(fmt.Sprintf("Insider %d", i), model.PersonaInsider))
	}
	for i := 1; i <= 2; i++ {
		directory.contacts = append(directory.contacts, directoryContact(fmt.Sprintf("Recruiter %d", i), model.PersonaRecruiter))
	}
}

func countPersonas(contacts []PlanContact) map[string]int {
	counts := make(map[string]int)
	for _, c := range contacts {
		counts[c.Persona]++
	}
	return counts
}

func TestPlanFullComposition(t *testing.T) {
	uc, _, directory, activity, _ := newOutreachUsecaseForTest(t)
	seedFullDirectory(directory)

	plan, err := uc.Plan(context.Background(), "job-1")
	require.NoError(t, err)

	assert.Len(t, plan.Contacts, 5)
	counts := countPersonas(plan.Contacts)
	assert.Equal(t, 2, counts[model.PersonaPeer])
	assert.Equal(t, 2, counts[model.PersonaInsider])
	assert.Equal(t, 1, counts[model.PersonaRecruiter])
	assert.Empty(t, plan.Notes)

	// Exactly one message and one follow-up per contact.
	assert.Len(t, plan.Messages, 5)
	assert.Len(t, plan.Followups, 5)
	for _, c := range plan.Contacts {
		assert.Contains(t, plan.Messages, c.Name)
		assert.Contains(t, plan.Followups, c.Name)
	}
	assert.Len(t, activity.byType(model.EventOutreachPlanned), 1)
}

func TestPlanShortfall(t *testing.T) {
	uc, _, directory, _, _ := newOutreachUsecaseForTest(t)
	// 3 peers, 1 insider, 2 recruiters.
	for i := 1; i <= 3; i++ {
		directory.contacts = append(directory.contacts, directoryContact(fmt.Sprintf("Peer %d", i), model.PersonaPeer))
	}
	directory.contacts = append(directory.contacts, directoryContact("Insider 1", model.PersonaInsider))
	for i := 1; i <= 2; i++ {
		directory.contacts = append(directory.contacts, directoryContact(fmt.Sprintf("Recruiter %d", i), model.PersonaRecruiter))
	}

	plan, err := uc.Plan(context.Background(), "job-1")
	require.NoError(t, err)

	assert.Len(t, plan.Contacts, 4)
	counts := countPersonas(plan.Contacts)
	assert.Equal(t, 2, counts[model.PersonaPeer])
	assert.Equal(t, 1, counts[model.PersonaInsider])
	assert.Equal(t, 1, counts[model.PersonaRecruiter])
	require.Len(t, plan.Notes, 1)
	assert.Equal(t, "only 1 of 2 insider contacts available", plan.Notes[0])
}

func TestPlanEmptyDirectory(t *testing.T) {
	uc, _, _, _, _ := newOutreachUsecaseForTest(t)

	plan, err := uc.Plan(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Empty(t, plan.Contacts)
	assert.Len(t, plan.Notes, 3)
}

func TestPlanFollowupDates(t *testing.T) {
	uc, _, directory, _, _ := newOutreachUsecaseForTest(t)
	seedFullDirectory(directory)

	plan, err := uc.Plan(context.Background(), "job-1")
	require.NoError(t, err)

	planDate := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	personaByName := make(map[string]string)
	for _, c := range plan.Contacts {
		personaByName[c.Name] = c.Persona
	}
	for name, due := range plan.Followups {
		assert.True(t, due.After(planDate), "follow-up must be strictly after plan date")
		assert.NotEqual(t, time.Saturday, due.Weekday())
		assert.NotEqual(t, time.Sunday, due.Weekday())
		switch personaByName[name] {
		case model.PersonaRecruiter:
			// Fri + 3 business days = Wednesday.
			assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), due)
		default:
			// Fri + 5 business days = next Friday.
			assert.Equal(t, time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC), due)
		}
	}
}

func TestPlanRanking(t *testing.T) {
	uc, _, directory, _, _ := newOutreachUsecaseForTest(t)

	older := directoryContact("Old Peer", model.PersonaPeer)
	older.LastActiveAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := directoryContact("Recent Peer", model.PersonaPeer)
	recent.LastActiveAt = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	sharedTrack := directoryContact("Shared Track Peer", model.PersonaPeer)
	sharedTrack.Track = model.TrackPM
	directory.contacts = append(directory.contacts, older, recent, sharedTrack)

	plan, err := uc.Plan(context.Background(), "job-1")
	require.NoError(t, err)

	counts := countPersonas(plan.Contacts)
	require.Equal(t, 2, counts[model.PersonaPeer])
	// Shared track outranks recency; recency outranks staleness.
	assert.Equal(t, "Shared Track Peer", plan.Contacts[0].Name)
	assert.Equal(t, "Recent Peer", plan.Contacts[1].Name)
}

func TestPlanMessageTone(t *testing.T) {
	uc, _, directory, _, _ := newOutreachUsecaseForTest(t)
	seedFullDirectory(directory)

	plan, err := uc.Plan(context.Background(), "job-1")
	require.NoError(t, err)

	for _, c := range plan.Contacts {
		msg := plan.Messages[c.Name]
		assert.Contains(t, msg, c.Name)
		assert.Contains(t, msg, "Marketly")
		assert.Contains(t, msg, "Product Manager")
		switch c.Persona {
		case model.PersonaRecruiter:
			assert.Contains(t, msg, "15-minute screen")
		case model.PersonaInsider:
			assert.Contains(t, msg, "hiring process")
		case model.PersonaPeer:
			assert.Contains(t, msg, "similar problems")
		}
	}
}

func TestPlanUnknownJob(t *testing.T) {
	uc, _, _, _, _ := newOutreachUsecaseForTest(t)

	_, err := uc.Plan(context.Background(), "missing-id")
	var appErr *util.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, util.KindNotFound, appErr.Kind)
}

func TestScheduleFollowups(t *testing.T) {
	uc, _, directory, activity, reminders := newOutreachUsecaseForTest(t)
	seedFullDirectory(directory)

	_, err := uc.Plan(context.Background(), "job-1")
	require.NoError(t, err)

	result, err := uc.ScheduleFollowups(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, 5, result.Scheduled)
	assert.Len(t, reminders.scheduled, 5)
	assert.Len(t, activity.byType(model.EventFollowupsScheduled), 1)
}

func TestScheduleFollowupsSinkFailure(t *testing.T) {
	uc, _, directory, _, reminders := newOutreachUsecaseForTest(t)
	seedFullDirectory(directory)
	reminders.failWith = fmt.Errorf("sink unavailable")

	_, err := uc.Plan(context.Background(), "job-1")
	require.NoError(t, err)

	_, err = uc.ScheduleFollowups(context.Background(), "job-1")
	var appErr *util.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, util.KindGeneration, appErr.Kind)
}

func TestRecordResponse(t *testing.T) {
	uc, _, directory, activity, _ := newOutreachUsecaseForTest(t)
	seedFullDirectory(directory)

	plan, err := uc.Plan(context.Background(), "job-1")
	require.NoError(t, err)

	require.NoError(t, uc.RecordResponse("job-1", plan.Contacts[0].Name))
	assert.Len(t, activity.byType(model.EventResponseReceived), 1)

	err = uc.RecordResponse("job-1", "Nobody")
	var appErr *util.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, util.KindValidation, appErr.Kind)
}

func TestAddContactDefaultsChannel(t *testing.T) {
	uc, _, directory, _, _ := newOutreachUsecaseForTest(t)

	contact := &model.Contact{
		Name:    "Alex Recruiter",
		Company: "Marketly",
		Persona: model.PersonaRecruiter,
	}
	require.NoError(t, uc.AddContact(contact))
	assert.Equal(t, model.ChannelLinkedin, contact.Channel)
	assert.Len(t, directory.contacts, 1)

	err := uc.AddContact(&model.Contact{Name: "Bad", Company: "Marketly", Persona: "friend"})
	var appErr *util.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, util.KindValidation, appErr.Kind)
}

func TestAddBusinessDaysSkipsWeekends(t *testing.T) {
	wednesday := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	// Wed + 3 business days crosses the weekend into Monday.
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), addBusinessDays(wednesday, 3))

	friday := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), addBusinessDays(friday, 1))
}
