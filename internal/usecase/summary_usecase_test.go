package usecase

import (
	"encoding/json"
	"testing"
	"time"

	"career-autopilot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var summaryNow = time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC)

func newSummaryUsecaseForTest(t *testing.T) (*SummaryUsecase, *fakeJobStore, *fakeApplyPackStore, *fakeOutreachStore, *fakeActivityStore) {
	t.Helper()
	jobs := newFakeJobStore()
	packs := newFakeApplyPackStore()
	plans := newFakeOutreachStore()
	activity := &fakeActivityStore{}
	logger, _ := zap.NewDevelopment()
	uc := NewSummaryUsecase(jobs, packs, plans, activity, logger)
	uc.now = func() time.Time { return summaryNow }
	return uc, jobs, packs, plans, activity
}

func appendEvent(activity *fakeActivityStore, eventType, jobID, detail string, at time.Time) {
	activity.events = append(activity.events, model.ActivityEvent{
		Type:      eventType,
		JobID:     jobID,
		Detail:    detail,
		CreatedAt: at,
	})
}

func TestSummarizeCounts(t *testing.T) {
	uc, _, _, _, activity := newSummaryUsecaseForTest(t)

	today := summaryNow
	yesterday := summaryNow.Add(-24 * time.Hour)

	appendEvent(activity, model.EventJobCreated, "job-1", "", today)
	appendEvent(activity, model.EventJobCreated, "job-2", "", today)
	appendEvent(activity, model.EventStatusChanged, "job-1", `{"from":"autofilled","to":"submitted"}`, today)
	appendEvent(activity, model.EventStatusChanged, "job-2", `{"from":"new","to":"prepared"}`, today)
	appendEvent(activity, model.EventStatusChanged, "job-3", `{"from":"submitted","to":"interview"}`, today)
	appendEvent(activity, model.EventOutreachPlanned, "job-1", `{"contact_count":5}`, today)
	appendEvent(activity, model.EventResponseReceived, "job-1", `{"contact":"Peer 1"}`, today)
	// Yesterday's activity must not leak into today's digest.
	appendEvent(activity, model.EventJobCreated, "job-0", "", yesterday)
	appendEvent(activity, model.EventStatusChanged, "job-0", `{"from":"new","to":"submitted"}`, yesterday)

	summary, err := uc.Today()
	require.NoError(t, err)

	assert.Equal(t, "2025-06-06", summary.Day)
	assert.Equal(t, 2, summary.Counts.JobsFound)
	assert.Equal(t, 1, summary.Counts.JobsApplied)
	assert.Equal(t, 5, summary.Counts.OutreachSent)
	assert.Equal(t, 1, summary.Counts.ResponsesReceived)
	assert.Equal(t, 1, summary.Counts.InterviewsScheduled)
}

func TestSummarizeSkillsGaps(t *testing.T) {
	uc, _, packs, _, _ := newSummaryUsecaseForTest(t)

	missingA, _ := json.Marshal([]string{"sql", "a/b testing"})
	missingB, _ := json.Marshal([]string{"a/b testing", "pricing"})
	require.NoError(t, packs.Upsert(&model.ApplyPack{
		JobID: "job-1", MissingSkills: string(missingA),
		RewrittenBullets: "[]", Risks: "[]", UpdatedAt: summaryNow,
	}))
	require.NoError(t, packs.Upsert(&model.ApplyPack{
		JobID: "job-2", MissingSkills: string(missingB),
		RewrittenBullets: "[]", Risks: "[]", UpdatedAt: summaryNow,
	}))
	// Generated yesterday; must not count.
	oldMissing, _ := json.Marshal([]string{"okrs"})
	require.NoError(t, packs.Upsert(&model.ApplyPack{
		JobID: "job-3", MissingSkills: string(oldMissing),
		RewrittenBullets: "[]", Risks: "[]", UpdatedAt: summaryNow.Add(-24 * time.Hour),
	}))

	summary, err := uc.Today()
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b testing", "pricing", "sql"}, summary.SkillsGaps)
}

func TestSummaryLinesFixedOrder(t *testing.T) {
	uc, _, _, _, activity := newSummaryUsecaseForTest(t)

	appendEvent(activity, model.EventJobCreated, "job-1", "", summaryNow)
	appendEvent(activity, model.EventResponseReceived, "job-1", `{"contact":"Peer 1"}`, summaryNow)

	summary, err := uc.Today()
	require.NoError(t, err)
	// Zero-count categories are skipped; order is found, applied, outreach,
	// responses, interviews.
	require.Len(t, summary.SummaryLines, 2)
	assert.Contains(t, summary.SummaryLines[0], "Found 1")
	assert.Contains(t, summary.SummaryLines[1], "Received 1")
}

func TestTopPriorities(t *testing.T) {
	uc, jobs, _, plans, activity := newSummaryUsecaseForTest(t)

	require.NoError(t, jobs.Create(&model.Job{
		JobID: "job-overdue", Company: "A", Role: "PM", Track: model.TrackPM,
		Status: model.StatusNew, ApplyBy: summaryNow.Add(-2 * time.Hour),
	}))
	require.NoError(t, jobs.Create(&model.Job{
		JobID: "job-due", Company: "B", Role: "PM", Track: model.TrackPM,
		Status: model.StatusPrepared, ApplyBy: summaryNow.Add(5 * time.Hour),
	}))
	require.NoError(t, jobs.Create(&model.Job{
		JobID: "job-ok", Company: "C", Role: "PM", Track: model.TrackPM,
		Status: model.StatusNew, ApplyBy: summaryNow.Add(5 * 24 * time.Hour),
	}))
	// Already submitted: no longer actionable even though the deadline passed.
	require.NoError(t, jobs.Create(&model.Job{
		JobID: "job-done", Company: "D", Role: "PM", Track: model.TrackPM,
		Status: model.StatusSubmitted, ApplyBy: summaryNow.Add(-48 * time.Hour),
	}))

	followups, _ := json.Marshal(map[string]time.Time{
		"Peer 1":    summaryNow.Add(-24 * time.Hour),
		"Insider 1": summaryNow.Add(-24 * time.Hour),
		"Peer 2":    summaryNow.Add(7 * 24 * time.Hour),
	})
	contacts, _ := json.Marshal([]PlanContact{})
	messages, _ := json.Marshal(map[string]string{})
	require.NoError(t, plans.Upsert(&model.OutreachPlan{
		JobID: "job-done", Contacts: string(contacts), Messages: string(messages),
		Followups: string(followups), CreatedAt: summaryNow.Add(-72 * time.Hour),
	}))
	// Insider 1 already answered, so only Peer 1 remains actionable.
	appendEvent(activity, model.EventResponseReceived, "job-done", `{"contact":"Insider 1"}`, summaryNow.Add(-12*time.Hour))

	summary, err := uc.Today()
	require.NoError(t, err)

	require.Len(t, summary.TopPriorities, 3)
	assert.Equal(t, "job-overdue", summary.TopPriorities[0].JobID)
	assert.Equal(t, "job", summary.TopPriorities[0].Kind)
	assert.Equal(t, "job-due", summary.TopPriorities[1].JobID)
	assert.Equal(t, "followup", summary.TopPriorities[2].Kind)
	assert.Contains(t, summary.TopPriorities[2].Label, "Peer 1")
}

func TestSummarizeIsIdempotent(t *testing.T) {
	uc, jobs, _, _, activity := newSummaryUsecaseForTest(t)

	require.NoError(t, jobs.Create(&model.Job{
		JobID: "job-1", Company: "A", Role: "PM", Track: model.TrackPM,
		Status: model.StatusNew, ApplyBy: summaryNow.Add(-time.Hour),
	}))
	appendEvent(activity, model.EventJobCreated, "job-1", "", summaryNow)

	first, err := uc.Today()
	require.NoError(t, err)
	second, err := uc.Today()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDashboardStats(t *testing.T) {
	uc, jobs, _, plans, activity := newSummaryUsecaseForTest(t)

	statuses := []string{
		model.StatusNew, model.StatusPrepared, model.StatusSubmitted,
		model.StatusSubmitted, model.StatusInterview, model.StatusRejected,
	}
	for i, status := range statuses {
		require.NoError(t, jobs.Create(&model.Job{
			JobID: string(rune('a'+i)) + "-job", Company: "X", Role: "PM",
			Track: model.TrackPM, Status: status, ApplyBy: summaryNow,
		}))
	}

	contacts, _ := json.Marshal([]PlanContact{{Name: "Peer 1"}, {Name: "Peer 2"}})
	require.NoError(t, plans.Upsert(&model.OutreachPlan{
		JobID: "a-job", Contacts: string(contacts),
		Messages: "{}", Followups: "{}",
	}))

	for i := 0; i < 12; i++ {
		appendEvent(activity, model.EventJobCreated, "a-job", "", summaryNow)
	}

	stats, err := uc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalJobs)
	assert.Equal(t, 2, stats.JobsApplied)
	assert.Equal(t, 2, stats.JobsPending)
	assert.Equal(t, 1, stats.InterviewsScheduled)
	assert.Equal(t, 2, stats.OutreachSent)
	// Dashboard shows only the most recent window of activity.
	assert.Len(t, stats.RecentActivity, 10)
}
