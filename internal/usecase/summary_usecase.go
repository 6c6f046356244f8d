package usecase

import (
	"fmt"
	"sort"
	"time"

	"career-autopilot/internal/model"
	"career-autopilot/internal/sla"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type SummaryCounts struct {
	JobsFound           int `json:"jobs_found"`
	JobsApplied         int `json:"jobs_applied"`
	OutreachSent        int `json:"outreach_sent"`
	ResponsesReceived   int `json:"responses_received"`
	InterviewsScheduled int `json:"interviews_scheduled"`
}

type PriorityItem struct {
	Kind    string    `json:"kind"` // "job" or "followup"
	JobID   string    `json:"job_id"`
	Label   string    `json:"label"`
	DueDate time.Time `json:"due_date"`
}

type DailySummary struct {
	Day           string         `json:"day"`
	Counts        SummaryCounts  `json:"counts"`
	SkillsGaps    []string       `json:"skills_gaps"`
	SummaryLines  []string       `json:"summary_lines"`
	TopPriorities []PriorityItem `json:"top_priorities"`
}

type DashboardStats struct {
	TotalJobs           int                   `json:"total_jobs"`
	JobsApplied         int                   `json:"jobs_applied"`
	JobsPending         int                   `json:"jobs_pending"`
	OutreachSent        int                   `json:"outreach_sent"`
	InterviewsScheduled int                   `json:"interviews_scheduled"`
	RecentActivity      []model.ActivityEvent `json:"recent_activity"`
}

// SummaryUsecase rolls activity history into a daily digest and dashboard
// stats. All reads, no writes: every call recomputes from the stores so there
// are no counters to drift.
type SummaryUsecase struct {
	jobs     JobStore
	packs    ApplyPackStore
	plans    OutreachStore
	activity ActivityStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewSummaryUsecase(jobs JobStore, packs ApplyPackStore, plans OutreachStore, activity ActivityStore, logger *zap.Logger) *SummaryUsecase {
	return &SummaryUsecase{
		jobs:     jobs,
		packs:    packs,
		plans:    plans,
		activity: activity,
		logger:   logger,
		now:      time.Now,
	}
}

// Today summarizes the current UTC calendar day.
func (uc *SummaryUsecase) Today() (*DailySummary, error) {
	return uc.Summarize(uc.now().UTC())
}

// Summarize computes the digest for the calendar day containing t.
func (uc *SummaryUsecase) Summarize(t time.Time) (*DailySummary, error) {
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	events, err := uc.activity.ListByRange(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	counts := SummaryCounts{}
	for _, e := range events {
		switch e.Type {
		case model.EventJobCreated:
			counts.JobsFound++
		case model.EventStatusChanged:
			switch gjson.Get(e.Detail, "to").String() {
			case model.StatusSubmitted:
				counts.JobsApplied++
			case model.StatusInterview:
				counts.InterviewsScheduled++
			}
		case model.EventOutreachPlanned:
			counts.OutreachSent += int(gjson.Get(e.Detail, "contact_count").Int())
		case model.EventResponseReceived:
			counts.ResponsesReceived++
		}
	}

	gaps, err := uc.skillsGaps(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	priorities, err := uc.topPriorities(t)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		Day:           dayStart.Format("2006-01-02"),
		Counts:        counts,
		SkillsGaps:    gaps,
		SummaryLines:  summaryLines(counts),
		TopPriorities: priorities,
	}
	uc.logger.Info("daily summary computed",
		zap.String("day", summary.Day),
		zap.Int("jobs_found", counts.JobsFound),
		zap.Int("priorities", len(priorities)))
	return summary, nil
}

func (uc *SummaryUsecase) skillsGaps(from, to time.Time) ([]string, error) {
	packs, err := uc.packs.ListByDay(from, to)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var gaps []string
	for _, p := range packs {
		for _, s := range gjson.Parse(p.MissingSkills).Array() {
			skill := s.String()
			if !seen[skill] {
				seen[skill] = true
				gaps = append(gaps, skill)
			}
		}
	}
	sort.Strings(gaps)
	return gaps, nil
}

// summaryLines renders one sentence per non-zero count in fixed category
// order: found, applied, outreach, responses, interviews.
func summaryLines(c SummaryCounts) []string {
	var lines []string
	if c.JobsFound > 0 {
		lines = append(lines, fmt.Sprintf("Found %d new job(s).", c.JobsFound))
	}
	if c.JobsApplied > 0 {
		lines = append(lines, fmt.Sprintf("Submitted %d application(s).", c.JobsApplied))
	}
	if c.OutreachSent > 0 {
		lines = append(lines, fmt.Sprintf("Planned outreach to %d contact(s).", c.OutreachSent))
	}
	if c.ResponsesReceived > 0 {
		lines = append(lines, fmt.Sprintf("Received %d response(s).", c.ResponsesReceived))
	}
	if c.InterviewsScheduled > 0 {
		lines = append(lines, fmt.Sprintf("Scheduled %d interview(s).", c.InterviewsScheduled))
	}
	return lines
}

// topPriorities lists overdue jobs, then due-today jobs, then overdue
// unanswered follow-ups, each group ordered by date ascending.
func (uc *SummaryUsecase) topPriorities(now time.Time) ([]PriorityItem, error) {
	jobs, err := uc.jobs.ListAll()
	if err != nil {
		return nil, err
	}

	var overdue, dueToday []PriorityItem
	for _, j := range jobs {
		// Only jobs still heading toward submission are actionable.
		if model.StatusRank(j.Status) >= model.StatusRank(model.StatusSubmitted) {
			continue
		}
		switch sla.Classify(j.ApplyBy, now) {
		case sla.Overdue:
			overdue = append(overdue, PriorityItem{
				Kind:    "job",
				JobID:   j.JobID,
				Label:   fmt.Sprintf("Apply to %s at %s (overdue)", j.Role, j.Company),
				DueDate: j.ApplyBy,
			})
		case sla.DueToday:
			dueToday = append(dueToday, PriorityItem{
				Kind:    "job",
				JobID:   j.JobID,
				Label:   fmt.Sprintf("Apply to %s at %s (due today)", j.Role, j.Company),
				DueDate: j.ApplyBy,
			})
		}
	}
	sortPriorities(overdue)
	sortPriorities(dueToday)

	followups, err := uc.pendingFollowups(now)
	if err != nil {
		return nil, err
	}

	priorities := append(overdue, dueToday...)
	return append(priorities, followups...), nil
}

func (uc *SummaryUsecase) pendingFollowups(now time.Time) ([]PriorityItem, error) {
	plans, err := uc.plans.ListAll()
	if err != nil {
		return nil, err
	}

	responded, err := uc.respondedContacts()
	if err != nil {
		return nil, err
	}

	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)

	var items []PriorityItem
	for _, p := range plans {
		followups := gjson.Parse(p.Followups).Map()
		names := make([]string, 0, len(followups))
		for name := range followups {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			due, err := time.Parse(time.RFC3339, followups[name].String())
			if err != nil {
				continue
			}
			if !due.Before(endOfDay) {
				continue
			}
			if responded[p.JobID+"/"+name] {
				continue
			}
			items = append(items, PriorityItem{
				Kind:    "followup",
				JobID:   p.JobID,
				Label:   fmt.Sprintf("Follow up with %s on job %s", name, p.JobID),
				DueDate: due,
			})
		}
	}
	sortPriorities(items)
	return items, nil
}

// respondedContacts scans the full response history; a reply permanently
// clears that contact's follow-up from the priority list.
func (uc *SummaryUsecase) respondedContacts() (map[string]bool, error) {
	events, err := uc.activity.ListByRange(time.Time{}, uc.now().UTC().Add(time.Hour))
	if err != nil {
		return nil, err
	}
	responded := make(map[string]bool)
	for _, e := range events {
		if e.Type == model.EventResponseReceived {
			contact := gjson.Get(e.Detail, "contact").String()
			responded[e.JobID+"/"+contact] = true
		}
	}
	return responded, nil
}

func sortPriorities(items []PriorityItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].DueDate.Equal(items[j].DueDate) {
			return items[i].DueDate.Before(items[j].DueDate)
		}
		return items[i].JobID < items[j].JobID
	})
}

// Stats computes the dashboard aggregate from current job state plus the
// stored plans and recent history.
func (uc *SummaryUsecase) Stats() (*DashboardStats, error) {
	jobs, err := uc.jobs.ListAll()
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TotalJobs: len(jobs)}
	for _, j := range jobs {
		switch j.Status {
		case model.StatusSubmitted:
			stats.JobsApplied++
		case model.StatusInterview:
			stats.InterviewsScheduled++
		case model.StatusNew, model.StatusPrepared, model.StatusPdfReady, model.StatusAutofilled:
			stats.JobsPending++
		}
	}

	plans, err := uc.plans.ListAll()
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		stats.OutreachSent += len(gjson.Parse(p.Contacts).Array())
	}

	recent, err := uc.activity.Recent(10)
	if err != nil {
		return nil, err
	}
	stats.RecentActivity = recent

	return stats, nil
}
