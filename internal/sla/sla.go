// Package sla classifies an application deadline's urgency. Classification is
// a pure function of the deadline and the clock, so it is computed at read
// time and never stored on the job.
package sla

import "time"

type Classification string

const (
	Overdue  Classification = "overdue"
	DueToday Classification = "due_today"
	OnTrack  Classification = "on_track"
)

// Classify returns overdue when applyBy has passed, due_today when it falls
// within the next 24 hours, on_track otherwise.
func Classify(applyBy, now time.Time) Classification {
	if applyBy.Before(now) {
		return Overdue
	}
	if applyBy.Sub(now) < 24*time.Hour {
		return DueToday
	}
	return OnTrack
}

// Urgent reports whether a classification should be surfaced as a risk.
func Urgent(c Classification) bool {
	return c == Overdue || c == DueToday
}
