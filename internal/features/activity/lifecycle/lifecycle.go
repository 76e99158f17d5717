// Package lifecycle derives the temporal phase of an activity from its
// start/end timestamps. All functions are pure; the caller supplies
// "now" in epoch seconds so the phase is reproducible in tests.
//
// Boundary semantics are strict greater-than on both ends: now equal to
// start counts as not yet started, now equal to end counts as still in
// range.
package lifecycle

import "github.com/FBSocial/subway2-team-activities/internal/features/activity/models"

// HasStarted reports whether the activity has started. A zero start
// time means the window never opens.
func HasStarted(startTime, now int64) bool {
	return startTime != 0 && now > startTime
}

// HasEnded reports whether the activity has ended. A zero end time
// means the activity has no end.
func HasEnded(endTime, now int64) bool {
	return endTime != 0 && now > endTime
}

// InProgress reports whether the activity has started and not ended.
func InProgress(startTime, endTime, now int64) bool {
	return HasStarted(startTime, now) && !HasEnded(endTime, now)
}

// NotStartedOrEnded is the negation of InProgress, kept as its own
// predicate because pages branch on it directly.
func NotStartedOrEnded(startTime, endTime, now int64) bool {
	return !HasStarted(startTime, now) || HasEnded(endTime, now)
}

// Evaluate computes all four flags at once for a snapshot.
func Evaluate(activity *models.Activity, now int64) models.ActivityStatus {
	started := HasStarted(activity.StartTime, now)
	ended := HasEnded(activity.EndTime, now)
	return models.ActivityStatus{
		IsActivityStarted:           started,
		IsActivityEnded:             ended,
		IsActivityInProgress:        started && !ended,
		IsActivityNotStartedOrEnded: !started || ended,
	}
}
