package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FBSocial/subway2-team-activities/internal/features/activity/models"
)

func TestBoundaries(t *testing.T) {
	const (
		start int64 = 100
		end   int64 = 200
	)

	tests := []struct {
		name        string
		now         int64
		started     bool
		ended       bool
		inProgress  bool
		outOfWindow bool
	}{
		{"at start instant", 100, false, false, false, true},
		{"mid window", 150, true, false, true, false},
		{"at end instant", 200, true, false, true, false},
		{"past end", 201, true, true, false, true},
		{"before start", 50, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.started, HasStarted(start, tt.now))
			assert.Equal(t, tt.ended, HasEnded(end, tt.now))
			assert.Equal(t, tt.inProgress, InProgress(start, end, tt.now))
			assert.Equal(t, tt.outOfWindow, NotStartedOrEnded(start, end, tt.now))
		})
	}
}

func TestZeroTimestamps(t *testing.T) {
	// Нулевое время старта: окно никогда не открывается
	assert.False(t, HasStarted(0, 1e9))
	assert.False(t, InProgress(0, 0, 1e9))
	assert.True(t, NotStartedOrEnded(0, 0, 1e9))

	// Zero end means the window never closes once opened.
	assert.False(t, HasEnded(0, 1e9))
	assert.True(t, InProgress(100, 0, 1e9))
}

func TestFlagAlgebra(t *testing.T) {
	// InProgress == Started && !Ended and NotStartedOrEnded ==
	// !InProgress must hold on every point of the grid.
	times := []int64{0, 50, 100, 101, 150, 200, 201, 1 << 40}
	for _, start := range []int64{0, 100} {
		for _, end := range []int64{0, 200} {
			for _, now := range times {
				started := HasStarted(start, now)
				ended := HasEnded(end, now)
				assert.Equal(t, started && !ended, InProgress(start, end, now))
				assert.Equal(t, !InProgress(start, end, now), NotStartedOrEnded(start, end, now))
			}
		}
	}
}

func TestEvaluate(t *testing.T) {
	activity := &models.Activity{StartTime: 100, EndTime: 200}

	status := Evaluate(activity, 150)
	assert.True(t, status.IsActivityStarted)
	assert.False(t, status.IsActivityEnded)
	assert.True(t, status.IsActivityInProgress)
	assert.False(t, status.IsActivityNotStartedOrEnded)

	status = Evaluate(activity, 201)
	assert.True(t, status.IsActivityStarted)
	assert.True(t, status.IsActivityEnded)
	assert.False(t, status.IsActivityInProgress)
	assert.True(t, status.IsActivityNotStartedOrEnded)
}
