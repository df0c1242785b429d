package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockEvery(t *testing.T) {
	cases := []struct {
		name     string
		interval time.Duration
		advance  []time.Duration
		want     int
	}{
		{"before_first_interval", 25 * time.Millisecond, []time.Duration{24 * time.Millisecond}, 0},
		{"exact_interval", 25 * time.Millisecond, []time.Duration{25 * time.Millisecond}, 1},
		{"catch_up", 25 * time.Millisecond, []time.Duration{100 * time.Millisecond}, 4},
		{"accumulates_frames", 25 * time.Millisecond, []time.Duration{16 * time.Millisecond, 16 * time.Millisecond, 16 * time.Millisecond}, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clock := NewClock()
			runs := 0
			clock.Every(c.interval, func() bool {
				runs++
				return true
			})
			for _, dt := range c.advance {
				clock.Advance(dt)
			}
			assert.Equal(t, c.want, runs)
		})
	}
}

func TestClockStepStopsTask(t *testing.T) {
	clock := NewClock()
	runs := 0
	task := clock.Every(10*time.Millisecond, func() bool {
		runs++
		return runs < 3
	})

	clock.Advance(time.Second)
	assert.Equal(t, 3, runs)
	assert.False(t, task.Active())
	assert.Zero(t, clock.Pending())
}

func TestClockCancel(t *testing.T) {
	clock := NewClock()
	runs := 0
	task := clock.Every(10*time.Millisecond, func() bool {
		runs++
		return true
	})

	clock.Advance(20 * time.Millisecond)
	task.Cancel()
	task.Cancel()
	clock.Advance(time.Second)

	assert.Equal(t, 2, runs)
	assert.False(t, task.Active())

	var nilTask *Task
	nilTask.Cancel()
	assert.False(t, nilTask.Active())
}

func TestClockStepCanReplaceTask(t *testing.T) {
	clock := NewClock()
	var first, second *Task
	secondRuns := 0

	first = clock.Every(10*time.Millisecond, func() bool {
		first.Cancel()
		second = clock.Every(10*time.Millisecond, func() bool {
			secondRuns++
			return true
		})
		return true
	})

	clock.Advance(30 * time.Millisecond)
	require.NotNil(t, second)
	assert.False(t, first.Active())
	assert.True(t, second.Active())
	assert.Equal(t, 2, secondRuns)
	assert.Equal(t, 1, clock.Pending())
	assert.Equal(t, 30*time.Millisecond, clock.Now())
}

func TestClockIgnoresNilStepAndNegativeAdvance(t *testing.T) {
	clock := NewClock()
	task := clock.Every(time.Millisecond, nil)
	assert.False(t, task.Active())

	clock.Advance(-time.Second)
	assert.Zero(t, clock.Now())
}
