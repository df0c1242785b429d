package schedule

import "time"

// Step is run once per elapsed interval. Returning false stops the task.
type Step func() bool

// Task is a repeating step registered on a Clock.
type Task struct {
	interval time.Duration
	next     time.Duration
	step     Step
	active   bool
}

// Cancel stops the task. Cancelling a stopped or nil task is a no-op.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.active = false
}

// Active reports whether the task will run again.
func (t *Task) Active() bool {
	return t != nil && t.active
}

// Clock is a manually advanced time source. The game loop advances it once per
// tick and due steps run on the caller's goroutine, in registration order.
type Clock struct {
	now   time.Duration
	tasks []*Task
}

func NewClock() *Clock {
	return &Clock{}
}

// Now returns the total time advanced so far.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Every registers step to run every interval, first running one interval from now.
func (c *Clock) Every(interval time.Duration, step Step) *Task {
	if interval <= 0 {
		interval = time.Millisecond
	}
	t := &Task{
		interval: interval,
		next:     c.now + interval,
		step:     step,
		active:   step != nil,
	}
	if t.active {
		c.tasks = append(c.tasks, t)
	}
	return t
}

// Advance moves the clock forward by dt and runs every step that fell due,
// including missed ones when dt spans several intervals.
func (c *Clock) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := c.now + dt

	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		c.now = t.next
		t.next += t.interval
		if !t.step() {
			t.active = false
		}
	}

	c.now = target
	c.prune()
}

// Pending returns the number of active tasks.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.tasks {
		if t.active {
			n++
		}
	}
	return n
}

func (c *Clock) nextDue(target time.Duration) *Task {
	var due *Task
	for _, t := range c.tasks {
		if !t.active || t.next > target {
			continue
		}
		if due == nil || t.next < due.next {
			due = t
		}
	}
	return due
}

func (c *Clock) prune() {
	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if t.active {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(c.tasks); i++ {
		c.tasks[i] = nil
	}
	c.tasks = kept
}
