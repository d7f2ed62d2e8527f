package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	c := NewManual(epoch)
	var fired []string

	c.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "c") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "a") })
	c.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "b") })

	c.Advance(150 * time.Millisecond)
	assert.Equal(t, []string{"a"}, fired)
	assert.Equal(t, epoch.Add(150*time.Millisecond), c.Now())

	c.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Equal(t, 0, c.Pending())
}

func TestManualSameDeadlineKeepsScheduleOrder(t *testing.T) {
	c := NewManual(epoch)
	var fired []int
	for i := 0; i < 5; i++ {
		i := i
		c.AfterFunc(time.Second, func() { fired = append(fired, i) })
	}

	c.Advance(time.Second)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, fired)
}

func TestManualStop(t *testing.T) {
	c := NewManual(epoch)
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop())

	c.Advance(2 * time.Second)
	assert.False(t, fired)
	assert.Equal(t, 0, c.Pending())
}

func TestManualStopAfterFire(t *testing.T) {
	c := NewManual(epoch)
	timer := c.AfterFunc(time.Millisecond, func() {})

	c.Advance(time.Millisecond)
	assert.False(t, timer.Stop())
}

func TestManualCallbackSeesDeadlineAndCanReschedule(t *testing.T) {
	c := NewManual(epoch)
	var seen []time.Time

	c.AfterFunc(time.Second, func() {
		seen = append(seen, c.Now())
		c.AfterFunc(time.Second, func() { seen = append(seen, c.Now()) })
	})

	c.Advance(5 * time.Second)
	require.Len(t, seen, 2)
	assert.Equal(t, epoch.Add(time.Second), seen[0])
	assert.Equal(t, epoch.Add(2*time.Second), seen[1])
	assert.Equal(t, epoch.Add(5*time.Second), c.Now())
}

func TestManualCallbackCanStopSibling(t *testing.T) {
	c := NewManual(epoch)
	var second Timer
	fired := false

	c.AfterFunc(time.Second, func() { second.Stop() })
	second = c.AfterFunc(2*time.Second, func() { fired = true })

	c.Advance(3 * time.Second)
	assert.False(t, fired)
}

func TestRealClockFires(t *testing.T) {
	done := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestRealClockStop(t *testing.T) {
	timer := Real().AfterFunc(time.Hour, func() {})
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
}
