package keyrepeat

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter(n *int) Callback {
	return func() tea.Cmd {
		*n++
		return nil
	}
}

func delayTick(c *Controller) TickMsg    { return TickMsg{Gen: c.gen, phase: phaseDelay} }
func awaitTick(c *Controller) TickMsg    { return TickMsg{Gen: c.gen, phase: phaseAwaitHold} }
func intervalTick(c *Controller) TickMsg { return TickMsg{Gen: c.gen, phase: phaseInterval} }

func TestStart_InvokesOnceAndArmsDelay(t *testing.T) {
	c := New()
	calls := 0

	cmd := c.Start("down", counter(&calls))

	assert.Equal(t, 1, calls)
	assert.NotNil(t, cmd)
	assert.True(t, c.Active("down"))
	assert.False(t, c.IsRepeating(""))
}

func TestRepeatLifecycle(t *testing.T) {
	c := New()
	calls := 0
	c.Start("down", counter(&calls))

	require.NotNil(t, c.Update(delayTick(c)))
	assert.True(t, c.IsRepeating("down"))
	assert.True(t, c.IsRepeating(""))
	assert.False(t, c.IsRepeating("up"))
	assert.Equal(t, 1, calls, "delay expiry alone does not invoke the callback")

	c.Update(intervalTick(c))
	c.Update(intervalTick(c))
	assert.Equal(t, 3, calls)

	stale := intervalTick(c)
	c.Stop()
	assert.Nil(t, c.Update(stale))
	assert.Equal(t, 3, calls)
	assert.False(t, c.IsRepeating(""))
}

func TestPress(t *testing.T) {
	c := New()
	calls := 0

	assert.True(t, c.Press("down"))
	c.Start("down", counter(&calls))
	assert.False(t, c.Press("down"), "echo of the held key")

	stale := delayTick(c)
	assert.True(t, c.Press("up"), "different key is a new press")
	assert.False(t, c.Active(""))
	assert.Nil(t, c.Update(stale))
	assert.Equal(t, 1, calls)
}

// fakeClock advances by step on every reading.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (f *fakeClock) read() time.Time {
	f.now = f.now.Add(f.step)
	return f.now
}

func TestPressWithHoldConfirmation(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0), step: 200 * time.Millisecond}
	c := New(WithHoldConfirmation(100*time.Millisecond), WithClock(clock.read))
	calls := 0

	require.True(t, c.Press("down"))
	c.Start("down", counter(&calls))
	assert.True(t, c.Press("down"), "second tap within the delay")
	assert.False(t, c.Active(""))

	c.Start("down", counter(&calls))
	c.Update(delayTick(c))
	assert.False(t, c.Press("down"), "after the delay a press is an echo")
	assert.Equal(t, 2, calls)
}

func TestEchoesDuringDelay(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0), step: 30 * time.Millisecond}
	c := New(WithHoldConfirmation(0), WithClock(clock.read))
	calls := 0

	// Host repeat starts before our delay: echoes arrive every 30 ms.
	require.True(t, c.Press("down"))
	c.Start("down", counter(&calls))
	for range 10 {
		if c.Press("down") {
			c.Start("down", counter(&calls))
			continue
		}
		c.Echo("down")
	}
	assert.Equal(t, 1, calls, "echoes do not move")
	assert.True(t, c.Active("down"))

	c.Update(delayTick(c))
	assert.True(t, c.IsRepeating("down"))
	c.Update(intervalTick(c))
	assert.Equal(t, 2, calls)
}

func TestHoldTracker(t *testing.T) {
	tests := []struct {
		name string
		key  string
		gap  time.Duration
		echo bool
	}{
		{"same key within window", "down", 30 * time.Millisecond, true},
		{"same key at window edge", "down", 100 * time.Millisecond, true},
		{"same key after window", "down", 150 * time.Millisecond, false},
		{"other key within window", "up", 30 * time.Millisecond, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Unix(0, 0)}
			h := HoldTracker{window: 100 * time.Millisecond, now: clock.read}

			assert.False(t, h.Seen("down"), "first key-down")
			clock.step = tt.gap
			assert.Equal(t, tt.echo, h.Seen(tt.key))
		})
	}

	t.Run("reset forgets the key", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0), step: time.Millisecond}
		h := HoldTracker{window: 100 * time.Millisecond, now: clock.read}
		h.Seen("down")
		h.Reset()
		assert.False(t, h.Seen("down"))
	})
}

func TestStartReplacesSession(t *testing.T) {
	c := New()
	down, up := 0, 0
	c.Start("down", counter(&down))
	stale := delayTick(c)

	c.Start("up", counter(&up))
	c.Update(stale)

	assert.False(t, c.IsRepeating(""))
	assert.True(t, c.Active("up"))
	assert.Equal(t, 1, down)
	assert.Equal(t, 1, up)
}

func TestBlurStopsSession(t *testing.T) {
	c := New()
	calls := 0
	c.Start("down", counter(&calls))
	c.Update(delayTick(c))
	tick := intervalTick(c)

	c.Blur()
	c.Update(tick)

	assert.False(t, c.Active(""))
	assert.Equal(t, 1, calls)
}

func TestRelease(t *testing.T) {
	c := New()
	c.Start("down", nil)
	c.Release("up")
	assert.True(t, c.Active("down"))
	c.Release("down")
	assert.False(t, c.Active("down"))
}

func TestCallbackMayStopSession(t *testing.T) {
	c := New()
	cmd := c.Start("down", func() tea.Cmd {
		c.Stop()
		return nil
	})
	assert.Nil(t, cmd)
	assert.False(t, c.Active(""))
}

func TestHoldConfirmation(t *testing.T) {
	t.Run("tap without echo never repeats", func(t *testing.T) {
		c := New(WithHoldConfirmation(100*time.Millisecond), WithInterval(50*time.Millisecond))
		calls := 0
		c.Start("down", counter(&calls))

		c.Update(delayTick(c))
		assert.False(t, c.IsRepeating(""))
		c.Update(awaitTick(c))
		assert.True(t, c.Active("down"))
		c.Update(awaitTick(c))

		assert.False(t, c.Active(""))
		assert.Equal(t, 1, calls)
	})

	t.Run("echo confirms the hold", func(t *testing.T) {
		c := New(WithHoldConfirmation(100 * time.Millisecond))
		calls := 0
		c.Start("down", counter(&calls))

		c.Update(delayTick(c))
		require.NotNil(t, c.Echo("down"))
		c.Update(awaitTick(c))
		assert.True(t, c.IsRepeating("down"))
		c.Update(intervalTick(c))
		assert.Equal(t, 2, calls)
	})
}

func TestEchoRelease(t *testing.T) {
	c := New()
	c.Start("down", nil)

	assert.Nil(t, c.Echo("up"), "echo of a key without a session")
	c.Echo("down")
	stale := ReleaseMsg{Key: "down", Seq: c.releaseSeq}
	c.Echo("down")

	c.Update(stale)
	assert.True(t, c.Active("down"), "superseded release check")

	c.Update(ReleaseMsg{Key: "down", Seq: c.releaseSeq})
	assert.False(t, c.Active("down"))
}

func TestStartOptions(t *testing.T) {
	c := New(WithDelay(time.Second))
	c.Start("pgdown", nil, Delay(10*time.Millisecond), Interval(5*time.Millisecond))

	require.NotNil(t, c.cur)
	assert.Equal(t, 10*time.Millisecond, c.cur.delay)
	assert.Equal(t, 5*time.Millisecond, c.cur.interval)
}
