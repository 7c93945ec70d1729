// Package keyrepeat emulates key repeat under application control: the
// callback runs once on press, then after an initial delay at a fixed
// interval for as long as the key is held.
//
// Timers are bubbletea ticks. Every tick carries the generation of the
// session that armed it, so ticks from a stopped session are dropped.
package keyrepeat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Defaults for the repeat cadence.
const (
	DefaultDelay      = 500 * time.Millisecond
	DefaultInterval   = 50 * time.Millisecond
	DefaultEchoWindow = 100 * time.Millisecond
	DefaultHoldWindow = 400 * time.Millisecond
)

// Callback is invoked on the initial press and on every repeat.
type Callback func() tea.Cmd

type phase int

const (
	phaseDelay phase = iota
	phaseAwaitHold
	phaseInterval
)

// TickMsg drives the delay and interval timers.
type TickMsg struct {
	Gen   int
	phase phase
}

// ReleaseMsg fires when no echo of a held key arrived within the echo window.
type ReleaseMsg struct {
	Key string
	Seq int
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay sets the default delay before repeating starts.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithInterval sets the default repeat interval.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithEchoWindow sets the silence after which a held key counts as released.
func WithEchoWindow(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.echoWindow = d
		}
	}
}

// WithHoldConfirmation is for hosts that never report key releases. A new
// session starts out unconfirmed and only begins repeating once an echo of
// the key was observed; if none arrives within window after the delay the
// session ends.
func WithHoldConfirmation(window time.Duration) Option {
	return func(c *Controller) {
		c.confirmHolds = true
		if window > 0 {
			c.holdWindow = window
		}
	}
}

// WithClock replaces the clock used to time key-downs.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.holds.now = now
		}
	}
}

// HoldTracker tells auto-repeat echoes from fresh presses on hosts that
// never report key releases. A key-down of the same key within the echo
// window of the previous one is an echo.
type HoldTracker struct {
	window time.Duration
	now    func() time.Time
	key    string
	last   time.Time
}

// Seen records a key-down and reports whether it is an echo.
func (h *HoldTracker) Seen(key string) bool {
	t := h.now()
	echo := key == h.key && !h.last.IsZero() && t.Sub(h.last) <= h.window
	h.key, h.last = key, t
	return echo
}

// Reset forgets the last key-down.
func (h *HoldTracker) Reset() {
	h.key = ""
	h.last = time.Time{}
}

// StartOption overrides the cadence of a single session.
type StartOption func(*session)

// Delay overrides the delay for one session.
func Delay(d time.Duration) StartOption {
	return func(s *session) { s.delay = d }
}

// Interval overrides the interval for one session.
func Interval(d time.Duration) StartOption {
	return func(s *session) { s.interval = d }
}

type session struct {
	key       string
	callback  Callback
	delay     time.Duration
	interval  time.Duration
	held      bool
	inDelay   bool
	repeating bool
	waited    time.Duration
}

// Controller owns at most one repeat session.
type Controller struct {
	delay        time.Duration
	interval     time.Duration
	echoWindow   time.Duration
	holdWindow   time.Duration
	confirmHolds bool
	holds        HoldTracker

	cur        *session
	gen        int
	releaseSeq int
}

// New creates a controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		delay:      DefaultDelay,
		interval:   DefaultInterval,
		echoWindow: DefaultEchoWindow,
		holdWindow: DefaultHoldWindow,
		holds:      HoldTracker{now: time.Now},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.holds.window = c.echoWindow
	return c
}

// Start cancels any running session, invokes callback once and arms the
// delay timer for key.
func (c *Controller) Start(key string, callback Callback, opts ...StartOption) tea.Cmd {
	c.Stop()
	c.releaseSeq++
	s := &session{
		key:      key,
		callback: callback,
		delay:    c.delay,
		interval: c.interval,
		held:     !c.confirmHolds,
		inDelay:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	c.cur = s

	var first tea.Cmd
	if callback != nil {
		first = callback()
	}
	// The callback may have stopped the session itself.
	if c.cur != s {
		return first
	}
	return tea.Batch(first, c.tick(s.delay, phaseDelay))
}

// Stop ends the current session. Pending ticks become stale.
func (c *Controller) Stop() {
	c.cur = nil
	c.gen++
}

// Active reports whether a session exists for key, or for any key when key
// is empty.
func (c *Controller) Active(key string) bool {
	return c.cur != nil && (key == "" || c.cur.key == key)
}

// IsRepeating reports whether key (any key when empty) is in the
// accelerated phase.
func (c *Controller) IsRepeating(key string) bool {
	return c.Active(key) && c.cur.repeating
}

// Press reports whether a key-down for key is a new physical press. A
// press of the key that owns the running session is an echo and returns
// false. A press of any other key stops the running session.
//
// With hold confirmation, a press of the session key before its delay has
// elapsed counts as a new tap unless it follows the previous key-down
// within the echo window.
func (c *Controller) Press(key string) bool {
	echo := c.holds.Seen(key)
	if c.cur == nil {
		return true
	}
	if c.cur.key == key {
		if !c.confirmHolds || !c.cur.inDelay || echo {
			return false
		}
	}
	c.Stop()
	return true
}

// Echo records an auto-repeat echo of the held key. It confirms the hold
// and arms the release check.
func (c *Controller) Echo(key string) tea.Cmd {
	if !c.Active(key) {
		return nil
	}
	c.cur.held = true
	c.releaseSeq++
	seq := c.releaseSeq
	return tea.Tick(c.echoWindow, func(time.Time) tea.Msg {
		return ReleaseMsg{Key: key, Seq: seq}
	})
}

// Release ends the session if it belongs to key.
func (c *Controller) Release(key string) {
	if c.Active(key) {
		c.Stop()
	}
}

// Blur force-stops any session and forgets held-key bookkeeping.
func (c *Controller) Blur() {
	c.Stop()
	c.releaseSeq++
	c.holds.Reset()
}

// Update advances the timers. Messages other than TickMsg and ReleaseMsg
// are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		return c.handleTick(msg)
	case ReleaseMsg:
		if msg.Seq == c.releaseSeq {
			c.Release(msg.Key)
		}
	}
	return nil
}

func (c *Controller) handleTick(msg TickMsg) tea.Cmd {
	s := c.cur
	if s == nil || msg.Gen != c.gen {
		return nil
	}
	switch msg.phase {
	case phaseDelay, phaseAwaitHold:
		s.inDelay = false
		if !s.held {
			s.waited += s.interval
			if msg.phase == phaseAwaitHold && s.waited > c.holdWindow {
				c.Stop()
				return nil
			}
			return c.tick(s.interval, phaseAwaitHold)
		}
		s.repeating = true
		return c.tick(s.interval, phaseInterval)
	case phaseInterval:
		var cmd tea.Cmd
		if s.callback != nil {
			cmd = s.callback()
		}
		if c.cur != s {
			return cmd
		}
		return tea.Batch(cmd, c.tick(s.interval, phaseInterval))
	}
	return nil
}

func (c *Controller) tick(d time.Duration, p phase) tea.Cmd {
	gen := c.gen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen, phase: p}
	})
}
