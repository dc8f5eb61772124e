package game

import (
	"strings"
	"sync"
	"time"

	"eco-quest-service/internal/domain"
)

// Event is a single input to the controller.
type Event struct {
	Action   Action
	Username string
	Index    int
}

// CompletionHook observes merged completions. It runs outside the controller lock.
type CompletionHook func(username string, completion domain.Completion, stats Stats)

// Option customizes a Controller.
type Option func(*Controller)

func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

func WithTiming(t Timing) Option {
	return func(c *Controller) { c.timing = t.withDefaults() }
}

func WithCompletionHook(hook CompletionHook) Option {
	return func(c *Controller) { c.onComplete = hook }
}

// slot owns at most one pending timer. Its generation is bumped every time the
// timer is stopped or replaced, so a callback that already fired but has not
// yet acquired the lock recognises itself as stale.
type slot struct {
	timer      Timer
	generation uint64
}

type completed struct {
	username   string
	completion domain.Completion
	stats      Stats
}

// Controller is the per-player screen state machine. All mutations happen
// under mu, so user actions and timer callbacks are applied one at a time.
type Controller struct {
	bank       domain.Bank
	clock      Clock
	timing     Timing
	onComplete CompletionHook

	mu       sync.Mutex
	screen   Screen
	loading  int
	username string
	stats    Stats
	session  *Session
	closed   bool
	pending  []completed

	loadingSlot   slot
	countdownSlot slot
	resultSlot    slot

	subscribers map[chan domain.Snapshot]struct{}
}

// NewController builds a controller on the loading screen. Call Start to begin loading.
func NewController(bank domain.Bank, opts ...Option) *Controller {
	c := &Controller{
		bank:        bank,
		clock:       RealClock,
		timing:      DefaultTiming(),
		screen:      ScreenLoading,
		stats:       DefaultStats(),
		subscribers: make(map[chan domain.Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins the loading progress.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.screen != ScreenLoading {
		return
	}
	c.scheduleLocked(&c.loadingSlot, c.timing.LoadingTick, c.loadingTickLocked)
}

// Dispatch applies a user action. It reports whether anything changed;
// actions that are not valid on the current screen are ignored.
func (c *Controller) Dispatch(ev Event) bool {
	// Completion is only ever raised by the result delay timer.
	if ev.Action == ActionComplete {
		return false
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	changed := c.applyLocked(ev)
	if changed {
		c.broadcastLocked()
	}
	c.mu.Unlock()
	return changed
}

// Snapshot returns the current render state.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Stats returns a copy of the cumulative stats.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Badges = c.stats.Badges.Union(nil)
	return s
}

// Subscribe returns a channel of snapshots, seeded with the current one.
// The caller must invoke the returned cancel function to avoid leaks.
func (c *Controller) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 8)

	c.mu.Lock()
	if c.closed {
		ch <- c.snapshotLocked()
		close(ch)
		c.mu.Unlock()
		return ch, func() {}
	}
	c.subscribers[ch] = struct{}{}
	ch <- c.snapshotLocked()
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// Close stops every pending timer and closes all subscriptions.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopAllLocked()
	c.session = nil
	for ch := range c.subscribers {
		delete(c.subscribers, ch)
		close(ch)
	}
}

func (c *Controller) applyLocked(ev Event) bool {
	switch ev.Action {
	case ActionAnswer:
		return c.answerLocked(ev.Index)
	case ActionNext:
		return c.advanceLocked()
	}

	to, ok := Next(c.screen, ev.Action)
	if !ok {
		return false
	}

	switch ev.Action {
	case ActionLoadingComplete:
		c.stopLocked(&c.loadingSlot)
		c.loading = 100
	case ActionLogin:
		name := strings.TrimSpace(ev.Username)
		if name == "" {
			return false
		}
		c.username = name
	case ActionStartQuiz:
		c.startSessionLocked(NewQuizSession(c.bank.Quiz, c.timing.QuestionSeconds))
	case ActionStartPicture:
		c.startSessionLocked(NewPictureSession(c.bank.Pictures))
	case ActionComplete:
		if c.session == nil || !c.session.Complete() {
			return false
		}
		completion := *c.session.completion
		c.stats = Merge(c.stats, completion.Kind, completion.PointsEarned, completion.Badges)
		c.pending = append(c.pending, completed{username: c.username, completion: completion, stats: c.stats})
		c.discardSessionLocked()
	case ActionBack:
		c.discardSessionLocked()
	case ActionLogout:
		c.username = ""
		c.stats = DefaultStats()
	}
	c.screen = to
	return true
}

func (c *Controller) startSessionLocked(s *Session) {
	c.discardSessionLocked()
	c.session = s
	c.scheduleCountdownLocked()
}

func (c *Controller) discardSessionLocked() {
	c.stopLocked(&c.countdownSlot)
	c.stopLocked(&c.resultSlot)
	c.session = nil
}

func (c *Controller) answerLocked(index int) bool {
	if !c.screen.inGame() || c.session == nil {
		return false
	}
	if !c.session.Answer(index) {
		return false
	}
	c.stopLocked(&c.countdownSlot)
	return true
}

func (c *Controller) advanceLocked() bool {
	if !c.screen.inGame() || c.session == nil {
		return false
	}
	completion, ok := c.session.Advance()
	if !ok {
		return false
	}
	if completion == nil {
		c.scheduleCountdownLocked()
		return true
	}
	c.scheduleLocked(&c.resultSlot, c.timing.ResultDelay, func() {
		c.applyLocked(Event{Action: ActionComplete})
	})
	return true
}

func (c *Controller) scheduleCountdownLocked() {
	if c.session == nil || !c.session.rules.Timed {
		return
	}
	c.scheduleLocked(&c.countdownSlot, c.timing.CountdownTick, c.countdownTickLocked)
}

func (c *Controller) countdownTickLocked() {
	if c.session == nil || !c.session.Tick() {
		return
	}
	if !c.session.ResultShown() {
		c.scheduleCountdownLocked()
	}
}

func (c *Controller) loadingTickLocked() {
	if c.screen != ScreenLoading {
		return
	}
	c.loading += c.timing.LoadingStep
	if c.loading >= 100 {
		c.loading = 100
		c.scheduleLocked(&c.loadingSlot, c.timing.LoadingSettle, func() {
			c.applyLocked(Event{Action: ActionLoadingComplete})
		})
		return
	}
	c.scheduleLocked(&c.loadingSlot, c.timing.LoadingTick, c.loadingTickLocked)
}

func (c *Controller) scheduleLocked(s *slot, d time.Duration, fn func()) {
	c.stopLocked(s)
	generation := s.generation
	s.timer = c.clock.AfterFunc(d, func() {
		c.fire(s, generation, fn)
	})
}

func (c *Controller) stopLocked(s *slot) {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}

func (c *Controller) stopAllLocked() {
	c.stopLocked(&c.loadingSlot)
	c.stopLocked(&c.countdownSlot)
	c.stopLocked(&c.resultSlot)
}

func (c *Controller) fire(s *slot, generation uint64, fn func()) {
	c.mu.Lock()
	if c.closed || s.generation != generation {
		c.mu.Unlock()
		return
	}
	s.timer = nil
	fn()
	c.broadcastLocked()
	done := c.pending
	c.pending = nil
	hook := c.onComplete
	c.mu.Unlock()

	if hook == nil {
		return
	}
	for _, d := range done {
		hook(d.username, d.completion, d.stats)
	}
}

func (c *Controller) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		Screen:          string(c.screen),
		LoadingProgress: c.loading,
		Username:        c.username,
		Stats:           c.stats.View(),
	}
	if c.session != nil {
		snap.Game = c.session.View()
	}
	return snap
}

func (c *Controller) broadcastLocked() {
	snap := c.snapshotLocked()
	for ch := range c.subscribers {
		select {
		case ch <- snap:
		default:
			// Slow reader: replace the stale snapshot with the latest one.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
