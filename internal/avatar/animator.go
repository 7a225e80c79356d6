package avatar

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/diary/internal/clock"
	"github.com/Zachkp/diary/internal/frames"
	"github.com/Zachkp/diary/internal/lang"
)

// DefaultTickInterval approximates one display refresh.
const DefaultTickInterval = time.Second / 60

// Animator drives a Controller from a clock. At most one tick callback is
// pending at a time; replacing a schedule stops the pending callback before a
// new one is registered, and callbacks from a replaced schedule are dropped.
type Animator struct {
	mu       sync.Mutex
	ctrl     *Controller
	clock    clock.Clock
	interval time.Duration
	reduced  func() bool
	log      *zap.Logger

	pending clock.Timer
	gen     uint64
	closed  bool
}

// AnimatorOption configures an Animator.
type AnimatorOption func(*Animator)

// WithClock replaces the system clock, mostly for tests.
func WithClock(c clock.Clock) AnimatorOption {
	return func(a *Animator) { a.clock = c }
}

// WithTickInterval sets the tick period; non-positive values are ignored.
func WithTickInterval(d time.Duration) AnimatorOption {
	return func(a *Animator) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithReducedMotion supplies the reduced-motion preference, read at the
// moment of each language change.
func WithReducedMotion(fn func() bool) AnimatorOption {
	return func(a *Animator) { a.reduced = fn }
}

// WithLogger sets the logger for transition events.
func WithLogger(l *zap.Logger) AnimatorOption {
	return func(a *Animator) { a.log = l }
}

// NewAnimator wraps ctrl with a system clock ticking every DefaultTickInterval.
func NewAnimator(ctrl *Controller, opts ...AnimatorOption) *Animator {
	a := &Animator{
		ctrl:     ctrl,
		clock:    clock.New(),
		interval: DefaultTickInterval,
		reduced:  func() bool { return false },
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ready forwards preload completion to the controller.
func (a *Animator) Ready() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.ctrl.Ready()
}

// SetLanguage forwards a target language change.
func (a *Animator) SetLanguage(l lang.Language) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	reduced := a.reduced()
	before := a.ctrl.Target()
	started := a.ctrl.SetTarget(l, a.clock.Now(), reduced)
	if before == l || !a.ctrl.IsReady() {
		return
	}

	a.cancelLocked()
	if started {
		a.log.Debug("avatar transition started",
			zap.String("target", l.String()),
			zap.Int("from", int(a.ctrl.Frame())),
		)
		a.scheduleLocked()
	}
}

// Frame returns the current frame.
func (a *Animator) Frame() frames.Index {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctrl.Frame()
}

// Animating reports whether a schedule is in flight.
func (a *Animator) Animating() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctrl.Animating()
}

// Close cancels any pending tick. Later calls are no-ops.
func (a *Animator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.cancelLocked()
	a.ctrl.Cancel()
}

func (a *Animator) scheduleLocked() {
	gen := a.gen
	a.pending = a.clock.AfterFunc(a.interval, func() { a.tick(gen) })
}

func (a *Animator) cancelLocked() {
	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}
	a.gen++
}

func (a *Animator) tick(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed || gen != a.gen {
		return
	}
	a.pending = nil
	if a.ctrl.Tick(a.clock.Now()) {
		a.scheduleLocked()
	}
}
