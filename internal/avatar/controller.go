// Package avatar animates the language morph of the hero avatar.
//
// Controller is a plain state machine: it is fed the target language and the
// current time, and reports every new frame to a Painter. Animator runs a
// Controller against a clock, and Sweep replays one transition on a virtual
// timeline.
package avatar

import (
	"math"
	"time"

	"github.com/Zachkp/diary/internal/frames"
	"github.com/Zachkp/diary/internal/lang"
)

// DefaultDuration is the length of one transition schedule.
const DefaultDuration = 950 * time.Millisecond

// Painter consumes frame changes.
type Painter interface {
	Paint(frames.Index)
}

// PainterFunc adapts a function to Painter.
type PainterFunc func(frames.Index)

func (f PainterFunc) Paint(i frames.Index) { f(i) }

// Schedule is one animated sweep between two frames.
type Schedule struct {
	StartFrame  frames.Index
	TargetFrame frames.Index
	Start       time.Time
	Duration    time.Duration
}

// Progress is the clamped fraction of the schedule elapsed at now.
func (s Schedule) Progress(now time.Time) float64 {
	if s.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(s.Start)) / float64(s.Duration)
	return math.Max(0, math.Min(1, p))
}

// FrameAt is the frame shown at progress p, rounded to the nearest index.
func (s Schedule) FrameAt(p float64) frames.Index {
	distance := float64(s.TargetFrame - s.StartFrame)
	return frames.Clamp(int(math.Round(float64(s.StartFrame) + distance*p)))
}

// Controller owns the current frame. It is not safe for concurrent use;
// Animator serializes access for live use.
type Controller struct {
	painter  Painter
	duration time.Duration

	ready    bool
	frame    frames.Index
	target   lang.Language
	schedule *Schedule
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithDuration overrides the schedule duration.
func WithDuration(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d >= 0 {
			c.duration = d
		}
	}
}

// WithInitialLanguage sets the target language assumed before any change.
func WithInitialLanguage(l lang.Language) ControllerOption {
	return func(c *Controller) { c.target = l }
}

// NewController starts in Idle(First), not ready.
func NewController(p Painter, opts ...ControllerOption) *Controller {
	c := &Controller{
		painter:  p,
		duration: DefaultDuration,
		frame:    frames.First,
		target:   lang.Primary,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ready marks the frames as loaded and snaps to the resting frame of the
// current target language. The snap is painted but not animated.
func (c *Controller) Ready() {
	c.ready = true
	c.schedule = nil
	c.frame = frames.For(c.target)
	c.paint()
}

// IsReady reports whether Ready has been called.
func (c *Controller) IsReady() bool { return c.ready }

// Frame is the last painted frame.
func (c *Controller) Frame() frames.Index { return c.frame }

// Target is the language the avatar is moving toward, or resting at.
func (c *Controller) Target() lang.Language { return c.target }

// Animating reports whether a schedule is active.
func (c *Controller) Animating() bool { return c.schedule != nil }

// Schedule returns the active schedule, if any.
func (c *Controller) Schedule() (Schedule, bool) {
	if c.schedule == nil {
		return Schedule{}, false
	}
	return *c.schedule, true
}

// SetTarget reacts to a target language change observed at now. It reports
// whether a new schedule was started; a reduced-motion jump or an ignored
// change reports false.
//
// A change to the current target is ignored. Before Ready the target is only
// remembered. With reduced motion the frame jumps straight to the target.
// Otherwise any in-flight schedule is replaced by one starting from the
// current frame.
func (c *Controller) SetTarget(l lang.Language, now time.Time, reducedMotion bool) bool {
	if l == c.target {
		return false
	}
	c.target = l
	if !c.ready {
		return false
	}

	targetFrame := frames.For(l)
	if reducedMotion {
		c.schedule = nil
		c.frame = targetFrame
		c.paint()
		return false
	}

	c.schedule = &Schedule{
		StartFrame:  c.frame,
		TargetFrame: targetFrame,
		Start:       now,
		Duration:    c.duration,
	}
	return true
}

// Tick advances the active schedule to now. It reports whether the schedule
// is still running and another tick is wanted.
func (c *Controller) Tick(now time.Time) bool {
	s := c.schedule
	if s == nil {
		return false
	}

	p := s.Progress(now)
	if next := s.FrameAt(p); next != c.frame {
		c.frame = next
		c.paint()
	}
	if p < 1 {
		return true
	}

	c.schedule = nil
	if c.frame != s.TargetFrame {
		c.frame = s.TargetFrame
		c.paint()
	}
	return false
}

// Cancel drops the active schedule, leaving the frame where it is.
func (c *Controller) Cancel() {
	c.schedule = nil
}

func (c *Controller) paint() {
	if c.painter != nil {
		c.painter.Paint(c.frame)
	}
}
