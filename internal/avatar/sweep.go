package avatar

import (
	"time"

	"github.com/Zachkp/diary/internal/frames"
	"github.com/Zachkp/diary/internal/lang"
)

// Emission is one painted frame and its offset from the language change.
type Emission struct {
	Frame frames.Index
	At    time.Duration
}

// SweepOptions configures Sweep. Zero values pick the defaults.
type SweepOptions struct {
	Duration      time.Duration
	Step          time.Duration
	ReducedMotion bool
}

// Sweep replays a single change from one language to another on a virtual
// timeline sampled every Step. The first emission is the resting frame of
// from at offset zero; the rest are exactly what a Painter would receive.
func Sweep(from, to lang.Language, opts SweepOptions) []Emission {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Step <= 0 {
		opts.Step = DefaultTickInterval
	}

	var (
		out    []Emission
		offset time.Duration
	)
	rec := PainterFunc(func(i frames.Index) {
		out = append(out, Emission{Frame: i, At: offset})
	})

	ctrl := NewController(rec, WithDuration(opts.Duration), WithInitialLanguage(from))
	ctrl.Ready()

	start := time.Unix(0, 0)
	if !ctrl.SetTarget(to, start, opts.ReducedMotion) {
		return out
	}
	for running := true; running; {
		offset += opts.Step
		running = ctrl.Tick(start.Add(offset))
	}
	return out
}
