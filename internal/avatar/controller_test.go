package avatar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/diary/internal/frames"
	"github.com/Zachkp/diary/internal/lang"
)

type recorder struct {
	painted []frames.Index
}

func (r *recorder) Paint(i frames.Index) { r.painted = append(r.painted, i) }

func (r *recorder) reset() { r.painted = nil }

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func readyController(t *testing.T, l lang.Language) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c := NewController(rec, WithInitialLanguage(l))
	c.Ready()
	rec.reset()
	return c, rec
}

func TestReadySnapsWithoutAnimation(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec)
	assert.Equal(t, frames.First, c.Frame())

	c.Ready()
	assert.Equal(t, frames.First, c.Frame())
	assert.False(t, c.Animating())
	assert.Equal(t, []frames.Index{frames.First}, rec.painted)

	rec2 := &recorder{}
	ja := NewController(rec2, WithInitialLanguage(lang.Japanese))
	ja.Ready()
	assert.Equal(t, frames.Last, ja.Frame())
	assert.False(t, ja.Animating())
}

func TestChangesBeforeReadyOnlyMoveTheTarget(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec)

	assert.False(t, c.SetTarget(lang.Japanese, t0, false))
	assert.False(t, c.Animating())
	assert.Empty(t, rec.painted)

	c.Ready()
	assert.Equal(t, frames.Last, c.Frame())
	assert.Equal(t, []frames.Index{frames.Last}, rec.painted)
}

func TestConcreteScenario(t *testing.T) {
	c, rec := readyController(t, lang.English)
	assert.Equal(t, frames.First, c.Frame())

	require.True(t, c.SetTarget(lang.Japanese, t0, false))

	assert.True(t, c.Tick(t0))
	assert.Equal(t, frames.Index(1), c.Frame())
	assert.Empty(t, rec.painted, "no repaint while the frame is unchanged")

	assert.True(t, c.Tick(t0.Add(475*time.Millisecond)))
	assert.Contains(t, []frames.Index{20, 21}, c.Frame())

	assert.False(t, c.Tick(t0.Add(950*time.Millisecond)))
	assert.Equal(t, frames.Last, c.Frame())
	assert.False(t, c.Animating())
}

func TestSchedulesEndExactlyOnTarget(t *testing.T) {
	tests := []struct {
		name string
		from lang.Language
		to   lang.Language
		want frames.Index
	}{
		{"primary to secondary", lang.English, lang.Japanese, frames.Last},
		{"secondary to primary", lang.Japanese, lang.English, frames.First},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, step := range []time.Duration{7 * time.Millisecond, 16 * time.Millisecond, 33 * time.Millisecond, 200 * time.Millisecond} {
				c, _ := readyController(t, tt.from)
				require.True(t, c.SetTarget(tt.to, t0, false))
				at := t0
				for c.Tick(at) {
					at = at.Add(step)
				}
				assert.Equal(t, tt.want, c.Frame(), "step %v", step)
			}
		})
	}
}

func TestFinalTickForcesTarget(t *testing.T) {
	c, rec := readyController(t, lang.English)
	require.True(t, c.SetTarget(lang.Japanese, t0, false))

	// Skipping straight past the end still lands exactly on the last frame.
	assert.False(t, c.Tick(t0.Add(5*time.Second)))
	assert.Equal(t, []frames.Index{frames.Last}, rec.painted)
}

func TestMonotonicWithinSchedule(t *testing.T) {
	for _, dir := range []struct {
		from, to lang.Language
		up       bool
	}{
		{lang.English, lang.Japanese, true},
		{lang.Japanese, lang.English, false},
	} {
		c, rec := readyController(t, dir.from)
		require.True(t, c.SetTarget(dir.to, t0, false))
		for at := t0; c.Tick(at); at = at.Add(16 * time.Millisecond) {
		}

		require.NotEmpty(t, rec.painted)
		for i := 1; i < len(rec.painted); i++ {
			if dir.up {
				assert.GreaterOrEqual(t, rec.painted[i], rec.painted[i-1])
			} else {
				assert.LessOrEqual(t, rec.painted[i], rec.painted[i-1])
			}
			assert.NotEqual(t, rec.painted[i], rec.painted[i-1], "duplicate paint")
		}
	}
}

func TestSameTargetIsIgnored(t *testing.T) {
	c, rec := readyController(t, lang.English)
	assert.False(t, c.SetTarget(lang.English, t0, false))
	assert.False(t, c.Animating())
	assert.Empty(t, rec.painted)

	require.True(t, c.SetTarget(lang.Japanese, t0, false))
	s, _ := c.Schedule()
	assert.False(t, c.SetTarget(lang.Japanese, t0.Add(100*time.Millisecond), false))
	again, _ := c.Schedule()
	assert.Equal(t, s, again, "repeating the target must not restart the schedule")
}

func TestSupersedingStartsFromCurrentFrame(t *testing.T) {
	c, _ := readyController(t, lang.English)
	require.True(t, c.SetTarget(lang.Japanese, t0, false))

	mid := t0.Add(300 * time.Millisecond)
	require.True(t, c.Tick(mid))
	held := c.Frame()
	assert.Equal(t, frames.Index(13), held)

	require.True(t, c.SetTarget(lang.English, mid, false))
	s, ok := c.Schedule()
	require.True(t, ok)
	assert.Equal(t, held, s.StartFrame)
	assert.Equal(t, frames.First, s.TargetFrame)
	assert.Equal(t, mid, s.Start)

	assert.True(t, c.Tick(mid.Add(475*time.Millisecond)))
	assert.Equal(t, frames.Index(7), c.Frame())

	assert.False(t, c.Tick(mid.Add(DefaultDuration)))
	assert.Equal(t, frames.First, c.Frame())
}

func TestReducedMotionJumps(t *testing.T) {
	c, rec := readyController(t, lang.English)
	assert.False(t, c.SetTarget(lang.Japanese, t0, true))
	assert.False(t, c.Animating())
	assert.Equal(t, []frames.Index{frames.Last}, rec.painted)
	assert.False(t, c.Tick(t0.Add(time.Second)))
	assert.Len(t, rec.painted, 1)
}

func TestReducedMotionCancelsInFlight(t *testing.T) {
	c, rec := readyController(t, lang.English)
	require.True(t, c.SetTarget(lang.Japanese, t0, false))
	c.Tick(t0.Add(300 * time.Millisecond))
	rec.reset()

	assert.False(t, c.SetTarget(lang.English, t0.Add(310*time.Millisecond), true))
	assert.Equal(t, []frames.Index{frames.First}, rec.painted)
	assert.False(t, c.Animating())
}

func TestZeroDurationCompletesOnFirstTick(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec, WithDuration(0))
	c.Ready()
	rec.reset()

	require.True(t, c.SetTarget(lang.Japanese, t0, false))
	assert.False(t, c.Tick(t0))
	assert.Equal(t, []frames.Index{frames.Last}, rec.painted)
}

func TestScheduleMath(t *testing.T) {
	s := Schedule{StartFrame: 1, TargetFrame: 40, Start: t0, Duration: time.Second}
	assert.Equal(t, 0.0, s.Progress(t0.Add(-time.Second)))
	assert.Equal(t, 0.5, s.Progress(t0.Add(500*time.Millisecond)))
	assert.Equal(t, 1.0, s.Progress(t0.Add(2*time.Second)))

	assert.Equal(t, frames.Index(1), s.FrameAt(0))
	assert.Equal(t, frames.Index(21), s.FrameAt(0.5))
	assert.Equal(t, frames.Index(40), s.FrameAt(1))
}
