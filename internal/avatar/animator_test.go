package avatar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/diary/internal/clock"
	"github.com/Zachkp/diary/internal/frames"
	"github.com/Zachkp/diary/internal/lang"
)

func newTestAnimator(t *testing.T, reduced *bool) (*Animator, *clock.Mock, *recorder) {
	t.Helper()
	mc := clock.NewMock(t0)
	rec := &recorder{}
	a := NewAnimator(NewController(rec),
		WithClock(mc),
		WithTickInterval(16*time.Millisecond),
		WithReducedMotion(func() bool { return reduced != nil && *reduced }),
	)
	a.Ready()
	rec.reset()
	return a, mc, rec
}

func TestAnimatorRunsToCompletion(t *testing.T) {
	a, mc, rec := newTestAnimator(t, nil)

	a.SetLanguage(lang.Japanese)
	assert.True(t, a.Animating())
	assert.Equal(t, 1, mc.Pending())

	mc.Advance(2 * time.Second)
	assert.False(t, a.Animating())
	assert.Equal(t, frames.Last, a.Frame())
	assert.Zero(t, mc.Pending(), "loop must stop once the schedule completes")
	assert.Equal(t, frames.Last, rec.painted[len(rec.painted)-1])
}

func TestAnimatorSupersedeKeepsSingleLoop(t *testing.T) {
	a, mc, rec := newTestAnimator(t, nil)

	a.SetLanguage(lang.Japanese)
	mc.Advance(320 * time.Millisecond)
	held := a.Frame()
	require.Greater(t, held, frames.First)
	require.Less(t, held, frames.Last)
	rec.reset()

	a.SetLanguage(lang.English)
	assert.Equal(t, 1, mc.Pending(), "old tick must be cancelled before the new one is registered")

	mc.Advance(2 * time.Second)
	assert.Equal(t, frames.First, a.Frame())
	require.NotEmpty(t, rec.painted)
	assert.LessOrEqual(t, rec.painted[0], held, "reverse sweep starts from the held frame")
	for i := 1; i < len(rec.painted); i++ {
		assert.Less(t, rec.painted[i], rec.painted[i-1])
	}
}

func TestAnimatorReducedMotion(t *testing.T) {
	reduced := true
	a, mc, rec := newTestAnimator(t, &reduced)

	a.SetLanguage(lang.Japanese)
	assert.Equal(t, []frames.Index{frames.Last}, rec.painted)
	assert.Zero(t, mc.Pending())

	mc.Advance(time.Second)
	assert.Len(t, rec.painted, 1)
}

func TestAnimatorIgnoresRepeatedTarget(t *testing.T) {
	a, mc, _ := newTestAnimator(t, nil)
	a.SetLanguage(lang.English)
	assert.Zero(t, mc.Pending())

	a.SetLanguage(lang.Japanese)
	mc.Advance(100 * time.Millisecond)
	frame := a.Frame()
	a.SetLanguage(lang.Japanese)
	assert.Equal(t, 1, mc.Pending())
	assert.Equal(t, frame, a.Frame())
}

func TestAnimatorCloseCancelsPendingTick(t *testing.T) {
	a, mc, rec := newTestAnimator(t, nil)
	a.SetLanguage(lang.Japanese)
	mc.Advance(100 * time.Millisecond)
	rec.reset()

	a.Close()
	assert.Zero(t, mc.Pending())
	mc.Advance(time.Second)
	assert.Empty(t, rec.painted)

	a.SetLanguage(lang.English)
	assert.Zero(t, mc.Pending())
}

func TestAnimatorWithLanguageState(t *testing.T) {
	mc := clock.NewMock(t0)
	rec := &recorder{}
	a := NewAnimator(NewController(rec), WithClock(mc))
	state := lang.NewState(lang.WithClock(mc))
	state.Subscribe(a.SetLanguage)
	a.Ready()

	require.True(t, state.Toggle())
	mc.Advance(2 * time.Second)
	assert.Equal(t, frames.Last, a.Frame())
	assert.Equal(t, lang.Japanese, state.Language())
	assert.False(t, state.Transitioning())
}

func TestSweep(t *testing.T) {
	out := Sweep(lang.English, lang.Japanese, SweepOptions{Step: 16 * time.Millisecond})
	require.NotEmpty(t, out)
	assert.Equal(t, Emission{Frame: frames.First, At: 0}, out[0])
	last := out[len(out)-1]
	assert.Equal(t, frames.Last, last.Frame)
	assert.LessOrEqual(t, last.At, DefaultDuration+16*time.Millisecond)

	for i := 1; i < len(out); i++ {
		assert.Greater(t, out[i].Frame, out[i-1].Frame)
		assert.Greater(t, out[i].At, out[i-1].At)
	}

	reduced := Sweep(lang.Japanese, lang.English, SweepOptions{ReducedMotion: true})
	assert.Equal(t, []Emission{{Frame: frames.Last}, {Frame: frames.First}}, reduced)

	same := Sweep(lang.English, lang.English, SweepOptions{})
	assert.Equal(t, []Emission{{Frame: frames.First}}, same)
}
