package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockFiresInDeadlineOrder(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMock(start)

	var order []string
	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(25 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, m.Pending())

	m.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, start.Add(30*time.Millisecond), m.Now())
}

func TestMockStop(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	fired := false
	tm := m.AfterFunc(time.Second, func() { fired = true })

	require.True(t, tm.Stop())
	assert.False(t, tm.Stop())

	m.Advance(2 * time.Second)
	assert.False(t, fired)
	assert.Zero(t, m.Pending())
}

func TestMockChainedCallbacks(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	count := 0
	var step func()
	step = func() {
		count++
		if count < 5 {
			m.AfterFunc(10*time.Millisecond, step)
		}
	}
	m.AfterFunc(10*time.Millisecond, step)

	m.Advance(100 * time.Millisecond)
	assert.Equal(t, 5, count)
	assert.Equal(t, time.Unix(0, 0).Add(100*time.Millisecond), m.Now())
}
