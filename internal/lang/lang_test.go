package lang

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/diary/internal/clock"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"en", English},
		{"EN", English},
		{"ja", Japanese},
		{"jp", Japanese},
		{" ja-JP ", Japanese},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := Parse("fr")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, Japanese, Negotiate("ja-JP,ja;q=0.9,en;q=0.8"))
	assert.Equal(t, English, Negotiate("ja;q=0.5, en;q=0.9"))
	assert.Equal(t, English, Negotiate(""))
	assert.Equal(t, English, Negotiate("fr-FR"))
}

func TestOther(t *testing.T) {
	assert.Equal(t, Japanese, English.Other())
	assert.Equal(t, English, Japanese.Other())
	assert.True(t, English.IsPrimary())
	assert.False(t, Japanese.IsPrimary())
}

func TestStateDebouncesWhileTransitioning(t *testing.T) {
	mc := clock.NewMock(time.Unix(0, 0))
	s := NewState(WithClock(mc))

	var seen []Language
	s.Subscribe(func(l Language) { seen = append(seen, l) })

	require.True(t, s.Set(Japanese))
	assert.Equal(t, Japanese, s.Target())
	assert.Equal(t, English, s.Language())
	assert.True(t, s.Transitioning())

	// Re-entrant toggle is rejected.
	assert.False(t, s.Set(English))
	assert.False(t, s.Toggle())

	mc.Advance(DefaultMidpoint)
	assert.Equal(t, Japanese, s.Language())
	assert.True(t, s.Transitioning())

	mc.Advance(DefaultSettle)
	assert.False(t, s.Transitioning())

	require.True(t, s.Toggle())
	assert.Equal(t, []Language{Japanese, English}, seen)
}

func TestStateIgnoresCurrentLanguage(t *testing.T) {
	s := NewState(WithClock(clock.NewMock(time.Unix(0, 0))))
	assert.False(t, s.Set(English))
	assert.False(t, s.Transitioning())
}

func TestStatePersistsPreference(t *testing.T) {
	store := &FileStore{Path: filepath.Join(t.TempDir(), "nested", PreferenceKey)}
	mc := clock.NewMock(time.Unix(0, 0))

	s := NewState(WithClock(mc), WithStore(store))
	require.True(t, s.Set(Japanese))

	got, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, Japanese, got)

	restored := NewState(WithClock(mc), WithStore(store))
	assert.Equal(t, Japanese, restored.Language())
	assert.Equal(t, Japanese, restored.Target())
}
