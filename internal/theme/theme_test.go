package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	for _, in := range []string{"serious", "1", "TRUE", " on "} {
		assert.Equal(t, Serious, ParseMode(in), in)
	}
	for _, in := range []string{"", "diary", "0", "nope"} {
		assert.Equal(t, Diary, ParseMode(in), in)
	}
}

func TestToggleAndClass(t *testing.T) {
	assert.Equal(t, Serious, Diary.Toggle())
	assert.Equal(t, Diary, Serious.Toggle())
	assert.Equal(t, "serious-mode", Serious.BodyClass())
	assert.Empty(t, Diary.BodyClass())
	assert.Equal(t, "serious", Serious.String())
}
