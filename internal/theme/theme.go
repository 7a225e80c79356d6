package theme

import "strings"

// Mode selects between the playful diary look and the resume-style look.
type Mode int

const (
	Diary Mode = iota
	Serious
)

// CookieName stores the mode for the browser session.
const CookieName = "diary-serious"

// ParseMode reads "serious", "1", "true" or "on" as Serious; anything else is Diary.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "serious", "1", "true", "on":
		return Serious
	}
	return Diary
}

func (m Mode) Toggle() Mode {
	if m == Serious {
		return Diary
	}
	return Serious
}

func (m Mode) IsSerious() bool { return m == Serious }

func (m Mode) String() string {
	if m == Serious {
		return "serious"
	}
	return "diary"
}

// BodyClass is the class added to <body> in serious mode.
func (m Mode) BodyClass() string {
	if m == Serious {
		return "serious-mode"
	}
	return ""
}
