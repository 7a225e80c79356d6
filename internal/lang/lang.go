package lang

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is the site display language.
type Language string

const (
	English  Language = "en"
	Japanese Language = "ja"

	// Primary is the default language and the first avatar frame.
	Primary = English
	// Secondary is the alternate language and the last avatar frame.
	Secondary = Japanese
)

var ErrUnknownLanguage = errors.New("lang: unknown language")

// All lists the supported languages, primary first.
var All = []Language{English, Japanese}

// Parse accepts "en" and "ja". "jp" is kept as an alias because older
// preference flags were stored with it.
func Parse(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "en-us", "en-gb":
		return English, nil
	case "ja", "jp", "ja-jp":
		return Japanese, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// Other returns the opposite language.
func (l Language) Other() Language {
	if l == Japanese {
		return English
	}
	return Japanese
}

func (l Language) IsPrimary() bool { return l != Japanese }

func (l Language) String() string { return string(l) }

// Tag returns the BCP 47 tag of the language.
func (l Language) Tag() language.Tag {
	if l == Japanese {
		return language.Japanese
	}
	return language.English
}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Japanese})

// Negotiate picks the best supported language for an Accept-Language header.
// It falls back to Primary on an empty or unparsable header.
func Negotiate(acceptLanguage string) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Primary
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Primary
	}
	return All[idx]
}
