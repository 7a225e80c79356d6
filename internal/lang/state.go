package lang

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/diary/internal/clock"
)

const (
	// DefaultMidpoint is how long after a toggle the displayed language
	// switches over, roughly halfway through the avatar morph.
	DefaultMidpoint = 500 * time.Millisecond
	// DefaultSettle is how long after the midpoint new toggles are accepted again.
	DefaultSettle = 500 * time.Millisecond
)

// State owns the display language and the target language the UI is moving
// toward. Components receive it explicitly and observe target changes with
// Subscribe.
type State struct {
	mu            sync.Mutex
	clock         clock.Clock
	store         Store
	log           *zap.Logger
	midpoint      time.Duration
	settle        time.Duration
	language      Language
	target        Language
	transitioning bool
	subs          []func(Language)
}

type StateOption func(*State)

func WithClock(c clock.Clock) StateOption {
	return func(s *State) { s.clock = c }
}

func WithStore(st Store) StateOption {
	return func(s *State) { s.store = st }
}

func WithLogger(l *zap.Logger) StateOption {
	return func(s *State) { s.log = l }
}

func WithDelays(midpoint, settle time.Duration) StateOption {
	return func(s *State) {
		s.midpoint = midpoint
		s.settle = settle
	}
}

// NewState creates a State in Primary, or in the language found in the
// store when one is configured.
func NewState(opts ...StateOption) *State {
	s := &State{
		clock:    clock.New(),
		log:      zap.NewNop(),
		midpoint: DefaultMidpoint,
		settle:   DefaultSettle,
		language: Primary,
		target:   Primary,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store != nil {
		if l, ok := s.store.Load(); ok {
			s.language, s.target = l, l
		}
	}
	return s
}

// Language is the language content is currently displayed in.
func (s *State) Language() Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Target is the language the UI is showing or transitioning toward.
func (s *State) Target() Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

func (s *State) Transitioning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitioning
}

// Subscribe registers fn to be called with the new target on every accepted
// change. fn runs on the caller's goroutine, after the state lock is released.
func (s *State) Subscribe(fn func(Language)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Set requests a change to l. It reports false when l is already displayed or
// a previous change is still in flight.
func (s *State) Set(l Language) bool {
	s.mu.Lock()
	if l == s.language || s.transitioning {
		s.mu.Unlock()
		return false
	}
	s.transitioning = true
	s.target = l
	subs := append([]func(Language){}, s.subs...)
	s.clock.AfterFunc(s.midpoint, func() { s.commit(l) })
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Save(l); err != nil {
			s.log.Warn("persist language preference", zap.String("lang", l.String()), zap.Error(err))
		}
	}
	for _, fn := range subs {
		fn(l)
	}
	return true
}

// Toggle switches to the other language.
func (s *State) Toggle() bool {
	return s.Set(s.Language().Other())
}

func (s *State) commit(l Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = l
	s.clock.AfterFunc(s.settle, func() {
		s.mu.Lock()
		s.transitioning = false
		s.mu.Unlock()
	})
}
