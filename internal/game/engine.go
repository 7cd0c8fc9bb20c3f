// internal/game/engine.go
//
// Core engine for a single word-scramble session.
// Responsibilities:
//   - Choose a root word from a Dictionary, falling back to a fixed word.
//   - Validate submissions in a fixed priority order and record accepted ones.
//   - Derive the score from the guess list.
//   - Restart and example-loading transitions.
//
// Notes:
//   - A Session is owned by one caller; it is not safe for concurrent use.
//   - Only Submit (on acceptance), Restart and LoadExample mutate state.
//   - randomID() is a compact hex identifier for correlating log lines.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultFallbackRoot is used when the dictionary cannot produce a root.
	DefaultFallbackRoot = "silkworm"

	// DefaultLocale is the locale passed to Dictionary.IsRealWord.
	DefaultLocale = "en"

	// ExampleRoot is the root word installed by LoadExample.
	ExampleRoot = "widowing"

	// minWordLen is the shortest accepted word; anything of this length or less is too short.
	minWordLen = 2
)

// exampleGuesses is the seeded guess list for LoadExample, newest first.
// Every entry spells out of ExampleRoot.
var exampleGuesses = []string{
	"ding", "dong", "dig", "now", "wow", "god", "gin", "dog",
	"own", "dow", "down", "wig", "win", "widow", "wing", "window",
}

// Session holds the state of one play-through.
type Session struct {
	id       string
	root     string
	guesses  []string
	dict     Dictionary
	fallback string
	locale   string
	log      zerolog.Logger

	// onFallback is set while root came from fallback rather than dict.
	onFallback bool
}

// Option customises Start.
type Option func(*Session)

// WithRoot fixes the first root word instead of drawing one from the dictionary.
// Restart still draws from the dictionary.
func WithRoot(word string) Option {
	return func(s *Session) { s.root = Normalize(word) }
}

// WithFallback replaces the fallback root. An empty word disables the fallback,
// so a dictionary failure becomes ErrNoRootWord.
func WithFallback(word string) Option {
	return func(s *Session) { s.fallback = Normalize(word) }
}

// WithLocale sets the locale passed to the dictionary's real-word check.
func WithLocale(locale string) Option {
	return func(s *Session) { s.locale = locale }
}

// WithLogger sets the logger; the default is the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Start creates a session with a root word drawn from dict.
// dict may be nil, in which case the fallback root is used.
func Start(dict Dictionary, opts ...Option) (*Session, error) {
	s := &Session{
		id:       randomID(),
		dict:     dict,
		fallback: DefaultFallbackRoot,
		locale:   DefaultLocale,
		log:      log.Logger,
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With().Str("session", s.id).Logger()

	if s.root == "" {
		root, fb, err := s.pickRoot()
		if err != nil {
			return nil, err
		}
		s.root, s.onFallback = root, fb
	}
	s.guesses = []string{}
	s.log.Debug().Str("root", s.root).Msg("session started")
	return s, nil
}

// Restart draws a new root word and clears the guess list.
// If no root can be chosen the session is left as it was.
func (s *Session) Restart() error {
	root, fb, err := s.pickRoot()
	if err != nil {
		return err
	}
	s.root, s.onFallback = root, fb
	s.guesses = []string{}
	s.log.Debug().Str("root", s.root).Msg("session restarted")
	return nil
}

// LoadExample replaces the session with the fixed example root and its
// precomputed guesses. It bypasses Submit.
func (s *Session) LoadExample() {
	s.guesses = []string{}
	s.root = ExampleRoot
	s.onFallback = false
	s.guesses = append(s.guesses, exampleGuesses...)
	s.log.Debug().Str("root", s.root).Int("guesses", len(s.guesses)).Msg("example loaded")
}

// Submit validates a candidate word and records it on acceptance.
//
// Checks, in order:
//   - empty after normalisation
//   - same as the root word
//   - already guessed
//   - letters not available in the root (with multiplicity)
//   - two letters or fewer
//   - not a real word according to the dictionary
//
// The first failing check decides the result. Only Accepted changes state.
func (s *Session) Submit(raw string) Result {
	word := Normalize(raw)
	res := s.validate(word)
	if res == Accepted {
		s.guesses = append([]string{word}, s.guesses...)
	}
	s.log.Debug().Str("word", word).Stringer("result", res).Int("score", s.Score()).Msg("submit")
	return res
}

func (s *Session) validate(word string) Result {
	switch {
	case word == "":
		return RejectedEmpty
	case word == s.root:
		return RejectedSameAsRoot
	case s.used(word):
		return RejectedDuplicate
	case !IsPossible(s.root, word):
		return RejectedImpossibleLetters
	case utf8.RuneCountInString(word) <= minWordLen:
		return RejectedTooShort
	}

	if s.dict == nil {
		s.log.Warn().Str("word", word).Msg("no dictionary configured; rejecting")
		return RejectedNotARealWord
	}
	ok, err := s.dict.IsRealWord(word, s.locale)
	if err != nil {
		s.log.Warn().Err(err).Str("word", word).Str("locale", s.locale).Msg("dictionary lookup failed; rejecting")
		return RejectedNotARealWord
	}
	if !ok {
		return RejectedNotARealWord
	}
	return Accepted
}

// used reports whether word is already in the guess list.
func (s *Session) used(word string) bool {
	for _, g := range s.guesses {
		if g == word {
			return true
		}
	}
	return false
}

// Score is the total number of letters across all accepted words.
func (s *Session) Score() int {
	n := 0
	for _, g := range s.guesses {
		n += utf8.RuneCountInString(g)
	}
	return n
}

// RootWord returns the current root word.
func (s *Session) RootWord() string { return s.root }

// Guesses returns a copy of the accepted words, newest first.
func (s *Session) Guesses() []string {
	out := make([]string, len(s.guesses))
	copy(out, s.guesses)
	return out
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// OnFallback reports whether the current root is the fallback word because
// the dictionary could not supply one.
func (s *Session) OnFallback() bool { return s.onFallback }

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{ID: s.id, Root: s.root, Guesses: s.Guesses(), Score: s.Score()}
}

// pickRoot asks the dictionary for a root, using the fallback when the
// dictionary cannot supply one. fallback reports which of the two it used.
func (s *Session) pickRoot() (root string, fallback bool, err error) {
	if s.dict != nil {
		w, derr := s.dict.RandomRoot()
		if w = Normalize(w); derr == nil && w != "" {
			return w, false, nil
		}
		s.log.Warn().Err(derr).Str("fallback", s.fallback).Msg("dictionary gave no root word")
	}
	if s.fallback == "" {
		return "", false, ErrNoRootWord
	}
	return s.fallback, true, nil
}

// Normalize lowercases w and trims surrounding whitespace and newlines.
func Normalize(w string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Lower(language.Und).String(strings.TrimSpace(w))
}

// IsPossible reports whether word can be spelled from the letters of root,
// using each letter of root at most as often as it appears there.
//
// Each letter of word consumes the first matching letter left in a working
// copy of root; a letter with no match left fails the check.
func IsPossible(root, word string) bool {
	pool := []rune(root)
	for _, r := range word {
		i := indexRune(pool, r)
		if i < 0 {
			return false
		}
		pool = append(pool[:i], pool[i+1:]...)
	}
	return true
}

func indexRune(rs []rune, r rune) int {
	for i, x := range rs {
		if x == r {
			return i
		}
	}
	return -1
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
