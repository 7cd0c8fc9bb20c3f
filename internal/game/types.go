// internal/game/types.go
//
// Core type definitions for the word-scramble engine.
// Defines:
//   - Result: tagged outcome of a single submission.
//   - Dictionary: the word source a session draws roots from and checks words against.
//   - Snapshot: read-only copy of session state for rendering.

package game

import "errors"

// Result is the outcome of one Submit call.
// Every rejection leaves the session untouched.
type Result int

const (
	Accepted Result = iota
	RejectedEmpty
	RejectedSameAsRoot
	RejectedDuplicate
	RejectedImpossibleLetters
	RejectedTooShort
	RejectedNotARealWord
)

var resultNames = [...]string{
	Accepted:                  "accepted",
	RejectedEmpty:             "empty",
	RejectedSameAsRoot:        "same_as_root",
	RejectedDuplicate:         "duplicate",
	RejectedImpossibleLetters: "impossible_letters",
	RejectedTooShort:          "too_short",
	RejectedNotARealWord:      "not_a_real_word",
}

// String returns a stable snake_case name, used in logs and CLI output.
func (r Result) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return "unknown"
	}
	return resultNames[r]
}

// Accepted reports whether the submission was added to the guess list.
func (r Result) Accepted() bool { return r == Accepted }

// Dictionary supplies root words and answers whether a word is real.
//
// Errors mean the source could not answer (I/O failure, timeout, unsupported
// locale). A session never surfaces them as faults: RandomRoot errors fall back
// to the fallback root, IsRealWord errors reject the candidate.
type Dictionary interface {
	// RandomRoot returns one candidate root word.
	RandomRoot() (string, error)

	// IsRealWord reports whether word is a valid word in locale.
	IsRealWord(word, locale string) (bool, error)
}

// Snapshot is a value copy of a session, safe to hand to a renderer.
type Snapshot struct {
	ID      string   // Session identifier (random hex string).
	Root    string   // Current root word (lowercase).
	Guesses []string // Accepted words, newest first.
	Score   int      // Sum of letters across Guesses.
}

// ErrNoRootWord is returned when no root word can be chosen and no fallback
// is configured. It is a startup failure, never a submission outcome.
var ErrNoRootWord = errors.New("game: no root word available")
