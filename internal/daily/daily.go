// Package daily picks a date-determined root word, so everyone playing on
// the same day with the same salt gets the same puzzle.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"
)

// ErrNoRoots is returned when the underlying source has no roots to choose from.
var ErrNoRoots = errors.New("daily: no root words")

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// RootLister is a dictionary that can enumerate its roots.
type RootLister interface {
	Roots() ([]string, error)
	IsRealWord(word, locale string) (bool, error)
}

// Source serves the day's root word from an underlying RootLister and
// delegates real-word checks to it.
type Source struct {
	src  RootLister
	salt string
	now  func() time.Time
}

// New wraps src. The clock defaults to time.Now.
func New(src RootLister, salt string) *Source {
	return &Source{src: src, salt: salt, now: time.Now}
}

// WithClock returns a copy of s that reads the date from now.
func (s *Source) WithClock(now func() time.Time) *Source {
	c := *s
	c.now = now
	return &c
}

// RandomRoot returns today's root. Repeated calls on the same UTC day agree.
func (s *Source) RandomRoot() (string, error) {
	roots, err := s.src.Roots()
	if err != nil {
		return "", err
	}
	if len(roots) == 0 {
		return "", ErrNoRoots
	}
	return roots[WordIndex(s.now(), s.salt, len(roots))], nil
}

// IsRealWord delegates to the wrapped source.
func (s *Source) IsRealWord(word, locale string) (bool, error) {
	return s.src.IsRealWord(word, locale)
}

// Date returns today's date key.
func (s *Source) Date() string { return DateKey(s.now()) }
