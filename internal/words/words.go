// internal/words/words.go
//
// In-memory Dictionary source for the game engine.
//
// Responsibilities:
//   - Load root word candidates and known words from files or embedded defaults.
//   - Keep a lookup set for the real-word check (roots ∪ known words).
//   - Pick random roots with crypto/rand.
//
// Word Lists:
//   - "start":      root word candidates, one per line.
//   - "dictionary": words accepted as real (always includes the roots).
//
// Loading behavior (Load):
//   1. If StartFile is set, roots come from that file; otherwise the embedded start.txt.
//   2. If DictionaryFile is set, known words come from that file; otherwise the embedded dictionary.txt.
//
// LoadSpellCheck builds a root-less List for when the start list cannot be
// read, so real-word checks keep working while the game runs on its fallback root.
//
// Constraints:
//   • Entries must be alphabetic (any script); others are skipped.
//   • Lists are normalized to lowercase.
//   • A List never changes after construction, so it is safe for concurrent readers.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/assets"
)

var (
	// ErrNoRoots is returned when a list has no root word candidates.
	ErrNoRoots = errors.New("words: root list is empty")

	// ErrUnsupportedLocale is returned for real-word checks in a locale the list does not cover.
	ErrUnsupportedLocale = errors.New("words: unsupported locale")
)

// List is a fixed set of roots and known words for one locale.
type List struct {
	roots  []string
	known  map[string]struct{}
	locale language.Tag
}

// LoadOptions selects where Load reads its lists from.
type LoadOptions struct {
	StartFile      string // roots; empty means the embedded default
	DictionaryFile string // known words; empty means the embedded default
	Locale         string // locale the lists are written in; empty means "en"
}

// NewList builds a List from raw entries. Entries are normalized and
// non-alphabetic ones dropped; duplicate roots are kept once.
func NewList(roots, known []string, locale string) (*List, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("words: parse locale %q: %w", locale, err)
	}
	l := &List{known: make(map[string]struct{}, len(known)+len(roots)), locale: tag}
	lower := cases.Lower(tag)

	seen := make(map[string]struct{}, len(roots))
	for _, r := range roots {
		w := lower.String(strings.TrimSpace(r))
		if !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		l.roots = append(l.roots, w)
		l.known[w] = struct{}{}
	}
	for _, k := range known {
		w := lower.String(strings.TrimSpace(k))
		if isAlpha(w) {
			l.known[w] = struct{}{}
		}
	}
	return l, nil
}

// Load reads the lists selected by opts. It fails with ErrNoRoots when the
// resulting root list is empty.
func Load(opts LoadOptions) (*List, error) {
	roots, err := readList(opts.StartFile, assets.StartWords)
	if err != nil {
		return nil, fmt.Errorf("words: load roots: %w", err)
	}
	known, err := readList(opts.DictionaryFile, assets.DictionaryWords)
	if err != nil {
		return nil, fmt.Errorf("words: load dictionary: %w", err)
	}
	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}
	l, err := NewList(roots, known, locale)
	if err != nil {
		return nil, err
	}
	if len(l.roots) == 0 {
		return nil, ErrNoRoots
	}
	r, k := l.Stats()
	log.Debug().Int("roots", r).Int("known", k).Str("startFile", opts.StartFile).
		Str("dictionaryFile", opts.DictionaryFile).Msg("word lists loaded")
	return l, nil
}

// LoadSpellCheck builds a List with known words only. Its RandomRoot always
// fails with ErrNoRoots. An unreadable DictionaryFile falls back to the
// embedded dictionary with a warning.
func LoadSpellCheck(opts LoadOptions) (*List, error) {
	known, err := readList(opts.DictionaryFile, assets.DictionaryWords)
	if err != nil {
		log.Warn().Err(err).Str("dictionaryFile", opts.DictionaryFile).Msg("dictionary unreadable; using embedded list")
		if known, err = assets.DictionaryWords(); err != nil {
			return nil, fmt.Errorf("words: load dictionary: %w", err)
		}
	}
	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}
	return NewList(nil, known, locale)
}

// readList reads path when set, otherwise the embedded fallback.
func readList(path string, embedded func() ([]string, error)) ([]string, error) {
	if path == "" {
		return embedded()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// isAlpha reports whether s is non-empty and made of letters only.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// RandomRoot returns a cryptographically random root word.
func (l *List) RandomRoot() (string, error) {
	if len(l.roots) == 0 {
		return "", ErrNoRoots
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.roots))))
	if err != nil {
		return "", fmt.Errorf("words: pick root: %w", err)
	}
	return l.roots[n.Int64()], nil
}

// IsRealWord reports whether w is in the list. The locale must share the
// list's base language ("en-GB" matches an "en" list).
func (l *List) IsRealWord(w, locale string) (bool, error) {
	if !l.covers(locale) {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}
	_, ok := l.known[cases.Lower(l.locale).String(w)]
	return ok, nil
}

func (l *List) covers(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	want, _ := l.locale.Base()
	got, _ := tag.Base()
	return want == got
}

// Roots returns a copy of the root candidates in load order.
func (l *List) Roots() ([]string, error) {
	out := make([]string, len(l.roots))
	copy(out, l.roots)
	return out, nil
}

// Words returns every real word, roots included, sorted.
func (l *List) Words() []string {
	out := make([]string, 0, len(l.known))
	for w := range l.known {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Locale returns the list's locale tag as a string.
func (l *List) Locale() string { return l.locale.String() }

// Stats returns counts of loaded words: (roots, known).
func (l *List) Stats() (rootCount int, knownCount int) {
	return len(l.roots), len(l.known)
}
