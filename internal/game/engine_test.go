package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// stubDict is a fixed in-memory Dictionary.
type stubDict struct {
	roots   []string
	next    int
	known   map[string]bool
	rootErr error
	realErr error
	lookups int
}

func newStub(roots []string, known ...string) *stubDict {
	d := &stubDict{roots: roots, known: map[string]bool{}}
	for _, w := range known {
		d.known[w] = true
	}
	return d
}

func (d *stubDict) RandomRoot() (string, error) {
	if d.rootErr != nil {
		return "", d.rootErr
	}
	if len(d.roots) == 0 {
		return "", nil
	}
	r := d.roots[d.next%len(d.roots)]
	d.next++
	return r, nil
}

func (d *stubDict) IsRealWord(word, locale string) (bool, error) {
	d.lookups++
	if d.realErr != nil {
		return false, d.realErr
	}
	return d.known[word], nil
}

func quiet() Option { return WithLogger(zerolog.Nop()) }

func widowingSession(t *testing.T) (*Session, *stubDict) {
	t.Helper()
	d := newStub([]string{"widowing"}, "ding", "dong", "window", "widow", "wind", "wing", "dig", "now", "at")
	s, err := Start(d, quiet())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s, d
}

func TestSubmitWidowingScenario(t *testing.T) {
	s, _ := widowingSession(t)

	steps := []struct {
		in   string
		want Result
	}{
		{"ding", Accepted},
		{"ding", RejectedDuplicate},
		{"widowing", RejectedSameAsRoot},
		{"xyz", RejectedImpossibleLetters},
		{"at", RejectedImpossibleLetters}, // no 'a' or 't' in widowing
		{"do", RejectedTooShort},
		{"gnidow", RejectedNotARealWord},
		{"", RejectedEmpty},
		{"  \n\t", RejectedEmpty},
	}
	for _, st := range steps {
		if got := s.Submit(st.in); got != st.want {
			t.Errorf("Submit(%q) = %v, want %v", st.in, got, st.want)
		}
	}
	if got := s.Guesses(); len(got) != 1 || got[0] != "ding" {
		t.Fatalf("guesses = %v, want [ding]", got)
	}
}

func TestSubmitTooShortIndependentOfDictionary(t *testing.T) {
	d := newStub([]string{"catapult"}, "at")
	s, err := Start(d, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Submit("at"); got != RejectedTooShort {
		t.Fatalf("Submit(at) = %v, want %v", got, RejectedTooShort)
	}
	if d.lookups != 0 {
		t.Fatalf("dictionary consulted %d times for a short word", d.lookups)
	}
}

func TestSubmitNormalizes(t *testing.T) {
	s, _ := widowingSession(t)

	if got := s.Submit("  WIDOWING\n"); got != RejectedSameAsRoot {
		t.Fatalf("root with case/space = %v, want %v", got, RejectedSameAsRoot)
	}
	if got := s.Submit(" Window "); got != Accepted {
		t.Fatalf("Submit(Window) = %v", got)
	}
	if got := s.Submit("WINDOW"); got != RejectedDuplicate {
		t.Fatalf("Submit(WINDOW) = %v, want %v", got, RejectedDuplicate)
	}
	if g := s.Guesses(); g[0] != "window" {
		t.Fatalf("stored %q, want normalized", g[0])
	}
}

func TestSubmitNewestFirstAndScore(t *testing.T) {
	s, _ := widowingSession(t)

	want := 0
	for _, w := range []string{"ding", "widow", "now"} {
		if got := s.Submit(w); got != Accepted {
			t.Fatalf("Submit(%q) = %v", w, got)
		}
		want += len(w)
		if s.Score() != want {
			t.Fatalf("after %q score = %d, want %d", w, s.Score(), want)
		}
	}
	got := strings.Join(s.Guesses(), ",")
	if got != "now,widow,ding" {
		t.Fatalf("guesses = %s, want now,widow,ding", got)
	}
}

func TestRejectionsDoNotMutate(t *testing.T) {
	s, _ := widowingSession(t)
	s.Submit("ding")
	before := s.Snapshot()

	for _, in := range []string{"", "widowing", "ding", "zebra", "do", "gnidow"} {
		s.Submit(in)
	}
	after := s.Snapshot()
	if after.Root != before.Root || after.Score != before.Score || strings.Join(after.Guesses, ",") != strings.Join(before.Guesses, ",") {
		t.Fatalf("state changed: before %+v after %+v", before, after)
	}
}

func TestDictionaryErrorRejects(t *testing.T) {
	s, d := widowingSession(t)
	d.realErr = errors.New("oracle offline")

	if got := s.Submit("ding"); got != RejectedNotARealWord {
		t.Fatalf("Submit with failing oracle = %v, want %v", got, RejectedNotARealWord)
	}
	if s.Score() != 0 {
		t.Fatalf("score = %d, want 0", s.Score())
	}

	d.realErr = nil
	if got := s.Submit("ding"); got != Accepted {
		t.Fatalf("Submit after recovery = %v", got)
	}
}

func TestStartFallback(t *testing.T) {
	cases := []struct {
		name string
		dict Dictionary
	}{
		{"nil dictionary", nil},
		{"root error", &stubDict{rootErr: errors.New("unavailable")}},
		{"empty root", newStub(nil)},
		{"blank root", newStub([]string{"  "})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Start(tc.dict, quiet())
			if err != nil {
				t.Fatalf("Start: %v", err)
			}
			if s.RootWord() != DefaultFallbackRoot {
				t.Fatalf("root = %q, want %q", s.RootWord(), DefaultFallbackRoot)
			}
			if !s.OnFallback() {
				t.Fatal("OnFallback = false for a fallback root")
			}
		})
	}
}

func TestFallbackKeepsSpellCheck(t *testing.T) {
	d := newStub(nil, "milk", "silk", "worm")
	s, err := Start(d, quiet())
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"milk", "silk", "worm"} {
		if got := s.Submit(w); got != Accepted {
			t.Fatalf("Submit(%q) = %v, want accepted", w, got)
		}
	}
	if s.Score() != 12 {
		t.Fatalf("score = %d, want 12", s.Score())
	}
}

func TestOnFallbackTracksRootSource(t *testing.T) {
	d := &stubDict{rootErr: errors.New("unavailable"), known: map[string]bool{}}
	s, err := Start(d, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if !s.OnFallback() {
		t.Fatal("OnFallback = false after root error")
	}

	d.rootErr, d.roots = nil, []string{"widowing"}
	if err := s.Restart(); err != nil {
		t.Fatal(err)
	}
	if s.OnFallback() || s.RootWord() != "widowing" {
		t.Fatalf("after recovery: root=%q onFallback=%v", s.RootWord(), s.OnFallback())
	}

	d.rootErr = errors.New("unavailable again")
	if err := s.Restart(); err != nil || !s.OnFallback() {
		t.Fatalf("Restart: err=%v onFallback=%v", err, s.OnFallback())
	}
	s.LoadExample()
	if s.OnFallback() {
		t.Fatal("example session reported as fallback")
	}
}

func TestStartNoFallback(t *testing.T) {
	_, err := Start(nil, WithFallback(""), quiet())
	if !errors.Is(err, ErrNoRootWord) {
		t.Fatalf("err = %v, want ErrNoRootWord", err)
	}
}

func TestStartWithRoot(t *testing.T) {
	d := newStub([]string{"silkworm"})
	s, err := Start(d, WithRoot(" Widowing "), quiet())
	if err != nil {
		t.Fatal(err)
	}
	if s.RootWord() != "widowing" || s.OnFallback() {
		t.Fatalf("root = %q onFallback=%v", s.RootWord(), s.OnFallback())
	}
	if d.next != 0 {
		t.Fatalf("dictionary asked for a root despite WithRoot")
	}
}

func TestStartLowercasesDictionaryRoot(t *testing.T) {
	s, err := Start(newStub([]string{"Silkworm\n"}), quiet())
	if err != nil {
		t.Fatal(err)
	}
	if s.RootWord() != "silkworm" {
		t.Fatalf("root = %q", s.RootWord())
	}
}

func TestRestart(t *testing.T) {
	d := newStub([]string{"widowing", "silkworm"}, "ding")
	s, err := Start(d, quiet())
	if err != nil {
		t.Fatal(err)
	}
	s.Submit("ding")
	if s.Score() == 0 {
		t.Fatal("expected a scored guess before restart")
	}

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Score() != 0 || len(s.Guesses()) != 0 {
		t.Fatalf("restart left guesses %v", s.Guesses())
	}
	if s.RootWord() != "silkworm" {
		t.Fatalf("root = %q, want silkworm", s.RootWord())
	}
}

func TestRestartFailureKeepsState(t *testing.T) {
	d := newStub([]string{"widowing"}, "ding")
	s, err := Start(d, WithFallback(""), quiet())
	if err != nil {
		t.Fatal(err)
	}
	s.Submit("ding")
	d.rootErr = errors.New("gone")

	if err := s.Restart(); !errors.Is(err, ErrNoRootWord) {
		t.Fatalf("Restart err = %v, want ErrNoRootWord", err)
	}
	if s.RootWord() != "widowing" || s.Score() != 4 {
		t.Fatalf("state changed after failed restart: %+v", s.Snapshot())
	}
}

func TestLoadExample(t *testing.T) {
	s, _ := widowingSession(t)
	s.Submit("ding")
	s.LoadExample()

	if s.RootWord() != ExampleRoot {
		t.Fatalf("root = %q", s.RootWord())
	}
	g := s.Guesses()
	if len(g) != len(exampleGuesses) {
		t.Fatalf("got %d guesses, want %d", len(g), len(exampleGuesses))
	}
	seen := map[string]bool{}
	sum := 0
	for _, w := range g {
		if !IsPossible(ExampleRoot, w) {
			t.Errorf("%q cannot be spelled from %q", w, ExampleRoot)
		}
		if w == ExampleRoot || len(w) <= minWordLen {
			t.Errorf("%q breaks a submission rule", w)
		}
		if seen[w] {
			t.Errorf("duplicate %q", w)
		}
		seen[w] = true
		sum += len(w)
	}
	if s.Score() != sum {
		t.Fatalf("score = %d, want %d", s.Score(), sum)
	}
	if got := s.Submit("window"); got != RejectedDuplicate {
		t.Fatalf("Submit(window) after example = %v", got)
	}
}

func TestGuessesReturnsCopy(t *testing.T) {
	s, _ := widowingSession(t)
	s.Submit("ding")

	g := s.Guesses()
	g[0] = "mutated"
	snap := s.Snapshot()
	snap.Guesses[0] = "mutated"

	if s.Guesses()[0] != "ding" {
		t.Fatal("caller mutation leaked into session")
	}
}

func TestResultString(t *testing.T) {
	if Accepted.String() != "accepted" || RejectedNotARealWord.String() != "not_a_real_word" {
		t.Fatalf("unexpected names: %s %s", Accepted, RejectedNotARealWord)
	}
	if Result(42).String() != "unknown" {
		t.Fatalf("out of range = %s", Result(42))
	}
}
