package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/daily"
	"github.com/robalobadob/wordscramble/internal/dictdb"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/tui"
	"github.com/robalobadob/wordscramble/internal/ui"
	"github.com/robalobadob/wordscramble/internal/words"
)

// Options tune behavior from root flags.
type Options struct {
	Config  config.Config
	Root    string // fixed first root word
	Example bool   // start from the example session
	Daily   bool   // use the date-determined root

	Out io.Writer // defaults to os.Stdout
	Err io.Writer // defaults to os.Stderr
}

func (o *Options) defaults() {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// With no subcommand it starts the interactive game.
func Run(args []string, opt Options) int {
	opt.defaults()
	cmd, a := "play", args
	if len(args) > 0 {
		cmd, a = args[0], args[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "play":
		return doPlay(opt)

	case "check":
		if len(a) == 0 {
			ui.Fail(opt.Err, "usage: wordscramble check <word...>")
			return 2
		}
		return doCheck(a, opt)

	case "example":
		return doExample(opt)

	case "import":
		if len(a) != 2 {
			ui.Fail(opt.Err, "usage: wordscramble import <start-file> <dictionary-file>")
			return 2
		}
		return doImport(a[0], a[1], opt)

	case "stats":
		return doStats(opt)
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `wordscramble - spell words from the letters of a root word

Usage:
  wordscramble [flags] [subcommand] [args]

Subcommands:
  play                            Interactive game (default)
  check <word...>                 Submit words in order and print each result
  example                         Show the example session
  import <start> <dictionary>     Load word lists into WORDSCRAMBLE_DB
  stats                           Show word list sizes

Flags:
  -root <word>    Start with this root word
  -example        Start from the example session
  -daily          Use today's root word

Examples:
  wordscramble -root widowing check ding dong xyz
  WORDSCRAMBLE_DB=./data/words.db wordscramble import start.txt words.txt
`)
}

// -------------- subcommand impls ----------------

func doPlay(opt Options) int {
	closeLog, err := interactiveLogging(opt.Config)
	if err != nil {
		ui.Fail(opt.Err, "log file: "+err.Error())
		return 1
	}
	defer closeLog()

	s, closeDict, code := startSession(opt)
	if s == nil {
		return code
	}
	defer closeDict()

	var mopts []tui.Option
	if opt.Daily {
		mopts = append(mopts, tui.WithDailyRoot())
	}
	if err := tui.Run(tui.New(s, mopts...)); err != nil {
		log.Error().Err(err).Msg("tui exited")
		ui.Fail(opt.Err, err.Error())
		return 1
	}
	return 0
}

func doCheck(candidates []string, opt Options) int {
	s, closeDict, code := startSession(opt)
	if s == nil {
		return code
	}
	defer closeDict()

	fmt.Fprintln(opt.Out, ui.TitleStyle.Render("Root: "+s.RootWord()))
	if s.OnFallback() {
		fmt.Fprintln(opt.Out, ui.MutedStyle.Render(ui.FallbackNotice))
	}
	for _, c := range candidates {
		res := s.Submit(c)
		word := game.Normalize(c)
		if res.Accepted() {
			ui.OK(opt.Out, fmt.Sprintf("%s %s", word, res))
			continue
		}
		title, _ := ui.Describe(res, s.RootWord())
		line := fmt.Sprintf("%s %s", word, res)
		if title != "" {
			line += " (" + title + ")"
		}
		ui.Fail(opt.Out, line)
	}
	fmt.Fprintln(opt.Out, ui.AccentStyle.Render(fmt.Sprintf("Score: %d", s.Score())))
	return 0
}

func doExample(opt Options) int {
	opt.Example = true
	s, closeDict, code := startSession(opt)
	if s == nil {
		return code
	}
	defer closeDict()

	snap := s.Snapshot()
	lines := []string{ui.TitleStyle.Render(snap.Root), ""}
	for _, g := range snap.Guesses {
		lines = append(lines, ui.GuessLine(g))
	}
	lines = append(lines, "", ui.AccentStyle.Render(fmt.Sprintf("Score: %d", snap.Score)))
	ui.Panel(opt.Out, lines)
	return 0
}

func doImport(startFile, dictFile string, opt Options) int {
	cfg := opt.Config
	if cfg.DBPath == "" {
		ui.Fail(opt.Err, "import: WORDSCRAMBLE_DB is not set")
		return 2
	}
	l, err := words.Load(words.LoadOptions{StartFile: startFile, DictionaryFile: dictFile, Locale: cfg.Locale})
	if err != nil {
		ui.Fail(opt.Err, "load: "+err.Error())
		return 1
	}
	st, err := dictdb.Open(cfg.DBPath, dictdb.WithLocale(cfg.Locale), dictdb.WithTimeout(cfg.DictionaryTimeout))
	if err != nil {
		ui.Fail(opt.Err, "open db: "+err.Error())
		return 1
	}
	defer st.Close()

	added, err := st.Import(context.Background(), l)
	if err != nil {
		ui.Fail(opt.Err, "import: "+err.Error())
		return 1
	}
	ui.OK(opt.Out, fmt.Sprintf("imported %d new entries into %s", added, cfg.DBPath))
	return 0
}

func doStats(opt Options) int {
	cfg := opt.Config
	if cfg.DBPath != "" {
		st, err := dictdb.Open(cfg.DBPath, dictdb.WithLocale(cfg.Locale), dictdb.WithTimeout(cfg.DictionaryTimeout))
		if err != nil {
			ui.Fail(opt.Err, "open db: "+err.Error())
			return 1
		}
		defer st.Close()
		r, w, err := st.Stats(context.Background())
		if err != nil {
			ui.Fail(opt.Err, "stats: "+err.Error())
			return 1
		}
		printStats(opt.Out, "sqlite "+cfg.DBPath, r, w)
		return 0
	}

	l, err := words.Load(words.LoadOptions{StartFile: cfg.StartFile, DictionaryFile: cfg.DictionaryFile, Locale: cfg.Locale})
	if err != nil {
		ui.Fail(opt.Err, "load: "+err.Error())
		return 1
	}
	r, w := l.Stats()
	printStats(opt.Out, "word lists", r, w)
	return 0
}

func printStats(w io.Writer, source string, roots, known int) {
	ui.Panel(w, []string{
		ui.TitleStyle.Render("Dictionary") + "  " + ui.MutedStyle.Render(source),
		fmt.Sprintf("%s %d", ui.AccentStyle.Render("roots"), roots),
		fmt.Sprintf("%s %d", ui.AccentStyle.Render("words"), known),
	})
}

// -------------- wiring helpers --------------

// source is a dictionary that can also list its roots for the daily pick.
type source interface {
	game.Dictionary
	daily.RootLister
}

// openDictionary builds the Dictionary selected by the config and flags.
// When the configured source cannot supply roots it degrades to a
// spell-check-only list, so the game runs on the fallback root and words
// still score. The returned func releases it.
func openDictionary(opt Options) (game.Dictionary, func(), error) {
	cfg := opt.Config
	src, closeFn, err := openSource(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("root word source unavailable; spell check only")
		chk, cerr := words.LoadSpellCheck(words.LoadOptions{DictionaryFile: cfg.DictionaryFile, Locale: cfg.Locale})
		if cerr != nil {
			return nil, nil, fmt.Errorf("%w; spell check: %v", err, cerr)
		}
		src, closeFn = chk, func() {}
	}

	if opt.Daily {
		d := daily.New(src, cfg.DailySalt)
		log.Info().Str("date", d.Date()).Msg("daily root")
		return d, closeFn, nil
	}
	return src, closeFn, nil
}

// openSource opens WORDSCRAMBLE_DB when set and imported, otherwise the word lists.
func openSource(cfg config.Config) (source, func(), error) {
	if cfg.DBPath != "" {
		st, err := dictdb.Open(cfg.DBPath, dictdb.WithLocale(cfg.Locale), dictdb.WithTimeout(cfg.DictionaryTimeout))
		if err != nil {
			return nil, nil, fmt.Errorf("open dictionary db: %w", err)
		}
		_, n, err := st.Stats(context.Background())
		if err == nil && n > 0 {
			return st, func() { _ = st.Close() }, nil
		}
		_ = st.Close()
		log.Warn().Err(err).Str("db", cfg.DBPath).Msg("dictionary db has no words for locale; using word lists")
	}
	l, err := words.Load(words.LoadOptions{StartFile: cfg.StartFile, DictionaryFile: cfg.DictionaryFile, Locale: cfg.Locale})
	if err != nil {
		return nil, nil, fmt.Errorf("load word lists: %w", err)
	}
	return l, func() {}, nil
}

// startSession opens the dictionary and starts a session. On failure it
// reports the error and returns a nil session with the exit code to use.
func startSession(opt Options) (*game.Session, func(), int) {
	dict, closeDict, err := openDictionary(opt)
	if err != nil {
		// A missing source is not fatal while a fallback root exists.
		log.Warn().Err(err).Msg("dictionary unavailable")
		dict, closeDict = nil, func() {}
	}

	gopts := []game.Option{
		game.WithLocale(opt.Config.Locale),
		game.WithFallback(opt.Config.FallbackRoot),
	}
	if opt.Root != "" {
		gopts = append(gopts, game.WithRoot(opt.Root))
	}
	s, err := game.Start(dict, gopts...)
	if err != nil {
		closeDict()
		if errors.Is(err, game.ErrNoRootWord) {
			log.Error().Err(err).Msg("no root word and no fallback configured")
		}
		ui.Fail(opt.Err, "start: "+err.Error())
		return nil, nil, 1
	}
	if opt.Example {
		s.LoadExample()
	}
	return s, closeDict, 0
}

// interactiveLogging points the global logger at LOG_FILE, or discards logs,
// so log lines never draw over the alt screen.
func interactiveLogging(cfg config.Config) (func(), error) {
	if strings.TrimSpace(cfg.LogFile) == "" {
		log.Logger = zerolog.Nop()
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}
