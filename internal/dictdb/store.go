// internal/dictdb/store.go
//
// SQLite-backed Dictionary source.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Importing word lists and answering root/real-word lookups.
//
// Note: the database holds reference word lists only, never game state.

package dictdb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/internal/words"
)

//go:embed sql/*.sql
var migrations embed.FS

// DefaultTimeout bounds each lookup.
const DefaultTimeout = 2 * time.Second

// ErrNoRoots is returned when the store has no roots for its locale.
var ErrNoRoots = errors.New("dictdb: no root words")

// Store is a Dictionary backed by SQLite.
type Store struct {
	db      *sql.DB
	locale  string // base language roots are drawn for, e.g. "en"
	timeout time.Duration
}

// Option customises Open.
type Option func(*Store)

// WithTimeout sets the per-lookup timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLocale sets the locale RandomRoot and Roots draw from. Default "en".
func WithLocale(locale string) Option {
	return func(s *Store) { s.locale = locale }
}

// Open opens (and creates if missing) the database at dsn and migrates it.
func Open(dsn string, opts ...Option) (*Store, error) {
	s := &Store{locale: "en", timeout: DefaultTimeout}
	for _, o := range opts {
		o(s)
	}
	base, err := baseLanguage(s.locale)
	if err != nil {
		return nil, err
	}
	s.locale = base

	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.db = db
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

/**
 * openDB opens (and creates if missing) a SQLite database file.
 *
 * - Ensures parent directory exists for relative DSNs (e.g. ./data/words.db).
 * - Configures busy timeout and WAL journaling mode.
 * - Enforces foreign keys.
 */
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

/**
 * migrate applies the embedded SQL migrations.
 *
 * - Uses a _migrations table to track applied files.
 * - Executes each *.sql file in lexical order, each in its own transaction.
 * - Skips if already applied.
 */
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

/* ----------------------------- import ---------------------------------- */

// Import copies a word list into the store under the list's base language.
// Roots are stored as real words too. Existing rows are left alone, so
// importing the same list twice adds nothing. Returns the number of new rows.
func (s *Store) Import(ctx context.Context, l *words.List) (int, error) {
	locale, err := baseLanguage(l.Locale())
	if err != nil {
		return 0, err
	}
	roots, _ := l.Roots()
	known := l.Words()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	rootStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO roots (word, locale) VALUES (?, ?)`)
	if err != nil {
		return 0, err
	}
	defer rootStmt.Close()
	wordStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (word, locale) VALUES (?, ?)`)
	if err != nil {
		return 0, err
	}
	defer wordStmt.Close()

	added := 0
	exec := func(stmt *sql.Stmt, w string) error {
		res, err := stmt.ExecContext(ctx, w, locale)
		if err != nil {
			return fmt.Errorf("insert %q: %w", w, err)
		}
		n, _ := res.RowsAffected()
		added += int(n)
		return nil
	}
	for _, w := range roots {
		if err := exec(rootStmt, w); err != nil {
			return 0, err
		}
	}
	for _, w := range known {
		if err := exec(wordStmt, w); err != nil {
			return 0, err
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO imports (locale, roots, words) VALUES (?, ?, ?)`,
		locale, len(roots), len(known)); err != nil {
		return 0, fmt.Errorf("record import: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info().Str("locale", locale).Int("roots", len(roots)).Int("words", len(known)).Int("added", added).Msg("import done")
	return added, nil
}

/* ----------------------------- lookups --------------------------------- */

// RandomRoot returns a random root for the store's locale.
func (s *Store) RandomRoot() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var w string
	err := s.db.QueryRowContext(ctx,
		`SELECT word FROM roots WHERE locale=? ORDER BY RANDOM() LIMIT 1`, s.locale,
	).Scan(&w)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoRoots
	}
	if err != nil {
		return "", fmt.Errorf("dictdb: random root: %w", err)
	}
	return w, nil
}

// IsRealWord reports whether word is stored for the base language of locale.
func (s *Store) IsRealWord(word, locale string) (bool, error) {
	base, err := baseLanguage(locale)
	if err != nil {
		return false, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var one int
	err = s.db.QueryRowContext(ctx,
		`SELECT 1 FROM words WHERE word=? AND locale=?`,
		cases.Lower(language.Und).String(strings.TrimSpace(word)), base,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("dictdb: lookup %q: %w", word, err)
	}
	return true, nil
}

// Roots returns every root for the store's locale in alphabetical order.
// The order is stable, which the daily root relies on.
func (s *Store) Roots() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT word FROM roots WHERE locale=? ORDER BY word`, s.locale)
	if err != nil {
		return nil, fmt.Errorf("dictdb: roots: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Stats returns the number of roots and real words stored for the store's locale.
func (s *Store) Stats(ctx context.Context) (rootCount int, wordCount int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM roots WHERE locale=?`, s.locale).Scan(&rootCount); err != nil {
		return 0, 0, err
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM words WHERE locale=?`, s.locale).Scan(&wordCount); err != nil {
		return 0, 0, err
	}
	return rootCount, wordCount, nil
}

// baseLanguage reduces a locale tag to its base language ("en-GB" → "en").
func baseLanguage(locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("dictdb: locale %q: %w", locale, words.ErrUnsupportedLocale)
	}
	b, _ := tag.Base()
	return b.String(), nil
}
