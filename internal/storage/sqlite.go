// Package storage keeps the rankings and the local run history in SQLite,
// through the pure-Go modernc.org/sqlite driver.
package storage

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
	"time"

	_ "modernc.org/sqlite"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
	"github.com/vovakirdan/fruit-link/internal/ranking"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const timeLayout = time.RFC3339Nano

// Store is a SQLite database holding both tables. It backs a
// ranking.Service and the terminal history screens.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ ranking.Store = (*Store)(nil)

// Run is one finished game in the local history.
type Run struct {
	ID        int64
	GameID    string
	Nickname  string
	Score     int
	Level     int
	Time      int
	CreatedAt time.Time
}

// GameStats summarises the history of one variant.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	BestLevel  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open opens or creates the database at path, creating parent directories
// and applying pending migrations. A leading ~ is the home directory.
func Open(path string) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: mkdir %s: %w", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: connect: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: expand home: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate applies the embedded migrations in name order. Applied names are
// kept in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY)`); err != nil {
		return fmt.Errorf("storage: create _migrations: %w", err)
	}

	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("storage: list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name = ?`, name).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("storage: query _migrations: %w", err)
		}

		script, err := migrationFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("storage: read %s: %w", name, err)
		}
		if err := applyMigration(db, name, string(script)); err != nil {
			return fmt.Errorf("storage: migration %s: %w", name, err)
		}
	}
	return nil
}

func applyMigration(db *sql.DB, name, script string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO _migrations (name) VALUES (?)`, name); err != nil {
		return err
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Insert adds a leaderboard entry.
func (s *Store) Insert(ctx context.Context, e ranking.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rankings (id, nickname, score, level, time_secs, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Nickname, e.Score, e.Level, e.Time, e.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: insert ranking: %w", err)
	}
	return nil
}

// Top returns the leaderboard best first, ties in insertion order.
// limit <= 0 returns every entry.
func (s *Store) Top(ctx context.Context, limit int) ([]ranking.Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nickname, score, level, time_secs, created_at
		 FROM rankings ORDER BY score DESC, seq ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query rankings: %w", err)
	}
	defer rows.Close()

	entries := []ranking.Entry{}
	for rows.Next() {
		var e ranking.Entry
		var at string
		if err := rows.Scan(&e.ID, &e.Nickname, &e.Score, &e.Level, &e.Time, &at); err != nil {
			return nil, fmt.Errorf("storage: scan ranking: %w", err)
		}
		e.CreatedAt = parseTime(at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every leaderboard entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM rankings`); err != nil {
		return fmt.Errorf("storage: clear rankings: %w", err)
	}
	return nil
}

// Trim drops everything below the best keep entries.
func (s *Store) Trim(ctx context.Context, keep int) error {
	if keep < 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM rankings WHERE seq NOT IN (
			SELECT seq FROM rankings ORDER BY score DESC, seq ASC LIMIT ?)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("storage: trim rankings: %w", err)
	}
	return nil
}

// SaveRun appends a finished game to the history and returns its row ID.
func (s *Store) SaveRun(gameID, nickname string, out core.Outcome) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (game_id, nickname, score, level, time_secs, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		gameID, nickname, out.Score, out.Level, out.Time, s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save run: %w", err)
	}
	return res.LastInsertId()
}

// TopRuns returns the best limit runs of a variant; limit <= 0 means 10.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, game_id, nickname, score, level, time_secs, created_at
		 FROM runs WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var at string
		if err := rows.Scan(&r.ID, &r.GameID, &r.Nickname, &r.Score, &r.Level, &r.Time, &at); err != nil {
			return nil, fmt.Errorf("storage: scan run: %w", err)
		}
		r.CreatedAt = parseTime(at)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// HighScore returns the best score of a variant, 0 without runs.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(score) FROM runs WHERE game_id = ?`, gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: query high score: %w", err)
	}
	return int(best.Int64), nil
}

// Stats aggregates the history of a variant.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	st := &GameStats{GameID: gameID}
	var last sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(level), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&st.GamesCount, &st.HighScore, &st.BestLevel, &st.AvgScore, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: query stats: %w", err)
	}
	if last.Valid {
		st.LastPlayed = parseTime(last.String)
	}
	return st, nil
}

// ClearRuns deletes the history of a variant.
func (s *Store) ClearRuns(gameID string) error {
	if _, err := s.db.Exec(`DELETE FROM runs WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("storage: clear runs: %w", err)
	}
	return nil
}

func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
