// Package storage provides SQLite-based persistence for finished runs and
// saved progress. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/whispers/internal/session"
	"github.com/vovakirdan/whispers/internal/story"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is a finished run as stored in the database.
type RunEntry struct {
	ID int64
	session.RunResult
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			player TEXT NOT NULL,
			seed INTEGER NOT NULL,
			ending TEXT NOT NULL,
			fear INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			has_torch INTEGER NOT NULL DEFAULT 0,
			found_note INTEGER NOT NULL DEFAULT 0,
			alive INTEGER NOT NULL DEFAULT 1,
			journey TEXT NOT NULL DEFAULT '[]',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
		CREATE INDEX IF NOT EXISTS idx_runs_ending ON runs(ending);

		CREATE TABLE IF NOT EXISTS saves (
			player TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			draws INTEGER NOT NULL DEFAULT 0,
			state TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r session.RunResult) (int64, error) {
	journey, err := json.Marshal(r.Log)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode journey: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO runs
		 (session_id, player, seed, ending, fear, moves, has_torch, found_note, alive, journey, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.Player,
		r.Seed,
		string(r.Ending),
		r.Fear,
		r.Moves,
		r.HasTorch,
		r.FoundNote,
		r.Alive,
		string(journey),
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordRun implements session.RunRecorder.
func (s *Store) RecordRun(r session.RunResult) error {
	_, err := s.SaveRun(r)
	return err
}

// Ensure Store implements RunRecorder
var _ session.RunRecorder = (*Store)(nil)

const runColumns = `id, session_id, player, seed, ending, fear, moves,
		        has_torch, found_note, alive, journey, duration_ms, created_at`

// RecentRuns retrieves the most recent runs of all players.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunsByPlayer retrieves the most recent runs of one player.
func (s *Store) RunsByPlayer(player string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	defer rows.Close()

	var results []RunEntry
	for rows.Next() {
		var (
			entry      RunEntry
			ending     string
			journey    string
			durationMS int64
			createdAt  any
		)

		if err := rows.Scan(
			&entry.ID,
			&entry.SessionID,
			&entry.Player,
			&entry.Seed,
			&ending,
			&entry.Fear,
			&entry.Moves,
			&entry.HasTorch,
			&entry.FoundNote,
			&entry.Alive,
			&journey,
			&durationMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		entry.Ending = story.Scene(ending)
		entry.Duration = time.Duration(durationMS) * time.Millisecond
		entry.CreatedAt = parseTime(createdAt)
		if err := json.Unmarshal([]byte(journey), &entry.Log); err != nil {
			return nil, fmt.Errorf("storage: cannot decode journey of run %d: %w", entry.ID, err)
		}

		results = append(results, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ClearRuns removes every recorded run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs          int
	GoodEndings   int
	BadEndings    int
	Deaths        int
	AvgFear       float64
	FastestEscape int // fewest moves to the good ending, 0 when nobody escaped
	LastPlayed    time.Time
}

// EscapeRate returns the share of runs that reached the good ending.
func (st *Stats) EscapeRate() float64 {
	if st.Runs == 0 {
		return 0
	}
	return float64(st.GoodEndings) / float64(st.Runs)
}

// Stats retrieves aggregated statistics over all runs.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN ending = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN ending = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN alive = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(fear), 0),
		        COALESCE(MIN(CASE WHEN ending = ? THEN moves END), 0)
		 FROM runs`,
		string(story.SceneEndGood), string(story.SceneEndBad), string(story.SceneEndGood),
	).Scan(&stats.Runs, &stats.GoodEndings, &stats.BadEndings, &stats.Deaths, &stats.AvgFear, &stats.FastestEscape)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// SaveProgress stores snap as the player's resumable session, replacing any
// earlier save.
func (s *Store) SaveProgress(snap session.Snapshot) error {
	if snap.Player == "" {
		return fmt.Errorf("storage: cannot save progress without a player")
	}
	state, err := json.Marshal(snap.State)
	if err != nil {
		return fmt.Errorf("storage: cannot encode state: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saves (player, seed, moves, draws, state, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET
		     seed = excluded.seed,
		     moves = excluded.moves,
		     draws = excluded.draws,
		     state = excluded.state,
		     updated_at = CURRENT_TIMESTAMP`,
		snap.Player, snap.Seed, snap.Moves, snap.Draws, string(state),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// LoadProgress returns the player's saved session, or nil if there is none.
func (s *Store) LoadProgress(player string) (*session.Snapshot, error) {
	snap := session.Snapshot{Player: player}
	var state string

	err := s.db.QueryRow(
		`SELECT seed, moves, draws, state FROM saves WHERE player = ?`,
		player,
	).Scan(&snap.Seed, &snap.Moves, &snap.Draws, &state)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load progress: %w", err)
	}

	if err := json.Unmarshal([]byte(state), &snap.State); err != nil {
		return nil, fmt.Errorf("storage: cannot decode saved state: %w", err)
	}
	if snap.State.Log == nil {
		snap.State.Log = []string{}
	}
	if err := snap.State.Validate(); err != nil {
		return nil, fmt.Errorf("storage: saved state is corrupt: %w", err)
	}

	return &snap, nil
}

// ClearProgress deletes the player's saved session, if any.
func (s *Store) ClearProgress(player string) error {
	if _, err := s.db.Exec(`DELETE FROM saves WHERE player = ?`, player); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}

// HasProgress reports whether the player has a saved session.
func (s *Store) HasProgress(player string) (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM saves WHERE player = ?`, player).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return n > 0, nil
}

// parseTime converts a DATETIME column as returned by the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
