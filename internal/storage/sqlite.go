// Package storage provides SQLite-based match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchResult is the final score of one finished session.
type MatchResult struct {
	ID          int64
	Mode        string // "local", "demo" or "ssh"
	Player      string // ssh user, empty for local play
	PlayerScore int
	AIScore     int
	Ticks       uint64
	Duration    time.Duration
	CreatedAt   time.Time
}

// Margin returns player points minus CPU points.
func (m MatchResult) Margin() int {
	return m.PlayerScore - m.AIScore
}

// Outcome returns "win", "loss" or "draw" from the player's side.
func (m MatchResult) Outcome() string {
	switch {
	case m.PlayerScore > m.AIScore:
		return "win"
	case m.PlayerScore < m.AIScore:
		return "loss"
	default:
		return "draw"
	}
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			player_score INTEGER NOT NULL DEFAULT 0,
			ai_score INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_matches_margin ON matches((player_score - ai_score) DESC);
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

// SaveMatch records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m MatchResult) (int64, error) {
	if m.Mode == "" {
		m.Mode = "local"
	}
	result, err := s.db.Exec(
		`INSERT INTO matches (mode, player, player_score, ai_score, ticks, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.Mode, m.Player, m.PlayerScore, m.AIScore, int64(m.Ticks), m.Duration.Milliseconds(), //nolint:gosec // tick counts fit
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const matchColumns = `id, mode, player, player_score, ai_score, ticks, duration_ms, created_at`

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryMatches(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// TopMatches retrieves the best matches for the player: widest winning
// margin first, then most player points.
func (s *Store) TopMatches(limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryMatches(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY (player_score - ai_score) DESC, player_score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryMatches(query string, args ...any) ([]MatchResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var matches []MatchResult
	for rows.Next() {
		var m MatchResult
		var ticks, durationMS int64
		var createdAt any
		if err := rows.Scan(&m.ID, &m.Mode, &m.Player, &m.PlayerScore, &m.AIScore,
			&ticks, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.Ticks = uint64(ticks) //nolint:gosec // stored from a uint64
		m.Duration = time.Duration(durationMS) * time.Millisecond
		m.CreatedAt = parseTime(createdAt)
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return matches, nil
}

// ClearMatches deletes all match history.
func (s *Store) ClearMatches() error {
	if _, err := s.db.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all matches.
type Stats struct {
	Matches       int
	Wins          int
	Losses        int
	Draws         int
	PointsFor     int
	PointsAgainst int
	BestMargin    int
	PlayTime      time.Duration
	LastPlayed    time.Time
}

// Stats retrieves aggregated statistics over the whole history.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	var playMS int64

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(player_score > ai_score), 0),
		        COALESCE(SUM(player_score < ai_score), 0),
		        COALESCE(SUM(player_score = ai_score), 0),
		        COALESCE(SUM(player_score), 0),
		        COALESCE(SUM(ai_score), 0),
		        COALESCE(MAX(player_score - ai_score), 0),
		        COALESCE(SUM(duration_ms), 0)
		 FROM matches`,
	).Scan(&stats.Matches, &stats.Wins, &stats.Losses, &stats.Draws,
		&stats.PointsFor, &stats.PointsAgainst, &stats.BestMargin, &playMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.PlayTime = time.Duration(playMS) * time.Millisecond

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM matches ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
