// Package storage provides SQLite-based persistence for hiscores.
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

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for hiscore persistence.
type Store struct {
	db *sql.DB
}

// Score is one completed game.
type Score struct {
	ID      int64
	Mode    string
	Goal    int
	Ticks   int // Engine ticks of actual play
	TimeMs  int
	Blocks  int
	Keys    int
	Finesse int
	Lines   int
	Seed    uint32
	Replay  string // Path of the saved replay, empty if none
	// CreatedAt defaults to the insert time when zero.
	CreatedAt time.Time
}

// PiecesPerSecond returns the placement rate of the run.
func (s Score) PiecesPerSecond() float64 {
	if s.TimeMs == 0 {
		return 0
	}
	return float64(s.Blocks) * 1000 / float64(s.TimeMs)
}

// KeysPerPiece returns the average number of key presses per piece.
func (s Score) KeysPerPiece() float64 {
	if s.Blocks == 0 {
		return 0
	}
	return float64(s.Keys) / float64(s.Blocks)
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
		CREATE TABLE IF NOT EXISTS hiscores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			goal INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			time_ms INTEGER NOT NULL,
			blocks INTEGER NOT NULL,
			keys INTEGER NOT NULL,
			finesse INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			replay TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_hiscores_mode ON hiscores(mode);
		CREATE INDEX IF NOT EXISTS idx_hiscores_best ON hiscores(mode, time_ms ASC);
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

// SaveScore records a completed game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(sc Score) (int64, error) {
	var createdAt any
	if !sc.CreatedAt.IsZero() {
		createdAt = sc.CreatedAt.UTC().Format(timeLayout)
	}

	result, err := s.db.Exec(
		`INSERT INTO hiscores (mode, goal, ticks, time_ms, blocks, keys, finesse, lines, seed, replay, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))`,
		sc.Mode, sc.Goal, sc.Ticks, sc.TimeMs, sc.Blocks, sc.Keys, sc.Finesse, sc.Lines, int64(sc.Seed), sc.Replay, createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const scoreColumns = `id, mode, goal, ticks, time_ms, blocks, keys, finesse, lines, seed, replay, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanScore(row scanner) (Score, error) {
	var sc Score
	var seed int64
	var createdAt any
	err := row.Scan(&sc.ID, &sc.Mode, &sc.Goal, &sc.Ticks, &sc.TimeMs, &sc.Blocks,
		&sc.Keys, &sc.Finesse, &sc.Lines, &seed, &sc.Replay, &createdAt)
	if err != nil {
		return sc, err
	}
	sc.Seed = uint32(seed)
	sc.CreatedAt = parseTime(createdAt)
	return sc, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) queryScores(query string, args ...any) ([]Score, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		sc, err := scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		scores = append(scores, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return scores, nil
}

// TopScores retrieves the fastest N games for the given mode.
// Results are ordered by time ascending, ties broken by insertion order.
func (s *Store) TopScores(mode string, limit int) ([]Score, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryScores(
		`SELECT `+scoreColumns+`
		 FROM hiscores
		 WHERE mode = ?
		 ORDER BY time_ms ASC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
}

// RecentScores retrieves the latest N games across all modes.
func (s *Store) RecentScores(limit int) ([]Score, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryScores(
		`SELECT `+scoreColumns+`
		 FROM hiscores
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// BestTime returns the fastest time in ms for the given mode.
// Returns false if no scores exist.
func (s *Store) BestTime(mode string) (int, bool, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(time_ms) FROM hiscores WHERE mode = ?",
		mode,
	).Scan(&best)

	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !best.Valid {
		return 0, false, nil
	}

	return int(best.Int64), true, nil
}

// ScoreByID returns a single score.
func (s *Store) ScoreByID(id int64) (*Score, error) {
	sc, err := scanScore(s.db.QueryRow(
		`SELECT `+scoreColumns+` FROM hiscores WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query score: %w", err)
	}
	return &sc, nil
}

// ClearScores deletes all scores for the given mode.
func (s *Store) ClearScores(mode string) error {
	_, err := s.db.Exec("DELETE FROM hiscores WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode        string
	GamesCount  int
	BestTimeMs  int
	AvgTimeMs   float64
	TotalBlocks int64
	LastPlayed  time.Time
}

// GetModeStats retrieves aggregated statistics for a specific mode.
func (s *Store) GetModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(time_ms), 0), COALESCE(AVG(time_ms), 0), COALESCE(SUM(blocks), 0), MAX(created_at)
		 FROM hiscores WHERE mode = ?`,
		mode,
	).Scan(&stats.GamesCount, &stats.BestTimeMs, &stats.AvgTimeMs, &stats.TotalBlocks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllModeStats retrieves statistics for every mode that has been played,
// sorted by mode.
func (s *Store) GetAllModeStats() ([]ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MIN(time_ms), AVG(time_ms), SUM(blocks), MAX(created_at)
		 FROM hiscores
		 GROUP BY mode
		 ORDER BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all mode stats: %w", err)
	}
	defer rows.Close()

	var stats []ModeStats
	for rows.Next() {
		var ms ModeStats
		var lastPlayed any
		if err := rows.Scan(&ms.Mode, &ms.GamesCount, &ms.BestTimeMs, &ms.AvgTimeMs, &ms.TotalBlocks, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ms.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, ms)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
