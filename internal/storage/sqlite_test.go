package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sprint(ms int) Score {
	return Score{Mode: "sprint", Goal: 40, Ticks: ms / 16, TimeMs: ms, Blocks: 100, Keys: 250, Lines: 40, Seed: 42}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore(sprint(60000)); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores("sprint", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Errorf("Expected 1 score after reopen, got %d", len(scores))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, ms := range []int{65000, 48000, 90000} {
		if _, err := store.SaveScore(sprint(ms)); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	// Different mode
	other := sprint(20000)
	other.Mode = "sprint20"
	other.Goal = 20
	if _, err := store.SaveScore(other); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("sprint", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted fastest first
	want := []int{48000, 65000, 90000}
	for i, ms := range want {
		if scores[i].TimeMs != ms {
			t.Errorf("scores[%d].TimeMs = %d, want %d", i, scores[i].TimeMs, ms)
		}
	}

	got := scores[0]
	if got.Mode != "sprint" || got.Goal != 40 || got.Blocks != 100 || got.Keys != 250 || got.Lines != 40 || got.Seed != 42 {
		t.Errorf("unexpected score fields: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should default to the insert time")
	}

	short, err := store.TopScores("sprint20", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(short) != 1 {
		t.Errorf("Expected 1 sprint20 score, got %d", len(short))
	}
}

func TestStoreSeedRoundTrip(t *testing.T) {
	store := openTestStore(t)

	sc := sprint(50000)
	sc.Seed = 0xfffffffe
	id, err := store.SaveScore(sc)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	got, err := store.ScoreByID(id)
	if err != nil {
		t.Fatalf("ScoreByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("ScoreByID() returned nil for a saved score")
	}
	if got.Seed != sc.Seed {
		t.Errorf("Seed = %#x, want %#x", got.Seed, sc.Seed)
	}

	missing, err := store.ScoreByID(id + 100)
	if err != nil {
		t.Fatalf("ScoreByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown ID, got %+v", missing)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		if _, err := store.SaveScore(sprint(40000 + i*1000)); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("sprint", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}

	// Zero limit falls back to 10
	scores, err = store.TopScores("sprint", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 10 {
		t.Errorf("Expected 10 scores, got %d", len(scores))
	}
}

func TestStoreBestTime(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.BestTime("sprint")
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if ok {
		t.Error("Expected no best time for an empty table")
	}

	for _, ms := range []int{70000, 55000, 61000} {
		if _, err := store.SaveScore(sprint(ms)); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	best, ok, err := store.BestTime("sprint")
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if !ok || best != 55000 {
		t.Errorf("BestTime() = %d, %v, want 55000, true", best, ok)
	}
}

func TestStoreRecentScores(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, ms := range []int{50000, 40000, 60000} {
		sc := sprint(ms)
		sc.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if _, err := store.SaveScore(sc); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.RecentScores(2)
	if err != nil {
		t.Fatalf("RecentScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	if scores[0].TimeMs != 60000 || scores[1].TimeMs != 40000 {
		t.Errorf("unexpected order: %d, %d", scores[0].TimeMs, scores[1].TimeMs)
	}
	if !scores[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("CreatedAt = %v, want %v", scores[0].CreatedAt, base.Add(2*time.Hour))
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(sprint(50000))
	store.SaveScore(sprint(60000))
	other := sprint(30000)
	other.Mode = "practice"
	store.SaveScore(other)

	if err := store.ClearScores("sprint"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("sprint", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	// Other modes should be unaffected
	remaining, _ := store.TopScores("practice", 10)
	if len(remaining) != 1 {
		t.Errorf("Expected 1 practice score, got %d", len(remaining))
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetModeStats("sprint")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.BestTimeMs != 0 {
		t.Errorf("unexpected stats for empty mode: %+v", empty)
	}

	store.SaveScore(sprint(40000))
	store.SaveScore(sprint(60000))
	other := sprint(20000)
	other.Mode = "sprint20"
	store.SaveScore(other)

	stats, err := store.GetModeStats("sprint")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.BestTimeMs != 40000 {
		t.Errorf("BestTimeMs = %d, want 40000", stats.BestTimeMs)
	}
	if stats.AvgTimeMs != 50000 {
		t.Errorf("AvgTimeMs = %v, want 50000", stats.AvgTimeMs)
	}
	if stats.TotalBlocks != 200 {
		t.Errorf("TotalBlocks = %d, want 200", stats.TotalBlocks)
	}

	all, err := store.GetAllModeStats()
	if err != nil {
		t.Fatalf("GetAllModeStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 modes, got %d", len(all))
	}
	if all[0].Mode != "sprint" || all[1].Mode != "sprint20" {
		t.Errorf("modes not sorted: %q, %q", all[0].Mode, all[1].Mode)
	}
}

func TestScoreRates(t *testing.T) {
	sc := Score{TimeMs: 50000, Blocks: 100, Keys: 250}
	if got := sc.PiecesPerSecond(); got != 2 {
		t.Errorf("PiecesPerSecond() = %v, want 2", got)
	}
	if got := sc.KeysPerPiece(); got != 2.5 {
		t.Errorf("KeysPerPiece() = %v, want 2.5", got)
	}
	if got := (Score{}).PiecesPerSecond(); got != 0 {
		t.Errorf("PiecesPerSecond() on empty score = %v, want 0", got)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
