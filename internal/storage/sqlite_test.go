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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveMatch(MatchResult{PlayerScore: 2, AIScore: 1}); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	matches, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("Expected 1 match after reopening, got %d", len(matches))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	in := MatchResult{
		Mode:        "ssh",
		Player:      "alice",
		PlayerScore: 5,
		AIScore:     3,
		Ticks:       7200,
		Duration:    2 * time.Minute,
	}
	id, err := store.SaveMatch(in)
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	matches, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}

	got := matches[0]
	if got.ID != id || got.Mode != "ssh" || got.Player != "alice" {
		t.Errorf("Unexpected identity fields: %+v", got)
	}
	if got.PlayerScore != 5 || got.AIScore != 3 {
		t.Errorf("Expected score 5-3, got %d-%d", got.PlayerScore, got.AIScore)
	}
	if got.Ticks != 7200 || got.Duration != 2*time.Minute {
		t.Errorf("Expected 7200 ticks over 2m, got %d over %v", got.Ticks, got.Duration)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestStoreDefaultMode(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveMatch(MatchResult{}); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	matches, _ := store.RecentMatches(1)
	if len(matches) != 1 || matches[0].Mode != "local" {
		t.Errorf("Expected mode local, got %+v", matches)
	}
}

func TestStoreRecentMatchesOrder(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		if _, err := store.SaveMatch(MatchResult{PlayerScore: i}); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	matches, err := store.RecentMatches(3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches with limit, got %d", len(matches))
	}
	for i, want := range []int{5, 4, 3} {
		if matches[i].PlayerScore != want {
			t.Errorf("matches[%d].PlayerScore = %d, expected %d", i, matches[i].PlayerScore, want)
		}
	}
}

func TestStoreTopMatches(t *testing.T) {
	store := openTestStore(t)

	for _, m := range []MatchResult{
		{PlayerScore: 1, AIScore: 4},
		{PlayerScore: 6, AIScore: 2},
		{PlayerScore: 3, AIScore: 0},
		{PlayerScore: 2, AIScore: 2},
	} {
		if _, err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	matches, err := store.TopMatches(10)
	if err != nil {
		t.Fatalf("TopMatches() failed: %v", err)
	}

	expected := []int{4, 3, 0, -3}
	if len(matches) != len(expected) {
		t.Fatalf("Expected %d matches, got %d", len(expected), len(matches))
	}
	for i, want := range expected {
		if matches[i].Margin() != want {
			t.Errorf("matches[%d] margin = %d, expected %d", i, matches[i].Margin(), want)
		}
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if stats.Matches != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	for _, m := range []MatchResult{
		{PlayerScore: 5, AIScore: 2, Duration: time.Minute},
		{PlayerScore: 1, AIScore: 3, Duration: 30 * time.Second},
		{PlayerScore: 2, AIScore: 2},
	} {
		if _, err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	if stats.Matches != 3 || stats.Wins != 1 || stats.Losses != 1 || stats.Draws != 1 {
		t.Errorf("Expected 3 matches 1/1/1, got %+v", stats)
	}
	if stats.PointsFor != 8 || stats.PointsAgainst != 7 {
		t.Errorf("Expected points 8 for, 7 against, got %d/%d", stats.PointsFor, stats.PointsAgainst)
	}
	if stats.BestMargin != 3 {
		t.Errorf("Expected best margin 3, got %d", stats.BestMargin)
	}
	if stats.PlayTime != 90*time.Second {
		t.Errorf("Expected 90s play time, got %v", stats.PlayTime)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected last played to be set")
	}
}

func TestStoreClearMatches(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch(MatchResult{PlayerScore: 1})
	store.SaveMatch(MatchResult{PlayerScore: 2})

	if err := store.ClearMatches(); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}

	matches, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Expected 0 matches after clear, got %d", len(matches))
	}
}

func TestMatchResultOutcome(t *testing.T) {
	tests := []struct {
		player, ai int
		expected   string
	}{
		{3, 1, "win"},
		{1, 3, "loss"},
		{2, 2, "draw"},
	}

	for _, tc := range tests {
		m := MatchResult{PlayerScore: tc.player, AIScore: tc.ai}
		if got := m.Outcome(); got != tc.expected {
			t.Errorf("Outcome(%d-%d) = %q, expected %q", tc.player, tc.ai, got, tc.expected)
		}
	}
}
