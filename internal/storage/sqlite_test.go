package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

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

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("towers", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("towers", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("towers", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("ritual", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for towers
	scores, err := store.TopScores("towers", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for ritual
	ritualScores, err := store.TopScores("ritual", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(ritualScores) != 1 {
		t.Errorf("Expected 1 ritual score, got %d", len(ritualScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("towers")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("towers", 100)
	store.SaveScore("towers", 300)
	store.SaveScore("towers", 200)

	high, err = store.HighScore("towers")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("towers", 100)
	store.SaveScore("towers", 200)
	store.SaveScore("ritual", 300)

	// Clear only towers scores
	err = store.ClearScores("towers")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Towers should be empty
	towersScores, _ := store.TopScores("towers", 10)
	if len(towersScores) != 0 {
		t.Errorf("Expected 0 towers scores after clear, got %d", len(towersScores))
	}

	// Ritual should still have scores
	ritualScores, _ := store.TopScores("ritual", 10)
	if len(ritualScores) != 1 {
		t.Errorf("Ritual scores should not be affected by clearing towers")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
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

func TestStoreSaveRun(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if err := store.SaveRun(Run{GameID: "towers"}); !errors.Is(err, ErrNoRunID) {
		t.Fatalf("SaveRun() without id: got %v, want ErrNoRunID", err)
	}

	runs := []Run{
		{RunID: "a", GameID: "towers", Score: 120, Outcome: "game_over", Ticks: 900, Failures: 3},
		{RunID: "b", GameID: "ritual", Score: 286, Outcome: "completed", Ticks: 300},
		{RunID: "c", GameID: "towers", Score: 40, Outcome: "aborted", Ticks: 60, Failures: 1},
	}
	for _, r := range runs {
		if err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", r.RunID, err)
		}
	}

	got, err := store.RecentRuns("towers", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 towers runs, got %d", len(got))
	}
	if got[0].RunID != "c" || got[1].RunID != "a" {
		t.Errorf("Runs not newest first: %s, %s", got[0].RunID, got[1].RunID)
	}
	if got[1].Outcome != "game_over" || got[1].Failures != 3 || got[1].Ticks != 900 {
		t.Errorf("Run fields not stored: %+v", got[1])
	}

	all, err := store.RecentRuns("", 2)
	if err != nil {
		t.Fatalf("RecentRuns(all) failed: %v", err)
	}
	if len(all) != 2 || all[0].RunID != "c" || all[1].RunID != "b" {
		t.Errorf("Unexpected runs across games: %+v", all)
	}
}

func TestStoreSaveRunUpdatesExisting(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(Run{RunID: "x", GameID: "ritual", Score: 10, Outcome: "aborted", Ticks: 5})
	store.SaveRun(Run{RunID: "x", GameID: "ritual", Score: 300, Outcome: "completed", Ticks: 400, Failures: 1})

	runs, err := store.RecentRuns("ritual", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected one run after resave, got %d", len(runs))
	}
	if runs[0].Score != 300 || runs[0].Outcome != "completed" || runs[0].Failures != 1 {
		t.Errorf("Run not updated: %+v", runs[0])
	}
}

func TestStoreGameStats(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	empty, err := store.GetGameStats("towers")
	if err != nil {
		t.Fatalf("GetGameStats() on empty db failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected zero stats, got %+v", empty)
	}

	store.SaveScore("towers", 100)
	store.SaveScore("towers", 300)
	store.SaveRun(Run{RunID: "r1", GameID: "towers", Score: 100, Outcome: "game_over", Failures: 2})
	store.SaveRun(Run{RunID: "r2", GameID: "towers", Score: 300, Outcome: "game_over", Failures: 5})

	stats, err := store.GetGameStats("towers")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("Unexpected score stats: %+v", stats)
	}
	if stats.Runs != 2 || stats.Failures != 7 {
		t.Errorf("Unexpected run stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set once runs exist")
	}
}

func TestStoreClearScoresRemovesRuns(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(Run{RunID: "t", GameID: "towers", Outcome: "game_over"})
	store.SaveRun(Run{RunID: "r", GameID: "ritual", Outcome: "completed"})

	if err := store.ClearScores("towers"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if runs, _ := store.RecentRuns("towers", 10); len(runs) != 0 {
		t.Errorf("Expected towers runs cleared, got %d", len(runs))
	}
	if runs, _ := store.RecentRuns("ritual", 10); len(runs) != 1 {
		t.Errorf("Ritual runs should not be affected")
	}
}
