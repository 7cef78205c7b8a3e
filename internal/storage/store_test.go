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
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestHighScoreRoundTrip(t *testing.T) {
	store := openTestStore(t)

	high, err := store.LoadHighScore("carrot")
	if err != nil {
		t.Fatalf("LoadHighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	if err := store.SaveHighScore("carrot", 12); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	if err := store.SaveHighScore("carrot", 15); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	if err := store.SaveHighScore("other", 99); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}

	hs := store.HighScoresFor("carrot")
	high, err = hs.LoadHighScore()
	if err != nil {
		t.Fatalf("LoadHighScore() failed: %v", err)
	}
	if high != 15 {
		t.Errorf("Expected 15, got %d", high)
	}

	// Reset is a plain save of zero
	if err := hs.SaveHighScore(0); err != nil {
		t.Fatalf("SaveHighScore(0) failed: %v", err)
	}
	if high, _ := hs.LoadHighScore(); high != 0 {
		t.Errorf("Expected 0 after reset, got %d", high)
	}
	if high, _ := store.LoadHighScore("other"); high != 99 {
		t.Errorf("Other game should keep 99, got %d", high)
	}
}

func TestRunsSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "carrot", Score: 300, Pickups: 3, Duration: 42 * time.Second, Difficulty: "normal"},
		{GameID: "carrot", Score: 100, Pickups: 1, Duration: 10 * time.Second, Difficulty: "easy"},
		{GameID: "carrot", Score: 500, Pickups: 5, Duration: 90 * time.Second, Difficulty: "hard"},
		{GameID: "other", Score: 900},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("carrot", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}
	if top[0].Score != 500 || top[1].Score != 300 || top[2].Score != 100 {
		t.Errorf("Runs not in expected order: %v", top)
	}
	if top[0].Duration != 90*time.Second || top[0].Difficulty != "hard" || top[0].Pickups != 5 {
		t.Errorf("Run fields not preserved: %+v", top[0])
	}

	recent, err := store.RecentRuns("carrot", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 500 || recent[1].Score != 100 {
		t.Errorf("Unexpected recent runs: %v", recent)
	}
}

func TestTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{GameID: "test", Score: (i + 1) * 100})
	}

	top, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(top))
	}
}

func TestBestRunAndClear(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestRun("carrot")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for no runs, got %d", best)
	}

	store.SaveRun(Run{GameID: "carrot", Score: 100})
	store.SaveRun(Run{GameID: "carrot", Score: 300})
	store.SaveRun(Run{GameID: "other", Score: 50})

	if best, _ := store.BestRun("carrot"); best != 300 {
		t.Errorf("Expected best run 300, got %d", best)
	}

	if err := store.ClearRuns("carrot"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if top, _ := store.TopRuns("carrot", 10); len(top) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(top))
	}
	if top, _ := store.TopRuns("other", 10); len(top) != 1 {
		t.Error("Other game runs should not be affected by clearing carrot")
	}
}

func TestGetStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats("carrot")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.RunsCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRun(Run{GameID: "carrot", Score: 100, Pickups: 1})
	store.SaveRun(Run{GameID: "carrot", Score: 300, Pickups: 3})

	stats, err = store.GetStats("carrot")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.BestScore != 300 || stats.AvgScore != 200 || stats.TotalPickups != 4 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected LastPlayed to be set")
	}
}
