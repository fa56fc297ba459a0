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
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{GameID: "cave", Score: 100, Level: 1, Tiles: 90, Enemies: 1},
		{GameID: "cave", Score: 50, Level: 2},
		{GameID: "cave", Score: 200, Level: 3, Gold: 12, Duration: 95 * time.Second, Seed: 7, Player: "alice"},
		{GameID: "cave_truce", Score: 500},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("cave", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopRuns() len = %d, expected 3", len(top))
	}
	for i, want := range []int{200, 100, 50} {
		if top[i].Score != want {
			t.Errorf("TopRuns()[%d].Score = %d, expected %d", i, top[i].Score, want)
		}
	}

	best := top[0]
	if best.Player != "alice" || best.Level != 3 || best.Gold != 12 || best.Seed != 7 {
		t.Errorf("best run = %+v, expected alice on level 3 with 12 gold and seed 7", best)
	}
	if best.Duration != 95*time.Second {
		t.Errorf("Duration = %v, expected 1m35s", best.Duration)
	}
	if top[1].Player != "local" {
		t.Errorf("Player = %q, expected default %q", top[1].Player, "local")
	}
}

func TestStoreRejectsEmptyGameID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(RunRecord{Score: 1}); err == nil {
		t.Error("SaveRun() error = nil, expected an error for an empty game id")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		if _, err := store.SaveRun(RunRecord{GameID: "cave", Score: i * 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	tests := []struct {
		limit int
		want  int
	}{
		{5, 5},
		{0, 10},
		{50, 20},
	}
	for _, tt := range tests {
		runs, err := store.TopRuns("cave", tt.limit)
		if err != nil {
			t.Fatalf("TopRuns() failed: %v", err)
		}
		if len(runs) != tt.want {
			t.Errorf("TopRuns(%d) len = %d, expected %d", tt.limit, len(runs), tt.want)
		}
	}
}

func TestStoreTiesFavourEarlierRun(t *testing.T) {
	store := openTestStore(t)
	first, _ := store.SaveRun(RunRecord{GameID: "cave", Score: 42, Player: "first"})
	store.SaveRun(RunRecord{GameID: "cave", Score: 42, Player: "second"})

	runs, err := store.TopRuns("cave", 1)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if runs[0].ID != first {
		t.Errorf("TopRuns()[0].ID = %d, expected %d", runs[0].ID, first)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("cave")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("BestScore() on empty = %d, expected 0", best)
	}

	for _, score := range []int{100, 300, 200} {
		store.SaveRun(RunRecord{GameID: "cave", Score: score})
	}
	best, err = store.BestScore("cave")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("BestScore() = %d, expected 300", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(RunRecord{GameID: "cave", Score: 100})
	store.SaveRun(RunRecord{GameID: "cave_truce", Score: 300})

	if err := store.ClearRuns("cave"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("cave", 10)
	if len(runs) != 0 {
		t.Errorf("TopRuns(cave) after clear = %d, expected 0", len(runs))
	}
	runs, _ = store.TopRuns("cave_truce", 10)
	if len(runs) != 1 {
		t.Errorf("TopRuns(cave_truce) after clearing cave = %d, expected 1", len(runs))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("cave")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty = %+v, expected zero values", empty)
	}

	store.SaveRun(RunRecord{GameID: "cave", Score: 100, Level: 1, Duration: time.Minute})
	store.SaveRun(RunRecord{GameID: "cave", Score: 300, Level: 3, Duration: 2 * time.Minute})
	store.SaveRun(RunRecord{GameID: "cave_truce", Score: 10, Level: 2})

	stats, err := store.Stats("cave")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", stats.Runs)
	}
	if stats.BestScore != 300 {
		t.Errorf("BestScore = %d, expected 300", stats.BestScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.MaxLevel != 3 {
		t.Errorf("MaxLevel = %d, expected 3", stats.MaxLevel)
	}
	if stats.TotalTime != 3*time.Minute {
		t.Errorf("TotalTime = %v, expected 3m0s", stats.TotalTime)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("AllStats() len = %d, expected 2", len(all))
	}
	if all["cave_truce"].BestScore != 10 {
		t.Errorf("AllStats()[cave_truce].BestScore = %d, expected 10", all["cave_truce"].BestScore)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.cave/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".cave", "runs.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}
