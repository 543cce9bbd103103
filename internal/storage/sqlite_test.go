package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	store, err := Open(MemoryDSN)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreMemoryIsShared(t *testing.T) {
	store := openMemory(t)

	// Schema and rows must be visible on every query, so the pool is one connection
	for i := 0; i < 5; i++ {
		if _, err := store.SaveRound(RoundRecord{GameID: "helix", Score: i}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	st, err := store.Stats("helix")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Rounds != 5 {
		t.Errorf("Expected 5 rounds, got %d", st.Rounds)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openMemory(t)

	rounds := []RoundRecord{
		{GameID: "helix", Score: 10, Bounces: 4, Seed: 7},
		{GameID: "helix", Score: 25, Bounces: 9, LivesGained: 1, Player: "alice"},
		{GameID: "helix", Score: 3, Forfeit: true},
		{GameID: "other", Score: 99},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	top, err := store.TopRounds("helix", 10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(top))
	}

	if top[0].Score != 25 || top[1].Score != 10 || top[2].Score != 3 {
		t.Errorf("Rounds not in expected order: %v", top)
	}
	if top[0].Player != "alice" || top[0].LivesGained != 1 || top[0].Bounces != 9 {
		t.Errorf("Round fields not preserved: %+v", top[0])
	}
	if top[1].Player != "local" {
		t.Errorf("Expected default player 'local', got %q", top[1].Player)
	}
	if top[1].Seed != 7 {
		t.Errorf("Expected seed 7, got %d", top[1].Seed)
	}
	if !top[2].Forfeit || top[1].Forfeit {
		t.Error("Forfeit flag not preserved")
	}
}

func TestStoreTopRoundsLimit(t *testing.T) {
	store := openMemory(t)

	for i := 0; i < 5; i++ {
		store.SaveRound(RoundRecord{GameID: "helix", Score: (i + 1) * 10})
	}

	top, err := store.TopRounds("helix", 3)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 rounds with limit, got %d", len(top))
	}
	if top[0].Score != 50 || top[1].Score != 40 || top[2].Score != 30 {
		t.Errorf("Rounds not in expected order: %v", top)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openMemory(t)

	high, err := store.HighScore("helix")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveRound(RoundRecord{GameID: "helix", Score: 12})
	store.SaveRound(RoundRecord{GameID: "helix", Score: 30})
	store.SaveRound(RoundRecord{GameID: "helix", Score: 21})

	high, err = store.HighScore("helix")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected high score of 30, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openMemory(t)

	empty, err := store.Stats("helix")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty != (Stats{}) {
		t.Errorf("Expected zero stats for empty game, got %+v", empty)
	}

	store.SaveRound(RoundRecord{GameID: "helix", Score: 2, Bounces: 3})
	store.SaveRound(RoundRecord{GameID: "helix", Score: 4, Bounces: 5, Forfeit: true})
	store.SaveRound(RoundRecord{GameID: "helix", Score: 9, Bounces: 1})

	st, err := store.Stats("helix")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Rounds != 3 || st.Best != 9 || st.TotalBounces != 9 || st.Forfeits != 1 {
		t.Errorf("Unexpected stats: %+v", st)
	}
	if math.Abs(st.Average-5) > 1e-9 {
		t.Errorf("Expected average 5, got %v", st.Average)
	}
}
