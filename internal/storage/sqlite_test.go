package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
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

func mustSave(t *testing.T, store *Store, gameID string, score int) ScoreEntry {
	t.Helper()
	e, err := store.SaveScore(ScoreEntry{GameID: gameID, Score: score})
	if err != nil {
		t.Fatalf("SaveScore(%s, %d) failed: %v", gameID, score, err)
	}
	return e
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
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

func TestStoreSaveAssignsRunID(t *testing.T) {
	store := openTestStore(t)

	e, err := store.SaveScore(ScoreEntry{GameID: "match3", Score: 420, Moves: 50, Seed: 1 << 63})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if e.RunID == uuid.Nil {
		t.Fatal("SaveScore() left RunID empty")
	}
	if e.ID == 0 {
		t.Error("SaveScore() left ID empty")
	}

	got, err := store.RunByID(e.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() = nil, want run")
	}
	if got.Score != 420 || got.Moves != 50 || got.Seed != 1<<63 {
		t.Errorf("RunByID() = %+v, want score 420, 50 moves, seed 1<<63", got)
	}
}

func TestStoreRunByIDUnknown(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID(uuid.New())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("RunByID() = %+v, want nil", got)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		mustSave(t, store, "match3", s)
	}
	mustSave(t, store, "match3_endless", 500)

	scores, err := store.TopScores("match3", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 {
		t.Errorf("got %d, %d, want 200, 100", scores[0].Score, scores[1].Score)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("empty HighScore() = %d, want 0", high)
	}

	mustSave(t, store, "match3", 30)
	mustSave(t, store, "match3", 90)

	high, err = store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 90 {
		t.Errorf("HighScore() = %d, want 90", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, "match3", 10)
	mustSave(t, store, "match3_endless", 20)

	if err := store.ClearScores("match3"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	all, err := store.AllScores("match3")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("got %d scores after clear, want 0", len(all))
	}

	other, err := store.AllScores("match3_endless")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("other game has %d scores, want 1", len(other))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	mustSave(t, store, "match3", 10)
	mustSave(t, store, "match3", 30)

	stats, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 || stats.TotalScore != 40 {
		t.Errorf("stats = %+v, want 2 games, high 30, avg 20, total 40", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["match3"] == nil {
		t.Errorf("GetAllGamesStats() = %v, want only match3", all)
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if _, err := store.SaveScore(ScoreEntry{GameID: "match3", Score: score}); err != nil {
				t.Errorf("SaveScore() failed: %v", err)
			}
		}(i * 10)
	}
	wg.Wait()

	all, err := store.AllScores("match3")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 8 {
		t.Errorf("got %d scores, want 8", len(all))
	}
}
