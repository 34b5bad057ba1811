package storage

import (
	"os"
	"path/filepath"
	"testing"
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
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if err := store.Ping(); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{7, 3, 12} {
		if _, err := store.SaveScore("mole", "hard", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("mole_big", "easy", 20); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("mole", "", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 12 || scores[1].Score != 7 || scores[2].Score != 3 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Difficulty != "hard" || scores[0].GameID != "mole" {
		t.Errorf("Entry fields not stored: %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	big, err := store.TopScores("mole_big", "", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(big) != 1 {
		t.Errorf("Expected 1 mole_big score, got %d", len(big))
	}
}

func TestStoreDifficultyFilter(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("mole", "easy", 15)
	store.SaveScore("mole", "hard", 9)
	store.SaveScore("mole", "hard", 11)
	store.SaveScore("mole", "normal", 10)

	tests := []struct {
		difficulty string
		count      int
		high       int
	}{
		{"", 4, 15},
		{"easy", 1, 15},
		{"normal", 1, 10},
		{"hard", 2, 11},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			scores, err := store.TopScores("mole", tt.difficulty, 10)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(scores) != tt.count {
				t.Errorf("TopScores(%q) returned %d entries, expected %d", tt.difficulty, len(scores), tt.count)
			}

			high, err := store.HighScore("mole", tt.difficulty)
			if err != nil {
				t.Fatalf("HighScore() failed: %v", err)
			}
			if high != tt.high {
				t.Errorf("HighScore(%q) = %d, expected %d", tt.difficulty, high, tt.high)
			}
		})
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("mole", "hard", (i+1)*2)
	}

	scores, err := store.TopScores("mole", "hard", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 10 || scores[1].Score != 8 || scores[2].Score != 6 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to the default
	for i := 0; i < 10; i++ {
		store.SaveScore("mole", "hard", 1)
	}
	scores, err = store.TopScores("mole", "hard", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != DefaultLimit {
		t.Errorf("Expected %d scores with no limit, got %d", DefaultLimit, len(scores))
	}
}

func TestStoreTopScoresTiesKeepInsertOrder(t *testing.T) {
	store := openTestStore(t)

	first, _ := store.SaveScore("mole", "hard", 5)
	second, _ := store.SaveScore("mole", "hard", 5)

	scores, err := store.TopScores("mole", "hard", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].ID != first || scores[1].ID != second {
		t.Errorf("tied scores should keep insert order, got %v", scores)
	}
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("mole", "")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("mole", "hard", 4)
	store.SaveScore("mole", "easy", 6)
	store.SaveScore("mole_big", "hard", 8)

	if err := store.ClearScores("mole"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("mole", "", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 mole scores after clear, got %d", len(scores))
	}

	big, _ := store.TopScores("mole_big", "", 10)
	if len(big) != 1 {
		t.Errorf("mole_big scores should not be affected by clearing mole")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("mole", "normal", i)
	}

	scores, err := store.AllScores("mole")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("mole", "hard", 4)
	store.SaveScore("mole", "hard", 8)
	store.SaveScore("mole", "easy", 12)

	stats, err := store.GetGameStats("mole", "")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 12 || stats.TotalScore != 24 {
		t.Errorf("stats = %+v, expected 3 games, high 12, total 24", stats)
	}
	if stats.AvgScore != 8 {
		t.Errorf("AvgScore = %v, expected 8", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	hard, err := store.GetGameStats("mole", "hard")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if hard.GamesCount != 2 || hard.HighScore != 8 {
		t.Errorf("hard stats = %+v, expected 2 games, high 8", hard)
	}

	empty, err := store.GetGameStats("mole_big", "")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v, expected zero", empty)
	}
}

func TestStoreAllGamesStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("mole", "hard", 4)
	store.SaveScore("mole_big", "easy", 9)
	store.SaveScore("mole_big", "easy", 3)

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["mole_big"].GamesCount != 2 || all["mole_big"].HighScore != 9 {
		t.Errorf("mole_big stats = %+v", all["mole_big"])
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
