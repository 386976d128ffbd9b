package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Board is the combined leaderboard of every player found under a data root.
type Board struct {
	HighScore int     `json:"high_score"`
	Entries   []Entry `json:"entries"`
	Players   int     `json:"players"`
}

// Scan builds a board from the records in root and in each directory directly
// below it, which is where the SSH server keeps per-user records. A name that
// appears in several places keeps its best score. Unreadable files are logged
// and read as defaults.
func Scan(root string, n int, logger *log.Logger) (Board, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Board{Entries: []Entry{}}, nil
		}
		return Board{}, fmt.Errorf("read data root: %w", err)
	}

	dirs := []string{root}
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}

	merged := DefaultRecords()
	players := 0
	for _, dir := range dirs {
		r, err := NewFileStore(dir).Load()
		if err != nil && logger != nil {
			logger.Warn("records partially unreadable", "dir", dir, "err", err)
		}
		if len(r.Leaderboard) > 0 {
			players++
		}
		merged.HighScore = max(merged.HighScore, r.HighScore)
		for name, score := range r.Leaderboard {
			merged.RecordScore(name, score)
		}
	}
	return Board{
		HighScore: merged.HighScore,
		Entries:   merged.TopScores(n),
		Players:   players,
	}, nil
}
