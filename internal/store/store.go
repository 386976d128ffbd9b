package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:generate go tool mockgen -destination=./mocks/store_mock.go -package=mocks . Store

// Store loads and saves records.
type Store interface {
	Load() (Records, error)
	Save(records Records) error
}

// File names inside the data directory.
const (
	HighScoreFile         = "high_score.json"
	LeaderboardFile       = "leaderboard.json"
	AchievementsFile      = "achievements.json"
	CompletedMissionsFile = "completed_missions.json"
	ProfileFile           = "profile.json"
)

// FileStore keeps each record in its own JSON file. A missing file reads as the
// default value; a malformed one is defaulted and reported in Load's error.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads every file. The returned records are always usable; the error joins
// the failures of files that exist but could not be read.
func (s *FileStore) Load() (Records, error) {
	r := DefaultRecords()
	errs := []error{
		readFile(s, HighScoreFile, &r.HighScore),
		readFile(s, LeaderboardFile, &r.Leaderboard),
		readFile(s, AchievementsFile, &r.Achievements),
		readFile(s, CompletedMissionsFile, &r.CompletedMissions),
		readFile(s, ProfileFile, &r.Profile),
	}
	r.normalize()
	return r, errors.Join(errs...)
}

// readFile decodes name over a copy of dst and stores it on success. A missing file
// leaves dst untouched and is not an error.
func readFile[T any](s *FileStore, name string, dst *T) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	v := *dst
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	*dst = v
	return nil
}

// Save writes every file. Writes are independent: one failure does not stop the others.
func (s *FileStore) Save(r Records) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	missions := r.CompletedMissions
	if missions == nil {
		missions = []int{}
	}
	return errors.Join(
		s.write(HighScoreFile, r.HighScore),
		s.write(LeaderboardFile, r.Leaderboard),
		s.write(AchievementsFile, r.Achievements),
		s.write(CompletedMissionsFile, missions),
		s.write(ProfileFile, r.Profile),
	)
}

func (s *FileStore) write(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
