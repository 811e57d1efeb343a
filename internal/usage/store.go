package usage

import (
	"errors"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// snapshot is the on-disk shape of one day of counters. Counts survive a
// process restart only within the same UTC day: a snapshot for an older day
// is discarded on load.
type snapshot struct {
	Day     string          `json:"day"`
	Counts  map[Service]int `json:"counts"`
	Minutes int             `json:"minutes"`
}

type fileStore struct {
	path string
}

func newFileStore(path string) *fileStore {
	return &fileStore{path: path}
}

func (s *fileStore) load() (snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snapshot{Counts: map[Service]int{}}, nil
		}

		return snapshot{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return snapshot{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if snap.Counts == nil {
		snap.Counts = map[Service]int{}
	}

	return snap, nil
}

func (s *fileStore) save(snap snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	return nil
}
