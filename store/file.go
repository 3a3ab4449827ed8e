package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"locate-go/internal/log"
	"locate-go/locate"
)

// FileStore persists the device state table as pretty-printed JSON at a
// fixed path. Save is always a full overwrite through a temp-file rename,
// so readers never observe a half-written file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path. The file is created on first
// Save; it does not need to exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted state table. A missing or unparsable file is not
// an error: the tracker starts every device at Unknown in that case.
func (s *FileStore) Load() (map[string]locate.DeviceState, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]locate.DeviceState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	var states map[string]locate.DeviceState
	if err := json.Unmarshal(b, &states); err != nil {
		log.Warn("state file corrupt, ignoring", "path", s.path, "error", err)
		return map[string]locate.DeviceState{}, nil
	}
	if states == nil {
		states = map[string]locate.DeviceState{}
	}
	return states, nil
}

// Save overwrites the state file with the given table.
func (s *FileStore) Save(states map[string]locate.DeviceState) error {
	b, err := json.MarshalIndent(states, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".locations-*.json")
	if err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
