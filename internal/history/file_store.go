package history

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"medisynth/internal/types"
)

// FileStore keeps the whole log as one JSON array under a single path,
// rewritten wholesale on every mutation.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]types.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, _ := s.loadLocked()
	return entries, nil
}

// loadLocked reads the file. The bool reports whether the file existed
// and decoded; a missing file yields the seed (first run), and a corrupt
// file is logged and also falls back to the seed rather than failing.
func (s *FileStore) loadLocked() ([]types.HistoryEntry, bool) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return Seed(), false
	}
	var entries []types.HistoryEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		log.Printf("history: undecodable %s, falling back to seed: %v", s.path, err)
		return Seed(), false
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	return entries, true
}

func (s *FileStore) Record(entry types.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, _ := s.loadLocked()
	updated := append([]types.HistoryEntry{entry}, entries...)
	return s.saveLocked(updated)
}

func (s *FileStore) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, _ := s.loadLocked()
	out := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return s.saveLocked(out)
}

func (s *FileStore) saveLocked(entries []types.HistoryEntry) error {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, b, 0o644)
}
