// Package settings persists the user-adjustable synthesis preferences.
package settings

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Settings affect future synthesis calls. Zero value is not meaningful;
// use Default.
type Settings struct {
	// Model is the Gemini model used for synthesis.
	Model string `json:"model"`
	// EnhancedTerminology enforces strict SNOMED CT / ICD-10 phrasing.
	EnhancedTerminology bool `json:"enhancedTerminology"`
	// AutoDeleteUploads purges stored source files after synthesis.
	AutoDeleteUploads bool `json:"autoDeleteUploads"`
	// PIIRedaction masks names and dates in the generated output.
	PIIRedaction bool `json:"piiRedaction"`
}

// KnownModels are the models offered by the settings surface.
var KnownModels = []string{"gemini-3-pro-preview", "gemini-2.5-flash"}

// Default mirrors the initial state of the settings screen.
func Default() Settings {
	return Settings{
		Model:               "gemini-3-pro-preview",
		EnhancedTerminology: true,
		AutoDeleteUploads:   true,
		PIIRedaction:        false,
	}
}

// Store loads settings at startup and persists every update to a single
// JSON file. Constructed once; never torn down.
type Store struct {
	path string

	mu  sync.RWMutex
	cur Settings
}

// NewStore reads the settings file if present. A missing or undecodable
// file yields the defaults; decode failures are logged, never surfaced.
func NewStore(path string) *Store {
	s := &Store{path: path, cur: Default()}
	b, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var loaded Settings
	if err := json.Unmarshal(b, &loaded); err != nil {
		log.Printf("settings: undecodable %s, using defaults: %v", path, err)
		return s
	}
	if !knownModel(loaded.Model) {
		loaded.Model = Default().Model
	}
	s.cur = loaded
	return s
}

// Current returns the settings in effect.
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Update validates, applies and persists new settings.
func (s *Store) Update(next Settings) error {
	if !knownModel(next.Model) {
		return fmt.Errorf("settings: unknown model %q", next.Model)
	}
	s.mu.Lock()
	s.cur = next
	s.mu.Unlock()
	return s.save(next)
}

func (s *Store) save(cur Settings) error {
	b, err := json.MarshalIndent(cur, "", "  ")
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

func knownModel(model string) bool {
	for _, m := range KnownModels {
		if m == model {
			return true
		}
	}
	return false
}
