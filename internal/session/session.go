// Package session holds the single-session application state: the upload
// collection, the analysis status machine, the current result and the
// selected view. It replaces what the UI layer would otherwise keep as
// scattered globals; constructed at startup, torn down never.
package session

import (
	"errors"
	"fmt"
	"sync"

	"medisynth/internal/types"
)

var (
	// ErrBusy is returned when a synthesis run is already in flight or a
	// previous run has not been reset.
	ErrBusy = errors.New("session: not idle")
	// ErrNotAnalyzing is returned when completing or failing a run that
	// was never started.
	ErrNotAnalyzing = errors.New("session: no synthesis in progress")
)

// Session is safe for concurrent use, although all mutations normally
// arrive from the single logical thread of HTTP handlers.
type Session struct {
	mu     sync.RWMutex
	files  []types.IngestedFile
	status types.AnalysisStatus
	view   types.View
	result *types.PatientAnalysisResult
	errMsg string

	subMu sync.Mutex
	subs  map[chan Event]struct{}
}

func New() *Session {
	return &Session{
		status: types.StatusIdle,
		view:   types.ViewAnalysis,
		subs:   make(map[chan Event]struct{}),
	}
}

// Append adds ingested files to the end of the collection, preserving
// prior order. Any collection mutation clears a displayed error message.
func (s *Session) Append(files ...types.IngestedFile) {
	if len(files) == 0 {
		return
	}
	s.mu.Lock()
	s.files = append(s.files, files...)
	s.errMsg = ""
	s.mu.Unlock()
	s.broadcast()
}

// Remove deletes at most one file by id. Removing an absent id is a no-op.
func (s *Session) Remove(id string) bool {
	s.mu.Lock()
	removed := false
	for i, f := range s.files {
		if f.ID == id {
			s.files = append(s.files[:i], s.files[i+1:]...)
			removed = true
			break
		}
	}
	s.errMsg = ""
	s.mu.Unlock()
	s.broadcast()
	return removed
}

// ClearFiles empties the collection.
func (s *Session) ClearFiles() {
	s.mu.Lock()
	s.files = nil
	s.errMsg = ""
	s.mu.Unlock()
	s.broadcast()
}

// Files returns a copy of the collection in insertion order.
func (s *Session) Files() []types.IngestedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.IngestedFile, len(s.files))
	copy(out, s.files)
	return out
}

// File returns one file by id.
func (s *Session) File(id string) (types.IngestedFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.files {
		if f.ID == id {
			return f, true
		}
	}
	return types.IngestedFile{}, false
}

func (s *Session) Status() types.AnalysisStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Session) View() types.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView switches the presented screen. Values outside the closed
// enumeration are rejected.
func (s *Session) SetView(v types.View) error {
	if !types.ValidView(v) {
		return fmt.Errorf("session: unknown view %q", v)
	}
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	s.broadcast()
	return nil
}

// Result returns the current analysis result, nil before the first
// successful run and after a reset.
func (s *Session) Result() *types.PatientAnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// ErrMessage returns the displayed error message, empty when none.
func (s *Session) ErrMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Begin transitions idle->analyzing. It is the re-entry guard: a second
// synthesis cannot start while one is outstanding, and a finished run
// must be reset first.
func (s *Session) Begin() error {
	s.mu.Lock()
	if s.status != types.StatusIdle {
		s.mu.Unlock()
		return ErrBusy
	}
	s.status = types.StatusAnalyzing
	s.errMsg = ""
	s.mu.Unlock()
	s.broadcast()
	return nil
}

// Complete transitions analyzing->complete and installs the result
// atomically, replacing any prior one.
func (s *Session) Complete(res types.PatientAnalysisResult) error {
	s.mu.Lock()
	if s.status != types.StatusAnalyzing {
		s.mu.Unlock()
		return ErrNotAnalyzing
	}
	s.status = types.StatusComplete
	s.result = &res
	s.errMsg = ""
	s.mu.Unlock()
	s.broadcast()
	return nil
}

// Fail transitions analyzing->error with a displayed message. The stored
// result is left untouched.
func (s *Session) Fail(msg string) error {
	s.mu.Lock()
	if s.status != types.StatusAnalyzing {
		s.mu.Unlock()
		return ErrNotAnalyzing
	}
	s.status = types.StatusError
	s.errMsg = msg
	s.mu.Unlock()
	s.broadcast()
	return nil
}

// Reset returns to idle and clears files, result and error. Rejected
// while a run is in flight; the run must finish before the session can
// start over, otherwise a stale completion would land in the next run.
func (s *Session) Reset() error {
	s.mu.Lock()
	if s.status == types.StatusAnalyzing {
		s.mu.Unlock()
		return ErrBusy
	}
	s.status = types.StatusIdle
	s.files = nil
	s.result = nil
	s.errMsg = ""
	s.mu.Unlock()
	s.broadcast()
	return nil
}

// State is a consistent snapshot for the state endpoint.
type State struct {
	Status types.AnalysisStatus         `json:"status"`
	View   types.View                   `json:"view"`
	Files  []types.IngestedFile         `json:"files"`
	Result *types.PatientAnalysisResult `json:"result,omitempty"`
	Error  string                       `json:"error,omitempty"`
}

func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files := make([]types.IngestedFile, len(s.files))
	copy(files, s.files)
	return State{
		Status: s.status,
		View:   s.view,
		Files:  files,
		Result: s.result,
		Error:  s.errMsg,
	}
}
