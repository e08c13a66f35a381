package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"medisynth/internal/types"
)

func file(id, name string) types.IngestedFile {
	return types.IngestedFile{ID: id, Name: name, MIMEType: "image/png", Content: "data:image/png;base64,"}
}

func TestAppendPreservesOrder(t *testing.T) {
	s := New()
	s.Append(file("1", "a"))
	s.Append(file("2", "b"), file("3", "c"))

	got := s.Files()
	if len(got) != 3 {
		t.Fatalf("expected 3 files, got %d", len(got))
	}
	for i, want := range []string{"1", "2", "3"} {
		if got[i].ID != want {
			t.Fatalf("file %d: got id %q want %q", i, got[i].ID, want)
		}
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	s := New()
	s.Append(file("1", "a"))

	if s.Remove("nope") {
		t.Fatalf("removed a file that does not exist")
	}
	if s.Remove("1") != true {
		t.Fatalf("expected removal of existing file")
	}
	if s.Remove("1") {
		t.Fatalf("second removal should be a no-op")
	}
	if len(s.Files()) != 0 {
		t.Fatalf("collection not empty")
	}
}

func TestMutationClearsError(t *testing.T) {
	s := New()
	s.Append(file("1", "a"))
	if err := s.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.Fail("boom"); err != nil {
		t.Fatalf("fail: %v", err)
	}
	if s.ErrMessage() != "boom" {
		t.Fatalf("error not installed")
	}

	s.Append(file("2", "b"))
	if s.ErrMessage() != "" {
		t.Fatalf("append did not clear error")
	}
}

func TestStatusTransitions(t *testing.T) {
	s := New()

	if err := s.Complete(types.PatientAnalysisResult{}); !errors.Is(err, ErrNotAnalyzing) {
		t.Fatalf("complete from idle: got %v", err)
	}
	if err := s.Fail("x"); !errors.Is(err, ErrNotAnalyzing) {
		t.Fatalf("fail from idle: got %v", err)
	}

	if err := s.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.Begin(); !errors.Is(err, ErrBusy) {
		t.Fatalf("re-entrant begin: got %v", err)
	}

	if err := s.Complete(types.PatientAnalysisResult{Summary: "# ok"}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if s.Status() != types.StatusComplete {
		t.Fatalf("status %q", s.Status())
	}
	// Complete is terminal until reset.
	if err := s.Begin(); !errors.Is(err, ErrBusy) {
		t.Fatalf("begin after complete: got %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.Status() != types.StatusIdle {
		t.Fatalf("status after reset %q", s.Status())
	}
	if s.Result() != nil {
		t.Fatalf("result survived reset")
	}
	if len(s.Files()) != 0 {
		t.Fatalf("files survived reset")
	}
}

func TestResetRejectedWhileAnalyzing(t *testing.T) {
	s := New()
	s.Append(file("1", "a"))
	if err := s.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}

	if err := s.Reset(); !errors.Is(err, ErrBusy) {
		t.Fatalf("reset during run: got %v, want ErrBusy", err)
	}
	if s.Status() != types.StatusAnalyzing {
		t.Fatalf("status %q after rejected reset", s.Status())
	}
	// The run still owns the session: no second run can slip in before
	// the first one finishes.
	if err := s.Begin(); !errors.Is(err, ErrBusy) {
		t.Fatalf("begin during run: got %v, want ErrBusy", err)
	}

	if err := s.Complete(types.PatientAnalysisResult{Summary: "first"}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if s.Result() == nil || s.Result().Summary != "first" {
		t.Fatalf("result %+v", s.Result())
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("reset after completion: %v", err)
	}
	if s.Status() != types.StatusIdle {
		t.Fatalf("status %q after reset", s.Status())
	}
}

func TestFailKeepsPriorResult(t *testing.T) {
	s := New()
	if err := s.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.Complete(types.PatientAnalysisResult{Summary: "kept"}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := s.Fail("late"); !errors.Is(err, ErrNotAnalyzing) {
		t.Fatalf("fail from complete: got %v", err)
	}
	if s.Result() == nil || s.Result().Summary != "kept" {
		t.Fatalf("result was disturbed")
	}
}

func TestSetViewRejectsUnknown(t *testing.T) {
	s := New()
	if err := s.SetView(types.View("dashboard")); err == nil {
		t.Fatalf("expected rejection of unknown view")
	}
	if err := s.SetView(types.ViewHistory); err != nil {
		t.Fatalf("set view: %v", err)
	}
	if s.View() != types.ViewHistory {
		t.Fatalf("view %q", s.View())
	}
}

func TestSubscribeReceivesBroadcasts(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Subscribe(ctx)
	s.Append(file("1", "a"))

	select {
	case ev := <-ch:
		if ev.Files != 1 {
			t.Fatalf("event files %d", ev.Files)
		}
		if ev.Status != types.StatusIdle {
			t.Fatalf("event status %q", ev.Status)
		}
	case <-time.After(time.Second):
		t.Fatalf("no event delivered")
	}

	cancel()
	// Channel closes once the context is done.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("channel never closed")
		}
	}
}
