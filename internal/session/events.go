package session

import (
	"context"

	"medisynth/internal/types"
)

// Event is one state-change notification pushed to subscribers.
type Event struct {
	Status types.AnalysisStatus `json:"status"`
	View   types.View           `json:"view"`
	Files  int                  `json:"files"`
	Error  string               `json:"error,omitempty"`
}

const subscriberBuffer = 16

// Subscribe registers a state-change listener. The channel closes when
// ctx is done. Slow subscribers drop events rather than block mutations.
func (s *Session) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		delete(s.subs, ch)
		s.subMu.Unlock()
		close(ch)
	}()
	return ch
}

func (s *Session) broadcast() {
	s.mu.RLock()
	evt := Event{
		Status: s.status,
		View:   s.view,
		Files:  len(s.files),
		Error:  s.errMsg,
	}
	s.mu.RUnlock()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}
