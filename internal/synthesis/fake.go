package synthesis

import (
	"context"
	"encoding/json"
	"sync"
)

// FakeClient returns a canned payload for offline use and tests. It
// records every request it receives.
type FakeClient struct {
	mu       sync.Mutex
	Response json.RawMessage
	Err      error
	calls    int
	last     Request
}

func NewFakeClient(response json.RawMessage, err error) *FakeClient {
	return &FakeClient{Response: response, Err: err}
}

func (f *FakeClient) Name() string { return "FakeModel" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(_ context.Context, req Request) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Response, nil
}

// Calls reports how many requests were issued.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// LastRequest returns the most recent request.
func (f *FakeClient) LastRequest() Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}
