package cleanup

import (
	"context"
	"sync"
)

// Fake maps raw text to canned output, or fails with Err, recording calls.
type Fake struct {
	Text string // returned for every input; empty = echo input
	Err  error

	mu    sync.Mutex
	calls []string
}

func NewFake(text string, err error) *Fake {
	return &Fake{Text: text, Err: err}
}

func (f *Fake) Cleanup(_ context.Context, raw string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, raw)
	f.mu.Unlock()
	if f.Err != nil {
		return raw, f.Err
	}
	if f.Text == "" {
		return raw, nil
	}
	return f.Text, nil
}

func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
