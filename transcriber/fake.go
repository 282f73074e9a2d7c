package transcriber

import (
	"context"
	"sync"
)

// Fake returns a canned text or error and records every call.
type Fake struct {
	Text string
	Err  error

	mu      sync.Mutex
	calls   [][]float32
	warmups int
}

func NewFake(text string, err error) *Fake {
	return &Fake{Text: text, Err: err}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) WarmUp() error {
	f.mu.Lock()
	f.warmups++
	f.mu.Unlock()
	return f.Err
}

func (f *Fake) Transcribe(_ context.Context, samples []float32) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, samples)
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	if len(samples) == 0 {
		return "", nil
	}
	return f.Text, nil
}

func (f *Fake) Close() {}

// Calls returns the sample slices passed to Transcribe so far.
func (f *Fake) Calls() [][]float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]float32(nil), f.calls...)
}
