package audio

import "sync"

// FakeContext hands out FakeCapture devices preloaded with sample chunks.
type FakeContext struct {
	Chunks [][]float32
}

func NewFakeContext(chunks [][]float32) *FakeContext {
	return &FakeContext{Chunks: chunks}
}

func (f *FakeContext) Devices() ([]DeviceInfo, error) { return nil, nil }
func (f *FakeContext) Close()                         {}

func (f *FakeContext) NewCapture(_ *DeviceInfo, _ CaptureConfig) (CaptureDevice, error) {
	return &FakeCapture{chunks: f.Chunks}, nil
}

// FakeCapture feeds its preloaded chunks through the callback on Start and
// lets tests inject more mid-recording with Push.
type FakeCapture struct {
	chunks [][]float32

	mu      sync.Mutex
	cb      DataCallback
	started bool
	starts  int
	stops   int
}

func (f *FakeCapture) SetCallback(cb DataCallback) {
	f.mu.Lock()
	f.cb = cb
	f.mu.Unlock()
}

func (f *FakeCapture) ClearCallback() {
	f.mu.Lock()
	f.cb = nil
	f.mu.Unlock()
}

func (f *FakeCapture) Start() error {
	f.mu.Lock()
	f.started = true
	f.starts++
	chunks := f.chunks
	f.mu.Unlock()
	for _, chunk := range chunks {
		f.Push(chunk)
	}
	return nil
}

func (f *FakeCapture) Stop() {
	f.mu.Lock()
	f.started = false
	f.stops++
	f.mu.Unlock()
}

func (f *FakeCapture) Close() {}

func (f *FakeCapture) DeviceName() string { return "fake" }

// Push delivers one chunk as if the driver produced it.
func (f *FakeCapture) Push(samples []float32) {
	f.mu.Lock()
	cb := f.cb
	f.mu.Unlock()
	if cb != nil {
		cb(samples, uint32(len(samples)))
	}
}

// Starts reports how many times Start was called.
func (f *FakeCapture) Starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

// Stops reports how many times Stop was called.
func (f *FakeCapture) Stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}
