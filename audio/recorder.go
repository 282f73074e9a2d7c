package audio

import "sync"

// Recorder is the push-to-talk recording session. Start arms it and begins
// accumulating frames from the capture callback; Stop disarms it and drains
// the buffer. Start/Stop run on the orchestrator goroutine while the capture
// callback appends from the driver's goroutine; one mutex covers the frame
// list for both sides, and the callback never blocks on anything else.
type Recorder struct {
	device   CaptureDevice
	channels int

	mu     sync.Mutex
	armed  bool
	frames [][]float32
}

func NewRecorder(device CaptureDevice, config CaptureConfig) *Recorder {
	channels := int(config.Channels)
	if channels < 1 {
		channels = 1
	}
	return &Recorder{device: device, channels: channels}
}

// Start clears any previous buffer and begins capturing. No-op while armed.
func (r *Recorder) Start() error {
	r.mu.Lock()
	if r.armed {
		r.mu.Unlock()
		return nil
	}
	r.armed = true
	r.frames = nil
	r.mu.Unlock()

	r.device.SetCallback(func(samples []float32, _ uint32) {
		chunk := make([]float32, len(samples))
		copy(chunk, samples)
		r.mu.Lock()
		if r.armed {
			r.frames = append(r.frames, chunk)
		}
		r.mu.Unlock()
	})

	if err := r.device.Start(); err != nil {
		r.device.ClearCallback()
		r.mu.Lock()
		r.armed = false
		r.frames = nil
		r.mu.Unlock()
		return err
	}
	return nil
}

// Stop halts capture and returns the captured audio reduced to mono, in
// arrival order. Returns an empty slice when nothing was captured, and nil
// when called while idle. It never waits on downstream pipeline stages.
func (r *Recorder) Stop() []float32 {
	r.mu.Lock()
	if !r.armed {
		r.mu.Unlock()
		return nil
	}
	// Disarm first so late callbacks from the driver are dropped.
	r.armed = false
	r.mu.Unlock()

	r.device.Stop()
	r.device.ClearCallback()

	r.mu.Lock()
	frames := r.frames
	r.frames = nil
	r.mu.Unlock()

	total := 0
	for _, f := range frames {
		total += len(f)
	}
	buf := make([]float32, 0, total)
	for _, f := range frames {
		buf = append(buf, f...)
	}
	return downmix(buf, r.channels)
}

// downmix averages interleaved multichannel samples to mono. A trailing
// partial frame is dropped.
func downmix(samples []float32, channels int) []float32 {
	if channels <= 1 {
		return samples
	}
	mono := make([]float32, 0, len(samples)/channels)
	for i := 0; i+channels <= len(samples); i += channels {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += samples[i+c]
		}
		mono = append(mono, sum/float32(channels))
	}
	return mono
}
