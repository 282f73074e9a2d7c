// Package audio provides microphone capture and the push-to-talk recording
// session. Backends deliver interleaved float32 frames at the configured
// sample rate; the Recorder accumulates them until the hotkey is released.
package audio

// DataCallback receives one chunk of interleaved float32 samples from the
// capture driver's goroutine. It must not block on downstream work.
type DataCallback func(samples []float32, frameCount uint32)

type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

type Context interface {
	Devices() ([]DeviceInfo, error)
	NewCapture(device *DeviceInfo, config CaptureConfig) (CaptureDevice, error)
	Close()
}

type CaptureDevice interface {
	Start() error
	Stop()
	Close()
	SetCallback(cb DataCallback)
	ClearCallback()
	DeviceName() string
}
