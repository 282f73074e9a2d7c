// Package transcriber converts captured audio to text through a local
// speech-to-text engine. Engines load lazily on first use; WarmUp forces the
// load early so the first dictation doesn't pay model-load latency.
package transcriber

import "context"

// SampleRate is the rate every engine expects. Capture is configured to
// match it.
const SampleRate = 16000

// Transcriber is the speech-to-text collaborator. Transcribe takes mono
// float32 samples at SampleRate and returns the recognized text; empty input
// yields empty text without touching the engine.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, samples []float32) (string, error)
	WarmUp() error
	Close()
}

type Config struct {
	Engine    string // "vosk" or "server"
	ModelPath string // vosk model directory
	ServerURL string // whisper server endpoint
	Language  string
}

func New(cfg Config) (Transcriber, error) {
	switch cfg.Engine {
	case "vosk":
		return newVosk(cfg.ModelPath), nil
	case "server":
		return newServer(cfg.ServerURL, cfg.Language), nil
	default:
		return nil, &UnknownEngineError{Engine: cfg.Engine}
	}
}

type UnknownEngineError struct {
	Engine string
}

func (e *UnknownEngineError) Error() string {
	return "unknown transcription engine \"" + e.Engine + "\" (use vosk or server)"
}
