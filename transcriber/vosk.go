package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	vosk "github.com/alphacep/vosk-api/go"
)

// Vosk runs recognition in-process against a local model directory. The
// model and recognizer load once, on first use or WarmUp, and are reused for
// every session; the recognizer is not reentrant, so transcriptions from
// overlapping runs serialize on its lock.
type Vosk struct {
	modelPath string

	loadOnce sync.Once
	loadErr  error
	model    *vosk.VoskModel

	mu  sync.Mutex
	rec *vosk.VoskRecognizer
}

func newVosk(modelPath string) *Vosk {
	return &Vosk{modelPath: modelPath}
}

func (v *Vosk) Name() string { return "vosk" }

func (v *Vosk) load() error {
	v.loadOnce.Do(func() {
		if v.modelPath == "" {
			v.loadErr = fmt.Errorf("vosk model path not configured")
			return
		}
		if _, err := os.Stat(v.modelPath); err != nil {
			v.loadErr = fmt.Errorf("vosk model: %w", err)
			return
		}
		model, err := vosk.NewModel(v.modelPath)
		if err != nil {
			v.loadErr = fmt.Errorf("loading vosk model: %w", err)
			return
		}
		rec, err := vosk.NewRecognizer(model, float64(SampleRate))
		if err != nil {
			model.Free()
			v.loadErr = fmt.Errorf("creating vosk recognizer: %w", err)
			return
		}
		v.model = model
		v.rec = rec
	})
	return v.loadErr
}

func (v *Vosk) WarmUp() error {
	return v.load()
}

func (v *Vosk) Transcribe(_ context.Context, samples []float32) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}
	if err := v.load(); err != nil {
		return "", err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.rec.AcceptWaveform(pcm16le(samples))
	resultJSON := v.rec.FinalResult()
	v.rec.Reset()

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return "", fmt.Errorf("vosk result parse: %w", err)
	}
	return strings.TrimSpace(result.Text), nil
}

func (v *Vosk) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.rec != nil {
		v.rec.Free()
		v.rec = nil
	}
	if v.model != nil {
		v.model.Free()
		v.model = nil
	}
}
