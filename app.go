package main

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"murmur/audio"
	"murmur/cleanup"
	"murmur/hotkey"
	"murmur/insert"
	"murmur/log"
	"murmur/transcriber"
)

// Cleaner is the text post-processing collaborator. Implementations return
// the input text alongside any error so callers can always fall back.
type Cleaner interface {
	Cleanup(ctx context.Context, raw string) (string, error)
}

// Inserter delivers final text into the focused application.
type Inserter interface {
	Insert(text string) error
}

// App is the pipeline orchestrator. The hotkey listener drives OnPress and
// OnRelease on its goroutine; both return immediately after flipping the
// recording state and arming/draining the session. Each completed recording
// is dispatched onto its own goroutine, so a slow transcription never blocks
// the next dictation.
type App struct {
	trigger  hotkey.Key
	recorder *audio.Recorder
	stt      transcriber.Transcriber
	cleaner  Cleaner // nil when cleanup is disabled
	inserter Inserter

	sampleRate int

	mu        sync.Mutex
	recording bool

	// Overlapping runs share one clipboard and one focused window, so the
	// insertion stage is serialized process-wide. Transcription and cleanup
	// of concurrent runs still overlap freely.
	insertMu sync.Mutex

	runs sync.WaitGroup
}

func NewApp(trigger hotkey.Key, rec *audio.Recorder, stt transcriber.Transcriber, cleaner Cleaner, inserter Inserter, sampleRate int) *App {
	return &App{
		trigger:    trigger,
		recorder:   rec,
		stt:        stt,
		cleaner:    cleaner,
		inserter:   inserter,
		sampleRate: sampleRate,
	}
}

// OnPress arms the recording session when the trigger key goes down.
// Non-matching keys and repeated presses while recording are no-ops.
func (a *App) OnPress(key hotkey.Key) {
	if !hotkey.Matches(key, a.trigger) {
		return
	}
	a.mu.Lock()
	if a.recording {
		a.mu.Unlock()
		return
	}
	a.recording = true
	a.mu.Unlock()

	if err := a.recorder.Start(); err != nil {
		a.mu.Lock()
		a.recording = false
		a.mu.Unlock()
		log.Errorf("starting capture: %v", err)
		return
	}
	log.RecordingStart()
}

// OnRelease drains the session and dispatches the pipeline run. Releases
// while idle are no-ops. The run executes on its own goroutine; this
// returns as soon as the buffer is finalized.
func (a *App) OnRelease(key hotkey.Key) {
	if !hotkey.Matches(key, a.trigger) {
		return
	}
	a.mu.Lock()
	if !a.recording {
		a.mu.Unlock()
		return
	}
	a.recording = false
	a.mu.Unlock()

	samples := a.recorder.Stop()
	if len(samples) == 0 {
		log.NoAudio()
		return
	}
	log.Captured(float64(len(samples)) / float64(a.sampleRate))

	a.runs.Add(1)
	go a.process(samples)
}

// Wait blocks until all dispatched runs finish. Tests use it; the normal
// exit path abandons in-flight runs.
func (a *App) Wait() {
	a.runs.Wait()
}

// process runs one recording through transcription, cleanup, and insertion.
// It is detached from the hotkey goroutine; failures are reported on the
// status stream and never propagate.
func (a *App) process(samples []float32) {
	defer a.runs.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("pipeline panic: %v", r)
		}
	}()

	start := time.Now()
	ctx := context.Background()

	raw, err := a.stt.Transcribe(ctx, samples)
	if err != nil {
		log.Errorf("transcription: %v", err)
		return
	}
	if strings.TrimSpace(raw) == "" {
		log.NoSpeech()
		return
	}
	log.Raw(raw, time.Since(start))

	final := raw
	if a.cleaner != nil {
		cleanStart := time.Now()
		cleaned, err := a.cleaner.Cleanup(ctx, raw)
		switch {
		case errors.Is(err, cleanup.ErrUnavailable):
			// Not configured; use raw text silently.
		case err != nil:
			log.Errorf("cleanup: %v (using raw text)", err)
		case strings.TrimSpace(cleaned) != "":
			final = cleaned
			if final != raw {
				log.Cleaned(final, time.Since(cleanStart))
			}
		}
	}

	a.insertMu.Lock()
	err = a.inserter.Insert(final)
	a.insertMu.Unlock()
	if err != nil {
		if errors.Is(err, insert.ErrPasteUnavailable) {
			log.ClipboardOnly()
		} else {
			log.Errorf("insert: %v", err)
			return
		}
	}
	log.Done(time.Since(start))
}
