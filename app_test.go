package main

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"murmur/audio"
	"murmur/cleanup"
	"murmur/hotkey"
	"murmur/insert"
	"murmur/log"
	"murmur/transcriber"
)

type fakeInserter struct {
	err   error
	delay time.Duration

	mu       sync.Mutex
	texts    []string
	active   int
	maxSeen  int
}

func (f *fakeInserter) Insert(text string) error {
	f.mu.Lock()
	f.active++
	if f.active > f.maxSeen {
		f.maxSeen = f.active
	}
	f.mu.Unlock()

	time.Sleep(f.delay)

	f.mu.Lock()
	f.active--
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	return f.err
}

func (f *fakeInserter) Texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

func (f *fakeInserter) MaxConcurrent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxSeen
}

// twoSeconds of 16kHz mono audio, split into driver-sized chunks.
func twoSeconds() [][]float32 {
	var chunks [][]float32
	for range 32 {
		chunk := make([]float32, 1000)
		for i := range chunk {
			chunk[i] = 0.1
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func newTestApp(t *testing.T, stt *transcriber.Fake, cleaner Cleaner, ins Inserter, chunks ...[]float32) (*App, *hotkey.FakeListener, *audio.FakeCapture) {
	t.Helper()
	cfg := audio.CaptureConfig{SampleRate: 16000, Channels: 1}
	dev, err := audio.NewFakeContext(chunks).NewCapture(nil, cfg)
	if err != nil {
		t.Fatalf("NewCapture: %v", err)
	}
	fake := dev.(*audio.FakeCapture)

	trigger, err := hotkey.Resolve("ctrl")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	app := NewApp(trigger, audio.NewRecorder(dev, cfg), stt, cleaner, ins, 16000)

	listener := hotkey.NewFake()
	if err := listener.Start(app.OnPress, app.OnRelease); err != nil {
		t.Fatalf("listener.Start: %v", err)
	}
	return app, listener, fake
}

func captureStatus(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stdout)
	fn()
	return buf.String()
}

func TestEndToEndHelloWorld(t *testing.T) {
	stt := transcriber.NewFake("hello world", nil)
	ins := &fakeInserter{}
	app, listener, _ := newTestApp(t, stt, nil, ins, twoSeconds()...)

	listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
	listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
	app.Wait()

	calls := stt.Calls()
	if len(calls) != 1 {
		t.Fatalf("transcriber called %d times, want 1", len(calls))
	}
	if len(calls[0]) != 32000 {
		t.Errorf("transcriber got %d samples, want 32000 (2s at 16kHz)", len(calls[0]))
	}
	if got := ins.Texts(); len(got) != 1 || got[0] != "hello world" {
		t.Errorf("inserted %v, want exactly [\"hello world\"]", got)
	}
}

func TestRightVariantDrivesSameSession(t *testing.T) {
	stt := transcriber.NewFake("hi", nil)
	ins := &fakeInserter{}
	app, listener, fake := newTestApp(t, stt, nil, ins, twoSeconds()...)

	listener.Press(hotkey.Key{Named: hotkey.CtrlRight})
	listener.Release(hotkey.Key{Named: hotkey.CtrlRight})
	app.Wait()

	if fake.Starts() != 1 || fake.Stops() != 1 {
		t.Errorf("device starts/stops = %d/%d, want 1/1", fake.Starts(), fake.Stops())
	}
	if got := ins.Texts(); len(got) != 1 {
		t.Errorf("inserted %v, want one run", got)
	}
}

func TestNonMatchingKeysAreNoops(t *testing.T) {
	stt := transcriber.NewFake("hi", nil)
	ins := &fakeInserter{}
	app, listener, fake := newTestApp(t, stt, nil, ins, twoSeconds()...)

	listener.Press(hotkey.Key{Named: hotkey.ShiftLeft})
	listener.Release(hotkey.Key{Named: hotkey.ShiftLeft})
	listener.Press(hotkey.Key{Char: 'c'})
	app.Wait()

	if fake.Starts() != 0 {
		t.Errorf("non-matching keys started the device %d times", fake.Starts())
	}
	if len(ins.Texts()) != 0 {
		t.Error("non-matching keys produced an insertion")
	}
}

func TestRepeatPressWhileRecordingIsNoop(t *testing.T) {
	stt := transcriber.NewFake("hi", nil)
	ins := &fakeInserter{}
	app, listener, fake := newTestApp(t, stt, nil, ins, twoSeconds()...)

	listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
	listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
	listener.Press(hotkey.Key{Named: hotkey.CtrlRight})
	listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
	app.Wait()

	if fake.Starts() != 1 {
		t.Errorf("device started %d times, want 1", fake.Starts())
	}
	if got := ins.Texts(); len(got) != 1 {
		t.Errorf("inserted %v, want one run", got)
	}
}

func TestReleaseWhileIdleIsNoop(t *testing.T) {
	stt := transcriber.NewFake("hi", nil)
	ins := &fakeInserter{}
	app, listener, fake := newTestApp(t, stt, nil, ins, twoSeconds()...)

	listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
	app.Wait()

	if fake.Stops() != 0 {
		t.Error("idle release touched the device")
	}
	if len(stt.Calls()) != 0 {
		t.Error("idle release dispatched a run")
	}
}

func TestEmptyCaptureNeverDispatches(t *testing.T) {
	stt := transcriber.NewFake("hi", nil)
	ins := &fakeInserter{}
	app, listener, _ := newTestApp(t, stt, nil, ins) // no chunks

	out := captureStatus(t, func() {
		listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
		listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
		app.Wait()
	})

	if len(stt.Calls()) != 0 {
		t.Error("empty capture reached the transcriber")
	}
	if !strings.Contains(out, "no audio captured") {
		t.Errorf("status stream missing no-audio notice:\n%s", out)
	}
}

func TestSilenceSkipsCleanupAndInsertion(t *testing.T) {
	stt := transcriber.NewFake("", nil) // engine hears nothing
	cleaner := cleanup.NewFake("cleaned", nil)
	ins := &fakeInserter{}
	app, listener, _ := newTestApp(t, stt, cleaner, ins, twoSeconds()...)

	out := captureStatus(t, func() {
		listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
		listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
		app.Wait()
	})

	if len(cleaner.Calls()) != 0 {
		t.Error("silence reached the cleanup stage")
	}
	if len(ins.Texts()) != 0 {
		t.Error("silence reached the insertion stage")
	}
	if !strings.Contains(out, "no speech detected") {
		t.Errorf("status stream missing no-speech notice:\n%s", out)
	}
}

func TestCleanupFailureFallsBackToRaw(t *testing.T) {
	stt := transcriber.NewFake("raw words", nil)
	cleaner := cleanup.NewFake("", errors.New("connection refused"))
	ins := &fakeInserter{}
	app, listener, _ := newTestApp(t, stt, cleaner, ins, twoSeconds()...)

	out := captureStatus(t, func() {
		listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
		listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
		app.Wait()
	})

	if got := ins.Texts(); len(got) != 1 || got[0] != "raw words" {
		t.Errorf("inserted %v, want raw text despite cleanup failure", got)
	}
	if strings.Count(out, "connection refused") != 1 {
		t.Errorf("cleanup error should be reported exactly once:\n%s", out)
	}
}

func TestCleanupUnavailableIsSilent(t *testing.T) {
	stt := transcriber.NewFake("raw words", nil)
	cleaner := cleanup.NewFake("", cleanup.ErrUnavailable)
	ins := &fakeInserter{}
	app, listener, _ := newTestApp(t, stt, cleaner, ins, twoSeconds()...)

	out := captureStatus(t, func() {
		listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
		listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
		app.Wait()
	})

	if got := ins.Texts(); len(got) != 1 || got[0] != "raw words" {
		t.Errorf("inserted %v, want raw text", got)
	}
	if strings.Contains(out, "error") {
		t.Errorf("missing credentials should not be reported as an error:\n%s", out)
	}
}

func TestCleanedTextIsInserted(t *testing.T) {
	stt := transcriber.NewFake("um hello world", nil)
	cleaner := cleanup.NewFake("Hello, world.", nil)
	ins := &fakeInserter{}
	app, listener, _ := newTestApp(t, stt, cleaner, ins, twoSeconds()...)

	listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
	listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
	app.Wait()

	if got := ins.Texts(); len(got) != 1 || got[0] != "Hello, world." {
		t.Errorf("inserted %v, want cleaned text", got)
	}
}

func TestTranscriptionErrorAbortsRun(t *testing.T) {
	stt := transcriber.NewFake("", errors.New("decoder exploded"))
	cleaner := cleanup.NewFake("cleaned", nil)
	ins := &fakeInserter{}
	app, listener, _ := newTestApp(t, stt, cleaner, ins, twoSeconds()...)

	out := captureStatus(t, func() {
		listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
		listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
		app.Wait()
	})

	if len(cleaner.Calls()) != 0 || len(ins.Texts()) != 0 {
		t.Error("failed transcription must not reach later stages")
	}
	if !strings.Contains(out, "decoder exploded") {
		t.Errorf("transcription error not reported:\n%s", out)
	}
}

func TestFailedRunLeavesOrchestratorReady(t *testing.T) {
	stt := transcriber.NewFake("hi", nil)
	ins := &fakeInserter{err: errors.New("paste target vanished")}
	app, listener, _ := newTestApp(t, stt, nil, ins, twoSeconds()...)

	listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
	listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
	app.Wait()

	// Next press/release still works after an insertion failure.
	listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
	listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
	app.Wait()

	if got := ins.Texts(); len(got) != 2 {
		t.Errorf("got %d insert attempts, want 2", len(got))
	}
}

func TestPasteUnavailableStillCompletesRun(t *testing.T) {
	stt := transcriber.NewFake("hi", nil)
	ins := &fakeInserter{err: insert.ErrPasteUnavailable}
	app, listener, _ := newTestApp(t, stt, nil, ins, twoSeconds()...)

	out := captureStatus(t, func() {
		listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
		listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
		app.Wait()
	})

	if !strings.Contains(out, "clipboard") {
		t.Errorf("clipboard-only notice missing:\n%s", out)
	}
	if !strings.Contains(out, "text inserted") {
		t.Errorf("run should complete on clipboard-only fallback:\n%s", out)
	}
}

func TestOverlappingRunsSerializeInsertion(t *testing.T) {
	stt := transcriber.NewFake("overlap", nil)
	ins := &fakeInserter{delay: 30 * time.Millisecond}
	app, listener, _ := newTestApp(t, stt, nil, ins, twoSeconds()...)

	// Record again before the previous run's pipeline finishes.
	for range 3 {
		listener.Press(hotkey.Key{Named: hotkey.CtrlLeft})
		listener.Release(hotkey.Key{Named: hotkey.CtrlLeft})
	}
	app.Wait()

	if got := ins.Texts(); len(got) != 3 {
		t.Fatalf("got %d insertions, want 3", len(got))
	}
	if ins.MaxConcurrent() != 1 {
		t.Errorf("insertion concurrency = %d, want serialized (1)", ins.MaxConcurrent())
	}
}
