// Package log is the console status stream: one human-readable line per
// lifecycle or stage event, written to stdout via zerolog.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	logger zerolog.Logger
)

func init() {
	SetOutput(os.Stdout)
}

// SetOutput redirects the status stream; tests point it at a buffer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}
	logger = zerolog.New(cw).With().Timestamp().Logger()
}

func Info(msg string) {
	logger.Info().Msg(msg)
}

func Infof(format string, args ...any) {
	logger.Info().Msg(fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	logger.Warn().Msg(fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	logger.Error().Msg(fmt.Sprintf(format, args...))
}

func Ready(hotkeySpec, engine string) {
	logger.Info().
		Str("hotkey", hotkeySpec).
		Str("engine", engine).
		Msg("ready — hold hotkey to dictate, release to transcribe")
}

func RecordingStart() {
	logger.Info().Msg("recording")
}

func Captured(seconds float64) {
	logger.Info().Float64("audio_s", round1(seconds)).Msg("captured, transcribing")
}

func NoAudio() {
	logger.Info().Msg("no audio captured")
}

func NoSpeech() {
	logger.Info().Msg("no speech detected")
}

func Raw(text string, took time.Duration) {
	logger.Info().Dur("took", took).Msg("raw: " + text)
}

func Cleaned(text string, took time.Duration) {
	logger.Info().Dur("took", took).Msg("cleaned: " + text)
}

func ClipboardOnly() {
	logger.Warn().Msg("auto-paste unavailable — text copied to clipboard, press Ctrl/Cmd+V")
}

func Done(total time.Duration) {
	logger.Info().Dur("total", total).Msg("text inserted")
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
