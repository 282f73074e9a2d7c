package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"murmur/audio"
	"murmur/cleanup"
	"murmur/config"
	"murmur/hotkey"
	"murmur/insert"
	"murmur/log"
	"murmur/shutdown"
	"murmur/transcriber"
)

var version = "dev"

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func run() {
	godotenv.Load()

	configFlag := flag.String("config", "", "Path to config TOML (default: ./config.toml if present)")
	hotkeyFlag := flag.String("hotkey", "", "Override hotkey (ctrl, alt, shift, cmd, f1-f12, or a single character)")
	engineFlag := flag.String("engine", "", "Override transcription engine (vosk or server)")
	modelFlag := flag.String("model", "", "Override vosk model directory")
	deviceFlag := flag.String("device", "", "Use named microphone device")
	setupFlag := flag.Bool("setup", false, "Select microphone device (otherwise uses system default)")
	noCleanupFlag := flag.Bool("no-cleanup", false, "Disable the LLM cleanup pass (use raw transcription)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("murmur %s\n", version)
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatalf("%v", err)
	}
	if *hotkeyFlag != "" {
		cfg.Hotkey = *hotkeyFlag
	}
	if *engineFlag != "" {
		cfg.Transcriber.Engine = *engineFlag
	}
	if *modelFlag != "" {
		cfg.Transcriber.ModelPath = *modelFlag
	}
	if *noCleanupFlag {
		cfg.Cleanup.Enabled = false
	}

	trigger, err := hotkey.Resolve(cfg.Hotkey)
	if err != nil {
		fatalf("%v", err)
	}

	stt, err := transcriber.New(transcriber.Config{
		Engine:    cfg.Transcriber.Engine,
		ModelPath: cfg.Transcriber.ModelPath,
		ServerURL: cfg.Transcriber.ServerURL,
		Language:  cfg.Transcriber.Language,
	})
	if err != nil {
		fatalf("%v", err)
	}
	defer stt.Close()

	// Load the model in the background so the first dictation is fast. A
	// failed load is reported again by the first run that hits it.
	go func() {
		if err := stt.WarmUp(); err != nil {
			log.Warnf("engine warm-up: %v", err)
		}
	}()

	var cleaner Cleaner
	if cfg.Cleanup.Enabled {
		cleaner = cleanup.New(cleanup.Config{
			APIKey:  cfg.Cleanup.APIKey,
			BaseURL: cfg.Cleanup.BaseURL,
			Model:   cfg.Cleanup.Model,
		})
	}

	if err := insert.Init(); err != nil {
		log.Warnf("paste init failed: %v — falling back to clipboard-only", err)
	}

	actx, err := audio.NewContext()
	if err != nil {
		fatalf("initializing audio: %v", err)
	}
	defer actx.Close()

	var selected *audio.DeviceInfo
	if *deviceFlag != "" {
		devices, err := actx.Devices()
		if err != nil {
			fatalf("enumerating devices: %v", err)
		}
		for i := range devices {
			if devices[i].Name == *deviceFlag {
				selected = &devices[i]
				break
			}
		}
		if selected == nil {
			fatalf("device not found: %s", *deviceFlag)
		}
	} else if *setupFlag {
		selected, err = audio.SelectDevice(actx)
		if err != nil {
			log.Warnf("device selection failed: %v — falling back to default device", err)
			selected = nil
		}
	}

	captureConfig := audio.CaptureConfig{
		SampleRate: uint32(cfg.Audio.SampleRate),
		Channels:   uint32(cfg.Audio.Channels),
	}
	capture, err := actx.NewCapture(selected, captureConfig)
	if err != nil {
		fatalf("initializing capture device: %v", err)
	}
	defer capture.Close()

	app := NewApp(trigger, audio.NewRecorder(capture, captureConfig), stt, cleaner, insert.New(), cfg.Audio.SampleRate)

	listener := hotkey.NewListener(trigger)
	if err := listener.Start(app.OnPress, app.OnRelease); err != nil {
		fatalf("hotkey listener: %v", err)
	}
	defer listener.Stop()

	log.Infof("mic: %s", capture.DeviceName())
	log.Ready(cfg.Hotkey, stt.Name())

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	<-sigChan
	log.Info("bye")
}
