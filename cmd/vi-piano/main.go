package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-piano/app"
	"github.com/lixenwraith/vi-piano/audio"
	"github.com/lixenwraith/vi-piano/config"
	"github.com/lixenwraith/vi-piano/core"
	"github.com/lixenwraith/vi-piano/engine"
	"github.com/lixenwraith/vi-piano/midiin"
	"github.com/lixenwraith/vi-piano/progress"
	"github.com/lixenwraith/vi-piano/service"
)

var (
	configFlag   = flag.String("config", "", "Config file (YAML), default $XDG_CONFIG_HOME/vi-piano/config.yaml")
	progressFlag = flag.String("progress", "", "Progress file, default under the user config directory")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/vi-piano.log")
	muteFlag     = flag.Bool("mute", false, "Start muted")
	midiFlag     = flag.Bool("midi", false, "Read notes from a MIDI input")
	midiPortFlag = flag.String("midi-port", "", "MIDI input name pattern, case-insensitive")
	tempoFlag    = flag.Int("tempo", 0, "Lesson 2 beat length in milliseconds")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the app crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vi-piano: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overrides file and environment settings with explicit flags
func applyFlags(cfg *config.Config) {
	if *progressFlag != "" {
		cfg.ProgressPath = *progressFlag
	}
	if *muteFlag {
		cfg.Audio.Muted = true
	}
	if *midiFlag {
		cfg.MIDI.Enabled = true
	}
	if *midiPortFlag != "" {
		cfg.MIDI.Port = *midiPortFlag
	}
	if *tempoFlag > 0 {
		cfg.Tempo.BeatMs = *tempoFlag
	}
	cfg.Clamp()
}

func run() error {
	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	applyFlags(&cfg)

	// Service lifecycle: audio device, progress file, MIDI driver
	hub := service.NewHub()
	audioSvc := audio.NewService(cfg.Audio)
	progressSvc := progress.NewService()
	midiSvc := midiin.NewService()
	for _, reg := range []struct {
		svc  service.Service
		args []any
	}{
		{audioSvc, []any{cfg.Audio.Muted}},
		{progressSvc, []any{cfg.ProgressPath}},
		{midiSvc, []any{cfg.MIDI.Enabled, cfg.MIDI.Port}},
	} {
		if err := hub.Register(reg.svc, reg.args...); err != nil {
			return err
		}
	}
	if err := hub.InitAll(); err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	if err := hub.StartAll(); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	defer hub.StopAll()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()

	loop := engine.NewLoop(0)
	sched := engine.NewLoopScheduler(loop)

	eng := audioSvc.Engine()
	voices := audio.NewVoiceManager(eng)
	clicks := audio.NewClickPlayer(eng)

	a := app.New(screen, sched, voices, clicks, eng, progressSvc.Store(), app.Options{
		Beat:          cfg.Tempo.Beat(),
		HideBlackKeys: cfg.Keyboard.HideBlackKeys,
		CenterBottom:  cfg.Keyboard.CenterBottom,
		KeyHold:       cfg.Keyboard.Hold(),
	})
	a.SetSuspendHandler(suspender(screen))

	loop.SetAfterTask(a.RequestRender)
	loop.Start()
	defer loop.Stop()

	loop.Post(func() {
		midiSvc.Watch(loop, sched, a, midiin.Events{
			OnConnect: a.SetMIDIPort,
			OnLost: func(port string) {
				a.SetMIDIPort("")
				a.Interrupt("midi device lost: " + port)
			},
		})
	})

	quit := make(chan struct{})
	var quitOnce sync.Once
	requestQuit := func() { quitOnce.Do(func() { close(quit) }) }

	// Terminal events are polled here and handled on the loop
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			posted := loop.Post(func() {
				if !a.HandleEvent(ev) {
					requestQuit()
				}
			})
			if !posted {
				return
			}
		}
	})

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-quit:
	case sig := <-sigs:
		log.Printf("vi-piano: received %v, shutting down", sig)
	}

	loop.Call(a.Shutdown)
	log.Printf("vi-piano: exit")
	return nil
}
