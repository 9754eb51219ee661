package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/tiltpick/audio"
	"github.com/lixenwraith/tiltpick/config"
	"github.com/lixenwraith/tiltpick/core"
	"github.com/lixenwraith/tiltpick/engine"
	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/status"
)

var (
	configFlag = flag.String("config", "", "Path to a TOML config file")
	packsFlag  = flag.String("packs", "", "Path to a TOML pack file, overrides config")
	seedFlag   = flag.Uint64("seed", 0, "Random seed, 0 for clock")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to logs/tiltpick.log")
	muteFlag   = flag.Bool("mute", false, "Disable audio output")
	beepFlag   = flag.Bool("beep", false, "Ring the terminal bell as haptic feedback")
	headless   = flag.Bool("headless", false, "Run offscreen on the configured arena size")
)

// errQuit ends the event loop on user request
var errQuit = errors.New("quit")

// bell rings the terminal bell in place of a vibration motor
type bell struct {
	screen tcell.Screen
}

func (b bell) Pulse() {
	_ = b.screen.Beep()
}

func main() {
	flag.Parse()

	if f := setupLogging(*debugFlag); f != nil {
		defer f.Close()
	}

	if err := run(); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "tiltpick: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *packsFlag != "" {
		cfg.Game.Packs = *packsFlag
	}
	if *seedFlag != 0 {
		cfg.Game.Seed = *seedFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	packs, err := cfg.Packs()
	if err != nil {
		return err
	}

	screen, err := newScreen(*headless, cfg.ArenaSize())
	if err != nil {
		return err
	}
	fini := sync.OnceFunc(screen.Fini)
	defer fini()
	core.SetCrashHook(fini)
	screen.EnableMouse()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := status.NewRegistry()

	backend := audio.NewBackend(cfg.Output())
	if err := backend.Start(); err != nil {
		slog.Warn("audio unavailable, continuing silent", "err", err)
	}
	defer backend.Close()

	lib, err := audio.NewLibrary(cfg.Audio.ClipDir)
	if err != nil {
		slog.Warn("clip library unavailable", "dir", cfg.Audio.ClipDir, "err", err)
		lib, _ = audio.NewLibrary("")
	}
	slog.Info("clips loaded", "count", lib.Len())

	var speech audio.SpeechPort
	if cfg.Audio.Speech {
		engineTTS, err := audio.DetectSpeech()
		if err != nil {
			slog.Info("speech fallback disabled", "err", err)
		} else {
			slog.Info("speech fallback", "engine", engineTTS.Name())
			speech = engineTTS
		}
	}

	seq := audio.NewSequencer(audio.Ports{
		Effects: backend.Effects(),
		Voice:   backend.Voice(),
		Music:   backend.Music(),
		Speech:  speech,
		Assets:  lib,
	}, audio.WithVolumes(cfg.Audio.MusicVolume, cfg.Audio.DuckVolume), audio.WithRegistry(reg))
	seq.Start(ctx)

	opts := engine.Options{
		Arena:    arenaFor(screen.Size()),
		Walls:    cfg.Walls(),
		Packs:    packs,
		Audio:    seq,
		Registry: reg,
		Seed:     cfg.Game.Seed,
	}
	if *beepFlag {
		opts.Haptics = bell{screen: screen}
	}
	game := engine.NewGame(opts)
	defer game.Close()
	slog.Info("session started", "session", game.Session(), "packs", len(packs), "arena", opts.Arena, "headless", *headless)

	sched := engine.NewScheduler(parameter.TickInterval, game.Step)
	sched.Start()
	defer sched.Stop()

	h := newHost(screen, game, sched, reg)
	h.draw()

	g, gctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 256)

	// Poller ends when Fini makes PollEvent return nil
	g.Go(func() error {
		defer recoverCrash()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer recoverCrash()
		defer fini()

		frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
		defer frameTicker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case ev := <-events:
				if !h.handleEvent(ev) {
					return errQuit
				}
			case <-sched.Frames():
				h.draw()
			case <-frameTicker.C:
				// Keeps the HUD live while paused
				if sched.Paused() {
					h.draw()
				}
			}
		}
	})

	err = g.Wait()
	slog.Info("session ended", "session", game.Session(), "ticks", sched.Ticks(), "stats", reg.Snapshot())
	return err
}

func recoverCrash() {
	if r := recover(); r != nil {
		core.HandleCrash(r)
	}
}
