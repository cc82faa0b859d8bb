package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/ambience/audio"
	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/engine"
	"github.com/lixenwraith/ambience/frontend"
	"github.com/lixenwraith/ambience/frontend/terminal"
	"github.com/lixenwraith/ambience/frontend/window"
	"github.com/lixenwraith/ambience/narration"
	"github.com/lixenwraith/ambience/render"
	"github.com/lixenwraith/ambience/service"
	"github.com/lixenwraith/ambience/story"
)

var (
	displayFlag = flag.String("display", "terminal", "Display: terminal, window")
	storyFlag   = flag.String("story", "", "Story file (default: built-in story)")
	assetsFlag  = flag.String("assets", "", "Sample directory (overrides AMBIENCE_ASSETS)")
	watchFlag   = flag.Bool("watch", false, "Reload the story file on change, applied at the next restart")
	muteFlag    = flag.Bool("mute", false, "Start muted")
	logFlag     = flag.String("log", "ambience.log", "Log file, empty to discard")
	colorFlag   = flag.String("color", "auto", "Terminal color mode: auto, truecolor, 256")
	widthFlag   = flag.Int("width", constant.DefaultWindowWidth, "Window width")
	heightFlag  = flag.Int("height", constant.DefaultWindowHeight, "Window height")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*logFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ambience: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Panic Recovery for the main goroutine; background goroutines go through core.Go
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	st, err := loadStory(*storyFlag)
	if err != nil {
		return err
	}

	clk := core.NewClock()
	seed := uint64(time.Now().UnixNano())

	audioCfg := audio.LoadAudioConfig()
	if *assetsFlag != "" {
		audioCfg.AssetDir = *assetsFlag
	}
	if *muteFlag {
		audioCfg.StartMuted = true
	}

	// Service Hub: audio output, sample preload, optional story watch
	hub := service.NewHub()
	audioSvc := audio.NewService(audioCfg, clk)
	library := audio.NewLibrary(audioCfg.AssetDir, beep.SampleRate(audioCfg.SampleRate))

	var orch *engine.Orchestrator
	services := []service.Service{audioSvc, audio.NewSampleService(library)}
	if *watchFlag {
		if *storyFlag == "" {
			log.Printf("STORY: -watch needs -story, ignoring")
		} else {
			services = append(services, story.NewWatchService(*storyFlag, func(s *story.Story) {
				orch.SetStory(s)
			}))
		}
	}
	for _, svc := range services {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}
	if err := hub.InitAll(); err != nil {
		return fmt.Errorf("init services: %w", err)
	}

	eng := audioSvc.Engine()
	soundscape := audio.NewSoundscape(eng.Bus(), eng.SampleRate(), library, clk, rand.New(rand.NewPCG(seed, 1)))
	board := narration.NewBoard(clk)
	bg := render.NewBackground(clk, rand.New(rand.NewPCG(seed, 2)), st.Scenes[0].Ambient, *widthFlag, *heightFlag)
	orch = engine.New(engine.LoadConfig(), clk, st, soundscape, bg, board)

	if err := hub.StartAll(); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	defer hub.StopAll()
	log.Printf("AUDIO: output %s, samples loaded %v", eng.Output(), library.Loaded())
	for name, err := range library.Failures() {
		log.Printf("SAMPLES: %s falls back to synthesis: %v", name, err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	core.Go(func() {
		if err := orch.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("SCENE: orchestrator stopped: %v", err)
		}
	})

	controls := frontend.NewControls(board, orch, eng)

	switch *displayFlag {
	case "window":
		title := st.Title
		if title == "" {
			title = "ambience"
		}
		return window.Run(title, window.New(ctx, *widthFlag, *heightFlag, bg, board, controls))

	case "terminal":
		display, err := terminal.New(*colorFlag, bg, board, controls)
		if err != nil {
			return err
		}
		// Crash handler restores the terminal before the stack trace prints
		core.SetCrashHandler(display.Fini)
		defer display.Fini()
		return display.Run(ctx)

	default:
		return fmt.Errorf("unknown display %q", *displayFlag)
	}
}

func loadStory(path string) (*story.Story, error) {
	if path == "" {
		return story.Default(), nil
	}
	st, err := story.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load story: %w", err)
	}
	return st, nil
}
