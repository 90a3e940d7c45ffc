package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"dotmaze/internal/config"
	"dotmaze/internal/env"
	"dotmaze/internal/eval"
	"dotmaze/internal/logging"
	"dotmaze/internal/render"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "configs/maze.yaml", "path to config file")
	championPath := flag.String("champion", "", "path to champion JSON (defaults to logging.champion_path)")
	delay := flag.Int("delay", 20, "delay between frames in milliseconds")
	noDisplay := flag.Bool("no-display", false, "run without display (just print stats)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *championPath == "" {
		*championPath = cfg.Logging.ChampionPath
	}

	champion, err := logging.LoadChampion(*championPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading champion: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded champion from gen %d (fitness=%.4f, steps=%d, brain=%d)\n",
		champion.Generation, champion.Fitness, champion.Steps, len(champion.Brain))

	maxSteps := cfg.GA.MaxSteps
	if len(champion.Brain) < maxSteps {
		maxSteps = len(champion.Brain)
	}
	world := env.NewWorld(cfg.World)
	replay := env.NewReplay(world, champion.Brain, maxSteps)

	var onTick func(int, env.DotState) bool
	closeScreen := func() {}
	if !*noDisplay {
		screen, err := render.OpenScreen()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening terminal: %v\n", err)
			os.Exit(1)
		}
		closeScreen = screen.Fini

		rc := cfg.Render
		rc.FrameDelayMs = *delay
		term := render.NewTerminal(screen, world, rc)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go term.Listen(cancel)

		onTick = func(tick int, s env.DotState) bool {
			term.Trace(tick, s)
			return ctx.Err() == nil
		}
	}

	stats, err := replay.Trace(onTick)
	closeScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying champion: %v\n", err)
		os.Exit(1)
	}

	// Final fitness from a full run, independent of an interrupted display
	dot, _ := replay.Playback()
	for dot.Alive() {
		dot.Tick()
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════")
	fmt.Printf("  Replay over! Death: %s\n", dot.Death())
	fmt.Printf("  Steps: %d, Final: (%.1f, %.1f)\n", dot.Step(), dot.Pos.X, dot.Pos.Y)
	fmt.Printf("  Fitness: %.4f\n", eval.Fitness(dot))
	if stats.Steps != dot.Step() {
		fmt.Printf("  Display stopped early at step %d\n", stats.Steps)
	}
	fmt.Println("═══════════════════════════════════")
}
