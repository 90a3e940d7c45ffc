package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"dotmaze/internal/config"
	"dotmaze/internal/env"
	"dotmaze/internal/eval"
	"dotmaze/internal/logging"
	"dotmaze/internal/render"
	"dotmaze/internal/sim"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "configs/maze.yaml", "path to config file")
	generations := flag.Int("generations", 0, "override number of generations")
	seed := flag.Int64("seed", 0, "override random seed")
	watch := flag.Bool("watch", false, "draw every generation in the terminal")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address")
	flag.Parse()

	// Load config
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *generations > 0 {
		cfg.GA.Generations = *generations
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *metricsAddr != "" {
		cfg.Logging.MetricsAddr = *metricsAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rng := rand.New(rand.NewSource(cfg.Seed))
	simulation, err := sim.New(cfg, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating simulation: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Logging.CSVPath, cfg.Logging.JSONPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	var observers sim.Observers
	if cfg.Logging.EveryGenSummary {
		observers = append(observers, logger)
	}

	if cfg.Logging.MetricsAddr != "" {
		metrics := logging.NewMetrics()
		observers = append(observers, metrics)
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Logging.MetricsAddr, mux); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: metrics server stopped: %v\n", err)
			}
		}()
	}

	fmt.Printf("Dot Maze Trainer - run %s\n", logger.RunID)
	fmt.Printf("Config: %s, Seed: %d\n", *configPath, cfg.Seed)
	fmt.Printf("Population: %d, Steps: %d, Mutation: %g, Generations: %d, Obstacles: %d\n",
		cfg.GA.Population, cfg.GA.MaxSteps, cfg.GA.MutationRate, cfg.GA.Generations, len(cfg.World.Obstacles))
	fmt.Println("---")

	closeScreen := func() {}
	if *watch {
		screen, err := render.OpenScreen()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening terminal: %v\n", err)
			os.Exit(1)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		term := render.NewTerminal(screen, simulation.World(), cfg.Render)
		go term.Listen(cancel)
		closeScreen = screen.Fini
		// The console summary would tear the screen.
		logger.SetConsole(io.Discard)
		observers = append(observers, term)
	}

	startTime := time.Now()
	best, err := simulation.Run(ctx, observers)
	closeScreen()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error during training: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(startTime)
	fmt.Println("---")
	fmt.Printf("Training stopped after %d generations in %v\n", simulation.Generation(), elapsed)
	if best == nil {
		return
	}

	dot, err := env.NewReplay(simulation.World(), best, cfg.GA.MaxSteps).Playback()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying best brain: %v\n", err)
		os.Exit(1)
	}
	for dot.Alive() {
		dot.Tick()
	}
	fitness := eval.Fitness(dot)
	fmt.Printf("Best brain: Fitness=%.4f, Death=%s, Steps=%d, Final=(%.1f, %.1f)\n",
		fitness, dot.Death(), dot.Step(), dot.Pos.X, dot.Pos.Y)
	printBrain(best)

	champion := logging.Champion{
		RunID:      logger.RunID,
		Generation: simulation.Generation(),
		Fitness:    fitness,
		Steps:      dot.Step(),
		Brain:      best,
	}
	if err := logging.SaveChampion(cfg.Logging.ChampionPath, champion); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save champion: %v\n", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Config %s not found, using defaults\n", path)
		return config.Default(), nil
	}
	return config.Load(path)
}

func printBrain(b env.Brain) {
	fmt.Println()
	fmt.Println("Best Dot's Movement Array:")
	for i, v := range b {
		fmt.Printf("[% .8f % .8f]", v.X, v.Y)
		if i%4 == 3 || i == len(b)-1 {
			fmt.Println()
		} else {
			fmt.Print(" ")
		}
	}
}
