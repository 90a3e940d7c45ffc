// Package sim drives generations of the dot population and reports
// frames and per-generation results to an optional Observer.
package sim

import (
	"context"
	"fmt"
	"math/rand"

	"dotmaze/internal/config"
	"dotmaze/internal/env"
	"dotmaze/internal/eval"
	"dotmaze/internal/ga"
)

// GenerationResult describes one completed generation
type GenerationResult struct {
	Generation   int // 0-based index of the generation just played
	EliteIndex   int
	Elite        env.DotState
	EliteFitness float64
	EliteStats   env.RunStats
	Stats        env.GenerationStats
	Mutations    int // positions mutated while building the next generation
}

// Observer receives frames while a generation plays and a result once it ends
type Observer interface {
	Frame(gen int, f ga.Frame)
	Generation(res GenerationResult)
}

// Simulation owns the population and the best brain found so far
type Simulation struct {
	cfg        *config.Config
	world      *env.World
	pop        *ga.Population
	evaluator  *eval.Evaluator
	generation int
	bestBrain  env.Brain
}

// New validates cfg and seeds the first generation from rng
func New(cfg *config.Config, rng *rand.Rand) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	world := env.NewWorld(cfg.World)
	pop, err := ga.NewPopulation(cfg.GA.Population, world, cfg.GA.MaxSteps, rng)
	if err != nil {
		return nil, fmt.Errorf("initial population: %w", err)
	}

	return &Simulation{
		cfg:       cfg,
		world:     world,
		pop:       pop,
		evaluator: eval.NewEvaluator(cfg),
	}, nil
}

// World returns the static maze
func (s *Simulation) World() *env.World { return s.world }

// Generation returns the number of completed generations
func (s *Simulation) Generation() int { return s.generation }

// Done reports whether the generation limit has been reached
func (s *Simulation) Done() bool { return s.generation >= s.cfg.GA.Generations }

// BestBrain returns a copy of the elite brain of the latest generation
func (s *Simulation) BestBrain() env.Brain { return s.bestBrain.Clone() }

// Population returns the current generation's dots
func (s *Simulation) Population() *ga.Population { return s.pop }

// Step plays one generation: ticks the whole budget, scores every dot,
// keeps the elite brain and breeds the next population from it.
func (s *Simulation) Step(obs Observer) (GenerationResult, error) {
	gen := s.generation
	for f := range s.pop.Frames() {
		if obs != nil {
			obs.Frame(gen, f)
		}
	}

	runs := s.evaluator.EvaluatePopulation(s.pop.Dots)
	idx, elite, err := s.pop.Best()
	if err != nil {
		return GenerationResult{}, err
	}
	s.bestBrain = elite.Brain.Clone()

	res := GenerationResult{
		Generation:   gen,
		EliteIndex:   idx,
		Elite:        elite.State(),
		EliteFitness: elite.Fitness,
		EliteStats:   runs[idx],
		Stats:        env.Aggregate(runs),
	}

	mutated, err := s.pop.Reproduce(elite, s.cfg.GA.MutationRate)
	if err != nil {
		return GenerationResult{}, fmt.Errorf("reproduce generation %d: %w", gen, err)
	}
	res.Mutations = mutated
	s.generation++

	if obs != nil {
		obs.Generation(res)
	}
	return res, nil
}

// Run plays generations until the limit and returns the best brain.
// Cancelling ctx stops between generations; the brain found so far
// is returned along with the context error.
func (s *Simulation) Run(ctx context.Context, obs Observer) (env.Brain, error) {
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return s.BestBrain(), err
		}
		if _, err := s.Step(obs); err != nil {
			return s.BestBrain(), err
		}
	}
	return s.BestBrain(), nil
}

// Observers fans frames and results out to several observers
type Observers []Observer

func (o Observers) Frame(gen int, f ga.Frame) {
	for _, obs := range o {
		obs.Frame(gen, f)
	}
}

func (o Observers) Generation(res GenerationResult) {
	for _, obs := range o {
		obs.Generation(res)
	}
}
