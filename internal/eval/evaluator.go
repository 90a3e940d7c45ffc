package eval

import (
	"math"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"dotmaze/internal/config"
	"dotmaze/internal/env"
)

const (
	// GoalBonus is the base fitness of any dot that reached the goal
	GoalBonus = 10_000
	// SpareStepBonus rewards each unused step of a goal-reaching dot
	SpareStepBonus = 100
)

// Evaluator handles fitness computation for finished dots
type Evaluator struct {
	workers int
}

// NewEvaluator creates a new evaluator
func NewEvaluator(cfg *config.Config) *Evaluator {
	workers := cfg.Eval.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Evaluator{workers: workers}
}

// Fitness scores a stopped dot. Goal scores start at GoalBonus and
// everything else lies in (0,1], so any goal dot outranks any other.
func Fitness(d *env.Dot) float64 {
	if d.ReachedGoal() {
		return GoalBonus + float64(d.MaxSteps()-d.Step())*SpareStepBonus
	}
	goal := d.World().Goal
	dist := math.Hypot(d.Pos.X-goal.X, d.Pos.Y-goal.Y)
	return 1 / (dist + 1)
}

// EvaluateDot computes and stores the fitness of a single dot
func (e *Evaluator) EvaluateDot(d *env.Dot) env.RunStats {
	d.Fitness = Fitness(d)
	return d.Stats()
}

// EvaluatePopulation scores every dot once. Dots share no mutable state
// so the work fans out over the worker pool; results land by index.
func (e *Evaluator) EvaluatePopulation(dots []*env.Dot) []env.RunStats {
	stats := make([]env.RunStats, len(dots))
	if e.workers == 1 {
		for i, d := range dots {
			stats[i] = e.EvaluateDot(d)
		}
		return stats
	}

	p := pool.New().WithMaxGoroutines(e.workers)
	for i, d := range dots {
		p.Go(func() {
			stats[i] = e.EvaluateDot(d)
		})
	}
	p.Wait()
	return stats
}

// Workers returns the configured concurrency level
func (e *Evaluator) Workers() int {
	return e.workers
}
