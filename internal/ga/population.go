package ga

import (
	"fmt"
	"iter"
	"math/rand"

	"dotmaze/internal/config"
	"dotmaze/internal/env"
)

// Frame is the per-tick snapshot handed to renderers.
// Dots is reused between frames; copy it to keep it.
type Frame struct {
	Tick int
	Dots []env.DotState
}

// Population manages the dots of one generation
type Population struct {
	Dots     []*env.Dot
	World    *env.World
	MaxSteps int
	rng      *rand.Rand
}

// NewPopulation creates a population of dots with random brains
func NewPopulation(size int, world *env.World, maxSteps int, rng *rand.Rand) (*Population, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: population must be positive, got %d", config.ErrInvalidConfiguration, size)
	}

	p := &Population{
		Dots:     make([]*env.Dot, size),
		World:    world,
		MaxSteps: maxSteps,
		rng:      rng,
	}
	for i := 0; i < size; i++ {
		d, err := env.NewDot(world, env.RandomBrain(maxSteps, rng), maxSteps)
		if err != nil {
			return nil, err
		}
		p.Dots[i] = d
	}
	return p, nil
}

// Size returns the population size
func (p *Population) Size() int {
	return len(p.Dots)
}

// Frames ticks every dot once per frame, MaxSteps times. Dots that
// stopped early keep their final state. Breaking out of the loop
// leaves the remaining ticks unplayed.
func (p *Population) Frames() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		states := make([]env.DotState, len(p.Dots))
		for tick := 1; tick <= p.MaxSteps; tick++ {
			for i, d := range p.Dots {
				d.Tick()
				states[i] = d.State()
			}
			if !yield(Frame{Tick: tick, Dots: states}) {
				return
			}
		}
	}
}

// Run plays all frames without a consumer
func (p *Population) Run() {
	for range p.Frames() {
	}
}

// Best returns the index and dot with the highest fitness
func (p *Population) Best() (int, *env.Dot, error) {
	return SelectElite(p.Dots)
}

// Reproduce replaces the population with mutated clones of elite.
// It returns the number of mutated brain positions.
func (p *Population) Reproduce(elite *env.Dot, mutationRate float64) (int, error) {
	next, mutated, err := Reproduce(elite.Brain, p.Size(), p.World, p.MaxSteps, mutationRate, p.rng)
	if err != nil {
		return 0, err
	}
	p.Dots = next
	return mutated, nil
}
