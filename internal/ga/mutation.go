package ga

import (
	"math/rand"

	"dotmaze/internal/env"
)

// Mutate replaces each direction with a fresh random one with
// probability rate, in place. Returns the mutated positions.
func Mutate(brain env.Brain, rate float64, rng *rand.Rand) []int {
	var mutated []int
	for i := range brain {
		if rng.Float64() < rate {
			brain[i] = env.RandomDirection(rng)
			mutated = append(mutated, i)
		}
	}
	return mutated
}

// Reproduce builds size children, each owning a mutated copy of parent
func Reproduce(parent env.Brain, size int, world *env.World, maxSteps int, rate float64, rng *rand.Rand) ([]*env.Dot, int, error) {
	children := make([]*env.Dot, size)
	total := 0
	for i := range children {
		brain := parent.Clone()
		total += len(Mutate(brain, rate, rng))

		child, err := env.NewDot(world, brain, maxSteps)
		if err != nil {
			return nil, 0, err
		}
		children[i] = child
	}
	return children, total, nil
}
