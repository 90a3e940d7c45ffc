package env

import "math/rand"

// Brain is the fixed-length sequence of per-step directions
type Brain []Vec

// RandomDirection samples a vector uniformly from [-1,1]x[-1,1]
func RandomDirection(rng *rand.Rand) Vec {
	return Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}
}

// RandomBrain creates a brain of the given length with uniform directions
func RandomBrain(steps int, rng *rand.Rand) Brain {
	b := make(Brain, steps)
	for i := range b {
		b[i] = RandomDirection(rng)
	}
	return b
}

// Clone returns a deep copy so the caller owns independent storage
func (b Brain) Clone() Brain {
	if b == nil {
		return nil
	}
	c := make(Brain, len(b))
	copy(c, b)
	return c
}

// Equal reports whether both brains hold the same directions
func (b Brain) Equal(o Brain) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if b[i] != o[i] {
			return false
		}
	}
	return true
}
