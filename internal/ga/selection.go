package ga

import (
	"fmt"

	"dotmaze/internal/config"
	"dotmaze/internal/env"
)

// SelectElite returns the first dot holding the maximum fitness.
// Scanning in slice order makes ties resolve to the lowest index.
func SelectElite(dots []*env.Dot) (int, *env.Dot, error) {
	if len(dots) == 0 {
		return -1, nil, fmt.Errorf("%w: cannot select from an empty population", config.ErrInvalidConfiguration)
	}
	bestIdx := 0
	for i, d := range dots[1:] {
		if d.Fitness > dots[bestIdx].Fitness {
			bestIdx = i + 1
		}
	}
	return bestIdx, dots[bestIdx], nil
}
