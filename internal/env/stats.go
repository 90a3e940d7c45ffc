package env

// DeathReason indicates how a dot stopped
type DeathReason int

const (
	DeathNone      DeathReason = iota // still alive
	DeathCollision                    // left the world or hit an obstacle
	DeathGoal                         // reached the goal
	DeathTimeout                      // step budget exhausted
)

func (d DeathReason) String() string {
	switch d {
	case DeathNone:
		return "none"
	case DeathCollision:
		return "collision"
	case DeathGoal:
		return "goal"
	case DeathTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// DotState is the render snapshot of one dot
type DotState struct {
	Pos         Vec
	Alive       bool
	ReachedGoal bool
}

// RunStats summarises a finished dot
type RunStats struct {
	Fitness float64
	Steps   int
	Death   DeathReason
	Final   Vec
}

// GenerationStats holds statistics across one population
type GenerationStats struct {
	FitnessMean float64
	StepsMean   float64
	GoalReached int
	DeathCounts map[DeathReason]int
	NumDots     int
}

// Aggregate computes statistics from per-dot stats
func Aggregate(runs []RunStats) GenerationStats {
	agg := GenerationStats{
		DeathCounts: make(map[DeathReason]int),
		NumDots:     len(runs),
	}
	if len(runs) == 0 {
		return agg
	}

	var fitnessSum, stepsSum float64
	for _, r := range runs {
		fitnessSum += r.Fitness
		stepsSum += float64(r.Steps)
		agg.DeathCounts[r.Death]++
		if r.Death == DeathGoal {
			agg.GoalReached++
		}
	}

	n := float64(len(runs))
	agg.FitnessMean = fitnessSum / n
	agg.StepsMean = stepsSum / n
	return agg
}
