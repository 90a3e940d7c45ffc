package env

// Replay plays a single brain through the world on its own
type Replay struct {
	World    *World
	Brain    Brain
	MaxSteps int
}

// NewReplay creates a replay of brain; the brain is copied
func NewReplay(world *World, brain Brain, maxSteps int) *Replay {
	return &Replay{World: world, Brain: brain.Clone(), MaxSteps: maxSteps}
}

// Playback recreates the dot at the start position
func (r *Replay) Playback() (*Dot, error) {
	return NewDot(r.World, r.Brain.Clone(), r.MaxSteps)
}

// Trace ticks a fresh dot until it stops, calling fn after every tick.
// Returning false from fn ends the trace early.
func (r *Replay) Trace(fn func(tick int, s DotState) bool) (RunStats, error) {
	d, err := r.Playback()
	if err != nil {
		return RunStats{}, err
	}
	for tick := 1; d.Alive(); tick++ {
		d.Tick()
		if fn != nil && !fn(tick, d.State()) {
			break
		}
	}
	return d.Stats(), nil
}
