package env

import (
	"fmt"

	"dotmaze/internal/config"
)

// Dot is a single agent following its brain through the world
type Dot struct {
	Brain   Brain
	Pos     Vec
	Fitness float64

	step        int
	maxSteps    int
	alive       bool
	reachedGoal bool
	death       DeathReason
	world       *World
}

// NewDot places a dot at the world start with the given brain.
// The brain must hold at least maxSteps directions.
func NewDot(world *World, brain Brain, maxSteps int) (*Dot, error) {
	if maxSteps <= 0 {
		return nil, fmt.Errorf("%w: step budget must be positive, got %d", config.ErrInvalidConfiguration, maxSteps)
	}
	if len(brain) < maxSteps {
		return nil, fmt.Errorf("%w: brain has %d steps, budget is %d", config.ErrInvalidConfiguration, len(brain), maxSteps)
	}
	return &Dot{
		Brain:    brain,
		Pos:      world.Start,
		maxSteps: maxSteps,
		alive:    true,
		world:    world,
	}, nil
}

// Tick advances the dot by one brain step. Dead dots do nothing.
func (d *Dot) Tick() {
	if !d.alive || d.step >= d.maxSteps {
		return
	}

	next := d.Pos.Add(d.Brain[d.step].Scale(d.world.StepSize))

	if !d.world.InBounds(next) || d.world.Blocked(next) {
		d.kill(DeathCollision)
		return
	}

	d.Pos = next

	if d.world.AtGoal(d.Pos) {
		d.reachedGoal = true
		d.kill(DeathGoal)
		return
	}

	d.step++
	if d.step >= d.maxSteps {
		d.kill(DeathTimeout)
	}
}

func (d *Dot) kill(reason DeathReason) {
	d.alive = false
	d.death = reason
}

// Alive reports whether the dot will still move
func (d *Dot) Alive() bool { return d.alive }

// ReachedGoal reports whether the dot stopped inside the capture window
func (d *Dot) ReachedGoal() bool { return d.reachedGoal }

// Step returns the number of brain entries consumed without stopping
func (d *Dot) Step() int { return d.step }

// MaxSteps returns the dot's step budget
func (d *Dot) MaxSteps() int { return d.maxSteps }

// Death returns why the dot stopped, DeathNone while alive
func (d *Dot) Death() DeathReason { return d.death }

// World returns the maze the dot moves in
func (d *Dot) World() *World { return d.world }

// State returns the render snapshot
func (d *Dot) State() DotState {
	return DotState{Pos: d.Pos, Alive: d.alive, ReachedGoal: d.reachedGoal}
}

// Stats returns the run summary
func (d *Dot) Stats() RunStats {
	return RunStats{Fitness: d.Fitness, Steps: d.step, Death: d.death, Final: d.Pos}
}
