package env

import "dotmaze/internal/config"

// Vec is a 2D point or direction
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * k
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Obstacle is an axis-aligned rectangle with inclusive bounds
type Obstacle struct {
	X1, Y1, X2, Y2 float64
}

// Collides reports whether p lies inside the closed rectangle
func (o Obstacle) Collides(p Vec) bool {
	return o.X1 <= p.X && p.X <= o.X2 && o.Y1 <= p.Y && p.Y <= o.Y2
}

// World is the static maze shared read-only by every dot
type World struct {
	Width, Height float64
	Start         Vec
	Goal          Vec
	CaptureRadius float64
	StepSize      float64
	Obstacles     []Obstacle
}

// NewWorld builds a World from the config section
func NewWorld(c config.WorldConfig) *World {
	w := &World{
		Width:         c.Width,
		Height:        c.Height,
		Start:         Vec{X: c.Start.X, Y: c.Start.Y},
		Goal:          Vec{X: c.Goal.X, Y: c.Goal.Y},
		CaptureRadius: c.CaptureRadius,
		StepSize:      c.StepSize,
		Obstacles:     make([]Obstacle, len(c.Obstacles)),
	}
	for i, r := range c.Obstacles {
		w.Obstacles[i] = Obstacle{X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2}
	}
	return w
}

// InBounds reports whether p is inside [0,Width]x[0,Height]
func (w *World) InBounds(p Vec) bool {
	return p.X >= 0 && p.X <= w.Width && p.Y >= 0 && p.Y <= w.Height
}

// Blocked reports whether p lies inside any obstacle
func (w *World) Blocked(p Vec) bool {
	for _, o := range w.Obstacles {
		if o.Collides(p) {
			return true
		}
	}
	return false
}

// AtGoal reports whether p is within the capture window on both axes
func (w *World) AtGoal(p Vec) bool {
	dx := p.X - w.Goal.X
	dy := p.Y - w.Goal.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx < w.CaptureRadius && dy < w.CaptureRadius
}
