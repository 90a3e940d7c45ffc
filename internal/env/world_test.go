package env

import (
	"testing"

	"dotmaze/internal/config"
)

func TestObstacleCollidesBoundaries(t *testing.T) {
	const eps = 1e-9
	for _, o := range NewWorld(config.Default().World).Obstacles {
		inside := []Vec{
			{X: (o.X1 + o.X2) / 2, Y: (o.Y1 + o.Y2) / 2},
			{X: o.X1, Y: o.Y1},
			{X: o.X2, Y: o.Y2},
			{X: o.X1, Y: o.Y2},
			{X: o.X2, Y: o.Y1},
			{X: o.X1, Y: (o.Y1 + o.Y2) / 2},
		}
		for _, p := range inside {
			if !o.Collides(p) {
				t.Fatalf("obstacle %+v should contain %+v", o, p)
			}
		}

		midX := (o.X1 + o.X2) / 2
		midY := (o.Y1 + o.Y2) / 2
		outside := []Vec{
			{X: o.X1 - eps, Y: midY},
			{X: o.X2 + eps, Y: midY},
			{X: midX, Y: o.Y1 - eps},
			{X: midX, Y: o.Y2 + eps},
		}
		for _, p := range outside {
			if o.Collides(p) {
				t.Fatalf("obstacle %+v should not contain %+v", o, p)
			}
		}
	}
}

func TestWorldBlockedWithoutObstacles(t *testing.T) {
	w := &World{Width: 100, Height: 100}
	if w.Blocked(Vec{X: 50, Y: 50}) {
		t.Fatalf("empty maze must never block")
	}
}

func TestWorldInBoundsInclusive(t *testing.T) {
	w := &World{Width: 600, Height: 600}
	tests := []struct {
		p    Vec
		want bool
	}{
		{Vec{X: 0, Y: 0}, true},
		{Vec{X: 600, Y: 600}, true},
		{Vec{X: -0.1, Y: 10}, false},
		{Vec{X: 10, Y: 600.1}, false},
	}
	for _, tt := range tests {
		if got := w.InBounds(tt.p); got != tt.want {
			t.Fatalf("InBounds(%+v)=%v want %v", tt.p, got, tt.want)
		}
	}
}

func TestWorldAtGoalIsStrict(t *testing.T) {
	w := &World{Goal: Vec{X: 570, Y: 570}, CaptureRadius: 10}
	if !w.AtGoal(Vec{X: 561, Y: 579}) {
		t.Fatalf("point within window should capture")
	}
	if w.AtGoal(Vec{X: 560, Y: 570}) {
		t.Fatalf("dx == radius must not capture")
	}
}

func TestNewWorldCopiesObstacles(t *testing.T) {
	cfg := config.Default().World
	w := NewWorld(cfg)
	cfg.Obstacles[0].X1 = -500
	if w.Obstacles[0].X1 != 200 {
		t.Fatalf("world must not alias config obstacles")
	}
	if w.Start != (Vec{X: 30, Y: 30}) || w.Goal != (Vec{X: 570, Y: 570}) {
		t.Fatalf("unexpected start/goal %+v %+v", w.Start, w.Goal)
	}
}
