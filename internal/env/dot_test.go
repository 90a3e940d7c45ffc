package env

import (
	"errors"
	"math/rand"
	"testing"

	"dotmaze/internal/config"
)

func openWorld() *World {
	return &World{
		Width:         600,
		Height:        600,
		Start:         Vec{X: 30, Y: 30},
		Goal:          Vec{X: 570, Y: 570},
		CaptureRadius: 10,
		StepSize:      10,
	}
}

func constantBrain(n int, dir Vec) Brain {
	b := make(Brain, n)
	for i := range b {
		b[i] = dir
	}
	return b
}

func mustDot(t *testing.T, w *World, b Brain, maxSteps int) *Dot {
	t.Helper()
	d, err := NewDot(w, b, maxSteps)
	if err != nil {
		t.Fatalf("new dot: %v", err)
	}
	return d
}

func TestDotTimesOutAfterBudget(t *testing.T) {
	const budget = 50
	d := mustDot(t, openWorld(), constantBrain(budget, Vec{}), budget)

	ticks := 0
	for d.Alive() {
		d.Tick()
		ticks++
		if ticks > budget {
			t.Fatalf("dot still alive after %d ticks", ticks)
		}
	}
	if ticks != budget {
		t.Fatalf("expected %d ticks, got %d", budget, ticks)
	}
	if d.ReachedGoal() || d.Death() != DeathTimeout || d.Step() != budget {
		t.Fatalf("unexpected end state: goal=%v death=%s step=%d", d.ReachedGoal(), d.Death(), d.Step())
	}
}

func TestDotReachesGoalDiagonally(t *testing.T) {
	d := mustDot(t, openWorld(), constantBrain(1000, Vec{X: 1, Y: 1}), 1000)

	ticks := 0
	for d.Alive() && ticks < 77 {
		d.Tick()
		ticks++
	}
	if !d.ReachedGoal() || d.Alive() {
		t.Fatalf("expected goal within 77 ticks, got goal=%v alive=%v pos=%+v", d.ReachedGoal(), d.Alive(), d.Pos)
	}
	if ticks != 54 || d.Pos != (Vec{X: 570, Y: 570}) {
		t.Fatalf("expected capture at tick 54 on the goal, got tick %d pos %+v", ticks, d.Pos)
	}
	if d.Step() != 53 || d.Death() != DeathGoal {
		t.Fatalf("unexpected step=%d death=%s", d.Step(), d.Death())
	}

	before := d.State()
	for i := 0; i < 5; i++ {
		d.Tick()
	}
	if d.State() != before || d.Step() != 53 {
		t.Fatalf("dead dot moved: %+v -> %+v", before, d.State())
	}
}

func TestDotStopsAtObstacle(t *testing.T) {
	w := openWorld()
	w.Obstacles = []Obstacle{{X1: 100, Y1: 0, X2: 120, Y2: 600}}
	d := mustDot(t, w, constantBrain(100, Vec{X: 1, Y: 0}), 100)

	ticks := 0
	for d.Alive() {
		d.Tick()
		ticks++
	}
	if ticks != 7 {
		t.Fatalf("expected collision on tick 7, got %d", ticks)
	}
	if d.ReachedGoal() || d.Death() != DeathCollision {
		t.Fatalf("expected collision death, got %s", d.Death())
	}
	if d.Pos != (Vec{X: 90, Y: 30}) || d.Step() != 6 {
		t.Fatalf("dot must not enter obstacle: pos=%+v step=%d", d.Pos, d.Step())
	}
}

func TestDotStopsAtWorldEdge(t *testing.T) {
	d := mustDot(t, openWorld(), constantBrain(100, Vec{X: -1, Y: 0}), 100)
	for i := 0; i < 3; i++ {
		d.Tick()
	}
	if !d.Alive() || d.Pos != (Vec{X: 0, Y: 30}) {
		t.Fatalf("edge is inside the world: alive=%v pos=%+v", d.Alive(), d.Pos)
	}
	d.Tick()
	if d.Alive() || d.Death() != DeathCollision || d.Pos.X != 0 {
		t.Fatalf("expected collision at edge, alive=%v pos=%+v", d.Alive(), d.Pos)
	}
}

func TestNewDotRejectsShortBrain(t *testing.T) {
	_, err := NewDot(openWorld(), make(Brain, 10), 11)
	if !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Fatalf("expected invalid configuration, got %v", err)
	}
	if _, err := NewDot(openWorld(), make(Brain, 10), 0); err == nil {
		t.Fatalf("expected error for zero budget")
	}
}

func TestRandomBrainRangeAndClone(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := RandomBrain(500, rng)
	for i, v := range b {
		if v.X < -1 || v.X > 1 || v.Y < -1 || v.Y > 1 {
			t.Fatalf("direction %d out of range: %+v", i, v)
		}
	}
	c := b.Clone()
	if !c.Equal(b) {
		t.Fatalf("clone differs")
	}
	c[0] = Vec{X: 5}
	if b[0] == c[0] {
		t.Fatalf("clone shares storage")
	}
}

func TestReplayTrace(t *testing.T) {
	brain := constantBrain(1000, Vec{X: 1, Y: 1})
	r := NewReplay(openWorld(), brain, 1000)
	brain[0] = Vec{X: -1, Y: -1}

	var last DotState
	ticks := 0
	stats, err := r.Trace(func(tick int, s DotState) bool {
		ticks = tick
		last = s
		return true
	})
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if ticks != 54 || !last.ReachedGoal || stats.Death != DeathGoal {
		t.Fatalf("unexpected trace end: ticks=%d state=%+v stats=%+v", ticks, last, stats)
	}
}

func TestAggregate(t *testing.T) {
	agg := Aggregate([]RunStats{
		{Fitness: 2, Steps: 10, Death: DeathGoal},
		{Fitness: 0, Steps: 20, Death: DeathCollision},
	})
	if agg.NumDots != 2 || agg.GoalReached != 1 || agg.FitnessMean != 1 || agg.StepsMean != 15 {
		t.Fatalf("unexpected aggregate: %+v", agg)
	}
	if agg.DeathCounts[DeathCollision] != 1 {
		t.Fatalf("death counts: %+v", agg.DeathCounts)
	}
}
