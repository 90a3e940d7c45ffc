package ga

import (
	"errors"
	"math/rand"
	"testing"

	"dotmaze/internal/config"
	"dotmaze/internal/env"
)

func testWorld() *env.World {
	return env.NewWorld(config.Default().World)
}

func TestNewPopulationRejectsEmpty(t *testing.T) {
	_, err := NewPopulation(0, testWorld(), 10, rand.New(rand.NewSource(1)))
	if !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Fatalf("expected invalid configuration, got %v", err)
	}
}

func TestNewPopulationDeterministic(t *testing.T) {
	a, err := NewPopulation(5, testWorld(), 20, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("population: %v", err)
	}
	b, _ := NewPopulation(5, testWorld(), 20, rand.New(rand.NewSource(42)))
	for i := range a.Dots {
		if !a.Dots[i].Brain.Equal(b.Dots[i].Brain) {
			t.Fatalf("dot %d brain differs under same seed", i)
		}
		if len(a.Dots[i].Brain) != 20 {
			t.Fatalf("brain length %d", len(a.Dots[i].Brain))
		}
	}
}

func TestFramesPlaysFullBudget(t *testing.T) {
	p, err := NewPopulation(10, testWorld(), 30, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("population: %v", err)
	}

	frames := 0
	for f := range p.Frames() {
		frames++
		if f.Tick != frames || len(f.Dots) != 10 {
			t.Fatalf("frame %d: tick=%d dots=%d", frames, f.Tick, len(f.Dots))
		}
	}
	if frames != 30 {
		t.Fatalf("expected 30 frames, got %d", frames)
	}
	for i, d := range p.Dots {
		if d.Alive() {
			t.Fatalf("dot %d still alive after the budget", i)
		}
	}
}

func TestFramesStopsWhenConsumerBreaks(t *testing.T) {
	p, _ := NewPopulation(3, testWorld(), 30, rand.New(rand.NewSource(5)))
	frames := 0
	for range p.Frames() {
		frames++
		if frames == 4 {
			break
		}
	}
	if frames != 4 {
		t.Fatalf("expected 4 frames, got %d", frames)
	}
}

func TestSelectEliteFirstMaximum(t *testing.T) {
	w := testWorld()
	var dots []*env.Dot
	for _, f := range []float64{0.2, 0.9, 0.5, 0.9} {
		d, _ := env.NewDot(w, make(env.Brain, 1), 1)
		d.Fitness = f
		dots = append(dots, d)
	}
	idx, best, err := SelectElite(dots)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if idx != 1 || best != dots[1] {
		t.Fatalf("expected first maximum at 1, got %d", idx)
	}
}

func TestSelectEliteEmpty(t *testing.T) {
	if _, _, err := SelectElite(nil); !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Fatalf("expected invalid configuration, got %v", err)
	}
}

func TestReproduceReplacesPopulation(t *testing.T) {
	p, _ := NewPopulation(8, testWorld(), 50, rand.New(rand.NewSource(11)))
	p.Run()
	_, elite, _ := p.Best()
	parent := elite.Brain.Clone()

	if _, err := p.Reproduce(elite, 0); err != nil {
		t.Fatalf("reproduce: %v", err)
	}
	if p.Size() != 8 {
		t.Fatalf("size changed to %d", p.Size())
	}
	for i, d := range p.Dots {
		if !d.Alive() || d.Step() != 0 || d.Pos != p.World.Start {
			t.Fatalf("child %d not fresh", i)
		}
		if !d.Brain.Equal(parent) {
			t.Fatalf("child %d brain differs with zero mutation rate", i)
		}
	}
	p.Dots[0].Brain[0] = env.Vec{X: 9, Y: 9}
	if p.Dots[1].Brain[0] == p.Dots[0].Brain[0] || elite.Brain[0] == p.Dots[0].Brain[0] {
		t.Fatalf("children share brain storage")
	}
}
