// Package render draws the maze and the dot population on a terminal.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"dotmaze/internal/config"
	"dotmaze/internal/env"
	"dotmaze/internal/ga"
	"dotmaze/internal/sim"
)

const (
	runeDot      = '•'
	runeElite    = '●'
	runeObstacle = '█'
	runeStart    = 'H'
	runeGoal     = '✿'
)

var (
	styleBackground = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	styleDot        = styleBackground.Foreground(tcell.ColorBlack)
	styleDeadDot    = styleBackground.Foreground(tcell.ColorGray)
	styleGoalDot    = styleBackground.Foreground(tcell.ColorWhite)
	styleElite      = styleBackground.Foreground(tcell.ColorYellow).Bold(true)
	styleObstacle   = styleBackground.Foreground(tcell.ColorGray)
	styleStart      = styleBackground.Foreground(tcell.ColorSaddleBrown).Bold(true)
	styleGoal       = styleBackground.Foreground(tcell.ColorOrange).Bold(true)
	styleLabel      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Terminal renders frames of a simulation onto a tcell screen
type Terminal struct {
	screen     tcell.Screen
	world      *env.World
	frameDelay time.Duration
	genDelay   time.Duration
	stride     int
	generation int
}

// NewTerminal wraps an initialised screen
func NewTerminal(screen tcell.Screen, world *env.World, rc config.RenderConfig) *Terminal {
	stride := rc.FrameStride
	if stride <= 0 {
		stride = 1
	}
	return &Terminal{
		screen:     screen,
		world:      world,
		frameDelay: time.Duration(rc.FrameDelayMs) * time.Millisecond,
		genDelay:   time.Duration(rc.GenerationDelayMs) * time.Millisecond,
		stride:     stride,
	}
}

// OpenScreen creates and initialises the process terminal
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}

// Listen cancels on Esc, q or Ctrl-C. It returns once the screen is finalised.
func (t *Terminal) Listen(cancel context.CancelFunc) {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				cancel()
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// Frame draws one tick of generation gen
func (t *Terminal) Frame(gen int, f ga.Frame) {
	if f.Tick%t.stride != 0 {
		return
	}
	t.generation = gen
	t.drawScene()
	for _, d := range f.Dots {
		style := styleDot
		switch {
		case d.ReachedGoal:
			style = styleGoalDot
		case !d.Alive:
			style = styleDeadDot
		}
		t.plot(d.Pos, runeDot, style)
	}
	t.label(fmt.Sprintf("Generation: %d  Tick: %d", gen, f.Tick))
	t.screen.Show()
	if t.frameDelay > 0 {
		time.Sleep(t.frameDelay)
	}
}

// Generation highlights the elite and advances the label
func (t *Terminal) Generation(res sim.GenerationResult) {
	t.generation = res.Generation + 1
	t.plot(res.Elite.Pos, runeElite, styleElite)
	t.label(fmt.Sprintf("Generation: %d  Best fitness: %.4f", t.generation, res.EliteFitness))
	t.screen.Show()
	if t.genDelay > 0 {
		time.Sleep(t.genDelay)
	}
}

// Trace draws a single replayed dot
func (t *Terminal) Trace(tick int, s env.DotState) {
	t.drawScene()
	style := styleElite
	if !s.Alive && !s.ReachedGoal {
		style = styleDeadDot
	}
	t.plot(s.Pos, runeElite, style)
	t.label(fmt.Sprintf("Replay  Tick: %d", tick))
	t.screen.Show()
	if t.frameDelay > 0 {
		time.Sleep(t.frameDelay)
	}
}

func (t *Terminal) drawScene() {
	t.screen.Fill(' ', styleBackground)
	for _, o := range t.world.Obstacles {
		x1, y1 := t.cell(env.Vec{X: o.X1, Y: o.Y1})
		x2, y2 := t.cell(env.Vec{X: o.X2, Y: o.Y2})
		for y := y1; y <= y2; y++ {
			for x := x1; x <= x2; x++ {
				t.screen.SetContent(x, y, runeObstacle, nil, styleObstacle)
			}
		}
	}
	t.plot(t.world.Start, runeStart, styleStart)
	t.plot(t.world.Goal, runeGoal, styleGoal)
}

// cell maps a world point onto the drawable area above the label row
func (t *Terminal) cell(p env.Vec) (int, int) {
	cols, rows := t.screen.Size()
	rows-- // label row
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	x := int(p.X / t.world.Width * float64(cols-1))
	y := int(p.Y / t.world.Height * float64(rows-1))
	return clamp(x, 0, cols-1), clamp(y, 0, rows-1)
}

func (t *Terminal) plot(p env.Vec, r rune, style tcell.Style) {
	x, y := t.cell(p)
	t.screen.SetContent(x, y, r, nil, style)
}

func (t *Terminal) label(text string) {
	cols, rows := t.screen.Size()
	y := rows - 1
	for x := 0; x < cols; x++ {
		t.screen.SetContent(x, y, ' ', nil, styleLabel)
	}
	for x, r := range []rune(text) {
		if x >= cols {
			break
		}
		t.screen.SetContent(x, y, r, nil, styleLabel)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
