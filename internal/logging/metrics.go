package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"dotmaze/internal/env"
	"dotmaze/internal/ga"
	"dotmaze/internal/sim"
)

// Logger handles all training output and artifact saving
type Logger struct {
	RunID       string
	csvPath     string
	jsonPath    string
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	console     io.Writer
	initialized bool
}

// NewLogger creates a new logger
func NewLogger(csvPath, jsonPath string) (*Logger, error) {
	l := &Logger{
		RunID:    uuid.NewString(),
		csvPath:  csvPath,
		jsonPath: jsonPath,
		console:  os.Stdout,
	}

	// Ensure directories exist
	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}

	return l, nil
}

// SetConsole redirects the per-generation summary line
func (l *Logger) SetConsole(w io.Writer) {
	l.console = w
}

// Init initializes the log files
func (l *Logger) Init() error {
	var err error

	l.csvFile, err = os.Create(l.csvPath)
	if err != nil {
		return err
	}
	l.csvWriter = csv.NewWriter(l.csvFile)

	header := []string{
		"generation", "best_fitness", "mean_fitness", "best_steps", "mean_steps", "goal_reached",
		"deaths_collision", "deaths_goal", "deaths_timeout", "deaths_alive", "mutations",
	}
	if err := l.csvWriter.Write(header); err != nil {
		return err
	}

	l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	l.initialized = true
	return nil
}

// Close closes all log files
func (l *Logger) Close() {
	if l.csvWriter != nil {
		l.csvWriter.Flush()
	}
	if l.csvFile != nil {
		l.csvFile.Close()
	}
	if l.jsonFile != nil {
		l.jsonFile.Close()
	}
}

// GenerationSummary holds per-generation statistics
type GenerationSummary struct {
	RunID       string         `json:"run_id"`
	Generation  int            `json:"generation"`
	BestFitness float64        `json:"best_fitness"`
	MeanFitness float64        `json:"mean_fitness"`
	BestSteps   int            `json:"best_steps"`
	MeanSteps   float64        `json:"mean_steps"`
	GoalReached int            `json:"goal_reached"`
	EliteX      float64        `json:"elite_x"`
	EliteY      float64        `json:"elite_y"`
	DeathCounts map[string]int `json:"death_counts"`
	Mutations   int            `json:"mutations"`
}

// Summarize converts a generation result into its log record
func (l *Logger) Summarize(res sim.GenerationResult) GenerationSummary {
	summary := GenerationSummary{
		RunID:       l.RunID,
		Generation:  res.Generation + 1,
		BestFitness: res.EliteFitness,
		MeanFitness: res.Stats.FitnessMean,
		BestSteps:   res.EliteStats.Steps,
		MeanSteps:   res.Stats.StepsMean,
		GoalReached: res.Stats.GoalReached,
		EliteX:      res.Elite.Pos.X,
		EliteY:      res.Elite.Pos.Y,
		DeathCounts: make(map[string]int),
		Mutations:   res.Mutations,
	}
	for reason, count := range res.Stats.DeathCounts {
		summary.DeathCounts[reason.String()] = count
	}
	return summary
}

// Frame is a no-op; the logger only records whole generations
func (l *Logger) Frame(int, ga.Frame) {}

// Generation logs a generation summary
func (l *Logger) Generation(res sim.GenerationResult) {
	l.LogGeneration(res)
}

// LogGeneration writes the CSV row, the JSON line and the console line
func (l *Logger) LogGeneration(res sim.GenerationResult) {
	if !l.initialized {
		return
	}

	summary := l.Summarize(res)
	deaths := res.Stats.DeathCounts

	row := []string{
		strconv.Itoa(summary.Generation),
		fmt.Sprintf("%.6f", summary.BestFitness),
		fmt.Sprintf("%.6f", summary.MeanFitness),
		strconv.Itoa(summary.BestSteps),
		fmt.Sprintf("%.2f", summary.MeanSteps),
		strconv.Itoa(summary.GoalReached),
		strconv.Itoa(deaths[env.DeathCollision]),
		strconv.Itoa(deaths[env.DeathGoal]),
		strconv.Itoa(deaths[env.DeathTimeout]),
		strconv.Itoa(deaths[env.DeathNone]),
		strconv.Itoa(summary.Mutations),
	}
	l.csvWriter.Write(row)
	l.csvWriter.Flush()

	jsonLine, _ := json.Marshal(summary)
	l.jsonFile.WriteString(string(jsonLine) + "\n")

	fmt.Fprintf(l.console, "Gen %4d | Best: %10.4f | Mean: %10.4f | Steps: %4d | Goal: %3d | Deaths: C=%d G=%d T=%d\n",
		summary.Generation, summary.BestFitness, summary.MeanFitness, summary.BestSteps, summary.GoalReached,
		deaths[env.DeathCollision], deaths[env.DeathGoal], deaths[env.DeathTimeout])
}

// Champion is the saved best brain of a run
type Champion struct {
	RunID      string    `json:"run_id"`
	Generation int       `json:"generation"`
	Fitness    float64   `json:"fitness"`
	Steps      int       `json:"steps"`
	Brain      []env.Vec `json:"brain"`
}

// SaveChampion saves the best brain to a file
func SaveChampion(path string, c Champion) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, jsonData, 0644)
}

// LoadChampion loads a champion from a file
func LoadChampion(path string) (*Champion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Champion
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode champion %s: %w", path, err)
	}
	if len(c.Brain) == 0 {
		return nil, fmt.Errorf("champion %s has an empty brain", path)
	}
	return &c, nil
}
