package logging

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dotmaze/internal/env"
	"dotmaze/internal/ga"
	"dotmaze/internal/sim"
)

// Metrics publishes training progress on a private Prometheus registry
type Metrics struct {
	Registry *prometheus.Registry

	generation   prometheus.Gauge
	eliteFitness prometheus.Gauge
	goalReached  prometheus.Gauge
	evaluated    prometheus.Counter
	deaths       *prometheus.CounterVec
}

// NewMetrics registers the training collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dotmaze_generation",
			Help: "Number of completed generations.",
		}),
		eliteFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dotmaze_elite_fitness",
			Help: "Fitness of the elite dot of the latest generation.",
		}),
		goalReached: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dotmaze_goal_reached",
			Help: "Dots of the latest generation that reached the goal.",
		}),
		evaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dotmaze_dots_evaluated_total",
			Help: "Dots scored since start.",
		}),
		deaths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dotmaze_deaths_total",
			Help: "Dots stopped, by reason.",
		}, []string{"reason"}),
	}
	m.Registry.MustRegister(m.generation, m.eliteFitness, m.goalReached, m.evaluated, m.deaths)
	return m
}

// Frame is a no-op
func (m *Metrics) Frame(int, ga.Frame) {}

// Generation records a completed generation
func (m *Metrics) Generation(res sim.GenerationResult) {
	m.generation.Set(float64(res.Generation + 1))
	m.eliteFitness.Set(res.EliteFitness)
	m.goalReached.Set(float64(res.Stats.GoalReached))
	m.evaluated.Add(float64(res.Stats.NumDots))
	for _, reason := range []env.DeathReason{env.DeathCollision, env.DeathGoal, env.DeathTimeout} {
		m.deaths.WithLabelValues(reason.String()).Add(float64(res.Stats.DeathCounts[reason]))
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
