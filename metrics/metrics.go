// Package metrics exports Prometheus metrics for firing passes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rulefire/rulefire/engine"
	"github.com/rulefire/rulefire/rule"
)

// Listener is an engine.Listener backed by Prometheus collectors.
//
// Register it on an engine with engine.WithListener. Collectors are
// registered on the given Registerer at construction, so create one
// Listener per registry.
type Listener struct {
	engine.NopListener

	sessions  *prometheus.CounterVec
	triggered *prometheus.CounterVec
	applied   *prometheus.CounterVec
	failed    *prometheus.CounterVec
	duration  prometheus.Histogram

	started map[string]time.Time
}

// NewListener creates a Listener registered on reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry.
func NewListener(reg prometheus.Registerer) *Listener {
	factory := promauto.With(reg)

	return &Listener{
		sessions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rulefire_firing_sessions_total",
				Help: "Total number of firing passes by terminal outcome",
			},
			[]string{"outcome"},
		),
		triggered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rulefire_rules_triggered_total",
				Help: "Total number of rule conditions that held",
			},
			[]string{"rule"},
		),
		applied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rulefire_rules_applied_total",
				Help: "Total number of rule actions that executed successfully",
			},
			[]string{"rule"},
		),
		failed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rulefire_rules_failed_total",
				Help: "Total number of rule actions that returned an error",
			},
			[]string{"rule"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rulefire_firing_duration_seconds",
				Help:    "Duration of firing passes",
				Buckets: prometheus.DefBuckets,
			},
		),
		started: make(map[string]time.Time),
	}
}

// FiringStarted notes the session start for duration tracking.
func (l *Listener) FiringStarted(s engine.Session, ruleCount int) {
	l.started[s.ID] = s.StartedAt
}

// RuleTriggered counts a matched condition.
func (l *Listener) RuleTriggered(s engine.Session, r rule.Rule) {
	l.triggered.WithLabelValues(r.Name()).Inc()
}

// RuleApplied counts a successful action.
func (l *Listener) RuleApplied(s engine.Session, r rule.Rule) {
	l.applied.WithLabelValues(r.Name()).Inc()
}

// RuleFailed counts an isolated action failure.
func (l *Listener) RuleFailed(s engine.Session, r rule.Rule, err error) {
	l.failed.WithLabelValues(r.Name()).Inc()
}

// FiringFinished counts the pass outcome and observes its duration.
func (l *Listener) FiringFinished(s engine.Session, outcome engine.Outcome) {
	l.sessions.WithLabelValues(string(outcome)).Inc()
	if startedAt, ok := l.started[s.ID]; ok {
		l.duration.Observe(time.Since(startedAt).Seconds())
		delete(l.started, s.ID)
	}
}
