package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/rulefire/rulefire/rule"
)

// DefaultPriorityThreshold is the sentinel for "no threshold": no
// representable priority exceeds it, so every registered rule is
// considered.
const DefaultPriorityThreshold = math.MaxInt

// Engine is the rule firing engine.
//
// An Engine owns an ordered rule set, populated through Register
// before firing. Configuration is fixed at construction; the rule set
// is read-only during a pass.
//
// Thread-safety model:
//   - Register/Unregister and Fire must not overlap; the engine does
//     no internal locking.
//   - One Fire call at a time. Wrap the engine (package schedule does)
//     if passes can race.
type Engine struct {
	rules              *rule.Set
	priorityThreshold  int
	skipOnFirstApplied bool
	listeners          []Listener
	sessions           SessionIDGenerator
	logger             *slog.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithPriorityThreshold sets the maximum priority value (inclusive) a
// rule may have and still be considered. The set is sorted ascending,
// so the first rule above the threshold stops the whole pass.
//
// Default: DefaultPriorityThreshold (effectively unbounded).
func WithPriorityThreshold(threshold int) Option {
	return func(e *Engine) {
		e.priorityThreshold = threshold
	}
}

// WithSkipOnFirstApplied makes the pass stop immediately after the
// first rule whose action executes successfully. A failed action does
// not count: the pass continues looking for a success.
func WithSkipOnFirstApplied() Option {
	return func(e *Engine) {
		e.skipOnFirstApplied = true
	}
}

// WithListener registers listeners for firing events.
func WithListener(listeners ...Listener) Option {
	return func(e *Engine) {
		e.listeners = append(e.listeners, listeners...)
	}
}

// WithSessionIDGenerator overrides the session ID source.
// Tests use NewFixedGenerator for deterministic IDs.
func WithSessionIDGenerator(g SessionIDGenerator) Option {
	return func(e *Engine) {
		e.sessions = g
	}
}

// WithLogger sets the diagnostics logger.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine with an empty rule set. Construction cannot
// fail: the threshold and skip mode are plain scalars with safe
// defaults.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:             rule.NewSet(),
		priorityThreshold: DefaultPriorityThreshold,
		sessions:          UUIDv7Generator{},
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register adds rules to the engine. A rule with an already-registered
// name replaces the previous one. Must not be called while a pass is
// in progress.
func (e *Engine) Register(rules ...rule.Rule) {
	for _, r := range rules {
		e.rules.Add(r)
	}
}

// Unregister removes the named rule. Returns false if it was not
// registered.
func (e *Engine) Unregister(name string) bool {
	return e.rules.Remove(name)
}

// Rules returns the registered rules in firing order.
func (e *Engine) Rules() []rule.Rule {
	return e.rules.Rules()
}

// Fire runs one firing pass over the registered rules.
//
// With no rules registered it warns and returns nil; an empty set is
// not an error. Otherwise it logs the effective configuration and
// applies rules in ascending priority order.
//
// The only error Fire returns is a rule condition failing: Evaluate
// errors propagate, wrapped with the rule name. Action errors never
// escape; they are logged at ERROR severity and the pass continues.
//
// ctx is handed to each rule's Evaluate and Execute for the rule's own
// use. The engine does not cancel between rules.
func (e *Engine) Fire(ctx context.Context) error {
	if e.rules.Len() == 0 {
		e.logger.Warn("no rules registered, nothing to apply")
		return nil
	}

	sess := Session{ID: e.sessions.Generate(), StartedAt: time.Now()}

	e.logger.Info("firing rules",
		"session", sess.ID,
		"rules", e.rules.Len(),
		"priority_threshold", e.priorityThreshold,
		"skip_on_first_applied", e.skipOnFirstApplied,
	)
	for _, l := range e.listeners {
		l.FiringStarted(sess, e.rules.Len())
	}

	outcome, err := e.applyRules(ctx, sess)

	for _, l := range e.listeners {
		l.FiringFinished(sess, outcome)
	}
	return err
}

// applyRules is the firing pass. It iterates the sorted snapshot and
// ends on exactly one of: set exhausted, priority threshold exceeded,
// skip-on-first-applied success, or a condition error.
func (e *Engine) applyRules(ctx context.Context, sess Session) (Outcome, error) {
	for _, r := range e.rules.Rules() {
		name := r.Name()

		// The set is non-decreasing in priority, so the first rule
		// above the threshold ends the pass, not just this rule.
		if priority := r.Priority(); priority > e.priorityThreshold {
			e.logger.Info("priority threshold exceeded, skipping remaining rules",
				"session", sess.ID,
				"rule", name,
				"priority", priority,
				"priority_threshold", e.priorityThreshold,
			)
			for _, l := range e.listeners {
				l.ThresholdExceeded(sess, r, e.priorityThreshold)
			}
			return OutcomeThresholdStopped, nil
		}

		shouldApply, err := r.Evaluate(ctx)
		if err != nil {
			// Conditions are expected to be pure and safe. A condition
			// that errors aborts the pass; see package doc.
			return OutcomeAborted, fmt.Errorf("evaluate rule %q: %w", name, err)
		}
		if !shouldApply {
			e.logger.Debug("rule not triggered", "session", sess.ID, "rule", name)
			continue
		}

		e.logger.Info("rule triggered", "session", sess.ID, "rule", name)
		for _, l := range e.listeners {
			l.RuleTriggered(sess, r)
		}

		if err := r.Execute(ctx); err != nil {
			e.logger.Error("rule failed",
				"session", sess.ID,
				"rule", name,
				"error", err,
			)
			for _, l := range e.listeners {
				l.RuleFailed(sess, r, err)
			}
			continue
		}

		e.logger.Info("rule applied", "session", sess.ID, "rule", name)
		for _, l := range e.listeners {
			l.RuleApplied(sess, r)
		}

		if e.skipOnFirstApplied {
			e.logger.Info("skipping remaining rules after first applied rule",
				"session", sess.ID,
				"rule", name,
			)
			return OutcomeSkipStopped, nil
		}
	}
	return OutcomeExhausted, nil
}
