package engine

import "github.com/rulefire/rulefire/rule"

// Outcome is the terminal state of a firing pass.
type Outcome string

const (
	// OutcomeExhausted means every rule was considered.
	OutcomeExhausted Outcome = "exhausted"

	// OutcomeThresholdStopped means a rule's priority exceeded the
	// engine threshold and the remainder of the pass was skipped.
	OutcomeThresholdStopped Outcome = "threshold_stopped"

	// OutcomeSkipStopped means skip-on-first-applied ended the pass
	// after the first successful action.
	OutcomeSkipStopped Outcome = "skip_stopped"

	// OutcomeAborted means a rule condition returned an error and the
	// pass was abandoned. The error propagates from Fire.
	OutcomeAborted Outcome = "aborted"
)

// Listener receives structured events from a firing pass.
//
// Listeners decouple observation (reports, history, metrics) from the
// firing algorithm itself. They are invoked synchronously on the
// firing goroutine and must not mutate the engine's rule set. A
// listener that needs to fail does so on its own channel (its logger,
// its store); nothing a listener does can alter the pass.
//
// Embed NopListener to implement only the events you care about.
type Listener interface {
	// FiringStarted is reported once per non-empty pass, before any
	// rule is considered.
	FiringStarted(s Session, ruleCount int)

	// ThresholdExceeded is reported when a rule's priority exceeds the
	// engine threshold, immediately before the pass stops.
	ThresholdExceeded(s Session, r rule.Rule, threshold int)

	// RuleTriggered is reported when a rule's condition holds, before
	// its action runs.
	RuleTriggered(s Session, r rule.Rule)

	// RuleApplied is reported after a rule's action ran successfully.
	RuleApplied(s Session, r rule.Rule)

	// RuleFailed is reported when a rule's action returned an error.
	// The pass continues; err is the action's error.
	RuleFailed(s Session, r rule.Rule, err error)

	// FiringFinished is reported once per non-empty pass with its
	// terminal outcome, including OutcomeAborted.
	FiringFinished(s Session, outcome Outcome)
}

// NopListener implements Listener with no-ops, for embedding.
type NopListener struct{}

func (NopListener) FiringStarted(Session, int)                {}
func (NopListener) ThresholdExceeded(Session, rule.Rule, int) {}
func (NopListener) RuleTriggered(Session, rule.Rule)          {}
func (NopListener) RuleApplied(Session, rule.Rule)            {}
func (NopListener) RuleFailed(Session, rule.Rule, error)      {}
func (NopListener) FiringFinished(Session, Outcome)           {}
