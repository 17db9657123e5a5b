// Package engine implements the rulefire firing engine.
//
// The engine owns an ordered set of rules and exposes one primary
// operation, Fire, which evaluates and executes applicable rules in
// ascending priority order.
//
// FIRING PASS:
//
// 1. Empty set: warn and return, nothing to apply.
// 2. For each rule in sorted order:
//   - priority above the threshold stops the whole pass (the set is
//     sorted, so every later rule is above it too)
//   - a false condition moves on to the next rule
//   - a true condition runs the action; action failures are logged and
//     isolated, the pass continues
//   - in skip-on-first-applied mode the first successful action stops
//     the pass
//
// Condition errors are deliberately NOT isolated: a rule whose
// Evaluate returns an error aborts the pass and the error propagates
// from Fire. Conditions are expected to be pure and safe; actions are
// not.
//
// The pass is strictly single-threaded and synchronous. Fire runs to
// completion on the calling goroutine with no internal locking and no
// cancellation between rules. Callers needing periodic or serialized
// firing should wrap the engine (see package schedule).
//
// Every pass is a Session with a unique ID. The engine reports
// structured events (FiringStarted, RuleTriggered, RuleApplied,
// RuleFailed, ThresholdExceeded, FiringFinished) to registered
// Listeners; packages history, metrics and the ReportCollector in this
// package are Listener implementations.
package engine
