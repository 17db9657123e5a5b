// Package rule defines the Rule abstraction and the ordered Set the
// firing engine iterates.
//
// A Rule is a named, priority-ordered unit of conditional logic: a
// condition predicate (Evaluate) and an action procedure (Execute).
// Identity is the rule's name; within one Set a name maps to exactly
// one rule.
//
// ORDERING:
//
// A Set keeps its rules sorted at all times by (priority ascending,
// name ascending). Lower priority values fire earlier. The engine's
// threshold short-circuit depends on this invariant: once one rule's
// priority exceeds the threshold, every rule after it does too.
//
// Names are compared and matched in Unicode NFC form, so two spellings
// of the same visible name resolve to one identity.
package rule
