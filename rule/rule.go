package rule

import "context"

// Rule is a unit of conditional business logic.
//
// Evaluate is the condition predicate. It must be side-effect-free and
// fast. Its error channel is NOT isolated by the engine: an Evaluate
// error aborts the whole firing pass and propagates to the caller.
//
// Execute is the action procedure. It may have arbitrary side effects.
// Execute errors ARE isolated by the engine: they are logged and the
// pass continues with the next rule.
//
// The context is threaded through from Engine.Fire for the rule's own
// use (deadlines on I/O the action performs, etc.); the engine itself
// never cancels between rules.
type Rule interface {
	// Name returns the rule's stable identity, unique within a Set.
	Name() string

	// Priority is the ordering key. Lower values fire earlier.
	Priority() int

	// Evaluate reports whether the rule's action should run.
	Evaluate(ctx context.Context) (bool, error)

	// Execute performs the rule's action.
	Execute(ctx context.Context) error
}

// Condition is a func-form condition predicate.
type Condition func(ctx context.Context) (bool, error)

// Action is a func-form action procedure.
type Action func(ctx context.Context) error

// SimpleRule is a Rule assembled from plain funcs, for callers that do
// not want to declare a type per rule.
type SimpleRule struct {
	name      string
	priority  int
	condition Condition
	action    Action
}

// New creates a SimpleRule. A nil condition never matches; a nil
// action is a no-op.
func New(name string, priority int, condition Condition, action Action) *SimpleRule {
	return &SimpleRule{
		name:      name,
		priority:  priority,
		condition: condition,
		action:    action,
	}
}

// Name returns the rule name.
func (r *SimpleRule) Name() string { return r.name }

// Priority returns the ordering key.
func (r *SimpleRule) Priority() int { return r.priority }

// Evaluate runs the condition func.
func (r *SimpleRule) Evaluate(ctx context.Context) (bool, error) {
	if r.condition == nil {
		return false, nil
	}
	return r.condition(ctx)
}

// Execute runs the action func.
func (r *SimpleRule) Execute(ctx context.Context) error {
	if r.action == nil {
		return nil
	}
	return r.action(ctx)
}
