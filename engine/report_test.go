package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulefire/rulefire/rule"
)

// TestReportCollector_GoldenRendering locks down the text rendering of
// a firing report. Uses a fixed session ID so the output is fully
// deterministic.
//
// To regenerate golden files, run:
//
//	go test ./engine -update
func TestReportCollector_GoldenRendering(t *testing.T) {
	collector := NewReportCollector()
	e := New(
		WithLogger(quietLogger()),
		WithListener(collector),
		WithPriorityThreshold(2),
		WithSessionIDGenerator(NewFixedGenerator("session-1")),
	)

	e.Register(
		rule.New("alpha", 1,
			func(ctx context.Context) (bool, error) { return true, nil },
			func(ctx context.Context) error { return nil },
		),
		rule.New("beta", 2,
			func(ctx context.Context) (bool, error) { return true, nil },
			func(ctx context.Context) error { return errors.New("boom") },
		),
		rule.New("gamma", 3,
			func(ctx context.Context) (bool, error) { return true, nil },
			func(ctx context.Context) error { return nil },
		),
	)

	require.NoError(t, e.Fire(context.Background()))

	report, ok := collector.Last()
	require.True(t, ok)

	g := goldie.New(t)
	g.Assert(t, "firing_report", []byte(report.String()))
}

func TestReportCollector_MultipleSessions(t *testing.T) {
	collector := NewReportCollector()
	e := New(
		WithLogger(quietLogger()),
		WithListener(collector),
		WithSessionIDGenerator(NewFixedGenerator("s-1", "s-2")),
	)

	applied := 0
	e.Register(rule.New("counter", 1,
		func(ctx context.Context) (bool, error) { return true, nil },
		func(ctx context.Context) error { applied++; return nil },
	))

	require.NoError(t, e.Fire(context.Background()))
	require.NoError(t, e.Fire(context.Background()))

	reports := collector.Reports()
	require.Len(t, reports, 2)
	assert.Equal(t, "s-1", reports[0].SessionID)
	assert.Equal(t, "s-2", reports[1].SessionID)
	assert.Equal(t, OutcomeExhausted, reports[0].Outcome)
	assert.Equal(t, 2, applied)
}

func TestFiringReport_StringWithoutError(t *testing.T) {
	r := FiringReport{
		SessionID: "abc",
		Outcome:   OutcomeExhausted,
		RuleCount: 1,
		Rules: []RuleOutcome{
			{Rule: "only", Priority: 7, Status: StatusApplied},
		},
	}

	assert.Equal(t, "session abc: 1 rules, outcome exhausted\n  [7] only: applied\n", r.String())
}
