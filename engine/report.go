package engine

import (
	"fmt"
	"strings"

	"github.com/rulefire/rulefire/rule"
)

// RuleStatus is the per-rule outcome recorded in a FiringReport.
type RuleStatus string

const (
	// StatusApplied means the rule triggered and its action succeeded.
	StatusApplied RuleStatus = "applied"

	// StatusFailed means the rule triggered but its action errored.
	StatusFailed RuleStatus = "failed"

	// StatusThresholdSkipped means the rule's priority exceeded the
	// threshold; neither its condition nor its action ran.
	StatusThresholdSkipped RuleStatus = "threshold_skipped"
)

// RuleOutcome is one rule's entry in a FiringReport.
//
// Rules whose condition did not hold have no entry: the core does not
// report non-matches, only firings and the threshold stop.
type RuleOutcome struct {
	Rule     string     `json:"rule" yaml:"rule"`
	Priority int        `json:"priority" yaml:"priority"`
	Status   RuleStatus `json:"status" yaml:"status"`
	Error    string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// FiringReport is the aggregate summary of one firing pass. The engine
// core returns no summary from Fire; this is the layered-on view for
// callers that want one.
type FiringReport struct {
	SessionID string        `json:"session_id" yaml:"session_id"`
	Outcome   Outcome       `json:"outcome" yaml:"outcome"`
	RuleCount int           `json:"rule_count" yaml:"rule_count"`
	Rules     []RuleOutcome `json:"rules" yaml:"rules"`
}

// String renders the report as stable, line-oriented text. The layout
// is deterministic for a deterministic pass, so tests can compare it
// against golden files.
func (r FiringReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "session %s: %d rules, outcome %s\n", r.SessionID, r.RuleCount, r.Outcome)
	for _, o := range r.Rules {
		fmt.Fprintf(&b, "  [%d] %s: %s", o.Priority, o.Rule, o.Status)
		if o.Error != "" {
			fmt.Fprintf(&b, " (%s)", o.Error)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ReportCollector is a Listener that assembles a FiringReport per
// session.
//
// Like the engine itself it is single-threaded: it assumes one pass at
// a time and must not be shared across concurrently firing engines.
type ReportCollector struct {
	NopListener

	current *FiringReport
	reports []FiringReport
}

// NewReportCollector creates an empty collector.
func NewReportCollector() *ReportCollector {
	return &ReportCollector{}
}

// FiringStarted opens a fresh report for the session.
func (c *ReportCollector) FiringStarted(s Session, ruleCount int) {
	c.current = &FiringReport{
		SessionID: s.ID,
		RuleCount: ruleCount,
		Rules:     []RuleOutcome{},
	}
}

// ThresholdExceeded records the rule the pass stopped at.
func (c *ReportCollector) ThresholdExceeded(s Session, r rule.Rule, threshold int) {
	c.append(RuleOutcome{
		Rule:     r.Name(),
		Priority: r.Priority(),
		Status:   StatusThresholdSkipped,
	})
}

// RuleApplied records a successful firing.
func (c *ReportCollector) RuleApplied(s Session, r rule.Rule) {
	c.append(RuleOutcome{
		Rule:     r.Name(),
		Priority: r.Priority(),
		Status:   StatusApplied,
	})
}

// RuleFailed records an isolated action failure.
func (c *ReportCollector) RuleFailed(s Session, r rule.Rule, err error) {
	c.append(RuleOutcome{
		Rule:     r.Name(),
		Priority: r.Priority(),
		Status:   StatusFailed,
		Error:    err.Error(),
	})
}

// FiringFinished seals the report for the session.
func (c *ReportCollector) FiringFinished(s Session, outcome Outcome) {
	if c.current == nil {
		return
	}
	c.current.Outcome = outcome
	c.reports = append(c.reports, *c.current)
	c.current = nil
}

// Last returns the most recently completed report.
func (c *ReportCollector) Last() (FiringReport, bool) {
	if len(c.reports) == 0 {
		return FiringReport{}, false
	}
	return c.reports[len(c.reports)-1], true
}

// Reports returns all completed reports in firing order.
func (c *ReportCollector) Reports() []FiringReport {
	out := make([]FiringReport, len(c.reports))
	copy(out, c.reports)
	return out
}

func (c *ReportCollector) append(o RuleOutcome) {
	if c.current == nil {
		return
	}
	c.current.Rules = append(c.current.Rules, o)
}
