package history

import (
	"log/slog"
	"time"

	"github.com/rulefire/rulefire/engine"
	"github.com/rulefire/rulefire/rule"
)

// Firing event kinds, as stored in firings.kind.
const (
	KindTriggered         = "triggered"
	KindApplied           = "applied"
	KindFailed            = "failed"
	KindThresholdExceeded = "threshold_exceeded"
)

// Recorder is an engine.Listener that writes firing history to a
// Store.
//
// Store errors are logged and swallowed: a history write must never
// alter the outcome of the pass it observes. Like the engine, the
// Recorder assumes one pass at a time.
type Recorder struct {
	engine.NopListener

	store  *Store
	logger *slog.Logger
	seq    int
}

// NewRecorder creates a Recorder writing to the given store.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{
		store:  store,
		logger: slog.Default().With("component", "history.recorder"),
	}
}

// FiringStarted inserts the session row and resets the event sequence.
func (r *Recorder) FiringStarted(s engine.Session, ruleCount int) {
	r.seq = 0
	_, err := r.store.db.Exec(`
		INSERT INTO sessions (id, started_at, rule_count)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, s.ID, s.StartedAt.UTC().Format(time.RFC3339Nano), ruleCount)
	if err != nil {
		r.logger.Error("record session failed", "session", s.ID, "error", err)
	}
}

// ThresholdExceeded records the rule the pass stopped at.
func (r *Recorder) ThresholdExceeded(s engine.Session, ru rule.Rule, threshold int) {
	r.writeFiring(s, ru, KindThresholdExceeded, "")
}

// RuleTriggered records a matched condition.
func (r *Recorder) RuleTriggered(s engine.Session, ru rule.Rule) {
	r.writeFiring(s, ru, KindTriggered, "")
}

// RuleApplied records a successful action.
func (r *Recorder) RuleApplied(s engine.Session, ru rule.Rule) {
	r.writeFiring(s, ru, KindApplied, "")
}

// RuleFailed records an isolated action failure.
func (r *Recorder) RuleFailed(s engine.Session, ru rule.Rule, err error) {
	r.writeFiring(s, ru, KindFailed, err.Error())
}

// FiringFinished stamps the session with its outcome.
func (r *Recorder) FiringFinished(s engine.Session, outcome engine.Outcome) {
	_, err := r.store.db.Exec(`
		UPDATE sessions SET finished_at = ?, outcome = ? WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339Nano), string(outcome), s.ID)
	if err != nil {
		r.logger.Error("record session outcome failed", "session", s.ID, "error", err)
	}
}

func (r *Recorder) writeFiring(s engine.Session, ru rule.Rule, kind, errMsg string) {
	r.seq++
	_, err := r.store.db.Exec(`
		INSERT INTO firings (session_id, seq, rule_name, priority, kind, error, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.ID, r.seq, ru.Name(), ru.Priority(), kind, nullable(errMsg),
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		r.logger.Error("record firing failed",
			"session", s.ID,
			"rule", ru.Name(),
			"kind", kind,
			"error", err,
		)
	}
}

// nullable maps "" to NULL so absent errors read back as empty.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
