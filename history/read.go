package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionRecord is one firing pass as stored in the history.
type SessionRecord struct {
	ID         string    `json:"id" yaml:"id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	Outcome    string    `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	RuleCount  int       `json:"rule_count" yaml:"rule_count"`
}

// FiringRecord is one firing event within a session.
type FiringRecord struct {
	SessionID  string    `json:"session_id" yaml:"session_id"`
	Seq        int       `json:"seq" yaml:"seq"`
	Rule       string    `json:"rule" yaml:"rule"`
	Priority   int       `json:"priority" yaml:"priority"`
	Kind       string    `json:"kind" yaml:"kind"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// ListSessions returns the most recent sessions, newest first.
// limit <= 0 means no limit.
//
// Returns an empty slice (not nil) if the history is empty.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	query := `
		SELECT id, started_at, finished_at, outcome, rule_count
		FROM sessions
		ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []SessionRecord{}
	for rows.Next() {
		var (
			rec        SessionRecord
			startedAt  string
			finishedAt sql.NullString
			outcome    sql.NullString
		)
		if err := rows.Scan(&rec.ID, &startedAt, &finishedAt, &outcome, &rec.RuleCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse session %s started_at: %w", rec.ID, err)
		}
		if finishedAt.Valid {
			if rec.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt.String); err != nil {
				return nil, fmt.Errorf("parse session %s finished_at: %w", rec.ID, err)
			}
		}
		rec.Outcome = outcome.String
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

// SessionEvents returns a session's firing events in pass order.
//
// Returns an empty slice (not nil) if the session has no events or
// does not exist.
func (s *Store) SessionEvents(ctx context.Context, sessionID string) ([]FiringRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, rule_name, priority, kind, error, recorded_at
		FROM firings
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query firings: %w", err)
	}
	defer rows.Close()

	events := []FiringRecord{}
	for rows.Next() {
		var (
			rec        FiringRecord
			errMsg     sql.NullString
			recordedAt string
		)
		if err := rows.Scan(&rec.SessionID, &rec.Seq, &rec.Rule, &rec.Priority, &rec.Kind, &errMsg, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan firing: %w", err)
		}
		rec.Error = errMsg.String
		if rec.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("parse firing recorded_at: %w", err)
		}
		events = append(events, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate firings: %w", err)
	}

	return events, nil
}
