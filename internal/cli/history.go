package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rulefire/rulefire/history"
)

// HistoryOptions holds flags for the history subcommands.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewHistoryCommand creates the history command group.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded firing sessions",
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite firing-history database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newHistoryListCommand(opts))
	cmd.AddCommand(newHistoryShowCommand(opts))

	return cmd
}

// SessionList is the list output payload.
type SessionList struct {
	Sessions []history.SessionRecord `json:"sessions" yaml:"sessions"`
}

// String renders the list as one line per session.
func (l SessionList) String() string {
	if len(l.Sessions) == 0 {
		return "no sessions recorded\n"
	}
	var b strings.Builder
	for _, s := range l.Sessions {
		outcome := s.Outcome
		if outcome == "" {
			outcome = "incomplete"
		}
		fmt.Fprintf(&b, "%s  %s  rules=%d  %s\n",
			s.ID, s.StartedAt.Format(time.RFC3339), s.RuleCount, outcome)
	}
	return b.String()
}

func newHistoryListCommand(opts *HistoryOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded firing sessions, newest first",
		Example: `  rulefire history list --db ./rulefire.db
  rulefire history list --db ./rulefire.db --limit 10 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum sessions to list (0 for all)")

	return cmd
}

func runHistoryList(opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := history.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open history database", err)
	}
	defer st.Close()

	sessions, err := st.ListSessions(context.Background(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "list sessions", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return f.Success(SessionList{Sessions: sessions})
}

// SessionTrace is the show output payload: one session and its firing
// events in pass order.
type SessionTrace struct {
	Session history.SessionRecord  `json:"session" yaml:"session"`
	Events  []history.FiringRecord `json:"events" yaml:"events"`
}

// String renders the session header and its events line by line.
func (t SessionTrace) String() string {
	var b strings.Builder
	outcome := t.Session.Outcome
	if outcome == "" {
		outcome = "incomplete"
	}
	fmt.Fprintf(&b, "session %s: %d rules, outcome %s\n", t.Session.ID, t.Session.RuleCount, outcome)
	for _, e := range t.Events {
		fmt.Fprintf(&b, "  %d. [%d] %s: %s", e.Seq, e.Priority, e.Rule, e.Kind)
		if e.Error != "" {
			fmt.Fprintf(&b, " (%s)", e.Error)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func newHistoryShowCommand(opts *HistoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show one firing session's events in pass order",
		Example: `  rulefire history show 0190a0b3-... --db ./rulefire.db
  rulefire history show 0190a0b3-... --db ./rulefire.db --format yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(opts, cmd, args[0])
		},
	}
}

func runHistoryShow(opts *HistoryOptions, cmd *cobra.Command, sessionID string) error {
	st, err := history.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open history database", err)
	}
	defer st.Close()

	ctx := context.Background()

	sessions, err := st.ListSessions(ctx, 0)
	if err != nil {
		return WrapExitError(ExitCommandError, "list sessions", err)
	}
	var session *history.SessionRecord
	for i := range sessions {
		if sessions[i].ID == sessionID {
			session = &sessions[i]
			break
		}
	}
	if session == nil {
		return NewExitError(ExitFailure, fmt.Sprintf("session %q not found", sessionID))
	}

	events, err := st.SessionEvents(ctx, sessionID)
	if err != nil {
		return WrapExitError(ExitCommandError, "read session events", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return f.Success(SessionTrace{Session: *session, Events: events})
}
