package cli

import (
	"github.com/spf13/cobra"
)

// Version is the CLI version, overridden at build time via
// -ldflags "-X github.com/rulefire/rulefire/internal/cli.Version=...".
var Version = "dev"

// VersionInfo is the version output payload.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
}

// String renders the version for text output.
func (v VersionInfo) String() string {
	return "rulefire " + v.Version + "\n"
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rulefire version",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return f.Success(VersionInfo{Version: Version})
		},
	}
}
