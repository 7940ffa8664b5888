package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/grdfind/pkg/settings"
)

// versionString builds the text for `grdfind version` and --version.
func versionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print grdfind version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return nil
		},
	}
}
