package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/grdfind/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration",
		Long: `Prints the built-in defaults merged with the user config file
($XDG_CONFIG_HOME/grdfind/config.yaml, ~/.config/grdfind/config.yaml, or
--config-file).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				data []byte
				err  error
			)
			switch strings.ToLower(output) {
			case "", "yaml", "yml":
				data, err = a.cfg.YAML()
			case "json":
				data, err = a.cfg.JSON()
				data = append(data, '\n')
			default:
				return fmt.Errorf("unknown output format %q (expected yaml, json)", output)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml|json")

	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Available themes (default: %s):\n", a.cfg.Theme.Default)
			for _, name := range a.cfg.ThemeNames() {
				fmt.Fprintf(out, " - %s\n", name)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ResolvePath(a.opts.configFile)
			if path == "" {
				path = "(built-in defaults)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return cmd
}
