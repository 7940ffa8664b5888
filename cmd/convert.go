package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/grdfind/internal/convert"
	"github.com/oakwood-commons/grdfind/pkg/logger"
)

func newConvertCmd(a *app) *cobra.Command {
	o := convert.Options{}
	cmd := &cobra.Command{
		Use:   "convert <csv files, directories or globs>...",
		Short: "Convert CSV price lists into a JSON catalog",
		Long: `Reads CSV files with a header row and writes them as a catalog.

Inputs may be files, directories (their top-level .csv files) or doublestar
patterns such as 'data/**/*.csv'. Recognized headers (case-insensitive):
grd, description, price_kg (price/kg), price_lb (price/lb), category, notes.
The first file that fails to convert stops the run.`,
		Example: "\n  grdfind convert prices.csv\n  grdfind convert 'exports/**/*.csv' --out catalog/items.json\n  grdfind convert exports/ --per-file --out-dir converted/\n",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Logger = *logger.FromContext(cmd.Context())
			o.Stdout = cmd.OutOrStdout()
			res, err := convert.Run(cmd.Context(), args, o)
			if err != nil {
				return err
			}
			if res.Output == "-" {
				return nil
			}
			dest := res.Output
			if o.PerFile {
				dest = o.OutputDir
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Converted %d items from %d files into %s\n", res.Items, len(res.Files), dest)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.Output, "out", convert.DefaultOutput, "combined catalog path (- for stdout)")
	f.BoolVar(&o.PerFile, "per-file", false, "write <name>"+convert.PerFileSuffix+" per input instead of one catalog")
	f.StringVar(&o.OutputDir, "out-dir", ".", "directory for --per-file output")
	return cmd
}
