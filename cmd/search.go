package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/grdfind/internal/catalog"
	"github.com/oakwood-commons/grdfind/internal/cel"
	"github.com/oakwood-commons/grdfind/internal/formatter"
	"github.com/oakwood-commons/grdfind/internal/limiter"
	"github.com/oakwood-commons/grdfind/internal/search"
	"github.com/oakwood-commons/grdfind/pkg/logger"
	"github.com/oakwood-commons/grdfind/pkg/settings"
)

const noMatchesMessage = "No matching items found."

type searchOptions struct {
	output string
	where  string
	all    bool
	width  int
	limit  limiter.Config
}

func newSearchCmd(a *app) *cobra.Command {
	o := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print the items matching a query",
		Long: `Runs the same case-insensitive substring match as the interactive widget
over GRD codes and descriptions, then prints the matches.

--where filters the matches further with a CEL expression over "item"
(fields: grd, description, price_kg, price_lb, category, notes).`,
		Example: "\n  grdfind search ban\n  grdfind search a --all --output json\n  grdfind search a --where 'has(item.price_kg) && item.price_kg < 2.0'\n",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, a, o, strings.Join(args, " "))
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "table", "output format: table|json|yaml|toml|csv")
	f.StringVar(&o.where, "where", "", "CEL predicate over item applied after the text match")
	f.BoolVar(&o.all, "all", false, "ignore the suggestion cap and print every match")
	f.IntVar(&o.width, "width", 0, "table width in columns (default terminal width)")
	f.IntVar(&o.limit.Limit, "limit", 0, "print at most N items")
	f.IntVar(&o.limit.Offset, "offset", 0, "skip the first N items")
	f.IntVar(&o.limit.Tail, "tail", 0, "print the last N items (mutually exclusive with --limit; ignores --offset)")
	return cmd
}

func runSearch(cmd *cobra.Command, a *app, o *searchOptions, query string) error {
	format, err := formatter.ParseFormat(o.output)
	if err != nil {
		return err
	}
	if err := o.limit.Validate(); err != nil {
		return err
	}
	var pred *cel.Predicate
	if strings.TrimSpace(o.where) != "" {
		if pred, err = cel.NewPredicate(o.where); err != nil {
			return fmt.Errorf("--where: %w", err)
		}
	}

	c, err := a.loadCatalog(cmd.Context(), a.catalogSource(nil))
	if err != nil {
		return err
	}

	items, err := selectItems(c, query, pred, o.all, a.cfg.Search.MaxSuggestions)
	if err != nil {
		return err
	}
	items = limiter.Apply(o.limit, items)
	logger.FromContext(cmd.Context()).V(1).Info("search finished", "query", query, "printed", len(items))

	out := cmd.OutOrStdout()
	if len(items) == 0 {
		if format == formatter.FormatTable {
			fmt.Fprintln(out, noMatchesMessage)
			return nil
		}
		fmt.Fprintln(cmd.ErrOrStderr(), noMatchesMessage)
	}
	return formatter.Write(out, items, format, formatter.Options{
		Width:   o.width,
		NoColor: settings.RunFromContext(cmd.Context()).NoColor || stdoutIsPiped(),
	})
}

// selectItems runs the text match, then the predicate, then the display
// cap unless all is set.
func selectItems(c *catalog.Catalog, query string, pred *cel.Predicate, all bool, maxSuggestions int) ([]catalog.Item, error) {
	items := search.Filter(c, query).Items()
	if pred != nil {
		var err error
		if items, err = pred.Filter(items); err != nil {
			return nil, fmt.Errorf("--where: %w", err)
		}
	}
	if !all && maxSuggestions > 0 && len(items) > maxSuggestions {
		items = items[:maxSuggestions]
	}
	return items, nil
}
