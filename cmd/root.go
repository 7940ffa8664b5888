// Package cmd wires the grdfind command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/grdfind/internal/catalog"
	"github.com/oakwood-commons/grdfind/internal/clipboard"
	"github.com/oakwood-commons/grdfind/internal/config"
	"github.com/oakwood-commons/grdfind/internal/ui"
	"github.com/oakwood-commons/grdfind/pkg/logger"
	"github.com/oakwood-commons/grdfind/pkg/settings"
)

// globalOptions are the flags every command understands.
type globalOptions struct {
	configFile string
	catalog    string
	logFile    string
	logLevel   string
	noColor    bool
}

// widgetOptions are the flags of the interactive root command.
type widgetOptions struct {
	theme          string
	maxSuggestions int
	clockZone      string
	width          int
	height         int
	press          []string
	snapshot       bool
}

// app is the state resolved once per invocation in PersistentPreRunE.
type app struct {
	opts     globalOptions
	cfg      config.Config
	closeLog func() error
}

// catalogSource picks the catalog location: positional argument, then
// --catalog, then piped stdin, then catalog.source from the config.
func (a *app) catalogSource(args []string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0]
	}
	if a.opts.catalog != "" {
		return a.opts.catalog
	}
	if stdinIsPiped() {
		return "-"
	}
	if a.cfg.Catalog.Source != "" {
		return a.cfg.Catalog.Source
	}
	return catalog.DefaultSource
}

func (a *app) loadCatalog(ctx context.Context, source string) (*catalog.Catalog, error) {
	return catalog.Load(ctx, source,
		catalog.WithTimeout(a.cfg.Catalog.Timeout),
		catalog.WithLogger(*logger.FromContext(ctx)),
	)
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	wo := &widgetOptions{}

	root := &cobra.Command{
		Use:   settings.CliBinaryName + " [catalog]",
		Short: "Search a product catalog by GRD code or description",
		Long: `grdfind opens an interactive search box over a catalog of items.
Type to filter by GRD code or description, move with the arrow keys, and press
Enter to copy the GRD of the highlighted item. F2-F7 copy individual fields.

The catalog is a JSON, YAML or TOML document read from a file, an http(s) URL,
or standard input ("-").`,
		Example: "\n  grdfind\n  grdfind data/items.yaml\n  grdfind http://localhost:8000/items.json\n  cat items.json | grdfind\n  grdfind --snapshot --press 'ban<Down>'\n",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       versionString(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			interactive := cmd.Name() == settings.CliBinaryName && !wo.snapshot
			return a.setup(cmd, interactive)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			logger.Sync()
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWidget(cmd, a, wo, args)
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.configFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/grdfind/config.yaml)")
	pf.StringVarP(&a.opts.catalog, "catalog", "c", "", "catalog source: file path, http(s) URL, or - for stdin (default from config)")
	pf.StringVar(&a.opts.logFile, "log-file", "", "write JSON logs to this file (- for stderr)")
	pf.StringVar(&a.opts.logLevel, "log-level", "", "log level: debug|info|warn|error (default from config)")
	pf.BoolVar(&a.opts.noColor, "no-color", false, "disable color output")

	f := root.Flags()
	f.StringVar(&wo.theme, "theme", "", "theme name (default from config; see 'grdfind config themes')")
	f.IntVar(&wo.maxSuggestions, "max-suggestions", 0, "maximum suggestion rows (default from config)")
	f.StringVar(&wo.clockZone, "clock-zone", "", "IANA time zone for the footer clock (default from config)")
	f.IntVar(&wo.width, "width", 0, "force the screen width in columns")
	f.IntVar(&wo.height, "height", 0, "force the screen height in rows")
	f.StringArrayVar(&wo.press, "press", nil, "simulate keys on startup. Use <Key> for special keys (<Down>, <Enter>, <Esc>, <F2>); literal text types normally")
	f.BoolVar(&wo.snapshot, "snapshot", false, "render a single frame to stdout and exit; honors --width/--height and --press")

	root.AddCommand(
		newSearchCmd(a),
		newConvertCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and installs the logger. Interactive runs own
// the terminal, so they only log when a log file is configured.
func (a *app) setup(cmd *cobra.Command, interactive bool) error {
	cfg, err := config.Load(config.ResolvePath(a.opts.configFile))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.opts.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = a.opts.logFile
	}
	a.cfg = cfg

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logFile := cfg.Log.File
	if logFile == "" && !interactive {
		logFile = "stderr"
	}
	sink, closeLog, err := logger.OpenSink(logFile)
	if err != nil {
		return err
	}
	a.closeLog = closeLog

	lgr := logger.Setup(logger.Options{Level: level, Output: sink})
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

	run := settings.NewCliParams()
	run.NoColor = a.opts.noColor
	run.Interactive = interactive
	lgr.V(1).Info("run configured", "interactive", interactive, "logFile", logFile, "level", level)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)
	ctx = settings.IntoContext(ctx, run)
	cmd.SetContext(ctx)
	return nil
}

// applyWidgetFlags overlays the root command flags onto the config.
func applyWidgetFlags(flags *pflag.FlagSet, cfg *config.Config, wo *widgetOptions) error {
	if flags.Changed("theme") {
		cfg.Theme.Default = wo.theme
	}
	if flags.Changed("max-suggestions") {
		cfg.Search.MaxSuggestions = wo.maxSuggestions
	}
	if flags.Changed("clock-zone") {
		cfg.Clock.Zone = wo.clockZone
	}
	return cfg.Validate()
}

func runWidget(cmd *cobra.Command, a *app, wo *widgetOptions, args []string) error {
	cfg := a.cfg
	if err := applyWidgetFlags(cmd.Flags(), &cfg, wo); err != nil {
		return err
	}
	ctx := cmd.Context()
	run := settings.RunFromContext(ctx)
	log := *logger.FromContext(ctx)

	theme := ui.NoColorTheme()
	if !run.NoColor {
		tc, err := cfg.ThemeByName(cfg.Theme.Default)
		if err != nil {
			return err
		}
		theme = ui.ThemeFromConfig(tc)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	source := a.catalogSource(args)
	log.V(1).Info("starting widget", "source", source, "interactive", run.Interactive)

	opts := ui.Options{
		Loader: func(ctx context.Context) (*catalog.Catalog, error) {
			return a.loadCatalog(ctx, source)
		},
		Copier:         clipboard.Default().WithLogger(log),
		Theme:          theme,
		MaxSuggestions: cfg.Search.MaxSuggestions,
		NotifyDuration: cfg.Notification.Duration,
		ClockLocation:  loc,
		ClockFormat:    cfg.Clock.Format,
		Context:        ctx,
		Logger:         log,
		Width:          wo.width,
		Height:         wo.height,
	}

	if !run.Interactive {
		size := resolveSnapshotSize(wo.width, wo.height, 0, 0)
		opts.Width, opts.Height = size.Width, size.Height
		fmt.Fprintln(cmd.OutOrStdout(), ui.Snapshot(ui.New(opts), wo.press))
		return nil
	}

	m := ui.New(opts)
	ui.ApplyStartupKeys(m, wo.press)
	progOpts, cleanup := getProgramOptions(ctx, source == "-")
	defer cleanup()
	return ui.Run(ctx, m, progOpts...)
}

// Execute runs the root command with a context canceled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := NewRootCmd().ExecuteContext(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
