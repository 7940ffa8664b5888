// Package tui embeds the grdfind search widget in other programs.
package tui

import (
	"context"
	"io"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/grdfind/internal/catalog"
	"github.com/oakwood-commons/grdfind/internal/ui"
)

// Item is one catalog entry.
type Item = catalog.Item

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 120

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS and LINES
// environment variables. Unknown dimensions come back as (120, 24).
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	width, height = defaultFallbackTermWidth, 24
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		width = w
	}
	if h, err := strconv.Atoi(os.Getenv("LINES")); err == nil && h > 0 {
		height = h
	}
	return width, height
}

func newModel(ctx context.Context, items []Item, cfg Config) *ui.Model {
	return ui.New(ui.Options{
		Title:          cfg.Title,
		Catalog:        catalog.New(cfg.Source, items),
		Copier:         cfg.Copier,
		Theme:          cfg.theme(),
		MaxSuggestions: cfg.MaxSuggestions,
		NotifyDuration: cfg.NotifyDuration,
		ClockLocation:  cfg.ClockLocation,
		ClockFormat:    cfg.ClockFormat,
		Context:        ctx,
		Width:          cfg.Width,
		Height:         cfg.Height,
	})
}

// Run shows the widget over items until the user quits or ctx is canceled.
// Host applications can pass tea.ProgramOption values to control IO.
func Run(ctx context.Context, items []Item, cfg Config, opts ...tea.ProgramOption) error {
	m := newModel(ctx, items, cfg)
	ui.ApplyStartupKeys(m, cfg.StartKeys)
	return ui.Run(ctx, m, opts...)
}

// RenderSnapshot renders one screen after applying cfg.StartKeys. Zero
// Width or Height uses the detected terminal size.
func RenderSnapshot(items []Item, cfg Config) string {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		w, h := DetectTerminalSize()
		if cfg.Width <= 0 {
			cfg.Width = w
		}
		if cfg.Height <= 0 {
			cfg.Height = h
		}
	}
	return ui.Snapshot(newModel(context.Background(), items, cfg), cfg.StartKeys)
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
