package tui

import (
	"strings"
	"time"

	"github.com/oakwood-commons/grdfind/internal/config"
	"github.com/oakwood-commons/grdfind/internal/ui"
)

// Config holds host-provided settings for running the widget.
type Config struct {
	Title          string
	Width          int
	Height         int
	NoColor        bool
	ThemeName      string // Built-in theme by name (dark, light, mono); empty uses the default
	MaxSuggestions int    // Suggestion rows (default 8)
	NotifyDuration time.Duration
	ClockLocation  *time.Location
	ClockFormat    string // Go time layout for the footer clock
	StartKeys      []string
	// Copier replaces the system clipboard (tests, remote sessions).
	Copier ui.Copier
	// Source is shown next to the title.
	Source string
}

// DefaultConfig returns a baseline config with the same defaults as the CLI.
func DefaultConfig() Config {
	cfg, err := config.Default()
	if err != nil {
		return Config{}
	}
	loc, _ := cfg.Location()
	return Config{
		ThemeName:      cfg.Theme.Default,
		MaxSuggestions: cfg.Search.MaxSuggestions,
		NotifyDuration: cfg.Notification.Duration,
		ClockLocation:  loc,
		ClockFormat:    cfg.Clock.Format,
	}
}

// theme resolves ThemeName against the built-in palettes. Unknown names
// fall back to the default theme.
func (c Config) theme() ui.Theme {
	if c.NoColor {
		return ui.NoColorTheme()
	}
	cfg, err := config.Default()
	if err != nil {
		return ui.NoColorTheme()
	}
	tc, err := cfg.ThemeByName(strings.TrimSpace(c.ThemeName))
	if err != nil {
		tc, _ = cfg.ThemeByName("")
	}
	return ui.ThemeFromConfig(tc)
}
