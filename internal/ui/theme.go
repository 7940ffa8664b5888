package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/grdfind/internal/config"
)

// Theme is the widget palette. A theme with NoColor set renders plain text.
type Theme struct {
	Accent      color.Color
	Text        color.Color
	Muted       color.Color
	SelectedFG  color.Color
	SelectedBG  color.Color
	Border      color.Color
	Success     color.Color
	Error       color.Color
	Glow        color.Color
	BorderStyle string
	NoColor     bool
}

// ThemeFromConfig builds a Theme from its YAML form. Empty colors stay nil.
func ThemeFromConfig(cfg config.ThemeConfig) Theme {
	set := func(val config.ColorValue) color.Color {
		if val == "" {
			return nil
		}
		return lipgloss.Color(string(val))
	}
	return Theme{
		Accent:      set(cfg.Accent),
		Text:        set(cfg.Text),
		Muted:       set(cfg.Muted),
		SelectedFG:  set(cfg.SelectedFG),
		SelectedBG:  set(cfg.SelectedBG),
		Border:      set(cfg.Border),
		Success:     set(cfg.Success),
		Error:       set(cfg.Error),
		Glow:        set(cfg.Glow),
		BorderStyle: normalizeBorderStyle(cfg.BorderStyle),
	}
}

// NoColorTheme renders without any styling.
func NoColorTheme() Theme {
	return Theme{NoColor: true, BorderStyle: "normal"}
}

func normalizeBorderStyle(val string) string {
	switch strings.TrimSpace(strings.ToLower(val)) {
	case "rounded", "round":
		return "rounded"
	default:
		return "normal"
	}
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Glow     lipgloss.Style
	Prompt   lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Copy     lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style
	Rule     lipgloss.Style
}

// NewStyles derives styles from th.
func NewStyles(th Theme) Styles {
	if th.NoColor {
		return Styles{}
	}
	fg := func(c color.Color) lipgloss.Style {
		s := lipgloss.NewStyle()
		if c != nil {
			s = s.Foreground(c)
		}
		return s
	}
	selected := fg(th.SelectedFG).Bold(true)
	if th.SelectedBG != nil {
		selected = selected.Background(th.SelectedBG)
	}
	return Styles{
		Title:    fg(th.Accent).Bold(true),
		Glow:     fg(th.Glow),
		Prompt:   fg(th.Accent),
		Row:      fg(th.Text),
		Selected: selected,
		Muted:    fg(th.Muted),
		Label:    fg(th.Accent),
		Value:    fg(th.Text),
		Copy:     fg(th.Muted),
		Success:  fg(th.Success).Bold(true),
		Failure:  fg(th.Error).Bold(true),
		Rule:     fg(th.Border),
	}
}

// ruleChar is the glyph used for horizontal rules in the given border style.
func ruleChar(borderStyle string) string {
	if borderStyle == "rounded" {
		return "─"
	}
	return "-"
}
