// Package config holds grdfind settings: an embedded default document,
// optionally overlaid by a user YAML file.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/grdfind/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     Config
	embeddedConfigErr  error
)

// Config is the merged configuration.
type Config struct {
	Catalog      CatalogConfig          `yaml:"catalog"`
	Search       SearchConfig           `yaml:"search"`
	Notification NotificationConfig     `yaml:"notification"`
	Clock        ClockConfig            `yaml:"clock"`
	Log          LogConfig              `yaml:"log"`
	Serve        ServeConfig            `yaml:"serve"`
	Theme        ThemeSelection         `yaml:"theme"`
	Themes       map[string]ThemeConfig `yaml:"themes"`
}

type CatalogConfig struct {
	Source  string        `yaml:"source"`
	Timeout time.Duration `yaml:"timeout"`
}

type SearchConfig struct {
	MaxSuggestions int `yaml:"max_suggestions"`
}

type NotificationConfig struct {
	Duration time.Duration `yaml:"duration"`
}

// ClockConfig controls the footer clock. Format is a Go time layout.
type ClockConfig struct {
	Zone   string `yaml:"zone"`
	Format string `yaml:"format"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type ServeConfig struct {
	Addr string `yaml:"addr"`
}

type ThemeSelection struct {
	Default string `yaml:"default"`
}

// ColorValue stores a color token (ANSI number or hex) and marshals numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

// ThemeConfig is a YAML-friendly palette.
type ThemeConfig struct {
	Accent      ColorValue `yaml:"accent"`
	Text        ColorValue `yaml:"text"`
	Muted       ColorValue `yaml:"muted"`
	SelectedFG  ColorValue `yaml:"selected_fg"`
	SelectedBG  ColorValue `yaml:"selected_bg"`
	Border      ColorValue `yaml:"border"`
	Success     ColorValue `yaml:"success"`
	Error       ColorValue `yaml:"error"`
	Glow        ColorValue `yaml:"glow"`
	BorderStyle string     `yaml:"border_style"`
}

// fillFrom copies every color t leaves empty from base.
func (t ThemeConfig) fillFrom(base ThemeConfig) ThemeConfig {
	fill := func(dst *ColorValue, src ColorValue) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&t.Accent, base.Accent)
	fill(&t.Text, base.Text)
	fill(&t.Muted, base.Muted)
	fill(&t.SelectedFG, base.SelectedFG)
	fill(&t.SelectedBG, base.SelectedBG)
	fill(&t.Border, base.Border)
	fill(&t.Success, base.Success)
	fill(&t.Error, base.Error)
	fill(&t.Glow, base.Glow)
	if t.BorderStyle == "" {
		t.BorderStyle = base.BorderStyle
	}
	return t
}

// DefaultYAML returns a copy of the embedded default config document.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses the embedded default configuration.
func Default() (Config, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embeddedConfig); err != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", err)
			return
		}
		if embeddedConfig.Theme.Default == "" || len(embeddedConfig.Themes) == 0 {
			embeddedConfigErr = fmt.Errorf("default config is missing required theme defaults")
		}
	})
	return embeddedConfig.clone(), embeddedConfigErr
}

func (c Config) clone() Config {
	themes := make(map[string]ThemeConfig, len(c.Themes))
	for name, th := range c.Themes {
		themes[name] = th
	}
	c.Themes = themes
	return c
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults. User themes inherit unset colors from the
// default theme.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return overlay(cfg, data, path)
}

func overlay(cfg Config, data []byte, name string) (Config, error) {
	base := cfg.Themes[cfg.Theme.Default]
	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", name, err)
	}
	// yaml replaces map values wholesale, so partial user themes are
	// completed from the built-in default palette.
	themes := make(map[string]ThemeConfig, len(cfg.Themes))
	defaults, _ := Default()
	for n, th := range cfg.Themes {
		if _, isUser := user.Themes[n]; isUser {
			if builtin, ok := defaults.Themes[n]; ok {
				th = th.fillFrom(builtin)
			}
			th = th.fillFrom(base)
		}
		themes[n] = th
	}
	cfg.Themes = themes
	return cfg, cfg.Validate()
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if c.Search.MaxSuggestions < 1 {
		return fmt.Errorf("search.max_suggestions must be at least 1, got %d", c.Search.MaxSuggestions)
	}
	if c.Notification.Duration <= 0 {
		return fmt.Errorf("notification.duration must be positive")
	}
	if c.Catalog.Timeout < 0 {
		return fmt.Errorf("catalog.timeout must not be negative")
	}
	if _, ok := c.Themes[c.Theme.Default]; !ok {
		return fmt.Errorf("theme.default %q is not defined (available: %s)", c.Theme.Default, strings.Join(c.ThemeNames(), ", "))
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// ThemeNames returns the configured theme names, sorted.
func (c Config) ThemeNames() []string {
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName looks up a palette; an empty name selects theme.default.
func (c Config) ThemeByName(name string) (ThemeConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.Theme.Default
	}
	th, ok := c.Themes[name]
	if !ok {
		return ThemeConfig{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(c.ThemeNames(), ", "))
	}
	return th, nil
}

// Location resolves clock.zone. Empty and "Local" mean the host zone.
func (c Config) Location() (*time.Location, error) {
	zone := strings.TrimSpace(c.Clock.Zone)
	if zone == "" || strings.EqualFold(zone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("clock.zone %q: %w", zone, err)
	}
	return loc, nil
}

// YAML renders the config as YAML.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// JSON renders the config as indented JSON with the same keys as YAML.
func (c Config) JSON() ([]byte, error) {
	data, err := c.YAML()
	if err != nil {
		return nil, err
	}
	var generic map[string]any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return json.MarshalIndent(generic, "", "  ")
}

// ResolvePath returns explicit when set, otherwise the per-user config file
// if it exists, otherwise "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
