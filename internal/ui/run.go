package ui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
)

// Run starts the interactive program and blocks until it exits or ctx is
// canceled.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running widget: %w", err)
	}
	return nil
}

// Snapshot renders a single frame without a terminal: it applies the
// startup keys, resolves any pending catalog load synchronously, and
// returns the screen text.
func Snapshot(m *Model, keys []string) string {
	if m.state.Loading && m.loader != nil {
		c, err := m.loader(m.ctx)
		m.Update(catalogLoadedMsg{catalog: c, err: err})
	}
	ApplyStartupKeys(m, keys)
	return m.Render()
}
