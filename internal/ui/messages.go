package ui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/grdfind/internal/catalog"
	"github.com/oakwood-commons/grdfind/internal/clipboard"
)

// catalogLoadedMsg carries the result of the startup load.
type catalogLoadedMsg struct {
	catalog *catalog.Catalog
	err     error
}

// copyResultMsg carries the outcome of a clipboard copy.
type copyResultMsg struct {
	result clipboard.Result
}

// flashClearMsg dismisses the notification with the matching id. Older
// timers carry older ids and are ignored.
type flashClearMsg struct {
	ID int
}

// clockTickMsg refreshes the footer clock.
type clockTickMsg time.Time

func loadCatalogCmd(ctx context.Context, load Loader) tea.Cmd {
	return func() tea.Msg {
		c, err := load(ctx)
		return catalogLoadedMsg{catalog: c, err: err}
	}
}

func copyCmd(ctx context.Context, c Copier, text, label string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{result: c.Copy(ctx, text, label)}
	}
}

// clearFlashAfter returns a tea.Cmd that clears the flash message after a delay.
func clearFlashAfter(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return flashClearMsg{ID: id}
	})
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
