package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/grdfind/internal/catalog"
	"github.com/oakwood-commons/grdfind/internal/clipboard"
	"github.com/oakwood-commons/grdfind/internal/widget"
)

type recordingCopier struct {
	mu     sync.Mutex
	err    error
	copies []string
}

func (r *recordingCopier) Copy(_ context.Context, text, label string) clipboard.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.copies = append(r.copies, label+"="+text)
	res := clipboard.Result{Label: label, Text: text}
	if r.err != nil {
		res.Err = fmt.Errorf("%w: %w", clipboard.ErrCopyFailed, r.err)
	}
	return res
}

var fixedNow = time.Date(2026, 10, 17, 14, 5, 9, 0, time.UTC)

func fruitCatalog() *catalog.Catalog {
	return catalog.New("items.json", []catalog.Item{
		{GRD: "A1", Description: "Apple", PriceKg: catalog.Price(3.5), Category: "Fruit"},
		{GRD: "B2", Description: "Banana", PriceLb: catalog.Price(0.59)},
		{GRD: "A3", Description: "Avocado", Notes: "ripe"},
	})
}

func newTestModel(t *testing.T, copier Copier) *Model {
	t.Helper()
	if copier == nil {
		copier = &recordingCopier{}
	}
	return New(Options{
		Catalog:       fruitCatalog(),
		Copier:        copier,
		Theme:         NoColorTheme(),
		ClockLocation: time.UTC,
		Now:           func() time.Time { return fixedNow },
		Width:         80,
		Height:        30,
	})
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func pressKey(m *Model, code rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

// runCmd executes cmd and feeds every resulting message (through batches)
// back into m, skipping timers.
func runCmd(t *testing.T, m *Model, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, runCmd(t, m, c)...)
		}
	case copyResultMsg, catalogLoadedMsg:
		out = append(out, msg)
		m.Update(msg)
	default:
		out = append(out, msg)
	}
	return out
}

func TestTypingFiltersAndPreviewsFirstMatch(t *testing.T) {
	m := newTestModel(t, nil)
	typeText(m, "a")

	s := m.State()
	assert.Equal(t, "a", s.Query)
	assert.Equal(t, 0, s.Selection.Index())
	require.NotNil(t, s.Detail)
	assert.Equal(t, "A1", s.Detail.GRD)

	out := m.Render()
	assert.Contains(t, out, "▸ A1 - Apple")
	assert.Contains(t, out, "  B2 - Banana")
	assert.Contains(t, out, "  A3 - Avocado")
	assert.Contains(t, out, "$3.50")
}

func TestArrowNavigationAndEnterCommit(t *testing.T) {
	copier := &recordingCopier{}
	m := newTestModel(t, copier)
	typeText(m, "a")

	assert.Nil(t, runCmd(t, m, pressKey(m, tea.KeyDown)))
	assert.Equal(t, 1, m.State().Selection.Index())
	assert.Equal(t, "Banana", m.State().Detail.Description)

	runCmd(t, m, pressKey(m, tea.KeyEnter))
	assert.Equal(t, []string{"GRD=B2"}, copier.copies)
	assert.Equal(t, "B2 - Banana", m.InputValue())
	assert.False(t, m.State().Open)

	text, failed := m.Notification()
	assert.Equal(t, "GRD copied to clipboard!", text)
	assert.False(t, failed)
	assert.NotContains(t, m.Render(), "▸")
}

func TestEscapeClears(t *testing.T) {
	m := newTestModel(t, nil)
	typeText(m, "ban")
	require.NotNil(t, m.State().Detail)

	pressKey(m, tea.KeyEscape)
	assert.Equal(t, "", m.InputValue())
	assert.Nil(t, m.State().Detail)
	assert.False(t, m.State().Open)
}

func TestBackspaceToEmptyResets(t *testing.T) {
	m := newTestModel(t, nil)
	typeText(m, "b")
	require.True(t, m.State().Open)

	pressKey(m, tea.KeyBackspace)
	assert.Equal(t, "", m.InputValue())
	assert.Equal(t, -1, m.State().Selection.Index())
	assert.Nil(t, m.State().Detail)
}

func TestNoMatchesRow(t *testing.T) {
	m := newTestModel(t, nil)
	typeText(m, "zzz")
	assert.Contains(t, m.Render(), "No matching items found.")

	assert.Nil(t, pressKey(m, tea.KeyEnter))
}

func TestCopyFailureNotificationAndDismiss(t *testing.T) {
	copier := &recordingCopier{err: errors.New("clipboard unavailable")}
	m := newTestModel(t, copier)
	typeText(m, "a")
	pressKey(m, tea.KeyDown)

	msgs := runCmd(t, m, pressKey(m, tea.KeyEnter))
	require.Len(t, msgs, 1)
	res := msgs[0].(copyResultMsg).result
	assert.ErrorIs(t, res.Err, clipboard.ErrCopyFailed)

	text, failed := m.Notification()
	assert.Equal(t, "Failed to copy GRD!", text)
	assert.True(t, failed)
	assert.Contains(t, m.Render(), "Failed to copy GRD!")

	m.Update(flashClearMsg{ID: m.flash.id})
	text, _ = m.Notification()
	assert.Equal(t, "", text)
	assert.Equal(t, "B2 - Banana", m.InputValue(), "input is unaffected by copy failure")
}

func TestStaleFlashTimerIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(copyResultMsg{result: clipboard.Result{Label: "GRD"}})
	first := m.flash.id
	m.Update(copyResultMsg{result: clipboard.Result{Label: "Notes"}})

	m.Update(flashClearMsg{ID: first})
	text, _ := m.Notification()
	assert.Equal(t, "Notes copied to clipboard!", text)
}

func TestCopyFieldKeys(t *testing.T) {
	copier := &recordingCopier{}
	m := newTestModel(t, copier)
	typeText(m, "a")

	runCmd(t, m, pressKey(m, tea.KeyF3))
	runCmd(t, m, pressKey(m, tea.KeyF4))
	runCmd(t, m, pressKey(m, tea.KeyF7))
	assert.Equal(t, []string{"Description=Apple", "Price/kg=$3.50", "Notes=-"}, copier.copies)
}

func TestMouseHoverAndClick(t *testing.T) {
	copier := &recordingCopier{}
	m := newTestModel(t, copier)
	typeText(m, "a")
	f := m.frame()

	m.Update(tea.MouseMotionMsg{X: 5, Y: f.listTop + 2})
	assert.Equal(t, 2, m.State().Selection.Index())
	assert.Equal(t, "A3", m.State().Detail.GRD)
	assert.Empty(t, copier.copies, "hover never copies")

	runCmd(t, m, func() tea.Cmd {
		_, cmd := m.Update(tea.MouseClickMsg{X: 5, Y: f.listTop + 1, Button: tea.MouseLeft})
		return cmd
	}())
	assert.Equal(t, []string{"GRD=B2"}, copier.copies)
	assert.Equal(t, "B2 - Banana", m.InputValue())
	assert.False(t, m.State().Open)
}

func TestHoverOnScrolledListStaysPut(t *testing.T) {
	items := make([]catalog.Item, 8)
	for i := range items {
		items[i] = catalog.Item{GRD: fmt.Sprintf("G%d", i), Description: "Grape"}
	}
	m := New(Options{
		Catalog: catalog.New("items.json", items),
		Copier:  &recordingCopier{},
		Theme:   NoColorTheme(),
		Now:     func() time.Time { return fixedNow },
		Width:   80,
		Height:  16,
	})
	require.Equal(t, 3, m.listCapacity())
	typeText(m, "g")

	pressKey(m, tea.KeyUp)
	require.Equal(t, 7, m.State().Selection.Index())
	require.Equal(t, 5, m.listOffset)

	top := m.frame().listTop
	for range 4 {
		m.Update(tea.MouseMotionMsg{X: 5, Y: top})
		assert.Equal(t, 5, m.State().Selection.Index())
		assert.Equal(t, 5, m.listOffset)
		assert.Equal(t, "G5", m.State().Detail.GRD)
	}

	pressKey(m, tea.KeyDown)
	assert.Equal(t, 6, m.State().Selection.Index())
	assert.Equal(t, 5, m.listOffset, "moving within the window does not scroll")

	m.Update(tea.MouseMotionMsg{X: 5, Y: top + 2})
	assert.Equal(t, 7, m.State().Selection.Index())
	assert.Contains(t, m.Render(), "▸ G7 - Grape")
}

func TestMouseClickInputResets(t *testing.T) {
	m := newTestModel(t, nil)
	typeText(m, "a")

	m.Update(tea.MouseClickMsg{X: 10, Y: m.frame().inputLine, Button: tea.MouseLeft})
	assert.Equal(t, "", m.InputValue())
	assert.Nil(t, m.State().Detail)
}

func TestMouseClickOutsideClosesList(t *testing.T) {
	m := newTestModel(t, nil)
	typeText(m, "a")
	f := m.frame()

	m.Update(tea.MouseClickMsg{X: 40, Y: len(f.lines) - 1, Button: tea.MouseLeft})
	assert.False(t, m.State().Open)
	assert.Equal(t, "a", m.InputValue())
	assert.Equal(t, "A1", m.State().Detail.GRD)
}

func TestMouseClickCopyTarget(t *testing.T) {
	copier := &recordingCopier{}
	m := newTestModel(t, copier)
	typeText(m, "a")
	f := m.frame()

	runCmd(t, m, func() tea.Cmd {
		_, cmd := m.Update(tea.MouseClickMsg{X: 2, Y: f.detailTop + int(widget.FieldCategory), Button: tea.MouseLeft})
		return cmd
	}())
	assert.Equal(t, []string{"Category=Fruit"}, copier.copies)
	assert.True(t, m.State().Open, "copy targets do not close the list")
}

func TestRightClickIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	typeText(m, "a")
	m.Update(tea.MouseClickMsg{X: 5, Y: m.frame().listTop, Button: tea.MouseRight})
	assert.True(t, m.State().Open)
}

func TestLoaderFailureShowsError(t *testing.T) {
	m := New(Options{
		Loader: func(context.Context) (*catalog.Catalog, error) {
			return nil, fmt.Errorf("%w: items.json: no such file", catalog.ErrFetchFailed)
		},
		Copier: &recordingCopier{},
		Theme:  NoColorTheme(),
		Now:    func() time.Time { return fixedNow },
	})
	require.True(t, m.State().Loading)

	msgs := runCmd(t, m, loadCatalogCmd(context.Background(), m.loader))
	require.Len(t, msgs, 1)

	out := m.Render()
	assert.Contains(t, out, "Error loading items.")
	assert.Contains(t, out, "no such file")

	typeText(m, "a")
	assert.Equal(t, 0, m.State().Matches.Len())
	out = m.Render()
	assert.Contains(t, out, "No matching items found.")
	assert.Contains(t, strings.SplitN(out, "\n", 2)[0], "Error loading items.")
}

func TestClockTick(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Contains(t, m.Render(), "2:05:09 PM")

	_, cmd := m.Update(clockTickMsg(fixedNow.Add(time.Minute)))
	assert.NotNil(t, cmd)
	assert.Contains(t, m.Render(), "2:06:09 PM")
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, nil)
	short := m.Render()
	pressKey(m, tea.KeyF1)
	full := m.Render()
	assert.Greater(t, strings.Count(full, "\n"), strings.Count(short, "\n"))
	assert.Contains(t, full, "copy Price/lb")
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestViewUsesAltScreenAndMouse(t *testing.T) {
	v := newTestModel(t, nil).View()
	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeAllMotion, v.MouseMode)
}
