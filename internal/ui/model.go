package ui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/grdfind/internal/catalog"
	"github.com/oakwood-commons/grdfind/internal/clipboard"
	"github.com/oakwood-commons/grdfind/internal/widget"
)

// Copier puts text on the clipboard. *clipboard.Chain implements it.
type Copier interface {
	Copy(ctx context.Context, text, label string) clipboard.Result
}

// Loader fetches the catalog once at startup.
type Loader func(ctx context.Context) (*catalog.Catalog, error)

const (
	defaultNotifyDuration = 2 * time.Second
	defaultClockFormat    = "3:04:05 PM"
	defaultTitle          = "GRD Finder"
	inputPlaceholder      = "Search by GRD or description"
)

// Options configures a Model.
type Options struct {
	Title string
	// Catalog is used as-is when set; otherwise Loader runs from Init.
	Catalog *catalog.Catalog
	Loader  Loader
	Copier  Copier
	Theme   Theme

	MaxSuggestions int
	NotifyDuration time.Duration

	ClockLocation *time.Location
	ClockFormat   string
	Now           func() time.Time

	Context context.Context
	Logger  logr.Logger

	Width  int
	Height int
}

type flash struct {
	text   string
	failed bool
	id     int
}

// Model is the Bubble Tea shell around widget.State. It turns terminal
// messages into widget events and widget effects into commands.
type Model struct {
	state  widget.State
	input  textinput.Model
	keys   keyMap
	help   help.Model
	theme  Theme
	styles Styles
	title  string

	copier Copier
	loader Loader
	ctx    context.Context
	log    logr.Logger

	flash          flash
	notifyDuration time.Duration

	now         time.Time
	nowFn       func() time.Time
	clockLoc    *time.Location
	clockFormat string

	showHelp   bool
	width      int
	height     int
	listOffset int
}

// New builds a Model. Missing options fall back to defaults.
func New(opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	if opts.Copier == nil {
		opts.Copier = clipboard.Default().WithLogger(opts.Logger)
	}
	if opts.NotifyDuration <= 0 {
		opts.NotifyDuration = defaultNotifyDuration
	}
	if opts.ClockLocation == nil {
		opts.ClockLocation = time.Local
	}
	if opts.ClockFormat == "" {
		opts.ClockFormat = defaultClockFormat
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Title == "" {
		opts.Title = defaultTitle
	}

	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.CharLimit = 200
	ti.Prompt = ""
	ti.SetWidth(80)
	ti.Focus()

	h := help.New()
	if opts.Theme.NoColor {
		h.Styles = help.Styles{}
	}

	m := &Model{
		state:          widget.New(opts.MaxSuggestions),
		input:          ti,
		keys:           defaultKeyMap(),
		help:           h,
		theme:          opts.Theme,
		styles:         NewStyles(opts.Theme),
		title:          opts.Title,
		copier:         opts.Copier,
		loader:         opts.Loader,
		ctx:            opts.Context,
		log:            opts.Logger,
		notifyDuration: opts.NotifyDuration,
		nowFn:          opts.Now,
		now:            opts.Now(),
		clockLoc:       opts.ClockLocation,
		clockFormat:    opts.ClockFormat,
	}
	m.resize(opts.Width, opts.Height)

	switch {
	case opts.Catalog != nil:
		m.dispatch(widget.CatalogLoaded{Catalog: opts.Catalog})
	case opts.Loader == nil:
		m.dispatch(widget.CatalogLoaded{})
	}
	return m
}

// State returns the current widget state.
func (m *Model) State() widget.State { return m.state }

// Notification returns the visible notification text, if any.
func (m *Model) Notification() (text string, failed bool) {
	return m.flash.text, m.flash.failed
}

// InputValue is the text currently in the input box.
func (m *Model) InputValue() string { return m.input.Value() }

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, clockTick()}
	if m.state.Loading && m.loader != nil {
		cmds = append(cmds, loadCatalogCmd(m.ctx, m.loader))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case catalogLoadedMsg:
		if msg.err != nil {
			m.log.Error(msg.err, "catalog load failed")
		} else {
			m.log.Info("catalog ready", "items", msg.catalog.Len(), "source", msg.catalog.Source())
		}
		return m, m.dispatch(widget.CatalogLoaded{Catalog: msg.catalog, Err: msg.err})

	case copyResultMsg:
		return m, m.showResult(msg.result)

	case flashClearMsg:
		if msg.ID == m.flash.id {
			m.flash.text = ""
			m.flash.failed = false
		}
		return m, nil

	case clockTickMsg:
		m.now = time.Time(msg)
		return m, clockTick()

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return m, nil
		}
		return m, m.handleClick(msg.X, msg.Y)

	case tea.MouseMotionMsg:
		z := m.frame().hit(msg.X, msg.Y)
		if z.kind == zoneRow {
			return m, m.dispatch(widget.Hover{Row: z.row})
		}
		return m, nil
	}

	return m, m.updateInput(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return nil
	case key.Matches(msg, m.keys.Next):
		return m.dispatch(widget.KeyPressed{Key: widget.KeyDown})
	case key.Matches(msg, m.keys.Prev):
		return m.dispatch(widget.KeyPressed{Key: widget.KeyUp})
	case key.Matches(msg, m.keys.Commit):
		return m.dispatch(widget.KeyPressed{Key: widget.KeyEnter})
	case key.Matches(msg, m.keys.Clear):
		return m.dispatch(widget.KeyPressed{Key: widget.KeyEscape})
	}
	for _, c := range m.keys.Copy {
		if key.Matches(msg, c.binding) {
			return m.dispatch(widget.CopyField{Field: c.field})
		}
	}
	return m.updateInput(msg)
}

func (m *Model) handleClick(x, y int) tea.Cmd {
	z := m.frame().hit(x, y)
	switch z.kind {
	case zoneInput:
		return m.dispatch(widget.ClickInput{})
	case zoneRow:
		return m.dispatch(widget.ClickRow{Row: z.row})
	case zoneCopy:
		return m.dispatch(widget.CopyField{Field: z.field})
	case zoneList:
		return nil
	}
	return m.dispatch(widget.ClickOutside{})
}

// updateInput forwards msg to the text input and refilters when its text
// changed.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == m.state.Input {
		return cmd
	}
	return tea.Batch(cmd, m.dispatch(widget.InputChanged{Text: m.input.Value()}))
}

// dispatch runs the reducer and turns its effects into commands.
func (m *Model) dispatch(ev widget.Event) tea.Cmd {
	var effects []widget.Effect
	m.state, effects = widget.Reduce(m.state, ev)

	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff := eff.(type) {
		case widget.SetInput:
			m.input.SetValue(eff.Text)
			m.input.CursorEnd()
		case widget.Copy:
			m.log.V(1).Info("copy requested", "label", eff.Label)
			cmds = append(cmds, copyCmd(m.ctx, m.copier, eff.Text, eff.Label))
		}
	}
	m.syncScroll()
	return tea.Batch(cmds...)
}

// showResult replaces the notification and schedules its dismissal.
func (m *Model) showResult(res clipboard.Result) tea.Cmd {
	if res.Err != nil {
		m.log.Info("copy failed", "label", res.Label, "error", res.Err.Error())
	}
	m.flash.id++
	m.flash.text = res.Message()
	m.flash.failed = res.Err != nil
	return clearFlashAfter(m.flash.id, m.notifyDuration)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	if width > 0 {
		m.input.SetWidth(max(10, width-len(promptText)-1))
	}
	m.syncScroll()
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}
