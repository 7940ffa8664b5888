package ui

import (
	"charm.land/bubbles/v2/key"

	"github.com/oakwood-commons/grdfind/internal/widget"
)

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Commit key.Binding
	Clear  key.Binding
	Help   key.Binding
	Quit   key.Binding
	Copy   []copyBinding
}

type copyBinding struct {
	field   widget.Field
	binding key.Binding
}

func defaultKeyMap() keyMap {
	km := keyMap{
		Next:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Prev:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy GRD")),
		Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Help:   key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
	fkeys := []string{"f2", "f3", "f4", "f5", "f6", "f7"}
	for i, f := range widget.Fields() {
		km.Copy = append(km.Copy, copyBinding{
			field: f,
			binding: key.NewBinding(
				key.WithKeys(fkeys[i]),
				key.WithHelp("F"+fkeys[i][1:], "copy "+f.Label()),
			),
		})
	}
	return km
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Commit, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	copies := make([]key.Binding, 0, len(k.Copy))
	for _, c := range k.Copy {
		copies = append(copies, c.binding)
	}
	return [][]key.Binding{
		{k.Next, k.Prev, k.Commit, k.Clear},
		copies,
		{k.Help, k.Quit},
	}
}
