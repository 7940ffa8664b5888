package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys feeds simulated key presses into m. Tokens mix <Key>
// names (<Down>, <Enter>, <Esc>, <F2>) with literal text; a leading
// backslash makes the whole token literal. Commands produced by the
// presses are returned so the caller can run or inspect them.
func ApplyStartupKeys(m *Model, keys []string) []tea.Cmd {
	if len(keys) == 0 || m == nil {
		return nil
	}
	var cmds []tea.Cmd
	send := func(msg tea.KeyPressMsg) {
		if _, cmd := m.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	for _, raw := range keys {
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, `\`) {
			for _, r := range strings.TrimPrefix(raw, `\`) {
				send(tea.KeyPressMsg{Code: r, Text: string(r)})
			}
			continue
		}
		for _, seg := range parseTokenSegments(raw) {
			if !seg.isKey {
				for _, r := range seg.text {
					send(tea.KeyPressMsg{Code: r, Text: string(r)})
				}
				continue
			}
			if msg, ok := keyMsgFromToken(seg.text); ok {
				send(msg)
			}
		}
	}
	return cmds
}

type tokenSegment struct {
	text  string
	isKey bool
}

// parseTokenSegments splits "<Down>ban<Enter>" into key and text segments.
// An unmatched "<" is literal.
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token
	for len(remaining) > 0 {
		start := strings.Index(remaining, "<")
		if start == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if start > 0 {
			segments = append(segments, tokenSegment{text: remaining[:start]})
		}
		end := strings.Index(remaining[start:], ">")
		if end == -1 {
			segments = append(segments, tokenSegment{text: remaining[start:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[start : start+end+1], isKey: true})
		remaining = remaining[start+end+1:]
	}
	return segments
}

var namedKeys = map[string]tea.KeyPressMsg{
	"esc":       {Code: tea.KeyEscape},
	"escape":    {Code: tea.KeyEscape},
	"cr":        {Code: tea.KeyEnter},
	"enter":     {Code: tea.KeyEnter},
	"return":    {Code: tea.KeyEnter},
	"tab":       {Code: tea.KeyTab},
	"space":     {Code: ' ', Text: " "},
	"bs":        {Code: tea.KeyBackspace},
	"backspace": {Code: tea.KeyBackspace},
	"left":      {Code: tea.KeyLeft},
	"right":     {Code: tea.KeyRight},
	"up":        {Code: tea.KeyUp},
	"down":      {Code: tea.KeyDown},
	"home":      {Code: tea.KeyHome},
	"end":       {Code: tea.KeyEnd},
	"f1":        {Code: tea.KeyF1},
	"f2":        {Code: tea.KeyF2},
	"f3":        {Code: tea.KeyF3},
	"f4":        {Code: tea.KeyF4},
	"f5":        {Code: tea.KeyF5},
	"f6":        {Code: tea.KeyF6},
	"f7":        {Code: tea.KeyF7},
	"c-c":       {Code: 'c', Mod: tea.ModCtrl},
}

// keyMsgFromToken parses a "<Name>" token into a key press.
func keyMsgFromToken(token string) (tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return tea.KeyPressMsg{}, false
	}
	inner := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))
	msg, ok := namedKeys[inner]
	return msg, ok
}
