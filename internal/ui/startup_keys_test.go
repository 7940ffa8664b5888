package ui

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/grdfind/internal/catalog"
)

func TestParseTokenSegments(t *testing.T) {
	segs := parseTokenSegments("<Down>ban<Enter>")
	require.Len(t, segs, 3)
	assert.Equal(t, tokenSegment{text: "<Down>", isKey: true}, segs[0])
	assert.Equal(t, tokenSegment{text: "ban"}, segs[1])
	assert.Equal(t, tokenSegment{text: "<Enter>", isKey: true}, segs[2])

	segs = parseTokenSegments("a<b")
	assert.Equal(t, []tokenSegment{{text: "a"}, {text: "<b"}}, segs)
}

func TestKeyMsgFromToken(t *testing.T) {
	msg, ok := keyMsgFromToken("<DOWN>")
	require.True(t, ok)
	assert.Equal(t, tea.KeyDown, msg.Code)

	msg, ok = keyMsgFromToken("<c-c>")
	require.True(t, ok)
	assert.Equal(t, tea.ModCtrl, msg.Mod)

	_, ok = keyMsgFromToken("<nope>")
	assert.False(t, ok)
	_, ok = keyMsgFromToken("down")
	assert.False(t, ok)
}

func TestApplyStartupKeys(t *testing.T) {
	copier := &recordingCopier{}
	m := newTestModel(t, copier)

	cmds := ApplyStartupKeys(m, []string{"a<Down><Down>"})
	assert.NotEmpty(t, cmds)
	assert.Equal(t, "a", m.InputValue())
	assert.Equal(t, 2, m.State().Selection.Index())

	for _, c := range ApplyStartupKeys(m, []string{"<Enter>"}) {
		runCmd(t, m, c)
	}
	assert.Equal(t, "A3 - Avocado", m.InputValue())
	assert.Equal(t, []string{"GRD=A3"}, copier.copies)
}

func TestApplyStartupKeysLiteral(t *testing.T) {
	m := newTestModel(t, nil)
	ApplyStartupKeys(m, []string{`\<Down>`})
	assert.Equal(t, "<Down>", m.InputValue())
	assert.Nil(t, ApplyStartupKeys(nil, []string{"x"}))
}

func TestSnapshot(t *testing.T) {
	m := New(Options{
		Loader: func(ctx context.Context) (*catalog.Catalog, error) { return fruitCatalog(), nil },
		Copier: &recordingCopier{},
		Theme:  NoColorTheme(),
		Now:    func() time.Time { return fixedNow },
		Width:  60,
		Height: 20,
	})
	out := Snapshot(m, []string{"av"})
	assert.Contains(t, out, "GRD Finder")
	assert.Contains(t, out, "Search: ")
	assert.Equal(t, "av", m.InputValue())
	assert.Contains(t, out, "▸ A3 - Avocado")
	assert.Contains(t, out, "ripe")
	assert.NotContains(t, out, "Banana")
}
