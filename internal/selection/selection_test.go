package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdle(t *testing.T) {
	m := Idle()
	assert.Equal(t, -1, m.Index())
	assert.Equal(t, 0, m.Count())
	assert.False(t, m.Active())

	var zero Machine
	assert.Equal(t, -1, zero.Index(), "zero value reads as idle")
}

func TestQueryChanged(t *testing.T) {
	m := Idle().QueryChanged(3)
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, 3, m.Count())
	assert.True(t, m.Active())

	m = m.Down().QueryChanged(5)
	assert.Equal(t, 0, m.Index(), "refilter always highlights the first row")

	m = m.QueryChanged(0)
	assert.Equal(t, Idle(), m)
}

func TestWrapAround(t *testing.T) {
	m := Idle().QueryChanged(3).Down().Down()
	assert.Equal(t, 2, m.Index())
	assert.Equal(t, 0, m.Down().Index())

	m = Idle().QueryChanged(3)
	assert.Equal(t, 2, m.Up().Index())
	assert.Equal(t, 1, m.Up().Up().Index())
}

func TestArrowsWithoutRows(t *testing.T) {
	m := Idle()
	assert.Equal(t, m, m.Down())
	assert.Equal(t, m, m.Up())
}

func TestArrowsFromUnhighlighted(t *testing.T) {
	m := Machine{index: -1, count: 4}
	assert.Equal(t, 0, m.Down().Index())
	assert.Equal(t, 3, m.Up().Index())
}

func TestHover(t *testing.T) {
	m := Idle().QueryChanged(4)
	assert.Equal(t, 3, m.Hover(3).Index())
	assert.Equal(t, 4, m.Hover(3).Count())
	assert.Equal(t, 0, m.Hover(4).Index(), "out of range ignored")
	assert.Equal(t, 0, m.Hover(-1).Index())
	assert.Equal(t, -1, Idle().Hover(0).Index())
}

func TestClear(t *testing.T) {
	assert.Equal(t, Idle(), Idle().QueryChanged(2).Down().Clear())
	assert.Equal(t, Idle(), Idle().Clear())
}
