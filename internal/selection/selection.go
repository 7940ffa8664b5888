// Package selection tracks which suggestion row is highlighted.
//
// The machine is either Idle (index -1) or Active with an index in
// [0, count). Arrow moves wrap at both ends. Machine is a value type; every
// transition returns the next state.
package selection

// Machine is the highlighted-row state. The zero value reads as Idle.
type Machine struct {
	index int
	count int
}

// Idle returns the state with nothing highlighted and no rows.
func Idle() Machine {
	return Machine{index: -1}
}

// QueryChanged resets the machine after a text-driven refilter: no rows
// means Idle, otherwise the first row is highlighted.
func (m Machine) QueryChanged(count int) Machine {
	if count <= 0 {
		return Idle()
	}
	return Machine{index: 0, count: count}
}

// Down moves to the next row, wrapping to the first.
func (m Machine) Down() Machine {
	if m.count == 0 {
		return m
	}
	if m.index < 0 {
		return Machine{index: 0, count: m.count}
	}
	return Machine{index: (m.index + 1) % m.count, count: m.count}
}

// Up moves to the previous row, wrapping to the last.
func (m Machine) Up() Machine {
	if m.count == 0 {
		return m
	}
	if m.index < 0 {
		return Machine{index: m.count - 1, count: m.count}
	}
	return Machine{index: (m.index - 1 + m.count) % m.count, count: m.count}
}

// Hover highlights row i. Rows outside [0, count) are ignored.
func (m Machine) Hover(i int) Machine {
	if i < 0 || i >= m.count {
		return m
	}
	return Machine{index: i, count: m.count}
}

// Clear returns to Idle. Escape, commit and reset all land here.
func (m Machine) Clear() Machine {
	return Idle()
}

// Index is the highlighted row, or -1.
func (m Machine) Index() int {
	if m.count == 0 {
		return -1
	}
	return m.index
}

// Count is the number of selectable rows.
func (m Machine) Count() int { return m.count }

// Active reports whether a row is highlighted.
func (m Machine) Active() bool { return m.Index() >= 0 }
