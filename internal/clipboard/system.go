package clipboard

import (
	"github.com/atotto/clipboard"
)

// System writes to the OS clipboard (pbcopy, xclip/xsel/wl-copy, or the
// Windows clipboard API).
type System struct{}

func (System) Name() string { return "system" }

func (System) Available() bool { return !clipboard.Unsupported }

func (System) Write(text string) error { return clipboard.WriteAll(text) }
