package cmd

import (
	"context"
	"os"
	"runtime"
	"time"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/grdfind/pkg/tui"
)

const (
	defaultSnapshotWidth  = 80
	defaultSnapshotHeight = 24
)

var (
	stdinIsPiped     = func() bool { stat, _ := os.Stdin.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	stdoutIsPiped    = func() bool { stat, _ := os.Stdout.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	openTerminalIOFn = openTerminalIO
	termGetSize      = term.GetSize
)

// getProgramOptions reopens the terminal for keyboard input when stdin
// carries the catalog. The returned cleanup is always safe to call.
func getProgramOptions(ctx context.Context, catalogOnStdin bool) ([]tea.ProgramOption, func()) {
	cleanup := func() {}
	if !catalogOnStdin && !stdinIsPiped() {
		return nil, cleanup
	}

	ttyIn, ttyOut, err := openTerminalIOFn()
	if err != nil {
		// No controlling terminal (CI); keys will not reach the widget.
		return nil, cleanup
	}
	ctx, cancel := context.WithCancel(ctx)
	opts := []tea.ProgramOption{tea.WithInput(ttyIn)}
	if ttyOut != nil {
		opts = append(opts, tea.WithOutput(ttyOut), withTTYResizeWatcher(ctx, ttyOut))
	}
	return opts, func() {
		cancel()
		_ = ttyIn.Close()
		if ttyOut != nil && ttyOut != ttyIn {
			_ = ttyOut.Close()
		}
	}
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)

	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	if out == "" || out == in {
		return input, input, nil
	}
	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		return input, nil, err
	}
	return input, output, nil
}

func terminalDeviceNames(goos string) (input string, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}

// withTTYResizeWatcher polls the terminal size when resize signals do not
// reach the program (reopened tty on Windows). It stops with ctx.
func withTTYResizeWatcher(ctx context.Context, out *os.File) tea.ProgramOption {
	return func(p *tea.Program) {
		go func() {
			t := time.NewTicker(250 * time.Millisecond)
			defer t.Stop()

			lastW, lastH := 0, 0
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					w, h, err := termGetSize(int(out.Fd()))
					if err != nil || (w == lastW && h == lastH) {
						continue
					}
					lastW, lastH = w, h
					p.Send(tea.WindowSizeMsg{Width: w, Height: h})
				}
			}
		}()
	}
}

// detectTerminalSize is swapped in tests.
var detectTerminalSize = tui.DetectTerminalSize

type snapshotSize struct {
	Width  int
	Height int
}

// resolveSnapshotSize prefers explicit flags, then the detected size, then
// 80x24.
func resolveSnapshotSize(flagWidth, flagHeight, detectedWidth, detectedHeight int) snapshotSize {
	width, height := flagWidth, flagHeight
	if width <= 0 || height <= 0 {
		if detectedWidth <= 0 && detectedHeight <= 0 {
			detectedWidth, detectedHeight = detectTerminalSize()
		}
		if width <= 0 {
			width = detectedWidth
		}
		if height <= 0 {
			height = detectedHeight
		}
	}
	if width <= 0 {
		width = defaultSnapshotWidth
	}
	if height <= 0 {
		height = defaultSnapshotHeight
	}
	return snapshotSize{Width: width, Height: height}
}
