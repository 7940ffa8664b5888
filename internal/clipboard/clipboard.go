// Package clipboard copies text through a chain of capabilities: the system
// clipboard first, then an OSC 52 escape sequence written to the terminal.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

var (
	// ErrEmptyText is returned for blank text; nothing is attempted.
	ErrEmptyText = errors.New("nothing to copy")
	// ErrCopyFailed is returned when every capability failed or none was available.
	ErrCopyFailed = errors.New("copy failed")
)

// Capability is one way of putting text on a clipboard.
type Capability interface {
	Name() string
	// Available reports whether the capability can work in this environment
	// without trying it.
	Available() bool
	Write(text string) error
}

// Func adapts a plain function into an always-available Capability.
type Func struct {
	Label string
	Fn    func(text string) error
}

func (f Func) Name() string            { return f.Label }
func (f Func) Available() bool         { return f.Fn != nil }
func (f Func) Write(text string) error { return f.Fn(text) }

// Result is the outcome of one copy request.
type Result struct {
	Label string
	Text  string
	// Via names the capability that succeeded.
	Via string
	Err error
}

// OK reports whether the copy succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Message is the notification text for the result.
func (r Result) Message() string {
	if r.Err != nil {
		return fmt.Sprintf("Failed to copy %s!", r.Label)
	}
	return fmt.Sprintf("%s copied to clipboard!", r.Label)
}

// Chain tries capabilities in order until one succeeds.
type Chain struct {
	caps []Capability
	log  logr.Logger
}

// NewChain builds a chain over caps.
func NewChain(caps ...Capability) *Chain {
	return &Chain{caps: caps, log: logr.Discard()}
}

// Default is the system clipboard followed by OSC 52 on the controlling
// terminal.
func Default() *Chain {
	return NewChain(System{}, NewOSC52())
}

// WithLogger sets the logger used to record fallbacks.
func (c *Chain) WithLogger(log logr.Logger) *Chain {
	c.log = log
	return c
}

// Copy trims text and writes it with the first capability that works.
func (c *Chain) Copy(ctx context.Context, text, label string) Result {
	res := Result{Label: label, Text: strings.TrimSpace(text)}
	if res.Text == "" {
		res.Err = ErrEmptyText
		return res
	}

	var last error
	for _, capability := range c.caps {
		if err := ctx.Err(); err != nil {
			last = err
			break
		}
		if !capability.Available() {
			c.log.V(1).Info("clipboard capability unavailable", "capability", capability.Name())
			continue
		}
		if err := capability.Write(res.Text); err != nil {
			c.log.V(1).Info("clipboard capability failed", "capability", capability.Name(), "error", err.Error())
			last = err
			continue
		}
		res.Via = capability.Name()
		c.log.V(1).Info("copied", "label", label, "capability", res.Via)
		return res
	}

	if last == nil {
		last = errors.New("no clipboard capability available")
	}
	res.Err = fmt.Errorf("%w: %w", ErrCopyFailed, last)
	return res
}
