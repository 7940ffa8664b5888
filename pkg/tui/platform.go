package tui

import (
	"context"

	"github.com/oakwood-commons/grdfind/internal/clipboard"
)

// CopyToClipboard copies text with the same fallback chain the widget uses:
// the system clipboard first, then an OSC 52 escape sequence to the
// controlling terminal.
func CopyToClipboard(ctx context.Context, text string) error {
	return clipboard.Default().Copy(ctx, text, "text").Err
}
