package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// DefaultSource is the catalog path used when none is configured.
const DefaultSource = "items.json"

// DefaultTimeout bounds remote catalog fetches.
const DefaultTimeout = 10 * time.Second

// maxDocumentSize caps how much of a catalog source is read.
const maxDocumentSize = 32 << 20

// ErrFetchFailed wraps every catalog load failure.
var ErrFetchFailed = errors.New("catalog fetch failed")

type loadOptions struct {
	client  *http.Client
	timeout time.Duration
	stdin   io.Reader
	format  Format
	log     logr.Logger
}

// LoadOption customizes Load.
type LoadOption func(*loadOptions)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) LoadOption {
	return func(o *loadOptions) { o.client = c }
}

// WithTimeout bounds the whole load. Zero disables the bound.
func WithTimeout(d time.Duration) LoadOption {
	return func(o *loadOptions) { o.timeout = d }
}

// WithStdin sets the reader used for the "-" source.
func WithStdin(r io.Reader) LoadOption {
	return func(o *loadOptions) { o.stdin = r }
}

// WithFormat forces a document format instead of guessing.
func WithFormat(f Format) LoadOption {
	return func(o *loadOptions) { o.format = f }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l logr.Logger) LoadOption {
	return func(o *loadOptions) { o.log = l }
}

// Load reads a catalog from a file path, an http(s) URL, or "-" for stdin.
// All failures wrap ErrFetchFailed.
func Load(ctx context.Context, source string, opts ...LoadOption) (*Catalog, error) {
	o := loadOptions{
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		stdin:   os.Stdin,
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	source = strings.TrimSpace(source)
	if source == "" {
		source = DefaultSource
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	start := time.Now()
	data, err := read(ctx, source, &o)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, source, err)
	}

	format := o.format
	if format == FormatAuto && source != "-" {
		format = FormatFromPath(source)
	}
	items, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, source, err)
	}

	logDuplicates(o.log, items)
	o.log.V(1).Info("catalog loaded", "source", source, "items", len(items), "duration", time.Since(start).String())
	return New(source, items), nil
}

func read(ctx context.Context, source string, o *loadOptions) ([]byte, error) {
	switch {
	case source == "-":
		return io.ReadAll(io.LimitReader(o.stdin, maxDocumentSize))
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return fetch(ctx, o.client, source)
	default:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxDocumentSize))
	}
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
}

func logDuplicates(log logr.Logger, items []Item) {
	seen := make(map[string]int, len(items))
	for i, it := range items {
		if first, ok := seen[it.GRD]; ok {
			log.V(1).Info("duplicate grd", "grd", it.GRD, "first", first, "index", i)
			continue
		}
		seen[it.GRD] = i
	}
}
