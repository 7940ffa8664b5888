// Package convert turns CSV price lists into JSON catalogs.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/grdfind/internal/catalog"
	"github.com/oakwood-commons/grdfind/internal/formatter"
)

const (
	// DefaultOutput is the combined catalog written when no --out is given.
	DefaultOutput = catalog.DefaultSource
	// PerFileSuffix is appended to the input base name in per-file mode.
	PerFileSuffix = "_converted.json"
)

// ErrNoInputs is returned when the inputs expand to no CSV files.
var ErrNoInputs = errors.New("no CSV files found")

// Options configures a conversion run.
type Options struct {
	// Output is the combined catalog path. "-" writes to Stdout.
	Output string
	// PerFile writes one catalog per input into OutputDir instead.
	PerFile   bool
	OutputDir string
	Stdout    io.Writer
	Logger    logr.Logger
}

// FileResult describes one converted input.
type FileResult struct {
	Input  string
	Output string
	Items  int
}

// Result summarizes a run.
type Result struct {
	Files  []FileResult
	Output string
	Items  int
}

// Expand resolves inputs into CSV paths. An input may be a file, a
// directory (its top-level *.csv files) or a doublestar pattern such as
// "data/**/*.csv". Paths are deduplicated and keep input order; matches of
// a single directory or pattern are sorted.
func Expand(inputs []string) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		if fi, err := os.Stat(in); err == nil {
			if !fi.IsDir() {
				add(in)
				continue
			}
			matches, err := filepath.Glob(filepath.Join(in, "*"))
			if err != nil {
				return nil, err
			}
			sort.Strings(matches)
			for _, m := range matches {
				if isCSV(m) {
					add(m)
				}
			}
			continue
		}

		base, pattern := doublestar.SplitPattern(filepath.ToSlash(in))
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", in)
		}
		matches, err := doublestar.Glob(os.DirFS(base), pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", in, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w matching %q", ErrNoInputs, in)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(filepath.Join(filepath.FromSlash(base), filepath.FromSlash(m)))
		}
	}
	if len(out) == 0 {
		return nil, ErrNoInputs
	}
	return out, nil
}

func isCSV(p string) bool {
	if fi, err := os.Stat(p); err != nil || fi.IsDir() {
		return false
	}
	return strings.EqualFold(filepath.Ext(p), ".csv")
}

// Run converts every input. The first failing file aborts the run with an
// error naming it. Cancellation is checked between files.
func Run(ctx context.Context, inputs []string, opts Options) (Result, error) {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	files, err := Expand(inputs)
	if err != nil {
		return Result{}, err
	}
	log.Info("converting", "files", len(files), "perFile", opts.PerFile)

	var res Result
	var combined []catalog.Item
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("conversion stopped before %s: %w", path, err)
		}
		items, err := readFile(path)
		if err != nil {
			return res, fmt.Errorf("converting %s: %w", path, err)
		}
		fr := FileResult{Input: path, Items: len(items)}
		if opts.PerFile {
			fr.Output = filepath.Join(opts.OutputDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+PerFileSuffix)
			if err := writeCatalog(fr.Output, items, opts.Stdout); err != nil {
				return res, fmt.Errorf("writing %s: %w", fr.Output, err)
			}
		} else {
			combined = append(combined, items...)
		}
		res.Files = append(res.Files, fr)
		res.Items += len(items)
		log.Info("converted file", "file", path, "items", len(items), "progress", fmt.Sprintf("%d/%d", i+1, len(files)))
	}

	if !opts.PerFile {
		res.Output = opts.Output
		if err := writeCatalog(opts.Output, combined, opts.Stdout); err != nil {
			return res, fmt.Errorf("writing %s: %w", opts.Output, err)
		}
	}
	log.Info("conversion finished", "files", len(res.Files), "items", res.Items)
	return res, nil
}

func readFile(path string) ([]catalog.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func writeCatalog(path string, items []catalog.Item, stdout io.Writer) error {
	var buf bytes.Buffer
	if err := formatter.Write(&buf, items, formatter.FormatJSON, formatter.Options{}); err != nil {
		return err
	}
	if path == "-" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
