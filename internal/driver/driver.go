// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package driver runs the read, classify, plan and write cycle over a batch
// of files.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go4org/hashtriemap"
	"github.com/simoncblyth/licensehd/internal/filetype"
	"github.com/simoncblyth/licensehd/internal/header"
	"github.com/simoncblyth/licensehd/internal/rewrite"
	"github.com/simoncblyth/licensehd/logger"
	"github.com/simoncblyth/licensehd/syncx"
	"golang.org/x/text/encoding"
)

var (
	// ErrCheckFailed is returned in check mode when some files lack an
	// up-to-date header.
	ErrCheckFailed = errors.New("files need a license header")
	// ErrFailed is returned when some files could not be processed.
	ErrFailed = errors.New("files could not be processed")
)

// Tally counts the outcome of a run. In dry-run and check mode, Modified
// counts the files that would have been modified.
type Tally struct {
	Modified int
	Skipped  int
	Failed   int
}

// LogValue implements [slog.LogValuer].
func (t Tally) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("modified", t.Modified),
		slog.Int("skipped", t.Skipped),
		slog.Int("failed", t.Failed),
	)
}

// Driver processes files. Its exported fields must not change once Run is
// called. A Driver is meant for a single run.
type Driver struct {
	Registry *filetype.Registry
	// Template holds the expanded template lines.
	Template []string
	// Update replaces headers that already carry our copyright line.
	Update bool
	// Dry reports what would be done without writing.
	Dry bool
	// Check is like Dry, but the run fails if any file would change.
	Check bool
	// Jobs is the number of files processed at once. Zero means one.
	Jobs int
	// Encoding of the files; nil means UTF-8.
	Encoding encoding.Encoding
	// Out receives the paths of files that would change in dry-run and
	// check mode.
	Out io.Writer

	headers hashtriemap.HashTrieMap[*filetype.Syntax, *syncx.Lazy[*header.Header]]
	seen    hashtriemap.HashTrieMap[string, struct{}]

	mu    sync.Mutex
	tally Tally
}

type outcome int

const (
	modified outcome = iota
	skipped
	duplicate
)

// configError marks an error that aborts the run rather than failing one
// file.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// Run processes paths and returns the tally. A configuration problem such
// as an unregistered extension or an unusable template stops the run and is
// returned as is. Files that cannot be read or written are logged and
// counted, and the run reports [ErrFailed] at the end.
func (d *Driver) Run(ctx context.Context, paths []string) (Tally, error) {
	start := time.Now()
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	lwg := syncx.NewLimitedWaitGroup(d.Jobs)
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		lwg.Go(func() {
			if ctx.Err() != nil {
				return
			}
			res, err := d.process(ctx, path)
			var cerr *configError
			if errors.As(err, &cerr) {
				cancel(cerr.err)
				return
			}
			d.count(ctx, path, res, err)
		})
	}
	lwg.Wait()

	tally := d.result()
	if err := context.Cause(ctx); err != nil {
		return tally, err
	}
	logger.Info(ctx, "done", slog.Any("tally", tally), logger.Since(start))

	switch {
	case tally.Failed > 0:
		return tally, fmt.Errorf("%w: %d of %d", ErrFailed, tally.Failed, tally.Modified+tally.Skipped+tally.Failed)
	case d.Check && tally.Modified > 0:
		return tally, fmt.Errorf("%w: %d files", ErrCheckFailed, tally.Modified)
	}
	return tally, nil
}

func (d *Driver) process(ctx context.Context, path string) (outcome, error) {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	if _, loaded := d.seen.LoadOrStore(key, struct{}{}); loaded {
		return duplicate, nil
	}

	syn, err := d.Registry.Lookup(path)
	if err != nil {
		return 0, &configError{err}
	}
	h, err := d.header(syn)
	if err != nil {
		return 0, &configError{fmt.Errorf("rendering header for %s files: %w", syn.Name, err)}
	}

	f, err := rewrite.Load(path, d.Encoding)
	if err != nil {
		return 0, err
	}
	c := header.Classify(f.Lines, syn, h.Copyright)
	logger.Debug(ctx, "classified", slog.String("path", path), slog.String("type", syn.Name), slog.Any("head", c))

	switch {
	case c.HasOtherLicense():
		logger.Info(ctx, "skipping, foreign copyright", slog.String("path", path), slog.Int("line", c.OtherCopyrightLine+1))
		return skipped, nil
	case c.HasLicense() && !d.Update:
		logger.Debug(ctx, "skipping, header present", slog.String("path", path))
		return skipped, nil
	}

	p := header.NewPlan(f.Lines, c, h)
	if p.Replace && p.String() == strings.Join(f.Lines, "") {
		logger.Debug(ctx, "skipping, header up to date", slog.String("path", path))
		return skipped, nil
	}
	if d.Dry || d.Check {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.Out != nil {
			fmt.Fprintln(d.Out, path)
		}
		return modified, nil
	}
	if err := rewrite.Write(ctx, f, p); err != nil {
		return 0, err
	}
	return modified, nil
}

// header renders the header for syn once per run.
func (d *Driver) header(syn *filetype.Syntax) (*header.Header, error) {
	lazy, _ := d.headers.LoadOrStore(syn, new(syncx.Lazy[*header.Header]))
	return lazy.GetErr(func() (*header.Header, error) {
		return header.Render(d.Template, syn.Format)
	})
}

func (d *Driver) count(ctx context.Context, path string, res outcome, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case err != nil:
		d.tally.Failed++
		logger.Error(ctx, "failed", slog.String("path", path), logger.Err(err))
	case res == modified:
		d.tally.Modified++
		if !d.Dry && !d.Check {
			logger.Info(ctx, "modified", slog.String("path", path))
		}
	case res == skipped:
		d.tally.Skipped++
	}
}

func (d *Driver) result() Tally {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tally
}
