// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch orchestrates concurrent source fetches and runs the
// scoring pipeline over the merged results. One goroutine per enabled
// source; a failed or timed-out source becomes an entry in
// FetchResult.Errors and never aborts its siblings.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/pdiddy/paper-radar/internal/pipeline"
	"github.com/pdiddy/paper-radar/internal/profile"
	"github.com/pdiddy/paper-radar/internal/source"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// Configuration errors raised before any source is dispatched. The caller
// should treat these as user-input problems, not system faults.
var (
	ErrNoSourcesEnabled = errors.New("no sources enabled")
	ErrNoKeywords       = errors.New("profile has no keywords")
)

// defaultSourceTimeout bounds one source's fetch when Options does not.
const defaultSourceTimeout = 2 * time.Minute

// Options tunes one fetch invocation.
type Options struct {
	// SourceTimeout bounds each source fetch independently. A timed-out
	// source is recorded like any other failed source.
	SourceTimeout time.Duration

	// Limit truncates the ranked output; 0 means no truncation.
	Limit int

	// Progress, when set, receives per-source running record counts.
	// Reporting is best-effort: a panicking callback is swallowed and
	// never affects the result.
	Progress func(src types.Source, fetched int)

	// Warnings receives human-readable notes about failed sources and
	// skipped records. Defaults to io.Discard.
	Warnings io.Writer
}

// FetchAndRank dispatches one fetch per enabled source concurrently, waits
// for all of them, normalizes and merges the raw records, and runs the
// scoring pipeline. The fetch as a whole succeeds even if every source
// fails: the result then has no papers and one error per source.
func FetchAndRank(ctx context.Context, prof profile.Profile, req types.FetchRequest, adapters map[types.Source]source.Adapter, opts Options) (types.FetchResult, error) {
	if len(prof.Keywords) == 0 {
		return types.FetchResult{}, ErrNoKeywords
	}

	var enabled []source.Adapter
	for _, src := range types.AllSources {
		if !req.Enabled[src] {
			continue
		}
		a, ok := adapters[src]
		if !ok {
			return types.FetchResult{}, fmt.Errorf("source %s enabled but no adapter registered", src)
		}
		enabled = append(enabled, a)
	}
	if len(enabled) == 0 {
		return types.FetchResult{}, ErrNoSourcesEnabled
	}

	w := opts.Warnings
	if w == nil {
		w = io.Discard
	}
	timeout := opts.SourceTimeout
	if timeout <= 0 {
		timeout = defaultSourceTimeout
	}

	type outcome struct {
		src     types.Source
		records []source.RawRecord
		err     error
	}

	ch := make(chan outcome, len(enabled))
	var wg sync.WaitGroup
	for _, a := range enabled {
		wg.Add(1)
		go func(a source.Adapter) {
			defer wg.Done()
			sctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			q := source.Query{
				Keywords:   prof.Keywords,
				DaysBack:   req.Mode.DaysBack,
				MaxResults: req.Mode.MaxFor(a.Name()),
				Progress:   progressFn(opts.Progress, a.Name()),
			}
			records, err := a.Fetch(sctx, q)
			ch <- outcome{src: a.Name(), records: records, err: err}
		}(a)
	}
	go func() {
		wg.Wait()
		close(ch)
	}()

	var raw []source.RawRecord
	var errs []types.SourceError
	for oc := range ch {
		if oc.err != nil {
			errs = append(errs, types.SourceError{Source: oc.src, Message: oc.err.Error()})
			fmt.Fprintf(w, "warning: source %s failed: %v\n", oc.src, oc.err)
			continue
		}
		raw = append(raw, oc.records...)
	}
	// Goroutine completion order leaks into the error list; sort for
	// deterministic output.
	sort.Slice(errs, func(i, j int) bool { return errs[i].Source < errs[j].Source })

	papers := make([]types.Paper, 0, len(raw))
	skipped := 0
	for _, r := range raw {
		p, err := r.Normalize()
		if err != nil {
			skipped++
			continue
		}
		papers = append(papers, p)
	}
	if skipped > 0 {
		fmt.Fprintf(w, "warning: skipped %d record(s) with no title\n", skipped)
	}

	out := pipeline.Process(papers, prof, opts.Limit)
	return types.FetchResult{
		Papers:            out.Papers,
		Errors:            errs,
		TotalBeforeFilter: out.TotalBeforeFilter,
		TotalAfterFilter:  out.TotalAfterFilter,
		DuplicatesRemoved: out.DuplicatesRemoved,
		SkippedRecords:    skipped,
	}, nil
}

// progressFn binds the per-fetch callback to one source and shields the
// fetch from callback panics.
func progressFn(cb func(types.Source, int), src types.Source) func(int) {
	if cb == nil {
		return nil
	}
	return func(n int) {
		defer func() { _ = recover() }()
		cb(src, n)
	}
}
