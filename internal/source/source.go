// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source implements the academic metadata adapters (PubMed, arXiv,
// bioRxiv, medRxiv) and the normalization of their raw records into the
// canonical Paper. Each backend implements the Adapter interface per the
// Strategy pattern; raw record shapes stay private to this package.
package source

import (
	"context"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// Query is the window one adapter fetches: the profile keywords, a lookback
// period, and a result cap from the search-mode preset.
type Query struct {
	Keywords   []string
	DaysBack   int
	MaxResults int

	// Progress, when set, receives a running count of records fetched so
	// far. Reporting is best-effort and never affects the fetch outcome.
	Progress func(fetched int)
}

// report invokes the progress callback if one is set.
func (q Query) report(n int) {
	if q.Progress != nil {
		q.Progress(n)
	}
}

// RawRecord is one source-specific record shape. Each backend keeps its
// wire shape private and exposes it only through Normalize, so
// dynamic-shape handling stays confined to this package boundary.
// Normalize is a pure function: no network, no storage, no mutation of
// the receiver.
type RawRecord interface {
	Source() types.Source
	Normalize() (types.Paper, error)
}

// Adapter fetches raw records from one academic API.
type Adapter interface {
	Name() types.Source
	Fetch(ctx context.Context, q Query) ([]RawRecord, error)
}
