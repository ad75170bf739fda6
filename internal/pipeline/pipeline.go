// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline turns normalized papers into the final result list:
// score, classify, filter, deduplicate, rank. Every stage is synchronous
// and CPU-bound; the package holds no state between invocations.
package pipeline

import (
	"github.com/pdiddy/paper-radar/internal/profile"
	"github.com/pdiddy/paper-radar/internal/score"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// Output carries the pipeline result and its stage statistics.
type Output struct {
	Papers            []types.Paper
	TotalBeforeFilter int
	TotalAfterFilter  int
	DuplicatesRemoved int
}

// Process runs the full scoring pipeline over normalized papers and returns
// at most limit papers (0 means no truncation). The input slice is consumed.
func Process(papers []types.Paper, prof profile.Profile, limit int) Output {
	for i := range papers {
		base, matched := score.Keyword(papers[i], prof)
		boost, high := score.Journal(papers[i], len(matched), prof)
		papers[i].MatchedKeywords = matched
		papers[i].RelevanceScore = base + boost
		papers[i].HighImpact = high
	}

	kept := Filter(papers, prof)
	deduped, removed := Dedupe(kept)
	ranked := Rank(deduped, prof, limit)

	return Output{
		Papers:            ranked,
		TotalBeforeFilter: len(papers),
		TotalAfterFilter:  len(kept),
		DuplicatesRemoved: removed,
	}
}
