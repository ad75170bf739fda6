// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"sort"
	"strings"

	"github.com/pdiddy/paper-radar/internal/profile"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// Rank sorts papers by relevance score descending and truncates to limit
// (0 means no truncation). Ties break by publication date descending, then
// by the profile position of the paper's first matched keyword, so repeated
// runs over the same input produce identical ordering.
func Rank(papers []types.Paper, prof profile.Profile, limit int) []types.Paper {
	pos := make(map[string]int, len(prof.Keywords))
	for i, kw := range prof.Keywords {
		pos[strings.ToLower(kw)] = i
	}
	firstMatch := func(p types.Paper) int {
		best := len(prof.Keywords)
		for _, kw := range p.MatchedKeywords {
			if i, ok := pos[strings.ToLower(kw)]; ok && i < best {
				best = i
			}
		}
		return best
	}

	sort.SliceStable(papers, func(i, j int) bool {
		a, b := papers[i], papers[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if !a.Published.Equal(b.Published) {
			return a.Published.After(b.Published)
		}
		return firstMatch(a) < firstMatch(b)
	})

	if limit > 0 && len(papers) > limit {
		papers = papers[:limit]
	}
	return papers
}
