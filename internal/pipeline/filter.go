// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"strings"

	"github.com/pdiddy/paper-radar/internal/profile"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// Filter drops papers that fail the profile's keyword gates. The cheap
// min-match count runs before the must-have intersection; the final set is
// the same either way. Filtering is idempotent.
func Filter(papers []types.Paper, prof profile.Profile) []types.Paper {
	out := make([]types.Paper, 0, len(papers))
	for _, p := range papers {
		if len(p.MatchedKeywords) < prof.MinKeywordMatches {
			continue
		}
		if len(prof.MustHaveKeywords) > 0 && !intersects(p.MatchedKeywords, prof.MustHaveKeywords) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func intersects(matched, required []string) bool {
	for _, m := range matched {
		for _, r := range required {
			if strings.EqualFold(m, r) {
				return true
			}
		}
	}
	return false
}
