// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes per-paper relevance: the keyword base score and
// the journal-quality boost.
package score

import (
	"strings"

	"github.com/pdiddy/paper-radar/internal/profile"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// Keyword scores one paper against the profile keywords. Each keyword is
// matched as a whole, case-insensitive phrase over title + " " + abstract,
// so multi-word keywords match only as contiguous text. The returned
// matched list is in profile keyword order.
//
// Per-keyword contribution uses BM25-style saturation rather than linear
// accumulation: repeating one keyword many times cannot out-score covering
// several distinct keywords. Title presence adds a fixed bonus instead of
// inflating the count, keeping placement and frequency separate signals.
func Keyword(p types.Paper, prof profile.Profile) (float64, []string) {
	title := strings.ToLower(p.Title)
	text := title + " " + strings.ToLower(p.Abstract)
	k1 := prof.Scoring.K1

	var total float64
	var matched []string
	for _, kw := range prof.Keywords {
		needle := strings.ToLower(kw)
		if needle == "" {
			continue
		}
		tf := strings.Count(text, needle)
		if tf == 0 {
			continue
		}

		contrib := float64(tf) * (k1 + 1) / (float64(tf) + k1)
		if strings.Contains(title, needle) {
			contrib += prof.Scoring.TitleBonus
		}
		total += contrib * prof.TierFor(kw).Multiplier()
		matched = append(matched, kw)
	}
	return total, matched
}
