// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"strings"

	"github.com/pdiddy/paper-radar/internal/profile"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// Journal classifies a paper's journal against the profile's target tiers
// and returns the additive boost plus the high-impact flag. matchedCount is
// the number of distinct keywords the paper matched.
//
// Exclusion patterns are an absolute veto and are checked before any match
// tier. Preprint sources have no journal metadata and never classify.
func Journal(p types.Paper, matchedCount int, prof profile.Profile) (float64, bool) {
	if p.Journal == "" || p.Source.IsPreprint() {
		return 0, false
	}
	name := strings.ToLower(p.Journal)

	for _, pat := range prof.JournalExclusions {
		if pat != "" && strings.Contains(name, strings.ToLower(pat)) {
			return 0, false
		}
	}

	if !matchesTarget(name, prof.TargetJournals) {
		return 0, false
	}

	// A tier match always marks the paper high-impact; the boost itself
	// requires scoring enabled and at least one matched keyword.
	boost := 0.0
	if prof.JournalScoring.Enabled {
		boost = prof.JournalScoring.Boosts.ForCount(matchedCount)
	}
	return boost, true
}

// matchesTarget checks the three tiers in descending priority: exact name,
// family prefix, then substring. The first matching tier wins.
func matchesTarget(name string, tj profile.TargetJournals) bool {
	for _, t := range tj.Exact {
		if name == strings.ToLower(t) {
			return true
		}
	}
	for _, t := range tj.Family {
		if t != "" && strings.HasPrefix(name, strings.ToLower(t)) {
			return true
		}
	}
	for _, t := range tj.Contains {
		if t != "" && strings.Contains(name, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
