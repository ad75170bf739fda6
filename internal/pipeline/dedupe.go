// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"strings"
	"unicode"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// sourceRank orders sources by metadata quality: peer-reviewed PubMed
// first, the bioRxiv/medRxiv servers next, arXiv last. The deduplicator
// keeps the better-ranked sighting as the surviving record.
var sourceRank = map[types.Source]int{
	types.SourcePubMed:  0,
	types.SourceBiorxiv: 1,
	types.SourceMedrxiv: 1,
	types.SourceArxiv:   2,
}

// Dedupe merges records that describe the same paper. An external
// identifier (DOI, PMID, arXiv ID) takes priority; records without a shared
// identifier merge only on normalized title within the same source. Merged
// records union their matched keywords and keep the highest score.
func Dedupe(papers []types.Paper) ([]types.Paper, int) {
	seen := make(map[string]int) // dedup key → index in out
	var out []types.Paper
	removed := 0

	for _, p := range papers {
		idKey := p.Identifier()
		titleKey := ""
		if t := normalizeTitle(p.Title); t != "" {
			titleKey = "title:" + t + "|" + string(p.Source)
		}

		if idx, ok := lookup(seen, idKey, titleKey); ok {
			merge(&out[idx], p)
			removed++
			continue
		}

		idx := len(out)
		out = append(out, p)
		if idKey != "" {
			seen[idKey] = idx
		}
		if titleKey != "" {
			seen[titleKey] = idx
		}
	}
	return out, removed
}

// lookup checks the identifier key before the title key.
func lookup(seen map[string]int, idKey, titleKey string) (int, bool) {
	if idKey != "" {
		if idx, ok := seen[idKey]; ok {
			return idx, true
		}
	}
	if titleKey != "" {
		if idx, ok := seen[titleKey]; ok {
			return idx, true
		}
	}
	return 0, false
}

// merge folds src into dst. The sighting from the better-ranked source
// survives as the record; the other fills its gaps.
func merge(dst *types.Paper, src types.Paper) {
	if sourceRank[src.Source] < sourceRank[dst.Source] {
		*dst, src = src, *dst
	}
	if dst.Abstract == "" {
		dst.Abstract = src.Abstract
	}
	if dst.Authors == "" {
		dst.Authors = src.Authors
	}
	if dst.Journal == "" {
		dst.Journal = src.Journal
	}
	if dst.Published.IsZero() {
		dst.Published = src.Published
	}
	if dst.DOI == "" {
		dst.DOI = src.DOI
	}
	if dst.PMID == "" {
		dst.PMID = src.PMID
	}
	if dst.ArxivID == "" {
		dst.ArxivID = src.ArxivID
	}
	if dst.URL == "" {
		dst.URL = src.URL
	}
	if src.RelevanceScore > dst.RelevanceScore {
		dst.RelevanceScore = src.RelevanceScore
	}
	if src.HighImpact {
		dst.HighImpact = true
	}
	dst.MatchedKeywords = unionKeywords(dst.MatchedKeywords, src.MatchedKeywords)
}

// unionKeywords merges two matched lists, preserving a's order and
// appending b's novel entries. A keyword found via only one source's
// abstract must not be lost in the merge.
func unionKeywords(a, b []string) []string {
	out := a
	for _, kw := range b {
		found := false
		for _, have := range out {
			if strings.EqualFold(have, kw) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, kw)
		}
	}
	return out
}

// normalizeTitle returns a lowercased, punctuation-stripped,
// whitespace-collapsed version of the title.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
