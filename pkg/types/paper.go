// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-radar pipeline.
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

import (
	"strings"
	"time"
)

// Source identifies an academic metadata source.
type Source string

const (
	SourcePubMed  Source = "pubmed"
	SourceArxiv   Source = "arxiv"
	SourceBiorxiv Source = "biorxiv"
	SourceMedrxiv Source = "medrxiv"
)

// AllSources lists every supported source in display order.
var AllSources = []Source{SourcePubMed, SourceArxiv, SourceBiorxiv, SourceMedrxiv}

// IsPreprint reports whether the source is a preprint server. Preprint
// servers carry no journal metadata, so their papers are never high-impact.
func (s Source) IsPreprint() bool {
	return s == SourceArxiv || s == SourceBiorxiv || s == SourceMedrxiv
}

// ParseSource converts a user-supplied name into a Source.
func ParseSource(name string) (Source, bool) {
	s := Source(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllSources {
		if s == known {
			return known, true
		}
	}
	return "", false
}

// Paper is the canonical record every pipeline stage operates on. The
// Normalizer produces one Paper per raw source record; the scoring stages
// fill RelevanceScore, MatchedKeywords, and HighImpact.
type Paper struct {
	Title    string `json:"title" yaml:"title"`
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Authors is the joined display form ("A. Author, B. Author").
	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Source identifies which adapter produced this record.
	Source Source `json:"source" yaml:"source"`

	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Volume  string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue   string `json:"issue,omitempty" yaml:"issue,omitempty"`

	// Published is the publication or preprint date; zero when unknown.
	Published time.Time `json:"published,omitempty" yaml:"published,omitempty"`

	DOI     string `json:"doi,omitempty" yaml:"doi,omitempty"`
	PMID    string `json:"pmid,omitempty" yaml:"pmid,omitempty"`
	ArxivID string `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`

	// RelevanceScore is assigned by the scoring stages. Stages only ever
	// raise it; filtering drops papers wholesale instead of lowering scores.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// MatchedKeywords lists the profile keywords found in the title or
	// abstract, in profile order.
	MatchedKeywords []string `json:"matched_keywords,omitempty" yaml:"matched_keywords,omitempty"`

	// HighImpact is true when the journal matched a configured target tier
	// and no exclusion pattern.
	HighImpact bool `json:"high_impact" yaml:"high_impact"`
}

// Identifier returns the strongest external identifier for deduplication:
// DOI, then PMID, then arXiv ID. Empty when the record carries none.
func (p Paper) Identifier() string {
	switch {
	case p.DOI != "":
		return "doi:" + strings.ToLower(p.DOI)
	case p.PMID != "":
		return "pmid:" + p.PMID
	case p.ArxivID != "":
		return "arxiv:" + p.ArxivID
	}
	return ""
}
