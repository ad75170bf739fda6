// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings used by the source adapters.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-radar/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchMode is a preset bundling per-source result caps and a lookback
// window. Modes are data, not behavior: fetch logic never branches on the
// mode name.
type SearchMode struct {
	Name        string `json:"name" yaml:"name"`
	PubMedMax   int    `json:"pubmed_max" yaml:"pubmed_max"`
	PreprintMax int    `json:"preprint_max" yaml:"preprint_max"`
	DaysBack    int    `json:"days_back" yaml:"days_back"`
}

// MaxFor returns the result cap this mode imposes on a source.
func (m SearchMode) MaxFor(src Source) int {
	if src == SourcePubMed {
		return m.PubMedMax
	}
	return m.PreprintMax
}

var searchModes = map[string]SearchMode{
	"brief":    {Name: "brief", PubMedMax: 1000, PreprintMax: 500, DaysBack: 7},
	"standard": {Name: "standard", PubMedMax: 2500, PreprintMax: 1000, DaysBack: 14},
	"extended": {Name: "extended", PubMedMax: 5000, PreprintMax: 5000, DaysBack: 30},
}

// ModeByName looks up a search-mode preset. ok is false for unknown names.
func ModeByName(name string) (SearchMode, bool) {
	m, ok := searchModes[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// ModeNames returns the preset names sorted for help text.
func ModeNames() []string {
	names := make([]string, 0, len(searchModes))
	for name := range searchModes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FetchRequest carries the per-invocation fetch parameters. It is never
// mutated once the fetch starts.
type FetchRequest struct {
	// Enabled selects which sources to query.
	Enabled map[Source]bool `json:"enabled" yaml:"enabled"`

	// Mode is the search-mode preset in effect.
	Mode SearchMode `json:"mode" yaml:"mode"`
}

// SourceError records one source's failure during a fetch. Source failures
// are collected, never propagated: the fetch as a whole still succeeds.
type SourceError struct {
	Source  Source `json:"source" yaml:"source"`
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e SourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// FetchResult is the outcome of one fetch-and-rank invocation.
type FetchResult struct {
	// Papers is the final scored, filtered, deduplicated, ranked list.
	Papers []Paper `json:"papers" yaml:"papers"`

	// Errors lists the sources that failed or timed out.
	Errors []SourceError `json:"errors,omitempty" yaml:"errors,omitempty"`

	// TotalBeforeFilter counts normalized papers entering the filter stage.
	TotalBeforeFilter int `json:"total_before_filter" yaml:"total_before_filter"`

	// TotalAfterFilter counts papers surviving the keyword gates.
	TotalAfterFilter int `json:"total_after_filter" yaml:"total_after_filter"`

	// DuplicatesRemoved counts records merged by the deduplicator.
	DuplicatesRemoved int `json:"duplicates_removed" yaml:"duplicates_removed"`

	// SkippedRecords counts raw records dropped for missing a title.
	SkippedRecords int `json:"skipped_records,omitempty" yaml:"skipped_records,omitempty"`
}
