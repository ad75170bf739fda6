// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile defines the user's research profile: the keywords,
// priority tiers, and target-journal configuration the scoring pipeline
// reads. A Profile is an immutable value once loaded; every pipeline stage
// takes it as a parameter and never mutates it.
package profile

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Tier names a keyword priority bucket.
type Tier string

const (
	TierHigh    Tier = "high"
	TierMedium  Tier = "medium"
	TierDefault Tier = "default"
)

// Multiplier returns the scoring weight for the tier.
func (t Tier) Multiplier() float64 {
	switch t {
	case TierHigh:
		return 1.5
	case TierMedium:
		return 1.2
	default:
		return 1.0
	}
}

// BoostTable maps the distinct-keyword-match count to the additive journal
// boost. Explicit fields rather than a map so load-time validation can
// check that every bucket is present and the table is monotonic.
type BoostTable struct {
	One        float64 `yaml:"one" json:"one"`
	Two        float64 `yaml:"two" json:"two"`
	Three      float64 `yaml:"three" json:"three"`
	Four       float64 `yaml:"four" json:"four"`
	FiveOrMore float64 `yaml:"five_or_more" json:"five_or_more"`
}

// ForCount returns the boost for a matched-keyword count. A count of zero
// yields no boost.
func (b BoostTable) ForCount(n int) float64 {
	switch {
	case n <= 0:
		return 0
	case n == 1:
		return b.One
	case n == 2:
		return b.Two
	case n == 3:
		return b.Three
	case n == 4:
		return b.Four
	default:
		return b.FiveOrMore
	}
}

// DefaultBoosts returns the stock boost table.
func DefaultBoosts() BoostTable {
	return BoostTable{One: 0.5, Two: 1.3, Three: 2.8, Four: 3.7, FiveOrMore: 5.1}
}

// JournalScoring controls the additive journal boost.
type JournalScoring struct {
	// Enabled toggles the boost contribution. A target-journal match still
	// marks the paper high-impact when disabled.
	Enabled bool       `yaml:"enabled" json:"enabled"`
	Boosts  BoostTable `yaml:"boosts" json:"boosts"`
}

// TargetJournals holds the three descending-priority match tiers. All
// matching is case-insensitive.
type TargetJournals struct {
	// Exact matches the full journal name.
	Exact []string `yaml:"exact,omitempty" json:"exact,omitempty"`

	// Family matches a journal-name prefix (e.g. "Nature" covers
	// "Nature Neuroscience").
	Family []string `yaml:"family,omitempty" json:"family,omitempty"`

	// Contains matches a substring anywhere in the journal name.
	Contains []string `yaml:"contains,omitempty" json:"contains,omitempty"`
}

// Empty reports whether no target journals are configured.
func (t TargetJournals) Empty() bool {
	return len(t.Exact) == 0 && len(t.Family) == 0 && len(t.Contains) == 0
}

// Scoring exposes the tunable constants of the keyword scorer. The stock
// values are a reasonable starting point, not derived constants.
type Scoring struct {
	// K1 is the BM25-style saturation constant.
	K1 float64 `yaml:"k1" json:"k1"`

	// TitleBonus is the fixed bonus added when a keyword appears in the
	// title, before the tier multiplier.
	TitleBonus float64 `yaml:"title_bonus" json:"title_bonus"`
}

// Profile is the research profile the pipeline scores against.
type Profile struct {
	// Keywords in user order. The order doubles as the tie-break priority
	// during ranking, not as importance.
	Keywords []string `yaml:"keywords" json:"keywords"`

	// KeywordPriority assigns tiers to keywords; unlisted keywords are
	// default tier.
	KeywordPriority map[string]Tier `yaml:"keyword_priority,omitempty" json:"keyword_priority,omitempty"`

	// MustHaveKeywords, when non-empty, requires at least one match for a
	// paper to survive filtering.
	MustHaveKeywords []string `yaml:"must_have_keywords,omitempty" json:"must_have_keywords,omitempty"`

	// MinKeywordMatches is the minimum number of distinct matched keywords
	// required to survive filtering.
	MinKeywordMatches int `yaml:"min_keyword_matches" json:"min_keyword_matches"`

	Scoring Scoring `yaml:"scoring" json:"scoring"`

	TargetJournals TargetJournals `yaml:"target_journals" json:"target_journals"`

	// JournalExclusions are substring patterns; a journal containing any of
	// them is never high-impact, regardless of target-journal matches.
	JournalExclusions []string `yaml:"journal_exclusions,omitempty" json:"journal_exclusions,omitempty"`

	JournalScoring JournalScoring `yaml:"journal_scoring" json:"journal_scoring"`
}

// TierFor returns the priority tier for a keyword.
func (p Profile) TierFor(keyword string) Tier {
	if t, ok := p.KeywordPriority[keyword]; ok {
		return t
	}
	return TierDefault
}

// Default returns a profile with stock tuning and no keywords.
func Default() Profile {
	return Profile{
		MinKeywordMatches: 2,
		Scoring:           Scoring{K1: 1.5, TitleBonus: 0.5},
		JournalScoring:    JournalScoring{Enabled: true, Boosts: DefaultBoosts()},
	}
}

// Load reads a profile YAML file and validates it. Fields omitted from the
// file keep their Default() values.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile: %w", err)
	}
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the profile once at load time so the per-paper scoring
// loop does not have to re-check it.
func (p Profile) Validate() error {
	if len(p.Keywords) == 0 {
		return errors.New("no keywords configured")
	}
	for kw, tier := range p.KeywordPriority {
		switch tier {
		case TierHigh, TierMedium, TierDefault:
		default:
			return fmt.Errorf("keyword %q: unknown priority tier %q", kw, tier)
		}
	}
	if p.MinKeywordMatches < 0 {
		return fmt.Errorf("min_keyword_matches must be >= 0, got %d", p.MinKeywordMatches)
	}
	if p.Scoring.K1 <= 0 {
		return fmt.Errorf("scoring.k1 must be positive, got %g", p.Scoring.K1)
	}
	if p.Scoring.TitleBonus < 0 {
		return fmt.Errorf("scoring.title_bonus must be >= 0, got %g", p.Scoring.TitleBonus)
	}
	b := p.JournalScoring.Boosts
	if b.One > b.Two || b.Two > b.Three || b.Three > b.Four || b.Four > b.FiveOrMore {
		return errors.New("journal boost table must be monotonically increasing")
	}
	return nil
}
