// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"reflect"
	"testing"

	"github.com/pdiddy/paper-radar/internal/profile"
	"github.com/pdiddy/paper-radar/pkg/types"
)

func filterProfile() profile.Profile {
	p := profile.Default()
	p.Keywords = []string{"tau", "amyloid", "pet"}
	p.MinKeywordMatches = 2
	return p
}

func TestFilterMinMatches(t *testing.T) {
	prof := filterProfile()
	papers := []types.Paper{
		{Title: "zero", MatchedKeywords: nil},
		{Title: "one", MatchedKeywords: []string{"tau"}},
		{Title: "two", MatchedKeywords: []string{"tau", "amyloid"}},
		{Title: "three", MatchedKeywords: []string{"tau", "amyloid", "pet"}},
	}

	kept := Filter(papers, prof)

	if len(kept) != 2 {
		t.Fatalf("kept %d papers, want 2", len(kept))
	}
	if kept[0].Title != "two" || kept[1].Title != "three" {
		t.Errorf("kept = [%s %s], want [two three]", kept[0].Title, kept[1].Title)
	}
}

func TestFilterMustHave(t *testing.T) {
	prof := filterProfile()
	prof.MinKeywordMatches = 1
	prof.MustHaveKeywords = []string{"amyloid"}
	papers := []types.Paper{
		{Title: "without", MatchedKeywords: []string{"tau", "pet"}},
		{Title: "with", MatchedKeywords: []string{"tau", "amyloid"}},
		{Title: "case", MatchedKeywords: []string{"Amyloid"}},
	}

	kept := Filter(papers, prof)

	if len(kept) != 2 {
		t.Fatalf("kept %d papers, want 2", len(kept))
	}
	if kept[0].Title != "with" || kept[1].Title != "case" {
		t.Errorf("kept = [%s %s], want [with case]", kept[0].Title, kept[1].Title)
	}
}

func TestFilterZeroMinKeepsAll(t *testing.T) {
	prof := filterProfile()
	prof.MinKeywordMatches = 0
	papers := []types.Paper{{Title: "nothing matched"}}

	if kept := Filter(papers, prof); len(kept) != 1 {
		t.Errorf("kept %d papers, want 1 with min_keyword_matches=0", len(kept))
	}
}

func TestFilterIdempotent(t *testing.T) {
	prof := filterProfile()
	papers := []types.Paper{
		{Title: "a", MatchedKeywords: []string{"tau", "amyloid"}},
		{Title: "b", MatchedKeywords: []string{"tau"}},
		{Title: "c", MatchedKeywords: []string{"tau", "pet"}},
	}

	once := Filter(papers, prof)
	twice := Filter(once, prof)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Filter not idempotent: first %v, second %v", once, twice)
	}
}
