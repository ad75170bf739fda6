// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/paper-radar/pkg/types"
)

func TestRunFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	mode, _ := types.ModeByName("brief")
	req := types.FetchRequest{
		Enabled: map[types.Source]bool{types.SourcePubMed: true, types.SourceBiorxiv: true},
		Mode:    mode,
	}
	res := types.FetchResult{
		Papers: []types.Paper{{
			Title:           "Tau imaging study",
			Authors:         "Doe J, Roe A",
			Source:          types.SourcePubMed,
			Journal:         "Nature",
			Published:       time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			DOI:             "10.1038/x.1",
			RelevanceScore:  4.2,
			MatchedKeywords: []string{"tau"},
			HighImpact:      true,
		}},
		Errors:            []types.SourceError{{Source: types.SourceBiorxiv, Message: "timeout"}},
		TotalBeforeFilter: 10,
		TotalAfterFilter:  4,
		DuplicatesRemoved: 2,
		SkippedRecords:    1,
	}

	if err := WriteRunFile(path, req, 50, res); err != nil {
		t.Fatalf("WriteRunFile() error: %v", err)
	}

	rf, err := ReadRunFile(path)
	if err != nil {
		t.Fatalf("ReadRunFile() error: %v", err)
	}

	if rf.Request.Mode != "brief" || rf.Request.Limit != 50 {
		t.Errorf("Request = %+v, want mode brief limit 50", rf.Request)
	}
	// Sources serialize in canonical order regardless of map iteration.
	want := []types.Source{types.SourcePubMed, types.SourceBiorxiv}
	if len(rf.Request.Sources) != 2 || rf.Request.Sources[0] != want[0] || rf.Request.Sources[1] != want[1] {
		t.Errorf("Sources = %v, want %v", rf.Request.Sources, want)
	}

	if len(rf.Papers) != 1 {
		t.Fatalf("got %d papers, want 1", len(rf.Papers))
	}
	p := rf.Papers[0]
	if p.Title != "Tau imaging study" || p.DOI != "10.1038/x.1" || !p.HighImpact {
		t.Errorf("paper did not survive the round trip: %+v", p)
	}
	if p.RelevanceScore != 4.2 {
		t.Errorf("RelevanceScore = %g, want 4.2", p.RelevanceScore)
	}

	s := rf.Summary
	if s.TotalBeforeFilter != 10 || s.TotalAfterFilter != 4 || s.DuplicatesRemoved != 2 || s.SkippedRecords != 1 {
		t.Errorf("Summary = %+v", s)
	}
	if len(s.SourceErrors) != 1 || s.SourceErrors[0].Source != types.SourceBiorxiv {
		t.Errorf("SourceErrors = %v", s.SourceErrors)
	}
	if s.Timestamp.IsZero() {
		t.Error("Timestamp not recorded")
	}
}

func TestReadRunFileMissing(t *testing.T) {
	if _, err := ReadRunFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("ReadRunFile() on missing file should fail")
	}
}
