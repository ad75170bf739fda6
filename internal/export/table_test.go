// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/paper-radar/pkg/types"
)

func sampleResult() types.FetchResult {
	return types.FetchResult{
		Papers: []types.Paper{
			{
				Title:          "Tau PET imaging in early Alzheimer's disease",
				Authors:        "Jane Doe, John Roe, Ann Poe",
				Source:         types.SourcePubMed,
				Published:      time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
				RelevanceScore: 5.16,
				HighImpact:     true,
			},
			{
				Title:          "Amyloid segmentation with transformers",
				Authors:        "Solo Author",
				Source:         types.SourceArxiv,
				RelevanceScore: 2.93,
			},
		},
		TotalBeforeFilter: 40,
		TotalAfterFilter:  12,
		DuplicatesRemoved: 3,
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleResult(), &buf)
	out := buf.String()

	if !strings.Contains(out, "Tau PET imaging") {
		t.Error("output missing the first title")
	}
	if !strings.Contains(out, "Jane Doe et al.") {
		t.Errorf("multi-author cell should abbreviate, got:\n%s", out)
	}
	if !strings.Contains(out, "Solo Author") {
		t.Error("single author should print in full")
	}
	if !strings.Contains(out, "2026-08-10") {
		t.Error("output missing the publication date")
	}
	if !strings.Contains(out, "12 of 40 papers kept (3 duplicates removed)") {
		t.Errorf("statistics line wrong:\n%s", out)
	}
	// High-impact marker appears on the first row only.
	lines := strings.Split(out, "\n")
	var first, second string
	for _, line := range lines {
		if strings.HasPrefix(line, "1 ") {
			first = line
		}
		if strings.HasPrefix(line, "2 ") {
			second = line
		}
	}
	if !strings.Contains(first, "*") {
		t.Errorf("first row missing high-impact marker: %q", first)
	}
	if strings.Contains(second, "*") {
		t.Errorf("second row should have no marker: %q", second)
	}
}

func TestFormatTableEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(types.FetchResult{}, &buf)

	if !strings.Contains(buf.String(), "No papers matched") {
		t.Errorf("empty result output:\n%s", buf.String())
	}
}

func TestFormatTableWarnings(t *testing.T) {
	res := types.FetchResult{
		Errors: []types.SourceError{{Source: types.SourceBiorxiv, Message: "HTTP 503"}},
	}
	var buf bytes.Buffer
	FormatTable(res, &buf)

	if !strings.Contains(buf.String(), "warning:") || !strings.Contains(buf.String(), "biorxiv") {
		t.Errorf("failed source not reported:\n%s", buf.String())
	}
}

func TestFormatTableTruncatesLongTitles(t *testing.T) {
	res := types.FetchResult{
		Papers: []types.Paper{{
			Title:  strings.Repeat("word ", 30),
			Source: types.SourceArxiv,
		}},
		TotalBeforeFilter: 1,
		TotalAfterFilter:  1,
	}
	var buf bytes.Buffer
	FormatTable(res, &buf)

	if !strings.Contains(buf.String(), "...") {
		t.Error("long title should be truncated with an ellipsis")
	}
}

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Jane Doe", "Jane Doe"},
		{"Jane Doe, John Roe", "Jane Doe et al."},
		{"A Very Long Single Author Name Here", "A Very Long Singl..."},
	}
	for _, tt := range tests {
		if got := formatAuthors(tt.in); got != tt.want {
			t.Errorf("formatAuthors(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
