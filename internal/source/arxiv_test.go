// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/paper-radar/pkg/types"
)

func arxivFeedXML(entries ...string) string {
	return `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom">` +
		strings.Join(entries, "") + `</feed>`
}

func arxivEntryXML(id, title, published string) string {
	return fmt.Sprintf(`<entry>
  <id>http://arxiv.org/abs/%s</id>
  <title>%s</title>
  <summary>Summary text.</summary>
  <published>%s</published>
  <author><name>Jane Doe</name></author>
  <author><name>John Roe</name></author>
</entry>`, id, title, published)
}

func TestArxivFetch(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -1).UTC().Format(time.RFC3339)
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, arxivFeedXML(
			arxivEntryXML("2608.01234v2", "Deep tau segmentation", recent),
		))
	}))
	defer srv.Close()

	orig := arxivAPIBase
	arxivAPIBase = srv.URL
	defer func() { arxivAPIBase = orig }()

	a := &ArxivAdapter{Client: srv.Client(), Cfg: types.HTTPConfig{UserAgent: "test/0.1"}}
	records, err := a.Fetch(context.Background(), Query{
		Keywords:   []string{"tau", "machine learning"},
		DaysBack:   14,
		MaxResults: 50,
	})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	if !strings.Contains(gotQuery, "sortBy=submittedDate") || !strings.Contains(gotQuery, "sortOrder=descending") {
		t.Errorf("query = %q, missing sort parameters", gotQuery)
	}

	p, err := records[0].Normalize()
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if p.Title != "Deep tau segmentation" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.ArxivID != "2608.01234" {
		t.Errorf("ArxivID = %q, want version suffix stripped", p.ArxivID)
	}
	if p.Authors != "Jane Doe, John Roe" {
		t.Errorf("Authors = %q", p.Authors)
	}
	if p.URL != "https://arxiv.org/abs/2608.01234" {
		t.Errorf("URL = %q", p.URL)
	}
	if p.Source != types.SourceArxiv {
		t.Errorf("Source = %s", p.Source)
	}
}

func TestArxivFetchStopsAtCutoff(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -2).UTC().Format(time.RFC3339)
	old := time.Now().AddDate(0, 0, -60).UTC().Format(time.RFC3339)
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, arxivFeedXML(
			arxivEntryXML("2608.00001v1", "Recent paper", recent),
			arxivEntryXML("2606.00002v1", "Old paper", old),
		))
	}))
	defer srv.Close()

	orig := arxivAPIBase
	arxivAPIBase = srv.URL
	defer func() { arxivAPIBase = orig }()

	a := &ArxivAdapter{Client: srv.Client(), Cfg: types.HTTPConfig{UserAgent: "test/0.1"}}
	records, err := a.Fetch(context.Background(), Query{
		Keywords:   []string{"tau"},
		DaysBack:   14,
		MaxResults: 1000,
	})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1 (older entries cut off)", len(records))
	}
	if calls != 1 {
		t.Errorf("made %d API calls, want 1; paging must stop at the cutoff", calls)
	}
}

func TestArxivFetchEmptyKeywords(t *testing.T) {
	a := &ArxivAdapter{Client: http.DefaultClient}
	if _, err := a.Fetch(context.Background(), Query{MaxResults: 10}); err == nil {
		t.Error("Fetch() with no keywords should fail")
	}
}

func TestBuildArxivQuery(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		want     string
	}{
		{"single", []string{"tau"}, `all:%22tau%22`},
		{"multiple", []string{"tau", "pet"}, `all:%22tau%22+OR+all:%22pet%22`},
		{"phrase escaped", []string{"machine learning"}, `all:%22machine+learning%22`},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildArxivQuery(tt.keywords); got != tt.want {
				t.Errorf("buildArxivQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"http://arxiv.org/abs/cond-mat/0703470v2", "cond-mat/0703470"},
		{"not a url", ""},
	}
	for _, tt := range tests {
		if got := extractArxivID(tt.in); got != tt.want {
			t.Errorf("extractArxivID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArxivNormalizeCollapsesTitleWhitespace(t *testing.T) {
	r := &arxivEntry{ID: "http://arxiv.org/abs/2608.1", Title: "Deep\n  tau   segmentation"}
	p, err := r.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if p.Title != "Deep tau segmentation" {
		t.Errorf("Title = %q, want collapsed whitespace", p.Title)
	}
}
