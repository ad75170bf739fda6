// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// arxivPageSize is how many entries one API call requests.
const arxivPageSize = 200

// ArxivAdapter queries the arXiv Atom API, newest submissions first, and
// stops at the lookback cutoff.
type ArxivAdapter struct {
	Client *http.Client
	Cfg    types.HTTPConfig
}

// Name returns the adapter identifier.
func (a *ArxivAdapter) Name() types.Source { return types.SourceArxiv }

// Fetch pages through the feed until MaxResults, the cutoff date, or the
// end of the feed.
func (a *ArxivAdapter) Fetch(ctx context.Context, q Query) ([]RawRecord, error) {
	query := buildArxivQuery(q.Keywords)
	if query == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}
	cutoff := time.Now().AddDate(0, 0, -q.DaysBack)

	var out []RawRecord
	for start := 0; start < q.MaxResults; start += arxivPageSize {
		count := arxivPageSize
		if remaining := q.MaxResults - start; remaining < count {
			count = remaining
		}

		reqURL := fmt.Sprintf("%s?search_query=%s&start=%d&max_results=%d&sortBy=submittedDate&sortOrder=descending",
			arxivAPIBase, query, start, count)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", a.Cfg.UserAgent)

		resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
		if err != nil {
			return nil, fmt.Errorf("arXiv API request: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
		}

		var feed arxivFeed
		err = xml.NewDecoder(resp.Body).Decode(&feed)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing arXiv response: %w", err)
		}
		if len(feed.Entries) == 0 {
			break
		}

		pastCutoff := false
		for i := range feed.Entries {
			entry := &feed.Entries[i]
			if t, err := time.Parse(time.RFC3339, entry.Published); err == nil && t.Before(cutoff) {
				// Entries are sorted newest first; everything after
				// this one is older still.
				pastCutoff = true
				break
			}
			out = append(out, entry)
		}
		q.report(len(out))

		if pastCutoff || len(feed.Entries) < count {
			break
		}
	}
	return out, nil
}

// buildArxivQuery ORs the keywords as quoted all-field phrases.
func buildArxivQuery(keywords []string) string {
	var parts []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		parts = append(parts, "all:"+url.QueryEscape(`"`+kw+`"`))
	}
	return strings.Join(parts, "+OR+")
}

// arXiv Atom feed structures. arxivEntry implements RawRecord.

type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	DOI       string        `xml:"doi"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// Source tags the record for the Normalizer.
func (*arxivEntry) Source() types.Source { return types.SourceArxiv }

func (r *arxivEntry) Normalize() (types.Paper, error) {
	title := strings.Join(strings.Fields(r.Title), " ")
	if title == "" {
		return types.Paper{}, ErrMissingTitle
	}

	p := types.Paper{
		Title:    title,
		Abstract: strings.TrimSpace(r.Summary),
		Source:   types.SourceArxiv,
		ArxivID:  extractArxivID(r.ID),
		DOI:      strings.TrimSpace(r.DOI),
	}

	var authors []string
	for _, a := range r.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}
	p.Authors = strings.Join(authors, ", ")

	if t, err := time.Parse(time.RFC3339, r.Published); err == nil {
		p.Published = t
	}
	if p.ArxivID != "" {
		p.URL = "https://arxiv.org/abs/" + p.ArxivID
	}
	return p, nil
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
