// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// biorxivAPIBase is the bioRxiv/medRxiv details endpoint. Declared as a
// var so tests can substitute an httptest server.
var biorxivAPIBase = "https://api.biorxiv.org/details"

// biorxivPageSize is the fixed page size of the details API.
const biorxivPageSize = 100

// BiorxivAdapter pages the bioRxiv/medRxiv details API over a date window.
// The same implementation serves both servers; Server selects which. The
// API has no keyword search, so the adapter returns the whole window and
// leaves relevance to the scoring pipeline.
type BiorxivAdapter struct {
	Client *http.Client
	Cfg    types.HTTPConfig

	// Server is SourceBiorxiv or SourceMedrxiv.
	Server types.Source
}

// Name returns the adapter identifier.
func (a *BiorxivAdapter) Name() types.Source { return a.Server }

// Fetch walks the cursor-paged collection for the lookback window.
func (a *BiorxivAdapter) Fetch(ctx context.Context, q Query) ([]RawRecord, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -q.DaysBack)

	var out []RawRecord
	for cursor := 0; q.MaxResults <= 0 || len(out) < q.MaxResults; cursor += biorxivPageSize {
		reqURL := fmt.Sprintf("%s/%s/%s/%s/%d",
			biorxivAPIBase, a.Server, from.Format("2006-01-02"), to.Format("2006-01-02"), cursor)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", a.Cfg.UserAgent)

		resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
		if err != nil {
			return nil, fmt.Errorf("%s API request: %w", a.Server, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("%s API returned HTTP %d", a.Server, resp.StatusCode)
		}

		var page biorxivResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s response: %w", a.Server, err)
		}
		if len(page.Collection) == 0 {
			break
		}

		for i := range page.Collection {
			item := page.Collection[i]
			item.server = a.Server
			out = append(out, &item)
		}
		q.report(len(out))

		if len(page.Collection) < biorxivPageSize {
			break
		}
	}

	if q.MaxResults > 0 && len(out) > q.MaxResults {
		out = out[:q.MaxResults]
	}
	return out, nil
}

// Details API structures. biorxivItem implements RawRecord.

type biorxivResponse struct {
	Collection []biorxivItem `json:"collection"`
}

// biorxivItem is one record from the details API. The payload does not
// carry the server name, so the adapter tags each item.
type biorxivItem struct {
	DOI      string `json:"doi"`
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Date     string `json:"date"`
	Abstract string `json:"abstract"`
	Category string `json:"category"`

	server types.Source
}

// Source tags the record for the Normalizer.
func (r *biorxivItem) Source() types.Source {
	if r.server == "" {
		return types.SourceBiorxiv
	}
	return r.server
}

func (r *biorxivItem) Normalize() (types.Paper, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return types.Paper{}, ErrMissingTitle
	}

	p := types.Paper{
		Title:    title,
		Abstract: strings.TrimSpace(r.Abstract),
		Source:   r.Source(),
		DOI:      strings.TrimSpace(r.DOI),
		Authors:  joinAuthorList(r.Authors),
	}

	if t, err := time.Parse("2006-01-02", r.Date); err == nil {
		p.Published = t
	}
	if p.DOI != "" {
		host := "www.biorxiv.org"
		if p.Source == types.SourceMedrxiv {
			host = "www.medrxiv.org"
		}
		p.URL = fmt.Sprintf("https://%s/content/%s", host, p.DOI)
	}
	return p, nil
}

// joinAuthorList rewrites the API's semicolon-separated author string into
// the canonical comma-joined display form.
func joinAuthorList(raw string) string {
	var names []string
	for _, part := range strings.Split(raw, ";") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
