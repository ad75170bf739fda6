// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// NCBI E-utilities endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	pubmedSearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	pubmedFetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

// pubmedBatchSize is how many PMIDs one efetch call requests.
const pubmedBatchSize = 200

// PubMedAdapter queries NCBI E-utilities: esearch resolves the keyword
// query to PMIDs, efetch retrieves article XML in batches.
type PubMedAdapter struct {
	Client *http.Client
	Cfg    types.HTTPConfig

	// APIKey raises the NCBI request budget from 3/s to 10/s.
	APIKey string

	limiter *rate.Limiter
}

// NewPubMed builds a PubMed adapter with a rate limiter sized to the NCBI
// policy for the given key.
func NewPubMed(client *http.Client, cfg types.HTTPConfig, apiKey string) *PubMedAdapter {
	rps := rate.Limit(3)
	if apiKey != "" {
		rps = 10
	}
	return &PubMedAdapter{
		Client:  client,
		Cfg:     cfg,
		APIKey:  apiKey,
		limiter: rate.NewLimiter(rps, 1),
	}
}

// Name returns the adapter identifier.
func (a *PubMedAdapter) Name() types.Source { return types.SourcePubMed }

// Fetch runs esearch then pages efetch until MaxResults or the ID list is
// exhausted.
func (a *PubMedAdapter) Fetch(ctx context.Context, q Query) ([]RawRecord, error) {
	ids, err := a.search(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(ids) > q.MaxResults && q.MaxResults > 0 {
		ids = ids[:q.MaxResults]
	}

	var out []RawRecord
	for start := 0; start < len(ids); start += pubmedBatchSize {
		end := start + pubmedBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch, err := a.fetchBatch(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
		q.report(len(out))
	}
	return out, nil
}

// search runs esearch and returns the matching PMIDs, newest first.
func (a *PubMedAdapter) search(ctx context.Context, q Query) ([]string, error) {
	params := url.Values{
		"db":       {"pubmed"},
		"term":     {buildPubMedTerm(q.Keywords)},
		"retmax":   {strconv.Itoa(q.MaxResults)},
		"retmode":  {"json"},
		"sort":     {"date"},
		"datetype": {"edat"},
		"reldate":  {strconv.Itoa(q.DaysBack)},
	}
	if a.APIKey != "" {
		params.Set("api_key", a.APIKey)
	}

	body, err := a.get(ctx, pubmedSearchBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("PubMed esearch: %w", err)
	}
	defer body.Close()

	var sr pubmedSearchResponse
	if err := json.NewDecoder(body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	return sr.Result.IDList, nil
}

// fetchBatch retrieves full article XML for one batch of PMIDs.
func (a *PubMedAdapter) fetchBatch(ctx context.Context, ids []string) ([]RawRecord, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
	}
	if a.APIKey != "" {
		params.Set("api_key", a.APIKey)
	}

	body, err := a.get(ctx, pubmedFetchBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("PubMed efetch: %w", err)
	}
	defer body.Close()

	var set pubmedArticleSet
	if err := xml.NewDecoder(body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	out := make([]RawRecord, 0, len(set.Articles))
	for i := range set.Articles {
		out = append(out, &set.Articles[i])
	}
	return out, nil
}

// get waits on the rate limiter, issues the request with retry, and checks
// the status.
func (a *PubMedAdapter) get(ctx context.Context, reqURL string) (io.ReadCloser, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("NCBI returned HTTP %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// buildPubMedTerm ORs the keywords as quoted Title/Abstract phrases.
func buildPubMedTerm(keywords []string) string {
	var parts []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%q[Title/Abstract]", kw))
	}
	return strings.Join(parts, " OR ")
}

// E-utilities response structures.

type pubmedSearchResponse struct {
	Result struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

// pubmedArticle is the raw efetch record. It implements RawRecord.
type pubmedArticle struct {
	Citation struct {
		PMID    string `xml:"PMID"`
		Article struct {
			Title    string `xml:"ArticleTitle"`
			Abstract struct {
				Text []string `xml:"AbstractText"`
			} `xml:"Abstract"`
			Journal struct {
				Title string `xml:"Title"`
				Issue struct {
					Volume  string `xml:"Volume"`
					Issue   string `xml:"Issue"`
					PubDate struct {
						Year  string `xml:"Year"`
						Month string `xml:"Month"`
						Day   string `xml:"Day"`
					} `xml:"PubDate"`
				} `xml:"JournalIssue"`
			} `xml:"Journal"`
			Authors struct {
				Author []pubmedAuthor `xml:"Author"`
			} `xml:"AuthorList"`
		} `xml:"Article"`
	} `xml:"MedlineCitation"`
	Data struct {
		IDs []pubmedArticleID `xml:"ArticleIdList>ArticleId"`
	} `xml:"PubmedData"`
}

type pubmedAuthor struct {
	LastName       string `xml:"LastName"`
	ForeName       string `xml:"ForeName"`
	CollectiveName string `xml:"CollectiveName"`
}

type pubmedArticleID struct {
	Type  string `xml:"IdType,attr"`
	Value string `xml:",chardata"`
}

// Source tags the record for the Normalizer.
func (*pubmedArticle) Source() types.Source { return types.SourcePubMed }

func (r *pubmedArticle) Normalize() (types.Paper, error) {
	art := r.Citation.Article
	title := strings.TrimSpace(art.Title)
	if title == "" {
		return types.Paper{}, ErrMissingTitle
	}

	p := types.Paper{
		Title:    title,
		Abstract: strings.TrimSpace(strings.Join(art.Abstract.Text, " ")),
		Source:   types.SourcePubMed,
		Journal:  strings.TrimSpace(art.Journal.Title),
		Volume:   art.Journal.Issue.Volume,
		Issue:    art.Journal.Issue.Issue,
		PMID:     strings.TrimSpace(r.Citation.PMID),
	}

	var authors []string
	for _, a := range art.Authors.Author {
		if name := a.displayName(); name != "" {
			authors = append(authors, name)
		}
	}
	p.Authors = strings.Join(authors, ", ")

	for _, id := range r.Data.IDs {
		if id.Type == "doi" {
			p.DOI = strings.TrimSpace(id.Value)
			break
		}
	}

	pd := art.Journal.Issue.PubDate
	p.Published = parsePubMedDate(pd.Year, pd.Month, pd.Day)

	if p.PMID != "" {
		p.URL = "https://pubmed.ncbi.nlm.nih.gov/" + p.PMID + "/"
	}
	return p, nil
}

func (a pubmedAuthor) displayName() string {
	if a.CollectiveName != "" {
		return strings.TrimSpace(a.CollectiveName)
	}
	name := strings.TrimSpace(a.ForeName + " " + a.LastName)
	return name
}

// parsePubMedDate builds a date from the loosely-typed PubDate fields.
// Month may be numeric ("06") or abbreviated ("Jun"); missing parts
// default to the start of the period.
func parsePubMedDate(year, month, day string) time.Time {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}
	}
	m := time.January
	if month != "" {
		if n, err := strconv.Atoi(month); err == nil && n >= 1 && n <= 12 {
			m = time.Month(n)
		} else if t, err := time.Parse("Jan", month); err == nil {
			m = t.Month()
		}
	}
	d := 1
	if n, err := strconv.Atoi(day); err == nil && n >= 1 && n <= 31 {
		d = n
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
