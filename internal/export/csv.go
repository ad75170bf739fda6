// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// csvHeader lists the canonical Paper fields in export order.
var csvHeader = []string{
	"title", "authors", "journal", "volume", "issue", "published",
	"source", "doi", "pmid", "arxiv_id", "url",
	"relevance_score", "matched_keywords", "high_impact",
}

// FormatCSV writes papers as CSV to w, one row per paper.
func FormatCSV(papers []types.Paper, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, p := range papers {
		published := ""
		if !p.Published.IsZero() {
			published = p.Published.Format("2006-01-02")
		}
		row := []string{
			p.Title, p.Authors, p.Journal, p.Volume, p.Issue, published,
			string(p.Source), p.DOI, p.PMID, p.ArxivID, p.URL,
			strconv.FormatFloat(p.RelevanceScore, 'f', 3, 64),
			strings.Join(p.MatchedKeywords, "; "),
			strconv.FormatBool(p.HighImpact),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatJSON writes papers as indented JSON to w.
func FormatJSON(papers []types.Paper, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}
