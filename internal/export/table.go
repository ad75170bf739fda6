// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders fetch results for the caller: console table,
// JSON, CSV, and CSL-YAML. Exporters read only the canonical Paper fields.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// FormatTable writes the result as a human-readable table to w, followed by
// run statistics and per-source failure warnings.
func FormatTable(res types.FetchResult, w io.Writer) {
	if len(res.Papers) == 0 {
		fmt.Fprintln(w, "No papers matched the profile.")
	} else {
		fmt.Fprintf(w, "%-4s  %-56s  %-20s  %-10s  %-6s  %-3s  %s\n",
			"Rank", "Title", "Authors", "Date", "Score", "HI", "Source")
		fmt.Fprintln(w, strings.Repeat("-", 116))

		for i, p := range res.Papers {
			title := p.Title
			if len(title) > 56 {
				title = title[:53] + "..."
			}
			date := ""
			if !p.Published.IsZero() {
				date = p.Published.Format("2006-01-02")
			}
			hi := ""
			if p.HighImpact {
				hi = "*"
			}
			fmt.Fprintf(w, "%-4d  %-56s  %-20s  %-10s  %-6.2f  %-3s  %s\n",
				i+1, title, formatAuthors(p.Authors), date, p.RelevanceScore, hi, p.Source)
		}
	}

	fmt.Fprintf(w, "\n%d of %d papers kept", res.TotalAfterFilter, res.TotalBeforeFilter)
	if res.DuplicatesRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", res.DuplicatesRemoved)
	}
	fmt.Fprintln(w)

	for _, e := range res.Errors {
		fmt.Fprintf(w, "warning: %s\n", e.Error())
	}
}

// formatAuthors shortens the joined author string for one table cell.
func formatAuthors(authors string) string {
	names := strings.Split(authors, ", ")
	switch {
	case authors == "":
		return ""
	case len(names) == 1:
		return truncate(names[0], 20)
	default:
		return truncate(names[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
