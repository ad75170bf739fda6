// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names follow the CSL-YAML schema so the output is
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID               string    `yaml:"id"`
	Type             string    `yaml:"type"`
	Title            string    `yaml:"title"`
	Author           []CSLName `yaml:"author,omitempty"`
	Abstract         string    `yaml:"abstract,omitempty"`
	ContainerTitle   string    `yaml:"container-title,omitempty"`
	Volume           string    `yaml:"volume,omitempty"`
	Issue            string    `yaml:"issue,omitempty"`
	Issued           *CSLDate  `yaml:"issued,omitempty"`
	DOI              string    `yaml:"DOI,omitempty"`
	PMID             string    `yaml:"PMID,omitempty"`
	URL              string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes papers as a CSL-YAML list to w.
func FormatCSL(papers []types.Paper, w io.Writer) error {
	items := make([]CSLItem, len(papers))
	for i, p := range papers {
		items[i] = toCSLItem(p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Paper to a CSLItem. Preprints map to the
// article type, journal papers to article-journal.
func toCSLItem(p types.Paper) CSLItem {
	item := CSLItem{
		ID:             cslID(p),
		Type:           "article-journal",
		Title:          p.Title,
		Abstract:       p.Abstract,
		ContainerTitle: p.Journal,
		Volume:         p.Volume,
		Issue:          p.Issue,
		DOI:            p.DOI,
		PMID:           p.PMID,
		URL:            p.URL,
	}
	if p.Source.IsPreprint() {
		item.Type = "article"
	}
	for _, name := range strings.Split(p.Authors, ", ") {
		if name != "" {
			item.Author = append(item.Author, CSLName{Literal: name})
		}
	}
	if !p.Published.IsZero() {
		item.Issued = &CSLDate{DateParts: [][]int{{
			p.Published.Year(), int(p.Published.Month()), p.Published.Day(),
		}}}
	}
	return item
}

// cslID derives a citation key from the strongest identifier.
func cslID(p types.Paper) string {
	switch {
	case p.DOI != "":
		return p.DOI
	case p.PMID != "":
		return "pmid" + p.PMID
	case p.ArxivID != "":
		return "arxiv" + p.ArxivID
	}
	return strings.Join(strings.Fields(strings.ToLower(p.Title)), "-")
}
