// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// RunFile is the on-disk representation of one fetch run. A saved run can
// be reloaded for display or export without re-querying the APIs.
type RunFile struct {
	Request RunRequest    `yaml:"request"`
	Papers  []types.Paper `yaml:"papers"`
	Summary RunSummary    `yaml:"summary"`
}

// RunRequest stores the fetch parameters in a serializable form.
type RunRequest struct {
	Sources []types.Source `yaml:"sources"`
	Mode    string         `yaml:"mode"`
	Limit   int            `yaml:"limit,omitempty"`
}

// RunSummary stores the run statistics and a timestamp.
type RunSummary struct {
	TotalBeforeFilter int                 `yaml:"total_before_filter"`
	TotalAfterFilter  int                 `yaml:"total_after_filter"`
	DuplicatesRemoved int                 `yaml:"duplicates_removed"`
	SkippedRecords    int                 `yaml:"skipped_records,omitempty"`
	SourceErrors      []types.SourceError `yaml:"source_errors,omitempty"`
	Timestamp         time.Time           `yaml:"timestamp"`
}

// WriteRunFile saves a fetch result and its request parameters to a YAML
// file.
func WriteRunFile(path string, req types.FetchRequest, limit int, res types.FetchResult) error {
	rf := RunFile{
		Request: RunRequest{Mode: req.Mode.Name, Limit: limit},
		Papers:  res.Papers,
		Summary: RunSummary{
			TotalBeforeFilter: res.TotalBeforeFilter,
			TotalAfterFilter:  res.TotalAfterFilter,
			DuplicatesRemoved: res.DuplicatesRemoved,
			SkippedRecords:    res.SkippedRecords,
			SourceErrors:      res.Errors,
			Timestamp:         time.Now(),
		},
	}
	for _, src := range types.AllSources {
		if req.Enabled[src] {
			rf.Request.Sources = append(rf.Request.Sources, src)
		}
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file %s: %w", path, err)
	}
	return &rf, nil
}
