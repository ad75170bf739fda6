// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-radar/internal/export"
	"github.com/pdiddy/paper-radar/internal/fetch"
	"github.com/pdiddy/paper-radar/internal/profile"
	"github.com/pdiddy/paper-radar/internal/secrets"
	"github.com/pdiddy/paper-radar/internal/source"
	"github.com/pdiddy/paper-radar/internal/store"
	"github.com/pdiddy/paper-radar/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and rank recent papers against the research profile",
	Long: `Fetch queries the enabled sources concurrently, scores every paper against
the research profile, filters and deduplicates the merged set, and prints
the ranked shortlist. A failed source degrades the result instead of
aborting it: its papers are missing and a warning names the source.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("profile", "radar-profile.yaml", "research profile YAML file")
	fetchCmd.Flags().String("sources", "pubmed,arxiv,biorxiv,medrxiv", "comma-separated sources to query")
	fetchCmd.Flags().String("mode", "standard", "search mode preset: "+strings.Join(types.ModeNames(), ", "))
	fetchCmd.Flags().Int("limit", 50, "maximum papers to display")
	fetchCmd.Flags().Duration("source-timeout", 2*time.Minute, "per-source fetch timeout")
	fetchCmd.Flags().Bool("json", false, "output papers as JSON")
	fetchCmd.Flags().Bool("csv", false, "output papers as CSV")
	fetchCmd.Flags().Bool("csl", false, "output papers as CSL-YAML")
	fetchCmd.Flags().Bool("progress", false, "report per-source progress on stderr")
	fetchCmd.Flags().String("save", "", "save the run to a YAML file")
	fetchCmd.Flags().Bool("archive", false, "record the run in the local archive")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	profilePath, _ := flags.GetString("profile")
	prof, err := profile.Load(profilePath)
	if err != nil {
		return err
	}

	modeName, _ := flags.GetString("mode")
	mode, ok := types.ModeByName(modeName)
	if !ok {
		return fmt.Errorf("unknown search mode %q (choose from: %s)", modeName, strings.Join(types.ModeNames(), ", "))
	}

	sourcesFlag, _ := flags.GetString("sources")
	enabled := make(map[types.Source]bool)
	for _, name := range strings.Split(sourcesFlag, ",") {
		src, ok := types.ParseSource(name)
		if !ok {
			return fmt.Errorf("unknown source %q", name)
		}
		enabled[src] = true
	}
	req := types.FetchRequest{Enabled: enabled, Mode: mode}

	cfg := types.HTTPConfig{
		Timeout:   viper.GetDuration("http.timeout"),
		UserAgent: viper.GetString("http.user_agent"),
	}
	client := &http.Client{Timeout: cfg.Timeout}
	ncbiKey := secrets.Get(loadedSecrets, "ncbi-api-key")

	adapters := map[types.Source]source.Adapter{
		types.SourcePubMed:  source.NewPubMed(client, cfg, ncbiKey),
		types.SourceArxiv:   &source.ArxivAdapter{Client: client, Cfg: cfg},
		types.SourceBiorxiv: &source.BiorxivAdapter{Client: client, Cfg: cfg, Server: types.SourceBiorxiv},
		types.SourceMedrxiv: &source.BiorxivAdapter{Client: client, Cfg: cfg, Server: types.SourceMedrxiv},
	}

	limit, _ := flags.GetInt("limit")
	timeout, _ := flags.GetDuration("source-timeout")
	opts := fetch.Options{
		SourceTimeout: timeout,
		Limit:         limit,
		Warnings:      os.Stderr,
	}
	if showProgress, _ := flags.GetBool("progress"); showProgress {
		opts.Progress = func(src types.Source, fetched int) {
			fmt.Fprintf(os.Stderr, "%s: %d records\n", src, fetched)
		}
	}

	res, err := fetch.FetchAndRank(cmd.Context(), prof, req, adapters, opts)
	if err != nil {
		return err
	}

	if path, _ := flags.GetString("save"); path != "" {
		if err := fetch.WriteRunFile(path, req, limit, res); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved run to", path)
	}

	if doArchive, _ := flags.GetBool("archive"); doArchive {
		s, err := store.Open(viper.GetString("archive.dir"))
		if err != nil {
			return err
		}
		defer s.Close()
		summary, err := s.RecordRun(cmd.Context(), res, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Archived run %d: %d new paper(s)\n", summary.RunID, summary.NewPapers)
	}

	out := cmd.OutOrStdout()
	jsonOut, _ := flags.GetBool("json")
	csvOut, _ := flags.GetBool("csv")
	cslOut, _ := flags.GetBool("csl")
	switch {
	case jsonOut:
		return export.FormatJSON(res.Papers, out)
	case csvOut:
		return export.FormatCSV(res.Papers, out)
	case cslOut:
		return export.FormatCSL(res.Papers, out)
	}
	export.FormatTable(res, out)
	return nil
}
