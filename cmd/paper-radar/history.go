// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-radar/internal/export"
	"github.com/pdiddy/paper-radar/internal/store"
	"github.com/pdiddy/paper-radar/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history <query terms>",
	Short: "Search the local paper archive",
	Long: `History searches the titles and abstracts of every paper recorded by
"fetch --archive", without touching the network.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(viper.GetString("archive.dir"))
		if err != nil {
			return err
		}
		defer s.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		papers, err := s.Search(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		if len(papers) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No archived papers matched.")
			return nil
		}

		export.FormatTable(types.FetchResult{
			Papers:            papers,
			TotalBeforeFilter: len(papers),
			TotalAfterFilter:  len(papers),
		}, cmd.OutOrStdout())
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum papers to display")
	rootCmd.AddCommand(historyCmd)
}
