// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-radar/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the research profile",
}

var profileInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example research profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "radar-profile.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", path)
		}
		if err := os.WriteFile(path, []byte(exampleProfile), 0o644); err != nil {
			return fmt.Errorf("writing profile: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
		return nil
	},
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Load and validate a research profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "radar-profile.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		prof, err := profile.Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d keywords, %d must-have, min matches %d)\n",
			path, len(prof.Keywords), len(prof.MustHaveKeywords), prof.MinKeywordMatches)
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileInitCmd)
	profileCmd.AddCommand(profileValidateCmd)
	rootCmd.AddCommand(profileCmd)
}

const exampleProfile = `# paper-radar research profile
keywords:
  - "Alzheimer's disease"
  - PET
  - MRI
  - tau
  - amyloid

keyword_priority:
  PET: high
  tau: medium

# must_have_keywords:
#   - "Alzheimer's disease"

min_keyword_matches: 2

scoring:
  k1: 1.5
  title_bonus: 0.5

target_journals:
  exact:
    - Nature
    - Science
  family:
    - Nature
    - Lancet
  contains:
    - neurology
    - neuroimage

journal_exclusions:
  - veterinary

journal_scoring:
  enabled: true
  boosts:
    one: 0.5
    two: 1.3
    three: 2.8
    four: 3.7
    five_or_more: 5.1
`
