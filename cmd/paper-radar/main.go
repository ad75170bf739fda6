// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-radar CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-radar/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the paper-radar CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-radar",
	Short: "Track new academic papers matching a research profile",
	Long: `paper-radar aggregates recent paper metadata from PubMed, arXiv, bioRxiv,
and medRxiv, scores every paper against a keyword/journal research profile,
and prints a ranked shortlist.

The profile lives in a YAML file (see "paper-radar profile init"); fetches
run against a search-mode preset (brief, standard, extended) that bundles
per-source result caps and a lookback window.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-radar.yaml or ~/.config/paper-radar/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-radar")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-radar"))
		}
	}

	viper.SetEnvPrefix("PAPER_RADAR")
	viper.AutomaticEnv()

	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.user_agent", "paper-radar/"+version)
	viper.SetDefault("archive.dir", "archive")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
