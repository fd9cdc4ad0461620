// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the textpdf CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the textpdf CLI.
var rootCmd = &cobra.Command{
	Use:   "textpdf",
	Short: "Render plain-text files as simple PDF documents",
	Long: `textpdf turns UTF-8 text files into PDF documents with one fixed-size
row per input line. Typographic punctuation is folded to ASCII, characters
the target single-byte encoding cannot represent are dropped, and every
row is trimmed of surrounding whitespace.

Subcommands: convert renders files, rows prints the rows of a generated
PDF, and history lists past runs when a history database is configured.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./textpdf.yaml or ~/.config/textpdf/textpdf.yaml)")
	rootCmd.PersistentFlags().String("history", "", "SQLite history database (empty disables history)")
	_ = viper.BindPFlag("history.db", rootCmd.PersistentFlags().Lookup("history"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("textpdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "textpdf"))
		}
	}

	// TEXTPDF_CONVERSION_FONT overrides conversion.font, and so on.
	viper.SetEnvPrefix("TEXTPDF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
