// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/textpdf/internal/convert"
	"github.com/pdiddy/textpdf/internal/history"
	"github.com/pdiddy/textpdf/internal/transcode"
	"github.com/pdiddy/textpdf/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [inputs...]",
	Short: "Convert text files to PDF, one row per line",
	Long: `Convert reads each UTF-8 text file and writes a PDF with one fixed-size
row per input line. Without arguments it converts the configured input
(learn_share_documentation.txt by default).

With a single input the PDF goes to --output, or next to the input with a
.pdf extension. With several inputs every output name is derived from its
input and --output is ignored; use --out-dir to collect them.`,
	RunE: runConvert,
}

func init() {
	d := types.DefaultConversionConfig()
	f := convertCmd.Flags()
	f.StringP("output", "o", "", "output PDF (single input only)")
	f.String("out-dir", "", "directory for derived output files")
	f.String("encoding", d.Encoding, fmt.Sprintf("target encoding: %v", transcode.Names()))
	f.Bool("compose", false, "compose decomposed accents (NFC) before narrowing")
	f.String("page-size", d.Size, "page size: A3, A4, A5, Letter, Legal")
	f.String("orientation", d.Orientation, "page orientation: P or L")
	f.String("unit", d.Unit, "unit for cell sizes: mm, pt, cm, in")
	f.String("font", d.Font, "core font family: Arial, Helvetica, Times, Courier")
	f.Float64("font-size", d.FontSize, "font size in points")
	f.Float64("cell-width", d.CellWidth, "row width")
	f.Float64("cell-height", d.CellHeight, "row height")
	f.String("title", "", "document title")
	f.String("author", "", "document author")

	bind := map[string]string{
		"output":      keyOutput,
		"out-dir":     keyOutDir,
		"encoding":    keyEncoding,
		"compose":     keyCompose,
		"page-size":   keyPageSize,
		"orientation": keyOrientation,
		"unit":        keyUnit,
		"font":        keyFont,
		"font-size":   keyFontSize,
		"cell-width":  keyCellWidth,
		"cell-height": keyCellHeight,
		"title":       keyTitle,
		"author":      keyAuthor,
	}
	for flag, key := range bind {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{cfg.Conversion.Input}
	}

	c := &convert.Converter{
		Config: cfg.Conversion,
		Log:    cmd.ErrOrStderr(),
	}

	if cfg.History.DB != "" {
		store, err := history.Open(cfg.History.DB)
		if err != nil {
			return err
		}
		defer store.Close()
		c.Recorder = store
	}

	result := c.Batch(cmd.Context(), inputs)
	if err := cmd.Context().Err(); err != nil {
		return err
	}
	if result.HasFailures() {
		if len(result.Results) == 1 {
			return result.Results[0].Err
		}
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}
