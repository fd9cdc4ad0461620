// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Defaults for a conversion run. They reproduce the layout of the original
// one-off documentation export: A4 portrait in millimetres, Arial 12pt,
// 200x10 rows, Latin-1 text.
const (
	DefaultInput       = "learn_share_documentation.txt"
	DefaultOutput      = "learn_share_documentation.pdf"
	DefaultFont        = "Arial"
	DefaultFontSize    = 12.0
	DefaultCellWidth   = 200.0
	DefaultCellHeight  = 10.0
	DefaultPageSize    = "A4"
	DefaultOrientation = "P"
	DefaultUnit        = "mm"
	DefaultEncoding    = "latin1"
)

// PageConfig controls the page geometry and font of the generated document.
type PageConfig struct {
	// Size is a page size name understood by the PDF writer (A4, Letter, ...).
	Size string `json:"size" yaml:"size"`

	// Orientation is "P" (portrait) or "L" (landscape).
	Orientation string `json:"orientation" yaml:"orientation"`

	// Unit is the unit for CellWidth and CellHeight: mm, pt, cm or in.
	Unit string `json:"unit" yaml:"unit"`

	// Font is a core font family (Arial, Helvetica, Times, Courier).
	Font string `json:"font" yaml:"font"`

	// FontSize is the font size in points.
	FontSize float64 `json:"font_size" yaml:"font_size"`

	// CellWidth is the width of every row.
	CellWidth float64 `json:"cell_width" yaml:"cell_width"`

	// CellHeight is the height of every row.
	CellHeight float64 `json:"cell_height" yaml:"cell_height"`
}

// MetadataConfig holds optional document information entries.
type MetadataConfig struct {
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Author  string `json:"author,omitempty" yaml:"author,omitempty"`
	Creator string `json:"creator,omitempty" yaml:"creator,omitempty"`
}

// ConversionConfig holds settings for one conversion run.
type ConversionConfig struct {
	PageConfig     `yaml:",inline"`
	MetadataConfig `yaml:",inline"`

	// Input is the text file to read.
	Input string `json:"input" yaml:"input"`

	// Output is the PDF file to write. When empty the output path is derived
	// from Input (and OutDir, if set).
	Output string `json:"output" yaml:"output"`

	// OutDir places derived output files in this directory instead of next
	// to their inputs.
	OutDir string `json:"out_dir,omitempty" yaml:"out_dir,omitempty"`

	// Encoding names the single-byte target encoding (latin1, cp1252, latin9).
	Encoding string `json:"encoding" yaml:"encoding"`

	// Compose applies Unicode NFC composition before narrowing, so that
	// decomposed accents survive as their precomposed Latin-1 forms.
	Compose bool `json:"compose" yaml:"compose"`
}

// HistoryConfig controls the optional run ledger.
type HistoryConfig struct {
	// DB is the SQLite database path. Empty disables the ledger.
	DB string `json:"db" yaml:"db"`

	// Limit is the default number of runs listed (default 20).
	Limit int `json:"limit" yaml:"limit"`
}

// Config groups all settings read from textpdf.yaml.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	History    HistoryConfig    `json:"history" yaml:"history"`
}

// DefaultConversionConfig returns the configuration used when nothing is
// overridden.
func DefaultConversionConfig() ConversionConfig {
	return ConversionConfig{
		PageConfig: PageConfig{
			Size:        DefaultPageSize,
			Orientation: DefaultOrientation,
			Unit:        DefaultUnit,
			Font:        DefaultFont,
			FontSize:    DefaultFontSize,
			CellWidth:   DefaultCellWidth,
			CellHeight:  DefaultCellHeight,
		},
		Input:    DefaultInput,
		Output:   DefaultOutput,
		Encoding: DefaultEncoding,
	}
}
