// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/textpdf/pkg/types"
)

// Configuration keys, as they appear in textpdf.yaml.
const (
	keyInput       = "conversion.input"
	keyOutput      = "conversion.output"
	keyOutDir      = "conversion.out_dir"
	keyEncoding    = "conversion.encoding"
	keyCompose     = "conversion.compose"
	keyPageSize    = "conversion.size"
	keyOrientation = "conversion.orientation"
	keyUnit        = "conversion.unit"
	keyFont        = "conversion.font"
	keyFontSize    = "conversion.font_size"
	keyCellWidth   = "conversion.cell_width"
	keyCellHeight  = "conversion.cell_height"
	keyTitle       = "conversion.title"
	keyAuthor      = "conversion.author"
	keyCreator     = "conversion.creator"
	keyHistoryDB   = "history.db"
	keyHistoryMax  = "history.limit"
)

func init() {
	d := types.DefaultConversionConfig()
	viper.SetDefault(keyInput, d.Input)
	viper.SetDefault(keyEncoding, d.Encoding)
	viper.SetDefault(keyPageSize, d.Size)
	viper.SetDefault(keyOrientation, d.Orientation)
	viper.SetDefault(keyUnit, d.Unit)
	viper.SetDefault(keyFont, d.Font)
	viper.SetDefault(keyFontSize, d.FontSize)
	viper.SetDefault(keyCellWidth, d.CellWidth)
	viper.SetDefault(keyCellHeight, d.CellHeight)
	viper.SetDefault(keyHistoryMax, 20)
}

// loadConfig assembles the effective configuration from flags, environment,
// config file and defaults, in that order of precedence.
func loadConfig() types.Config {
	return types.Config{
		Conversion: types.ConversionConfig{
			PageConfig: types.PageConfig{
				Size:        viper.GetString(keyPageSize),
				Orientation: viper.GetString(keyOrientation),
				Unit:        viper.GetString(keyUnit),
				Font:        viper.GetString(keyFont),
				FontSize:    viper.GetFloat64(keyFontSize),
				CellWidth:   viper.GetFloat64(keyCellWidth),
				CellHeight:  viper.GetFloat64(keyCellHeight),
			},
			MetadataConfig: types.MetadataConfig{
				Title:   viper.GetString(keyTitle),
				Author:  viper.GetString(keyAuthor),
				Creator: viper.GetString(keyCreator),
			},
			Input:    viper.GetString(keyInput),
			Output:   viper.GetString(keyOutput),
			OutDir:   viper.GetString(keyOutDir),
			Encoding: viper.GetString(keyEncoding),
			Compose:  viper.GetBool(keyCompose),
		},
		History: types.HistoryConfig{
			DB:    viper.GetString(keyHistoryDB),
			Limit: viper.GetInt(keyHistoryMax),
		},
	}
}
