// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/textpdf/internal/inspect"
)

var rowsCmd = &cobra.Command{
	Use:   "rows <pdf>",
	Short: "Print the text rows of a PDF",
	Long: `Rows extracts the text of every page of a PDF and prints one row per
line. Blank rows carry no text in the PDF and are not shown. Use it to check
what a conversion produced.`,
	Args: cobra.ExactArgs(1),
	RunE: runRows,
}

func init() {
	rowsCmd.Flags().Bool("pages", false, "print a heading before each page")
	rowsCmd.Flags().Bool("json", false, "output pages and rows as JSON")

	rootCmd.AddCommand(rowsCmd)
}

func runRows(cmd *cobra.Command, args []string) error {
	doc, err := inspect.ReadFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	withPages, _ := cmd.Flags().GetBool("pages")
	for _, page := range doc.Pages {
		if withPages {
			fmt.Fprintf(out, "--- page %d ---\n", page.Number)
		}
		for _, row := range page.Rows {
			fmt.Fprintln(out, row)
		}
	}
	return nil
}
