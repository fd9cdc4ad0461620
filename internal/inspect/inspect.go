// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect reads the rows back out of a generated PDF. Each text
// object on a page is reported as one row, in content-stream order. Blank
// rows produce no text object and are not reported.
package inspect

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Page holds the rows found on one page.
type Page struct {
	Number int      `json:"number" yaml:"number"`
	Rows   []string `json:"rows" yaml:"rows"`
}

// Document is the text content of a PDF.
type Document struct {
	Pages []Page `json:"pages" yaml:"pages"`
}

// Rows returns the rows of every page, in order.
func (d Document) Rows() []string {
	var rows []string
	for _, p := range d.Pages {
		rows = append(rows, p.Rows...)
	}
	return rows
}

// Read parses a PDF from r. size is the total length of the data.
func Read(r io.ReaderAt, size int64) (Document, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return Document{}, fmt.Errorf("parsing PDF: %w", err)
	}

	var doc Document
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return Document{}, fmt.Errorf("reading page %d: %w", i, err)
		}
		doc.Pages = append(doc.Pages, Page{Number: i, Rows: splitRows(text)})
	}
	return doc, nil
}

// ReadBytes parses an in-memory PDF.
func ReadBytes(data []byte) (Document, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

// ReadFile parses the PDF at path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Document{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return Read(f, info.Size())
}

// splitRows turns the plain-text rendering of a page into rows. The
// extractor starts every text object with a newline. Objects without text
// (font selection, blank rows) are skipped.
func splitRows(text string) []string {
	var rows []string
	for _, row := range strings.Split(text, "\n") {
		if row != "" {
			rows = append(rows, row)
		}
	}
	return rows
}
