// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes text rows into a PDF document using the standard
// (core) fonts, which carry WinAnsi encoded text.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/textpdf/internal/transcode"
	"github.com/pdiddy/textpdf/pkg/types"
)

// coreEncoding is the byte encoding of fpdf's core fonts.
const coreEncoding = "cp1252"

const defaultCreator = "textpdf"

// PDF accumulates rows on one or more pages. Pages are added automatically
// when a row does not fit above the bottom margin.
type PDF struct {
	doc  *fpdf.Fpdf
	page types.PageConfig
	enc  *transcode.Transcoder
	rows int
}

// New creates an empty document with one page and the configured font.
// It returns an error if the page size, unit or font is not recognised.
func New(page types.PageConfig, meta types.MetadataConfig) (*PDF, error) {
	enc, err := transcode.New(coreEncoding)
	if err != nil {
		return nil, err
	}

	doc := fpdf.New(page.Orientation, page.Unit, page.Size, "")
	if meta.Title != "" {
		doc.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		doc.SetAuthor(meta.Author, true)
	}
	creator := meta.Creator
	if creator == "" {
		creator = defaultCreator
	}
	doc.SetCreator(creator, true)
	doc.AddPage()
	doc.SetFont(page.Font, "", page.FontSize)
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("setting up document: %w", err)
	}

	return &PDF{doc: doc, page: page, enc: enc}, nil
}

// SetCreationDate fixes the creation and modification dates, for
// reproducible output.
func (p *PDF) SetCreationDate(t time.Time) {
	p.doc.SetCreationDate(t)
	p.doc.SetModificationDate(t)
}

// AddRow writes text as one fixed-size cell and moves to the start of the
// next line. text is UTF-8; characters outside the core font encoding are
// dropped.
func (p *PDF) AddRow(text string) {
	encoded, err := p.enc.Encode(text)
	if err != nil {
		encoded = transcode.ASCII(text)
	}
	p.doc.CellFormat(p.page.CellWidth, p.page.CellHeight, encoded, "", 1, "", false, 0, "")
	p.rows++
}

// Rows returns the number of rows added.
func (p *PDF) Rows() int { return p.rows }

// Pages returns the number of pages in the document.
func (p *PDF) Pages() int { return p.doc.PageCount() }

// Write serializes the document to w. The document cannot be modified
// afterwards.
func (p *PDF) Write(w io.Writer) error {
	if err := p.doc.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

// WriteFile serializes the document and writes it to path, replacing any
// existing file. Nothing is written if serialization fails.
func (p *PDF) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
