// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/textpdf/internal/normalize"
	"github.com/pdiddy/textpdf/internal/transcode"
)

// maxLineSize bounds a single input line.
const maxLineSize = 16 << 20

// Document receives one row per input line. render.PDF implements it.
type Document interface {
	AddRow(text string)
}

// Options tunes the per-line pipeline.
type Options struct {
	// Compose applies NFC composition before punctuation substitution.
	Compose bool
}

// Stats summarizes a run of Lines.
type Stats struct {
	Rows      int
	Dropped   int
	Fallbacks int
}

// Row prepares one line for output: punctuation substitution, narrowing to
// the target encoding (ASCII on failure), then whitespace stripping. Stripping
// runs last so that whitespace left behind by dropped characters goes too.
func Row(line string, tr *transcode.Transcoder, opts Options) (row string, dropped int, fellBack bool) {
	if opts.Compose {
		line = normalize.Compose(line)
	}
	line = normalize.Replace(line)
	narrowed, dropped, fellBack := tr.Line(line)
	return normalize.Strip(narrowed), dropped, fellBack
}

// Lines reads r line by line and adds one row per line to doc, in input
// order. Lines end at "\n", "\r\n" or a lone "\r". A final line without a
// terminator still counts; a trailing terminator does not add an empty row.
func Lines(ctx context.Context, r io.Reader, tr *transcode.Transcoder, doc Document, opts Options) (Stats, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sc.Split(scanLines)

	var stats Stats
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		row, dropped, fellBack := Row(sc.Text(), tr, opts)
		doc.AddRow(row)
		stats.Rows++
		stats.Dropped += dropped
		if fellBack {
			stats.Fallbacks++
		}
	}
	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("reading line %d: %w", stats.Rows+1, err)
	}
	return stats, nil
}

// scanLines is a bufio.SplitFunc that accepts all three common line endings.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// A '\r' at the end of the buffer may be half of "\r\n".
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
