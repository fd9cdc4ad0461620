// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns plain-text files into PDF documents, one row per
// input line, and drives batches of such conversions.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/textpdf/internal/render"
	"github.com/pdiddy/textpdf/internal/transcode"
	"github.com/pdiddy/textpdf/pkg/types"
)

// Recorder receives a history entry for every file converted or failed.
type Recorder interface {
	Record(ctx context.Context, run types.Run) error
}

// Converter converts text files according to Config. Status lines go to
// Log; Recorder and Now are optional.
type Converter struct {
	Config   types.ConversionConfig
	Log      io.Writer
	Recorder Recorder
	Now      func() time.Time
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int
	Results   []types.ConversionResult
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns where the PDF for input goes. An explicit output wins;
// otherwise the input's extension is replaced with .pdf, in outDir when set
// and next to the input otherwise.
func OutputPath(input, output, outDir string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".pdf"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}

// File converts one input to one output using c.Config. The input is fully
// read and rendered before the output is touched, so a missing input never
// creates or truncates the output file.
func (c *Converter) File(ctx context.Context, input, output string) types.ConversionResult {
	started := c.now()
	res := c.convert(ctx, input, output)
	c.record(ctx, res, started)
	return res
}

// Batch converts every input in order. With more than one input, outputs are
// always derived from the input names; a single input honours
// Config.Output.
func (c *Converter) Batch(ctx context.Context, inputs []string) BatchResult {
	var result BatchResult
	for _, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		output := c.Config.Output
		if len(inputs) > 1 {
			output = ""
		}
		res := c.File(ctx, in, OutputPath(in, output, c.Config.OutDir))
		result.Results = append(result.Results, res)
		if res.OK() {
			result.Converted++
		} else {
			result.Failed++
		}
	}
	if len(inputs) > 1 {
		fmt.Fprintf(c.log(), "\nBatch summary: %d converted, %d failed (total: %d)\n",
			result.Converted, result.Failed, result.Total())
	}
	return result
}

func (c *Converter) convert(ctx context.Context, input, output string) types.ConversionResult {
	res := types.ConversionResult{Input: input, Output: output}
	fail := func(err error) types.ConversionResult {
		res.Status = types.ConversionFailed
		res.Err = err
		fmt.Fprintf(c.log(), "failed:  %s (%v)\n", input, err)
		return res
	}

	tr, err := transcode.New(c.Config.Encoding)
	if err != nil {
		return fail(err)
	}

	f, err := os.Open(input)
	if err != nil {
		return fail(fmt.Errorf("opening %s: %w", input, err))
	}
	defer f.Close()

	doc, err := render.New(c.Config.PageConfig, c.Config.MetadataConfig)
	if err != nil {
		return fail(err)
	}
	doc.SetCreationDate(c.now())

	stats, err := Lines(ctx, f, tr, doc, Options{Compose: c.Config.Compose})
	if err != nil {
		return fail(fmt.Errorf("converting %s: %w", input, err))
	}
	res.Rows, res.Dropped, res.Fallbacks = stats.Rows, stats.Dropped, stats.Fallbacks

	if err := doc.WriteFile(output); err != nil {
		return fail(err)
	}

	res.Status = types.ConversionDone
	fmt.Fprintf(c.log(), "converted: %s -> %s (%d rows)\n", input, output, res.Rows)
	return res
}

func (c *Converter) record(ctx context.Context, res types.ConversionResult, started time.Time) {
	if c.Recorder == nil {
		return
	}
	run := types.Run{
		Input:      res.Input,
		Output:     res.Output,
		Encoding:   c.Config.Encoding,
		Rows:       res.Rows,
		Dropped:    res.Dropped,
		Fallbacks:  res.Fallbacks,
		Status:     res.Status,
		StartedAt:  started,
		FinishedAt: c.now(),
	}
	if res.Err != nil {
		run.Error = res.Err.Error()
	}
	if err := c.Recorder.Record(ctx, run); err != nil {
		fmt.Fprintf(c.log(), "warning: recording history for %s: %v\n", res.Input, err)
	}
}

func (c *Converter) log() io.Writer {
	if c.Log == nil {
		return io.Discard
	}
	return c.Log
}

func (c *Converter) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now()
}
