// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/textpdf/pkg/types"
)

// resetFlags restores every flag to its default so that executions within
// one test binary do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeText(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	resetFlags(rootCmd)
	cfg := loadConfig()

	want := types.DefaultConversionConfig()
	want.Output = ""
	assert.Equal(t, want, cfg.Conversion)
	assert.Empty(t, cfg.History.DB)
	assert.Equal(t, 20, cfg.History.Limit)
}

func TestConvertRowsHistory(t *testing.T) {
	dir := t.TempDir()
	input := writeText(t, dir, "notes.txt", "Hello — world\n   padded   \nIt’s “quoted”\n")
	output := filepath.Join(dir, "notes-out.pdf")
	db := filepath.Join(dir, "history.db")

	_, stderr, err := execute(t, "convert", input, "--output", output, "--history", db, "--title", "Notes")
	require.NoError(t, err)
	assert.Contains(t, stderr, "converted: "+input+" -> "+output+" (3 rows)")

	stdout, _, err := execute(t, "rows", output)
	require.NoError(t, err)
	assert.Equal(t, "Hello - world\npadded\nIt's \"quoted\"\n", stdout)

	stdout, _, err = execute(t, "rows", "--json", output)
	require.NoError(t, err)
	var doc struct {
		Pages []struct {
			Number int      `json:"number"`
			Rows   []string `json:"rows"`
		} `json:"pages"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, 1, doc.Pages[0].Number)

	stdout, _, err = execute(t, "history", "--history", db, "--json")
	require.NoError(t, err)
	var runs []types.Run
	require.NoError(t, json.Unmarshal([]byte(stdout), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, input, runs[0].Input)
	assert.Equal(t, 3, runs[0].Rows)
	assert.Equal(t, types.ConversionDone, runs[0].Status)

	stdout, _, err = execute(t, "history", "--history", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 runs")

	exported := filepath.Join(dir, "runs.yaml")
	_, _, err = execute(t, "history", "export", "--history", db, "--output", exported)
	require.NoError(t, err)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	runs = nil
	require.NoError(t, yaml.Unmarshal(data, &runs))
	require.Len(t, runs, 1)

	stdout, _, err = execute(t, "history", "prune", "--history", db, "--older-than", "0s")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Pruned 1 run(s)")
}

func TestConvertSingleInputDerivesOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeText(t, dir, "plain.txt", "one line\n")

	_, _, err := execute(t, "convert", input)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "plain.pdf"))
	assert.NoError(t, err)
}

func TestConvertBatchOutDir(t *testing.T) {
	dir := t.TempDir()
	a := writeText(t, dir, "a.txt", "alpha\n")
	b := writeText(t, dir, "b.txt", "beta\n")
	outDir := filepath.Join(dir, "pdf")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	_, stderr, err := execute(t, "convert", a, b, "--out-dir", outDir, "--output", filepath.Join(dir, "ignored.pdf"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "Batch summary: 2 converted, 0 failed (total: 2)")

	for _, name := range []string{"a.pdf", "b.pdf"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join(dir, "ignored.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeText(t, dir, "a.txt", "a\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing input", args: []string{"convert", filepath.Join(dir, "missing.txt")}, wantErr: "opening"},
		{name: "unknown encoding", args: []string{"convert", input, "--encoding", "koi8"}, wantErr: "unknown encoding"},
		{name: "batch failure count", args: []string{"convert", input, filepath.Join(dir, "missing.txt"), "--out-dir", dir}, wantErr: "1 file(s) failed"},
		{name: "history without database", args: []string{"history"}, wantErr: "no history database"},
		{name: "history bad status", args: []string{"history", "--history", filepath.Join(dir, "h.db"), "--status", "pending"}, wantErr: "unknown status"},
		{name: "rows of missing pdf", args: []string{"rows", filepath.Join(dir, "none.pdf")}, wantErr: "none.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "textpdf dev\n", stdout)
}
