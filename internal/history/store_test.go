// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/textpdf/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var base = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func sampleRun(input string, offset time.Duration, status types.ConversionStatus) types.Run {
	return types.Run{
		Input:      input,
		Output:     input + ".pdf",
		Encoding:   "latin1",
		Rows:       3,
		Dropped:    1,
		Status:     status,
		StartedAt:  base.Add(offset),
		FinishedAt: base.Add(offset + 250*time.Millisecond),
	}
}

func TestRecordAssignsID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, sampleRun("a.txt", 0, types.ConversionDone)))

	runs, err := s.List(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, runs, 1)

	_, err = uuid.Parse(runs[0].ID)
	assert.NoError(t, err, "generated ID should be a UUID")
	assert.Equal(t, "a.txt", runs[0].Input)
	assert.Equal(t, 3, runs[0].Rows)
	assert.Equal(t, 1, runs[0].Dropped)
	assert.Equal(t, types.ConversionDone, runs[0].Status)
	assert.True(t, base.Equal(runs[0].StartedAt))
	assert.Equal(t, 250*time.Millisecond, runs[0].Duration())
}

func TestRecordKeepsExplicitID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := sampleRun("a.txt", 0, types.ConversionDone)
	run.ID = "fixed-id"
	require.NoError(t, s.Record(ctx, run))

	// Duplicate IDs are rejected by the primary key.
	require.Error(t, s.Record(ctx, run))

	runs, err := s.List(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "fixed-id", runs[0].ID)
}

func TestListOrderingAndFilters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	// Sub-second offsets check that ordering is not fooled by timestamp width.
	require.NoError(t, s.Record(ctx, sampleRun("a.txt", 0, types.ConversionDone)))
	require.NoError(t, s.Record(ctx, sampleRun("b.txt", 500*time.Millisecond, types.ConversionFailed)))
	require.NoError(t, s.Record(ctx, sampleRun("a.txt", time.Second, types.ConversionDone)))

	tests := []struct {
		name       string
		opts       QueryOptions
		wantInputs []string
	}{
		{name: "all newest first", opts: QueryOptions{}, wantInputs: []string{"a.txt", "b.txt", "a.txt"}},
		{name: "by input", opts: QueryOptions{Input: "b.txt"}, wantInputs: []string{"b.txt"}},
		{name: "by status", opts: QueryOptions{Status: types.ConversionDone}, wantInputs: []string{"a.txt", "a.txt"}},
		{name: "limited", opts: QueryOptions{Limit: 1}, wantInputs: []string{"a.txt"}},
		{name: "unlimited", opts: QueryOptions{Limit: -1}, wantInputs: []string{"a.txt", "b.txt", "a.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := s.List(ctx, tt.opts)
			require.NoError(t, err)
			var inputs []string
			for _, r := range runs {
				inputs = append(inputs, r.Input)
			}
			assert.Equal(t, tt.wantInputs, inputs)
		})
	}

	runs, err := s.List(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
}

func TestPrune(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, sampleRun("old.txt", -48*time.Hour, types.ConversionDone)))
	require.NoError(t, s.Record(ctx, sampleRun("new.txt", 0, types.ConversionDone)))

	n, err := s.Prune(ctx, base.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	runs, err := s.List(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "new.txt", runs[0].Input)
}

func TestExport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	failed := sampleRun("b.txt", time.Second, types.ConversionFailed)
	failed.Error = "opening b.txt: no such file or directory"
	require.NoError(t, s.Record(ctx, sampleRun("a.txt", 0, types.ConversionDone)))
	require.NoError(t, s.Record(ctx, failed))

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, s.Export(ctx, &buf, "yaml", QueryOptions{}))

		var runs []types.Run
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &runs))
		require.Len(t, runs, 2)
		assert.Equal(t, "b.txt", runs[0].Input)
		assert.Equal(t, failed.Error, runs[0].Error)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, s.Export(ctx, &buf, "json", QueryOptions{Status: types.ConversionDone}))

		var runs []types.Run
		require.NoError(t, json.Unmarshal(buf.Bytes(), &runs))
		require.Len(t, runs, 1)
		assert.Equal(t, "a.txt", runs[0].Input)
	})

	t.Run("unsupported", func(t *testing.T) {
		err := s.Export(ctx, &bytes.Buffer{}, "csv", QueryOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})
}
