package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabcli/internal/dataprocessing"
	"tabcli/internal/errors"
	"tabcli/internal/exporter"
)

type recordingPlotter struct {
	columns []string
}

func (p *recordingPlotter) RenderHistogram(column string, values []float64, dest string) error {
	p.columns = append(p.columns, column)
	return os.WriteFile(dest, []byte("png"), 0644)
}

type recordingReporter struct {
	built bool
}

func (r *recordingReporter) Build(summaries []dataprocessing.ColumnSummary, dest string) error {
	r.built = true
	return os.WriteFile(dest, []byte("<html>"), 0644)
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_EndToEnd(t *testing.T) {
	input := writeInput(t,
		"name,price\n"+
			"alpha,\"$1,200\"\n"+
			"beta,$400\n"+
			"beta,$400\n"+
			"Total,\"$2,000\"\n"+
			"gamma,\n")
	outDir := t.TempDir()

	plotter := &recordingPlotter{}
	reporter := &recordingReporter{}
	runner := NewRunner(nil, exporter.New("file:"+filepath.Join(outDir, "out.db")), plotter, reporter)

	result, err := runner.Run(context.Background(), Options{
		Input:          input,
		OutputDir:      outDir,
		Formats:        []string{"csv", "json"},
		ImputeColumns:  []string{"price"},
		ImputeStrategy: "mean",
	})
	require.NoError(t, err)

	// 5 data rows loaded; Total row and one duplicate removed
	assert.Equal(t, 5, result.RowsLoaded)
	assert.Equal(t, 3, result.RowsAfterClean)
	assert.Equal(t, 3, result.RowsFinal)

	price, ok := result.Table.Column("price")
	require.True(t, ok)
	// gamma's missing price imputed with mean of 1200 and 400
	assert.Equal(t, []float64{1200, 400, 800}, price.Values())

	assert.FileExists(t, filepath.Join(outDir, "analysis.csv"))
	assert.FileExists(t, filepath.Join(outDir, "analysis.json"))
	assert.FileExists(t, filepath.Join(outDir, "price_histogram.png"))
	assert.FileExists(t, filepath.Join(outDir, "analysis_report.html"))

	assert.Equal(t, []string{"price"}, plotter.columns)
	assert.True(t, reporter.built)
	assert.NotEmpty(t, result.RunID)
	assert.Len(t, result.Artifacts, 4)
}

func TestRun_NilCollaborators(t *testing.T) {
	input := writeInput(t, "v\n1\n2\n")
	outDir := t.TempDir()
	runner := NewRunner(nil, exporter.New(""), nil, nil)

	result, err := runner.Run(context.Background(), Options{
		Input:     input,
		OutputDir: outDir,
		Formats:   []string{"csv"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Artifacts, 1)
}

func TestRun_SQLFormat(t *testing.T) {
	input := writeInput(t, "v\n1\n2\n")
	outDir := t.TempDir()
	runner := NewRunner(nil, exporter.New("file:"+filepath.Join(outDir, "out.db")), nil, nil)

	result, err := runner.Run(context.Background(), Options{
		Input:     input,
		OutputDir: outDir,
		Formats:   []string{"sql"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"analysis"}, result.Artifacts)
	assert.FileExists(t, filepath.Join(outDir, "out.db"))
}

func TestRun_InvalidOptions(t *testing.T) {
	runner := NewRunner(nil, exporter.New(""), nil, nil)

	tests := []struct {
		name string
		opts Options
	}{
		{"missing input", Options{OutputDir: "x", Formats: []string{"csv"}}},
		{"no formats", Options{Input: "a.csv", OutputDir: "x"}},
		{"bad format", Options{Input: "a.csv", OutputDir: "x", Formats: []string{"parquet"}}},
		{"bad strategy", Options{Input: "a.csv", OutputDir: "x", Formats: []string{"csv"}, ImputeStrategy: "guess"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Run(context.Background(), tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestRun_LoadFailurePropagates(t *testing.T) {
	runner := NewRunner(nil, exporter.New(""), nil, nil)

	_, err := runner.Run(context.Background(), Options{
		Input:     filepath.Join(t.TempDir(), "missing.csv"),
		OutputDir: t.TempDir(),
		Formats:   []string{"csv"},
	})

	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestRun_OutlierPreconditionAborts(t *testing.T) {
	input := writeInput(t, "name\na\nb\n")
	runner := NewRunner(nil, exporter.New(""), nil, nil)

	_, err := runner.Run(context.Background(), Options{
		Input:          input,
		OutputDir:      t.TempDir(),
		Formats:        []string{"csv"},
		OutlierColumns: []string{"name"},
	})

	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindInvalidColumn))
}
