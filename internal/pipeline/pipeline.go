// Package pipeline orchestrates the full cleaning run: load, clean,
// per-column outlier removal, normalization, and imputation, then
// export to every requested format plus the plotting and report
// collaborators. It owns no table state between runs; the current table
// is threaded through each step explicitly.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"tabcli/internal/dataprocessing"
	"tabcli/internal/dataset"
	"tabcli/internal/exporter"
)

// baseName is the stem used for every artifact a run writes.
const baseName = "analysis"

// Options configures a single pipeline run.
type Options struct {
	Input            string   `validate:"required"`
	OutputDir        string   `validate:"required"`
	Formats          []string `validate:"min=1,dive,oneof=csv excel json sql"`
	OutlierColumns   []string
	NormalizeColumns []string
	ImputeColumns    []string
	ImputeStrategy   string `validate:"omitempty,oneof=mean median mode"`
}

// Result reports what a run did.
type Result struct {
	RunID         string
	Table         *dataset.Table
	RowsLoaded    int
	RowsAfterClean int
	RowsFinal     int
	Summaries     []dataprocessing.ColumnSummary
	Artifacts     []string
}

// Plotter renders per-column visualizations from the core's read-only
// numeric data. The core never depends on what it draws.
type Plotter interface {
	RenderHistogram(column string, values []float64, dest string) error
}

// ReportBuilder assembles a human-readable report from the summary
// statistics.
type ReportBuilder interface {
	Build(summaries []dataprocessing.ColumnSummary, dest string) error
}

// Runner drives the pipeline. Plotter and Reporter are optional; nil
// disables that collaborator.
type Runner struct {
	logger     *slog.Logger
	exporter   *exporter.Exporter
	summarizer *dataprocessing.Summarizer
	plotter    Plotter
	reporter   ReportBuilder
	validate   *validator.Validate
}

// NewRunner creates a Runner. A nil logger uses the default logger.
func NewRunner(logger *slog.Logger, exp *exporter.Exporter, plotter Plotter, reporter ReportBuilder) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger:     logger,
		exporter:   exp,
		summarizer: dataprocessing.NewSummarizer(logger),
		plotter:    plotter,
		reporter:   reporter,
		validate:   validator.New(),
	}
}

// Run executes the pipeline over opts.Input and returns the final table
// alongside everything that was written. The first failing step aborts
// the run; nothing is retried.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := r.validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid pipeline options: %w", err)
	}

	runID := uuid.NewString()
	logger := r.logger.With(slog.String("run_id", runID))
	logger.Info("pipeline run starting", slog.String("input", opts.Input))

	table, err := dataprocessing.Load(ctx, opts.Input)
	if err != nil {
		return nil, err
	}
	result := &Result{RunID: runID, RowsLoaded: table.NumRows()}

	table, err = dataprocessing.Clean(table)
	if err != nil {
		return nil, err
	}
	result.RowsAfterClean = table.NumRows()

	for _, col := range opts.OutlierColumns {
		if table, err = dataprocessing.FilterOutliers(table, col); err != nil {
			return nil, err
		}
	}
	for _, col := range opts.NormalizeColumns {
		if table, err = dataprocessing.Normalize(table, col); err != nil {
			return nil, err
		}
	}
	if len(opts.ImputeColumns) > 0 {
		strategy, err := dataprocessing.ParseStrategy(opts.ImputeStrategy)
		if err != nil {
			return nil, err
		}
		for _, col := range opts.ImputeColumns {
			if table, err = dataprocessing.Impute(table, col, strategy); err != nil {
				return nil, err
			}
		}
	}

	result.Table = table
	result.RowsFinal = table.NumRows()
	result.Summaries = r.summarizer.Summarize(table)

	if err := r.export(ctx, table, opts, result); err != nil {
		return nil, err
	}
	if err := r.renderCollaborators(table, opts.OutputDir, result); err != nil {
		return nil, err
	}

	logger.Info("pipeline run finished",
		slog.Int("rows_loaded", result.RowsLoaded),
		slog.Int("rows_final", result.RowsFinal),
		slog.Int("artifacts", len(result.Artifacts)))
	return result, nil
}

func (r *Runner) export(ctx context.Context, table *dataset.Table, opts Options, result *Result) error {
	for _, token := range opts.Formats {
		format, err := exporter.ParseFormat(token)
		if err != nil {
			return err
		}
		dest := filepath.Join(opts.OutputDir, baseName+format.Extension())
		if format == exporter.FormatSQL {
			// the sql destination is a table name, not a path
			dest = baseName
		}
		if err := r.exporter.Export(ctx, table, dest, format); err != nil {
			return err
		}
		result.Artifacts = append(result.Artifacts, dest)
	}
	return nil
}

func (r *Runner) renderCollaborators(table *dataset.Table, outputDir string, result *Result) error {
	if r.plotter != nil {
		for _, name := range table.NumericColumnNames() {
			col, _ := table.Column(name)
			dest := filepath.Join(outputDir, name+"_histogram.png")
			if err := r.plotter.RenderHistogram(name, col.Values(), dest); err != nil {
				return fmt.Errorf("rendering histogram for %s: %w", name, err)
			}
			result.Artifacts = append(result.Artifacts, dest)
		}
	}
	if r.reporter != nil {
		dest := filepath.Join(outputDir, baseName+"_report.html")
		if err := r.reporter.Build(result.Summaries, dest); err != nil {
			return fmt.Errorf("building report: %w", err)
		}
		result.Artifacts = append(result.Artifacts, dest)
	}
	return nil
}
