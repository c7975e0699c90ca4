// Command tabcli runs the tabular cleaning pipeline over a CSV file:
// load, clean, optional per-column outlier removal / normalization /
// imputation, then export to the requested formats.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"tabcli/internal/config"
	"tabcli/internal/exporter"
	"tabcli/internal/infrastructure"
	"tabcli/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	input := flag.String("in", "", "input CSV file (required)")
	outDir := flag.String("out", "", "output directory (defaults to the configured export dir)")
	formats := flag.String("formats", "", "comma-separated export formats: csv,excel,json,sql (defaults to configured formats)")
	outliers := flag.String("outliers", "", "comma-separated columns to filter outliers from")
	normalize := flag.String("normalize", "", "comma-separated columns to min-max normalize")
	impute := flag.String("impute", "", "comma-separated columns to fill missing values in")
	strategy := flag.String("strategy", "", "imputation strategy: mean, median or mode (defaults to configured strategy)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if *input == "" {
		slog.Error("no input file given, use -in")
		os.Exit(1)
	}

	opts := pipeline.Options{
		Input:            *input,
		OutputDir:        cfg.Paths.ExportDir,
		Formats:          cfg.Pipeline.ExportFormats,
		OutlierColumns:   splitList(*outliers),
		NormalizeColumns: splitList(*normalize),
		ImputeColumns:    splitList(*impute),
		ImputeStrategy:   cfg.Pipeline.ImputeStrategy,
	}
	if *outDir != "" {
		opts.OutputDir = *outDir
	}
	if *formats != "" {
		opts.Formats = splitList(*formats)
	}
	if *strategy != "" {
		opts.ImputeStrategy = *strategy
	}

	runner := pipeline.NewRunner(
		infrastructure.GetLogger(),
		exporter.New(cfg.Pipeline.SQLiteDSN),
		nil, nil,
	)

	result, err := runner.Run(context.Background(), opts)
	if err != nil {
		slog.Error("pipeline run failed", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Printf("run %s: %d rows loaded, %d rows after cleaning, %d rows exported\n",
		result.RunID, result.RowsLoaded, result.RowsAfterClean, result.RowsFinal)
	for _, artifact := range result.Artifacts {
		fmt.Printf("  wrote %s\n", artifact)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
