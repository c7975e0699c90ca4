package dataprocessing

import (
	"log/slog"

	"tabcli/internal/dataset"
)

// ColumnSummary holds descriptive statistics for one numeric column.
// This is the read-only surface the plotting and report layers consume;
// the core never depends on what they render from it.
type ColumnSummary struct {
	Column  string  `json:"column" csv:"Column"`
	Count   int     `json:"count" csv:"Count"`
	Missing int     `json:"missing" csv:"Missing"`
	Mean    float64 `json:"mean" csv:"Mean"`
	Std     float64 `json:"std" csv:"Std"`
	Min     float64 `json:"min" csv:"Min"`
	Q1      float64 `json:"q1" csv:"Q1"`
	Median  float64 `json:"median" csv:"Median"`
	Q3      float64 `json:"q3" csv:"Q3"`
	Max     float64 `json:"max" csv:"Max"`
}

// Summarizer computes per-column descriptive statistics for a table.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a Summarizer writing to the given logger, or
// the default logger when nil.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Summarize returns one summary per numeric column, in table order.
// Columns with no non-missing values are skipped. Std uses the sample
// (N-1) estimator; quartiles interpolate linearly between ranks.
func (s *Summarizer) Summarize(table *dataset.Table) []ColumnSummary {
	var out []ColumnSummary
	for _, name := range table.NumericColumnNames() {
		col, _ := table.Column(name)
		values := col.Values()
		if len(values) == 0 {
			continue
		}
		out = append(out, ColumnSummary{
			Column:  name,
			Count:   len(values),
			Missing: col.MissingCount(),
			Mean:    mean(values),
			Std:     sampleStdDev(values),
			Min:     percentile(values, 0),
			Q1:      percentile(values, 25),
			Median:  median(values),
			Q3:      percentile(values, 75),
			Max:     percentile(values, 100),
		})
	}
	s.logger.Info("summary statistics computed", slog.Int("columns", len(out)))
	return out
}
