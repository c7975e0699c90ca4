package dataprocessing

import (
	"fmt"
	"log/slog"
	"sort"

	"tabcli/internal/dataset"
	"tabcli/internal/errors"
)

// Strategy selects the central-tendency statistic used to fill missing
// values.
type Strategy string

const (
	StrategyMean   Strategy = "mean"
	StrategyMedian Strategy = "median"
	StrategyMode   Strategy = "mode"
)

// ParseStrategy converts a configuration token into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyMean, StrategyMedian, StrategyMode:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown imputation strategy %q", s)
}

// Impute fills every missing cell in the named column with the chosen
// statistic of its non-missing values. Mean and median require a
// numeric column; mode works on any column. Imputing a column with no
// missing values is a no-op.
func Impute(table *dataset.Table, columnName string, strategy Strategy) (*dataset.Table, error) {
	const op = "impute"

	col, ok := table.Column(columnName)
	if !ok {
		return nil, errors.NewInvalidColumn(op, columnName, fmt.Errorf("column does not exist"))
	}
	if col.MissingCount() == len(col.Cells) {
		return nil, errors.NewAllMissing(op, columnName)
	}

	var fill dataset.Cell
	switch strategy {
	case StrategyMean, StrategyMedian:
		if col.Kind != dataset.KindNumeric {
			return nil, errors.NewInvalidColumn(op, columnName,
				fmt.Errorf("%s imputation requires a numeric column", strategy))
		}
		values := col.Values()
		if strategy == StrategyMean {
			fill = dataset.Number(mean(values))
		} else {
			fill = dataset.Number(median(values))
		}
	case StrategyMode:
		fill = modeCell(col)
	default:
		return nil, errors.NewInvalidColumn(op, columnName,
			fmt.Errorf("unknown imputation strategy %q", strategy))
	}

	if col.MissingCount() == 0 {
		return table, nil
	}

	cells := make([]dataset.Cell, len(col.Cells))
	filled := 0
	for i, cell := range col.Cells {
		if cell.IsMissing() {
			cells[i] = fill
			filled++
		} else {
			cells[i] = cell
		}
	}
	out, err := table.ReplaceColumn(columnName, dataset.Column{
		Name: columnName, Kind: col.Kind, Cells: cells,
	})
	if err != nil {
		return nil, errors.NewInvalidColumn(op, columnName, err)
	}

	slog.Info("missing values imputed",
		slog.String("column", columnName),
		slog.String("strategy", string(strategy)),
		slog.Int("filled", filled))
	return out, nil
}

// modeCell returns the most frequent non-missing cell. Ties break to
// the smallest value (numeric order for numeric columns, lexicographic
// for text) so repeated runs always produce the same choice.
func modeCell(col *dataset.Column) dataset.Cell {
	if col.Kind == dataset.KindNumeric {
		counts := make(map[float64]int)
		for _, cell := range col.Cells {
			if v, ok := cell.Float(); ok {
				counts[v]++
			}
		}
		keys := make([]float64, 0, len(counts))
		for v := range counts {
			keys = append(keys, v)
		}
		sort.Float64s(keys)
		best, bestCount := keys[0], counts[keys[0]]
		for _, v := range keys[1:] {
			if counts[v] > bestCount {
				best, bestCount = v, counts[v]
			}
		}
		return dataset.Number(best)
	}

	counts := make(map[string]int)
	for _, cell := range col.Cells {
		if !cell.IsMissing() {
			counts[cell.String()]++
		}
	}
	keys := make([]string, 0, len(counts))
	for s := range counts {
		keys = append(keys, s)
	}
	sort.Strings(keys)
	best, bestCount := keys[0], counts[keys[0]]
	for _, s := range keys[1:] {
		if counts[s] > bestCount {
			best, bestCount = s, counts[s]
		}
	}
	return dataset.Text(best)
}
