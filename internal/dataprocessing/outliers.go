package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"

	"tabcli/internal/dataset"
	"tabcli/internal/errors"
)

// zScoreThreshold is the fixed |z| cutoff at and above which a row is
// flagged as an outlier.
const zScoreThreshold = 3.0

// FilterOutliers removes every row whose value in the named column has
// a population z-score magnitude of at least 3.0. The mean and standard
// deviation are computed once over the column's current non-missing
// values, before any removal. Missing cells are never outliers.
func FilterOutliers(table *dataset.Table, columnName string) (*dataset.Table, error) {
	const op = "filter_outliers"

	col, ok := table.Column(columnName)
	if !ok {
		return nil, errors.NewInvalidColumn(op, columnName, fmt.Errorf("column does not exist"))
	}
	if col.Kind != dataset.KindNumeric {
		return nil, errors.NewInvalidColumn(op, columnName, fmt.Errorf("column is not numeric"))
	}
	values := col.Values()
	if len(values) == 0 {
		return nil, errors.NewInvalidColumn(op, columnName, fmt.Errorf("column has no values"))
	}
	m := mean(values)
	sd := populationStdDev(values)
	if sd == 0 {
		return nil, errors.NewInvalidColumn(op, columnName, fmt.Errorf("column has zero variance"))
	}

	drop := make(map[int]bool)
	for i, cell := range col.Cells {
		v, isNum := cell.Float()
		if !isNum {
			continue
		}
		if z := (v - m) / sd; math.Abs(z) >= zScoreThreshold {
			drop[i] = true
			slog.Info("outlier found",
				slog.String("column", columnName),
				slog.Int("row", i),
				slog.Float64("value", v),
				slog.Float64("z_score", z))
		}
	}

	before := table.NumRows()
	if len(drop) > 0 {
		table = table.RemoveRows(drop)
	}
	slog.Info("outliers handled",
		slog.String("column", columnName),
		slog.Int("rows_before", before),
		slog.Int("rows_after", table.NumRows()))
	return table, nil
}
