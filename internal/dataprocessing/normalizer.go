package dataprocessing

import (
	"fmt"
	"log/slog"

	"tabcli/internal/dataset"
	"tabcli/internal/errors"
)

// Normalize rescales the named numeric column into [0, 1] with min-max
// scaling. Missing cells are skipped and stay missing; every other
// column is unchanged. A zero-range column fails with DegenerateColumn
// rather than producing NaN.
func Normalize(table *dataset.Table, columnName string) (*dataset.Table, error) {
	const op = "normalize"

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

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return nil, errors.NewDegenerateColumn(op, columnName)
	}

	cells := make([]dataset.Cell, len(col.Cells))
	for i, cell := range col.Cells {
		if v, isNum := cell.Float(); isNum {
			cells[i] = dataset.Number((v - lo) / (hi - lo))
		} else {
			cells[i] = cell
		}
	}
	out, err := table.ReplaceColumn(columnName, dataset.Column{
		Name: columnName, Kind: dataset.KindNumeric, Cells: cells,
	})
	if err != nil {
		return nil, errors.NewInvalidColumn(op, columnName, err)
	}

	slog.Info("data normalized", slog.String("column", columnName))
	return out, nil
}
