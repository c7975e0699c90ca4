package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"

	"tabcli/internal/dataset"
)

const markerSubstring = "total"

var currencyStripper = strings.NewReplacer("$", "", ",", "")

// Clean repairs and normalizes a table in four ordered steps: marker-row
// removal, text trimming, currency/numeric coercion, and deduplication.
// Later steps assume the earlier ones ran. Row count never increases.
func Clean(table *dataset.Table) (*dataset.Table, error) {
	initialRows := table.NumRows()

	table = removeMarkerRows(table)
	table = trimTextCells(table)
	table = coerceNumericColumns(table)
	table = deduplicateRows(table)

	slog.Info("data cleaned",
		slog.Int("rows_before", initialRows),
		slog.Int("rows_after", table.NumRows()))
	return table, nil
}

// removeMarkerRows drops any row where the string form of any cell
// contains "total", case-insensitively. Spreadsheet exports inject
// subtotal/summary rows this way.
func removeMarkerRows(table *dataset.Table) *dataset.Table {
	drop := make(map[int]bool)
	for i := 0; i < table.NumRows(); i++ {
		for _, cell := range table.Row(i) {
			if strings.Contains(strings.ToLower(cell.String()), markerSubstring) {
				drop[i] = true
				break
			}
		}
	}
	if len(drop) == 0 {
		return table
	}
	slog.Info("marker rows removed", slog.Int("count", len(drop)))
	return table.RemoveRows(drop)
}

func trimTextCells(table *dataset.Table) *dataset.Table {
	for _, name := range table.ColumnNames() {
		col, _ := table.Column(name)
		if col.Kind != dataset.KindText {
			continue
		}
		cells := make([]dataset.Cell, len(col.Cells))
		for i, cell := range col.Cells {
			if s, ok := cell.Text(); ok {
				cells[i] = dataset.Text(strings.TrimSpace(s))
			} else {
				cells[i] = cell
			}
		}
		next, err := table.ReplaceColumn(name, dataset.Column{
			Name: name, Kind: dataset.KindText, Cells: cells,
		})
		if err != nil {
			// cell count is unchanged, so this cannot happen; keep the
			// column as-is rather than abort the batch
			slog.Error("trim failed", slog.String("column", name), slog.Any("error", err))
			continue
		}
		table = next
	}
	return table
}

// coerceNumericColumns strips currency characters from each text column
// and reclassifies the column as numeric when every non-missing cell
// parses as a number. A column with any unparsable cell stays text with
// the stripped strings retained; cells that are empty after stripping
// become missing either way.
func coerceNumericColumns(table *dataset.Table) *dataset.Table {
	for _, name := range table.ColumnNames() {
		col, _ := table.Column(name)
		if col.Kind != dataset.KindText {
			continue
		}

		stripped := make([]dataset.Cell, len(col.Cells))
		parsed := make([]dataset.Cell, len(col.Cells))
		allParse := true
		for i, cell := range col.Cells {
			s, ok := cell.Text()
			if !ok {
				stripped[i] = cell
				parsed[i] = cell
				continue
			}
			s = strings.TrimSpace(currencyStripper.Replace(s))
			if s == "" {
				stripped[i] = dataset.Missing()
				parsed[i] = dataset.Missing()
				continue
			}
			stripped[i] = dataset.Text(s)
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				parsed[i] = dataset.Number(v)
			} else {
				allParse = false
			}
		}

		out := dataset.Column{Name: name, Kind: dataset.KindText, Cells: stripped}
		if allParse {
			out = dataset.Column{Name: name, Kind: dataset.KindNumeric, Cells: parsed}
			slog.Info("column coerced to numeric", slog.String("column", name))
		}
		next, err := table.ReplaceColumn(name, out)
		if err != nil {
			slog.Error("coercion failed", slog.String("column", name), slog.Any("error", err))
			continue
		}
		table = next
	}
	return table
}

// deduplicateRows removes rows that exactly duplicate an earlier row,
// keeping the first occurrence and preserving the order of the rest.
func deduplicateRows(table *dataset.Table) *dataset.Table {
	seen := make(map[string]bool, table.NumRows())
	drop := make(map[int]bool)
	for i := 0; i < table.NumRows(); i++ {
		key := rowKey(table.Row(i))
		if seen[key] {
			drop[i] = true
			continue
		}
		seen[key] = true
	}
	if len(drop) == 0 {
		return table
	}
	slog.Info("duplicate rows removed", slog.Int("count", len(drop)))
	return table.RemoveRows(drop)
}

// rowKey builds a collision-safe identity for a row. Each cell is
// prefixed with its state so missing, zero, and empty string stay
// distinct.
func rowKey(row []dataset.Cell) string {
	var b strings.Builder
	for _, cell := range row {
		switch {
		case cell.IsMissing():
			b.WriteString("m\x1f")
		default:
			if _, ok := cell.Float(); ok {
				b.WriteString("n")
			} else {
				b.WriteString("t")
			}
			b.WriteString(cell.String())
			b.WriteString("\x1f")
		}
	}
	return b.String()
}
