package exporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"tabcli/internal/dataset"
	"tabcli/internal/errors"
)

const excelSheetName = "Sheet1"

// WriteExcel writes the table as a single-sheet xlsx workbook, adding
// the .xlsx extension when absent. Numeric cells keep their numeric
// type in the sheet; missing cells are left blank.
func (e *Exporter) WriteExcel(ctx context.Context, table *dataset.Table, path string) error {
	const op = "export_excel"

	if err := ctx.Err(); err != nil {
		return errors.NewUnknownIO(op, path, err)
	}
	path = withExtension(path, ".xlsx")

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, table.NumColumns())
	for j, name := range table.ColumnNames() {
		header[j] = name
	}
	if err := f.SetSheetRow(excelSheetName, "A1", &header); err != nil {
		return errors.NewUnknownIO(op, path, err)
	}

	for i := 0; i < table.NumRows(); i++ {
		row := make([]interface{}, table.NumColumns())
		for j, cell := range table.Row(i) {
			switch {
			case cell.IsMissing():
				row[j] = nil
			default:
				if v, ok := cell.Float(); ok {
					row[j] = v
				} else {
					row[j] = cell.String()
				}
			}
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.NewUnknownIO(op, path, err)
		}
		if err := f.SetSheetRow(excelSheetName, addr, &row); err != nil {
			return errors.NewUnknownIO(op, path, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewUnknownIO(op, path, err)
	}
	if err := f.SaveAs(path); err != nil {
		slog.Error("excel export failed", slog.String("path", path), slog.Any("error", err))
		return errors.NewUnknownIO(op, path, err)
	}

	slog.Info("data exported",
		slog.String("format", "excel"),
		slog.String("path", path),
		slog.Int("rows", table.NumRows()))
	return nil
}
