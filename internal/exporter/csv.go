package exporter

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"

	"tabcli/internal/dataset"
	"tabcli/internal/errors"
)

// WriteCSV writes the table as comma-delimited text with a header row.
// Missing cells are written as empty fields.
func (e *Exporter) WriteCSV(ctx context.Context, table *dataset.Table, path string) error {
	const op = "export_csv"

	if err := ctx.Err(); err != nil {
		return errors.NewUnknownIO(op, path, err)
	}

	err := writeAtomic(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(table.ColumnNames()); err != nil {
			return err
		}
		for i := 0; i < table.NumRows(); i++ {
			record := make([]string, table.NumColumns())
			for j, cell := range table.Row(i) {
				record[j] = cell.String()
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
	if err != nil {
		slog.Error("csv export failed", slog.String("path", path), slog.Any("error", err))
		return errors.NewUnknownIO(op, path, err)
	}

	slog.Info("data exported",
		slog.String("format", "csv"),
		slog.String("path", path),
		slog.Int("rows", table.NumRows()))
	return nil
}
