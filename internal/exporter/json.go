package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"tabcli/internal/dataset"
	"tabcli/internal/errors"
)

// WriteJSON writes the table as line-delimited JSON, one record object
// per row keyed by column name, adding the .json extension when absent.
// Missing cells serialize as null.
func (e *Exporter) WriteJSON(ctx context.Context, table *dataset.Table, path string) error {
	const op = "export_json"

	if err := ctx.Err(); err != nil {
		return errors.NewUnknownIO(op, path, err)
	}
	path = withExtension(path, ".json")

	names := table.ColumnNames()
	err := writeAtomic(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		for i := 0; i < table.NumRows(); i++ {
			record := make(map[string]interface{}, len(names))
			for j, cell := range table.Row(i) {
				switch {
				case cell.IsMissing():
					record[names[j]] = nil
				default:
					if v, ok := cell.Float(); ok {
						record[names[j]] = v
					} else {
						record[names[j]] = cell.String()
					}
				}
			}
			if err := enc.Encode(record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("json export failed", slog.String("path", path), slog.Any("error", err))
		return errors.NewUnknownIO(op, path, err)
	}

	slog.Info("data exported",
		slog.String("format", "json"),
		slog.String("path", path),
		slog.Int("rows", table.NumRows()))
	return nil
}
