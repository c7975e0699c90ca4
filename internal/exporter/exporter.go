package exporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tabcli/internal/dataset"
	"tabcli/internal/errors"
)

// Exporter writes tables out in any supported format. The zero value is
// usable for file formats; the SQL sink needs a DSN.
type Exporter struct {
	// SQLiteDSN is the database/sql data source the sql format writes
	// into, e.g. "file:out.db" or "file::memory:?cache=shared".
	SQLiteDSN string
}

// New creates an Exporter with the given sqlite DSN.
func New(sqliteDSN string) *Exporter {
	return &Exporter{SQLiteDSN: sqliteDSN}
}

// Export serializes table to destination in the given format. For the
// file formats destination is a path; the conventional extension is
// appended for excel and json when absent. For sql, destination is the
// database table name.
func (e *Exporter) Export(ctx context.Context, table *dataset.Table, destination string, format Format) error {
	switch format {
	case FormatCSV:
		return e.WriteCSV(ctx, table, destination)
	case FormatExcel:
		return e.WriteExcel(ctx, table, destination)
	case FormatJSON:
		return e.WriteJSON(ctx, table, destination)
	case FormatSQL:
		return e.WriteSQL(ctx, table, destination)
	default:
		slog.Error("unsupported export format", slog.String("format", string(format)))
		return errors.NewUnsupportedFormat("export", string(format))
	}
}

// withExtension appends ext when the path does not already end with it.
func withExtension(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}

// writeAtomic stages content into a temporary file next to path and
// renames it into place, so a failed write never leaves a partial file
// at the destination.
func writeAtomic(path string, write func(f *os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
