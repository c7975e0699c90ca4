package dataprocessing

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"tabcli/internal/dataset"
	"tabcli/internal/errors"
)

// Load reads a comma-delimited source into a Table. The first record is
// the header; every column is classified numeric or text by best-effort
// coercion of its cells. Empty cells become missing.
func Load(ctx context.Context, path string) (*dataset.Table, error) {
	const op = "load"

	if err := ctx.Err(); err != nil {
		return nil, errors.NewUnknownIO(op, path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Error("file not found", slog.String("source", path))
			return nil, errors.NewNotFound(op, path, err)
		}
		slog.Error("failed to stat source", slog.String("source", path), slog.Any("error", err))
		return nil, errors.NewUnknownIO(op, path, err)
	}
	if info.Size() == 0 {
		slog.Error("source file is empty", slog.String("source", path))
		return nil, errors.NewEmptySource(op, path)
	}

	f, err := os.Open(path)
	if err != nil {
		slog.Error("failed to open source", slog.String("source", path), slog.Any("error", err))
		return nil, errors.NewUnknownIO(op, path, err)
	}
	defer f.Close()

	table, err := parseCSV(op, path, f)
	if err != nil {
		return nil, err
	}

	slog.Info("data loaded",
		slog.String("source", path),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumColumns()))
	return table, nil
}

func parseCSV(op, path string, r io.Reader) (*dataset.Table, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if stderrors.As(err, &parseErr) {
			slog.Error("failed to parse source",
				slog.String("source", path), slog.Any("error", err))
			return nil, errors.NewParseError(op, path, err)
		}
		slog.Error("failed to read source",
			slog.String("source", path), slog.Any("error", err))
		return nil, errors.NewUnknownIO(op, path, err)
	}

	if len(records) < 2 || len(records[0]) == 0 {
		slog.Error("no data found in source", slog.String("source", path))
		return nil, errors.NewEmptyData(op, path)
	}

	header := records[0]
	rows := records[1:]

	columns := make([]dataset.Column, len(header))
	for j, name := range header {
		cells := make([]dataset.Cell, len(rows))
		numeric := true
		for i, row := range rows {
			raw := row[j]
			if strings.TrimSpace(raw) == "" {
				cells[i] = dataset.Missing()
				continue
			}
			if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				cells[i] = dataset.Number(v)
			} else {
				cells[i] = dataset.Text(raw)
				numeric = false
			}
		}
		kind := dataset.KindText
		if numeric {
			kind = dataset.KindNumeric
		} else {
			// mixed columns stay text: re-render any numeric-looking
			// cells back to their raw string form
			for i, row := range rows {
				if !cells[i].IsMissing() {
					cells[i] = dataset.Text(row[j])
				}
			}
		}
		columns[j] = dataset.Column{Name: name, Kind: kind, Cells: cells}
	}

	table, err := dataset.New(columns...)
	if err != nil {
		return nil, errors.NewParseError(op, path, err)
	}
	return table, nil
}
