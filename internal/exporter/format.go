package exporter

import (
	"tabcli/internal/errors"
)

// Format is the export format token.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatJSON  Format = "json"
	FormatSQL   Format = "sql"
)

// ParseFormat converts a format token into a Format, failing with
// UnsupportedFormat for anything unrecognized.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatExcel, FormatJSON, FormatSQL:
		return Format(s), nil
	}
	return "", errors.NewUnsupportedFormat("export", s)
}

// Extension returns the conventional file extension for file-backed
// formats, empty for the SQL sink.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatExcel:
		return ".xlsx"
	case FormatJSON:
		return ".json"
	default:
		return ""
	}
}
