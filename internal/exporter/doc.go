// Package exporter serializes a dataset.Table to CSV, an Excel
// workbook, line-delimited JSON records, or a relational sqlite sink.
// Writes are all-or-nothing per destination: file formats stage to a
// temporary file and rename on success, and the SQL sink runs inside a
// single transaction.
package exporter
