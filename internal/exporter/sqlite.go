package exporter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	// Registers the pure-Go sqlite driver with database/sql.
	_ "modernc.org/sqlite"

	"tabcli/internal/dataset"
	"tabcli/internal/errors"
)

// WriteSQL materializes the table into a sqlite database under the
// given table name, replacing any previous table of that name. The
// whole export runs in one transaction.
func (e *Exporter) WriteSQL(ctx context.Context, table *dataset.Table, tableName string) error {
	const op = "export_sql"

	db, err := sql.Open("sqlite", e.SQLiteDSN)
	if err != nil {
		return errors.NewUnknownIO(op, tableName, err)
	}
	defer db.Close()

	if err := e.writeSQLTable(ctx, db, table, tableName); err != nil {
		slog.Error("sql export failed",
			slog.String("table", tableName), slog.Any("error", err))
		return errors.NewUnknownIO(op, tableName, err)
	}

	slog.Info("data exported",
		slog.String("format", "sql"),
		slog.String("table", tableName),
		slog.Int("rows", table.NumRows()))
	return nil
}

func (e *Exporter) writeSQLTable(ctx context.Context, db *sql.DB, table *dataset.Table, tableName string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(tableName))); err != nil {
		return err
	}

	names := table.ColumnNames()
	defs := make([]string, len(names))
	for j, name := range names {
		col, _ := table.Column(name)
		sqlType := "TEXT"
		if col.Kind == dataset.KindNumeric {
			sqlType = "REAL"
		}
		defs[j] = fmt.Sprintf("%s %s", quoteIdent(name), sqlType)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)",
		quoteIdent(tableName), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		quoteIdent(tableName), placeholders)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < table.NumRows(); i++ {
		args := make([]interface{}, len(names))
		for j, cell := range table.Row(i) {
			switch {
			case cell.IsMissing():
				args[j] = nil
			default:
				if v, ok := cell.Float(); ok {
					args[j] = v
				} else {
					args[j] = cell.String()
				}
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// quoteIdent quotes a sqlite identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
