// Package dataset defines the in-memory tabular data model flowing
// through the pipeline: a Table of named, equally-sized columns whose
// cells are numeric, text, or explicitly missing.
package dataset

import (
	"fmt"
	"strconv"
)

type cellKind uint8

const (
	cellMissing cellKind = iota
	cellNumber
	cellText
)

// Cell is a single tagged value. Missing is a distinct state, never
// conflated with zero or the empty string.
type Cell struct {
	kind cellKind
	num  float64
	text string
}

// Missing returns the absent-value marker.
func Missing() Cell {
	return Cell{kind: cellMissing}
}

// Number returns a numeric cell.
func Number(v float64) Cell {
	return Cell{kind: cellNumber, num: v}
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{kind: cellText, text: s}
}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool {
	return c.kind == cellMissing
}

// Float returns the numeric value and whether the cell is numeric.
func (c Cell) Float() (float64, bool) {
	return c.num, c.kind == cellNumber
}

// Text returns the text value and whether the cell is text.
func (c Cell) Text() (string, bool) {
	return c.text, c.kind == cellText
}

// String renders the cell for display, matching, and delimited export.
// Numeric cells use the shortest representation that round-trips.
func (c Cell) String() string {
	switch c.kind {
	case cellNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case cellText:
		return c.text
	default:
		return ""
	}
}

// Equal reports exact cell equality. Missing equals only missing.
func (c Cell) Equal(other Cell) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case cellNumber:
		return c.num == other.num
	case cellText:
		return c.text == other.text
	default:
		return true
	}
}

// ColumnKind is the declared kind of a column after best-effort coercion.
type ColumnKind uint8

const (
	// KindText marks a column holding at least one non-numeric value.
	KindText ColumnKind = iota
	// KindNumeric marks a column whose every non-missing cell is a number.
	KindNumeric
)

func (k ColumnKind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

// Column is a named, ordered sequence of cells with a declared kind.
type Column struct {
	Name  string
	Kind  ColumnKind
	Cells []Cell
}

// Values returns the column's non-missing numeric values in row order.
func (c *Column) Values() []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if v, ok := cell.Float(); ok {
			out = append(out, v)
		}
	}
	return out
}

// MissingCount returns the number of missing cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.IsMissing() {
			n++
		}
	}
	return n
}

func (c *Column) clone() Column {
	cells := make([]Cell, len(c.Cells))
	copy(cells, c.Cells)
	return Column{Name: c.Name, Kind: c.Kind, Cells: cells}
}

// Table is an ordered sequence of named columns sharing one row count.
// Operations return new logical versions; callers must replace stale
// references with the returned table.
type Table struct {
	columns []Column
	index   map[string]int
}

// New builds a Table from columns, enforcing unique names and equal
// lengths.
func New(columns ...Column) (*Table, error) {
	t := &Table{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if _, dup := t.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		t.index[col.Name] = i
		if len(col.Cells) != len(columns[0].Cells) {
			return nil, fmt.Errorf("column %q has %d rows, want %d",
				col.Name, len(col.Cells), len(columns[0].Cells))
		}
	}
	return t, nil
}

// NumRows returns the shared row count.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0].Cells)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column, or false if absent.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.columns[i], true
}

// Row returns the cells of row i in column order.
func (t *Table) Row(i int) []Cell {
	row := make([]Cell, len(t.columns))
	for j, col := range t.columns {
		row[j] = col.Cells[i]
	}
	return row
}

// NumericColumnNames returns the names of all numeric columns, in table
// order. This is the read-only surface the plotting and report layers
// iterate over.
func (t *Table) NumericColumnNames() []string {
	var names []string
	for _, col := range t.columns {
		if col.Kind == KindNumeric {
			names = append(names, col.Name)
		}
	}
	return names
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	cols := make([]Column, len(t.columns))
	for i := range t.columns {
		cols[i] = t.columns[i].clone()
	}
	nt, _ := New(cols...)
	return nt
}

// RemoveRows returns a new table without the rows whose indices are in
// drop. Removal is uniform across all columns and preserves the order
// of the remaining rows.
func (t *Table) RemoveRows(drop map[int]bool) *Table {
	kept := t.NumRows() - len(drop)
	cols := make([]Column, len(t.columns))
	for i, col := range t.columns {
		cells := make([]Cell, 0, kept)
		for r, cell := range col.Cells {
			if !drop[r] {
				cells = append(cells, cell)
			}
		}
		cols[i] = Column{Name: col.Name, Kind: col.Kind, Cells: cells}
	}
	nt, _ := New(cols...)
	return nt
}

// ReplaceColumn returns a new table with the named column swapped for
// col; the other columns are shared with the receiver. The replacement
// must keep the table's row count.
func (t *Table) ReplaceColumn(name string, col Column) (*Table, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	if len(col.Cells) != t.NumRows() {
		return nil, fmt.Errorf("column %q has %d rows, want %d",
			col.Name, len(col.Cells), t.NumRows())
	}
	cols := make([]Column, len(t.columns))
	copy(cols, t.columns)
	cols[i] = col
	return New(cols...)
}
