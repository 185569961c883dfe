// Package dataset provides the in-memory tabular model shared by all
// quality checks: an ordered set of named columns of nullable cells,
// centralized fail-soft coercion, and semantic type inference.
//
// A Dataset is read-only after construction. Checks never mutate it, so
// a single instance can be shared across concurrently running checks
// without locking.
package dataset

import (
	"fmt"
	"strings"
)

// Column is a named, ordered sequence of cells.
type Column struct {
	Name  string
	Cells []Value
}

// Dataset is an ordered collection of equally sized columns.
type Dataset struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New builds a Dataset from columns. All columns must share the same
// length and names must be unique.
func New(columns []Column) (*Dataset, error) {
	ds := &Dataset{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if _, dup := ds.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		ds.index[col.Name] = i
		if i == 0 {
			ds.rows = len(col.Cells)
		} else if len(col.Cells) != ds.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Cells), ds.rows)
		}
	}
	return ds, nil
}

// NumRows returns the row count.
func (d *Dataset) NumRows() int { return d.rows }

// NumCols returns the column count.
func (d *Dataset) NumCols() int { return len(d.columns) }

// ColumnNames returns the column names in declaration order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// HasColumn reports whether a column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Cells returns the cells of the named column.
func (d *Dataset) Cells(name string) ([]Value, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i].Cells, true
}

// Cell returns a single cell by column name and row index.
func (d *Dataset) Cell(name string, row int) (Value, bool) {
	cells, ok := d.Cells(name)
	if !ok || row < 0 || row >= len(cells) {
		return Value{}, false
	}
	return cells[row], true
}

// RowKey builds a collision-safe identity string for the given columns of
// one row. Used for duplicate detection; each cell contributes its kind
// tag and rendered payload.
func (d *Dataset) RowKey(row int, columns []string) string {
	var b strings.Builder
	for _, name := range columns {
		cell, _ := d.Cell(name, row)
		b.WriteByte(byte('0' + cell.Kind()))
		b.WriteString(cell.String())
		b.WriteByte(0x1f)
	}
	return b.String()
}
