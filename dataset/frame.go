// Package dataset provides a minimal long-format panel table for
// forecasting: ordered, named columns of either strings (series id, time
// index) or float64 values (target, covariates), with the group-by,
// truncation and matrix-extraction operations the forecaster needs.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	pferrors "github.com/YuminosukeSato/panelforecast/pkg/errors"
)

type columnType int

const (
	stringType columnType = iota
	floatType
)

type column struct {
	name   string
	typ    columnType
	strs   []string
	floats []float64
}

func (c *column) len() int {
	if c.typ == stringType {
		return len(c.strs)
	}
	return len(c.floats)
}

func (c *column) clone() *column {
	out := &column{name: c.name, typ: c.typ}
	if c.typ == stringType {
		out.strs = append([]string(nil), c.strs...)
	} else {
		out.floats = append([]float64(nil), c.floats...)
	}
	return out
}

// Frame is a column-oriented table. One row corresponds to one
// (series id, time step) observation; multiple series may be interleaved.
type Frame struct {
	cols []*column
}

// New creates an empty frame.
func New() *Frame {
	return &Frame{}
}

// NumRows returns the number of rows in the frame.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].len()
}

// NumCols returns the number of columns in the frame.
func (f *Frame) NumCols() int {
	return len(f.cols)
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.name
	}
	return names
}

// Has reports whether a column exists.
func (f *Frame) Has(name string) bool {
	return f.lookup(name) != nil
}

func (f *Frame) lookup(name string) *column {
	for _, c := range f.cols {
		if c.name == name {
			return c
		}
	}
	return nil
}

// AddStringColumn appends a string column, or replaces the values of an
// existing string column of the same name.
func (f *Frame) AddStringColumn(name string, values []string) error {
	if len(f.cols) > 0 && len(values) != f.NumRows() {
		return pferrors.NewDimensionError("AddStringColumn", f.NumRows(), len(values), 0)
	}
	if c := f.lookup(name); c != nil {
		if c.typ != stringType {
			return pferrors.NewValueError("AddStringColumn", "column "+name+" already exists with float type")
		}
		c.strs = append([]string(nil), values...)
		return nil
	}
	f.cols = append(f.cols, &column{name: name, typ: stringType, strs: append([]string(nil), values...)})
	return nil
}

// AddFloatColumn appends a float column, or replaces the values of an
// existing float column of the same name.
func (f *Frame) AddFloatColumn(name string, values []float64) error {
	if len(f.cols) > 0 && len(values) != f.NumRows() {
		return pferrors.NewDimensionError("AddFloatColumn", f.NumRows(), len(values), 0)
	}
	if c := f.lookup(name); c != nil {
		if c.typ != floatType {
			return pferrors.NewValueError("AddFloatColumn", "column "+name+" already exists with string type")
		}
		c.floats = append([]float64(nil), values...)
		return nil
	}
	f.cols = append(f.cols, &column{name: name, typ: floatType, floats: append([]float64(nil), values...)})
	return nil
}

// StringColumn returns a copy of a string column's values.
func (f *Frame) StringColumn(name string) ([]string, error) {
	c := f.lookup(name)
	if c == nil {
		return nil, pferrors.NewMissingColumnError("StringColumn", name)
	}
	if c.typ != stringType {
		return nil, pferrors.NewValueError("StringColumn", "column "+name+" is not a string column")
	}
	return append([]string(nil), c.strs...), nil
}

// FloatColumn returns a copy of a float column's values.
func (f *Frame) FloatColumn(name string) ([]float64, error) {
	c := f.lookup(name)
	if c == nil {
		return nil, pferrors.NewMissingColumnError("FloatColumn", name)
	}
	if c.typ != floatType {
		return nil, pferrors.NewValueError("FloatColumn", "column "+name+" is not a float column")
	}
	return append([]float64(nil), c.floats...), nil
}

// RenameColumn renames a column in place.
func (f *Frame) RenameColumn(oldName, newName string) error {
	if f.Has(newName) {
		return pferrors.NewValueError("RenameColumn", "column "+newName+" already exists")
	}
	c := f.lookup(oldName)
	if c == nil {
		return pferrors.NewMissingColumnError("RenameColumn", oldName)
	}
	c.name = newName
	return nil
}

// DropColumn removes a column.
func (f *Frame) DropColumn(name string) error {
	for i, c := range f.cols {
		if c.name == name {
			f.cols = append(f.cols[:i], f.cols[i+1:]...)
			return nil
		}
	}
	return pferrors.NewMissingColumnError("DropColumn", name)
}

// PrependStringColumn inserts a string column at position zero, filled with
// a single repeated value.
func (f *Frame) PrependStringColumn(name, value string) error {
	if f.Has(name) {
		return pferrors.NewValueError("PrependStringColumn", "column "+name+" already exists")
	}
	values := make([]string, f.NumRows())
	for i := range values {
		values[i] = value
	}
	c := &column{name: name, typ: stringType, strs: values}
	f.cols = append([]*column{c}, f.cols...)
	return nil
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	out := &Frame{cols: make([]*column, len(f.cols))}
	for i, c := range f.cols {
		out.cols[i] = c.clone()
	}
	return out
}

// Tail returns a copy holding the most recent n rows. If the frame has n
// rows or fewer, the whole frame is copied.
func (f *Frame) Tail(n int) *Frame {
	rows := f.NumRows()
	if n >= rows {
		return f.Copy()
	}
	out := &Frame{cols: make([]*column, len(f.cols))}
	for i, c := range f.cols {
		nc := &column{name: c.name, typ: c.typ}
		if c.typ == stringType {
			nc.strs = append([]string(nil), c.strs[rows-n:]...)
		} else {
			nc.floats = append([]float64(nil), c.floats[rows-n:]...)
		}
		out.cols[i] = nc
	}
	return out
}

// SelectMatrix extracts the named float columns into a dense matrix, one
// column per name in the given order.
func (f *Frame) SelectMatrix(names []string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, pferrors.NewValueError("SelectMatrix", "no columns selected")
	}
	rows := f.NumRows()
	if rows == 0 {
		return nil, pferrors.NewValueError("SelectMatrix", "frame has no rows")
	}
	m := mat.NewDense(rows, len(names), nil)
	for j, name := range names {
		c := f.lookup(name)
		if c == nil {
			return nil, pferrors.NewMissingColumnError("SelectMatrix", name)
		}
		if c.typ != floatType {
			return nil, pferrors.NewValueError("SelectMatrix", "column "+name+" is not a float column")
		}
		for i, v := range c.floats {
			m.Set(i, j, v)
		}
	}
	return m, nil
}

// Group is one partition of a frame, keyed by a string column value.
type Group struct {
	Key   string
	Frame *Frame
}

// GroupByString partitions the frame by the values of a string column.
// Groups are returned in the order keys are first encountered.
func (f *Frame) GroupByString(name string) ([]Group, error) {
	c := f.lookup(name)
	if c == nil {
		return nil, pferrors.NewMissingColumnError("GroupByString", name)
	}
	if c.typ != stringType {
		return nil, pferrors.NewValueError("GroupByString", "column "+name+" is not a string column")
	}
	order := make([]string, 0)
	rowsByKey := make(map[string][]int)
	for i, key := range c.strs {
		if _, seen := rowsByKey[key]; !seen {
			order = append(order, key)
		}
		rowsByKey[key] = append(rowsByKey[key], i)
	}
	groups := make([]Group, len(order))
	for gi, key := range order {
		groups[gi] = Group{Key: key, Frame: f.selectRows(rowsByKey[key])}
	}
	return groups, nil
}

func (f *Frame) selectRows(idx []int) *Frame {
	out := &Frame{cols: make([]*column, len(f.cols))}
	for ci, c := range f.cols {
		nc := &column{name: c.name, typ: c.typ}
		if c.typ == stringType {
			nc.strs = make([]string, len(idx))
			for i, r := range idx {
				nc.strs[i] = c.strs[r]
			}
		} else {
			nc.floats = make([]float64, len(idx))
			for i, r := range idx {
				nc.floats[i] = c.floats[r]
			}
		}
		out.cols[ci] = nc
	}
	return out
}

// Concat stacks frames vertically. All frames must share the same columns
// in the same order; the result gets a fresh contiguous row identity.
func Concat(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return New(), nil
	}
	first := frames[0]
	out := first.Copy()
	for _, f := range frames[1:] {
		if f.NumCols() != first.NumCols() {
			return nil, pferrors.NewDimensionError("Concat", first.NumCols(), f.NumCols(), 1)
		}
		for ci, c := range f.cols {
			oc := out.cols[ci]
			if c.name != oc.name || c.typ != oc.typ {
				return nil, pferrors.NewValueError("Concat", "frames have mismatched columns: "+oc.name+" vs "+c.name)
			}
			if c.typ == stringType {
				oc.strs = append(oc.strs, c.strs...)
			} else {
				oc.floats = append(oc.floats, c.floats...)
			}
		}
	}
	return out, nil
}
