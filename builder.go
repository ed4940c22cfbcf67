package sframe

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

// DataFrameClass is the class tag the host runtime recognizes on tabular
// objects.
const DataFrameClass = "data.frame"

// Column names one column of data for BuildDataFrame. Use the typed
// constructors below, or ColumnValue for a pre-built handle.
type Column struct {
	Name string

	build func(memory.Allocator) *Value
}

// IntColumn names an integer column.
func IntColumn(name string, data []int32) Column {
	return Column{Name: name, build: func(mem memory.Allocator) *Value {
		return NewIntegerVector(mem, data)
	}}
}

// RealColumn names a float column.
func RealColumn(name string, data []float64) Column {
	return Column{Name: name, build: func(mem memory.Allocator) *Value {
		return NewRealVector(mem, data)
	}}
}

// StringColumn names a string column.
func StringColumn(name string, data []string) Column {
	return Column{Name: name, build: func(mem memory.Allocator) *Value {
		return NewCharacterVector(mem, data)
	}}
}

// BoolColumn names a logical column.
func BoolColumn(name string, data []bool) Column {
	return Column{Name: name, build: func(mem memory.Allocator) *Value {
		return NewLogicalVector(mem, data)
	}}
}

// ColumnValue names an existing vector handle as a column. The handle is
// retained when the frame is built; the caller keeps its own reference.
func ColumnValue(name string, v *Value) Column {
	return Column{Name: name, build: func(memory.Allocator) *Value {
		v.Retain()
		return v
	}}
}

// BuildDataFrame constructs a fresh tabular object from named columns, in the
// given order. The result carries the column names, explicit ascending row
// names 1..rowCount (row count taken from the first column), and the
// "data.frame" class tag. All columns must have equal length; a mismatch
// fails with ErrLengthMismatch before any handle is exposed.
func BuildDataFrame(mem memory.Allocator, cols ...Column) (*DataFrame, error) {
	mem = resolveAllocator(mem)

	names := make([]string, len(cols))
	values := make([]*Value, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		values[i] = c.build(mem)
	}

	release := func() {
		for _, v := range values {
			v.Release()
		}
	}

	if len(values) > 0 {
		want := values[0].Length()
		for i, v := range values {
			if v.Length() != want {
				release()
				return nil, fmt.Errorf("BuildDataFrame: column %q: %w: got %d, want %d",
					names[i], ErrLengthMismatch, v.Length(), want)
			}
		}
	}

	nrow := 0
	if len(values) > 0 {
		nrow = values[0].Length()
	}

	df, err := buildTagged(mem, names, values, sequentialRowNames(nrow))
	release()
	return df, err
}

// buildTagged assembles the list handle and tags it with names, row-names,
// and class metadata. Column handles are retained by the list; the caller
// keeps (and releases) its own references.
func buildTagged(mem memory.Allocator, names []string, cols []*Value, rn RowNames) (*DataFrame, error) {
	list := NewList(mem, cols...)
	defer list.Release()

	nameVec := NewCharacterVector(mem, names)
	err := list.SetAttr(AttrNames, nameVec)
	nameVec.Release()
	if err != nil {
		return nil, fmt.Errorf("buildTagged: names: %w", err)
	}

	rowNames := rn.encode(mem)
	err = list.SetAttr(AttrRowNames, rowNames)
	rowNames.Release()
	if err != nil {
		return nil, fmt.Errorf("buildTagged: row.names: %w", err)
	}

	class := NewCharacterVector(mem, []string{DataFrameClass})
	err = list.SetAttr(AttrClass, class)
	class.Release()
	if err != nil {
		return nil, fmt.Errorf("buildTagged: class: %w", err)
	}

	return AsDataFrame(list)
}
