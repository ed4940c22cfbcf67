package sframe

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ============================================================================
// Arrow Export
// ============================================================================

// ToArrow exports the frame as an Arrow Record. Column storage is shared, not
// copied. The caller is responsible for calling Release() on the returned
// Record.
func (df *DataFrame) ToArrow(mem memory.Allocator) (arrow.Record, error) {
	mem = resolveAllocator(mem)

	names := df.Names()
	ncol := df.NCol()

	fields := make([]arrow.Field, ncol)
	arrays := make([]arrow.Array, ncol)
	cols := make([]*Value, 0, ncol)
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	for i := 0; i < ncol; i++ {
		col, err := df.Column(i)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)

		arr := col.arrowArray()
		if arr == nil {
			return nil, fmt.Errorf("ToArrow: column %d: %w: %s column has no vector storage",
				i, ErrTypeMismatch, col.Kind())
		}

		name := fmt.Sprintf("V%d", i+1)
		if i < len(names) {
			name = names[i]
		}
		fields[i] = arrow.Field{Name: name, Type: arr.DataType(), Nullable: true}
		arrays[i] = arr
	}

	schema := arrow.NewSchema(fields, nil)

	// NewRecord retains the arrays; the column handles released by the defer
	// keep their own references until then.
	return array.NewRecord(schema, arrays, int64(df.NRow())), nil
}

// ============================================================================
// Arrow Import
// ============================================================================

// DataFrameFromArrow wraps an Arrow Record as a tagged tabular object with
// explicit row names 1..NumRows. Columns whose Arrow type matches a host
// vector kind are shared zero-copy; integer and float widths without a host
// kind are converted to Real.
func DataFrameFromArrow(mem memory.Allocator, record arrow.Record) (*DataFrame, error) {
	if record == nil {
		return nil, fmt.Errorf("DataFrameFromArrow: record is nil")
	}
	mem = resolveAllocator(mem)

	schema := record.Schema()
	ncol := int(record.NumCols())

	names := make([]string, ncol)
	cols := make([]*Value, 0, ncol)
	release := func() {
		for _, c := range cols {
			c.Release()
		}
	}

	for i := 0; i < ncol; i++ {
		names[i] = schema.Field(i).Name
		col, err := arrowArrayToVector(mem, record.Column(i))
		if err != nil {
			release()
			return nil, fmt.Errorf("DataFrameFromArrow: column %s: %w", names[i], err)
		}
		cols = append(cols, col)
	}

	df, err := buildTagged(mem, names, cols, sequentialRowNames(int(record.NumRows())))
	release()
	return df, err
}

// arrowArrayToVector converts an Arrow array to a host vector handle.
func arrowArrayToVector(mem memory.Allocator, arr arrow.Array) (*Value, error) {
	switch a := arr.(type) {
	case *array.Int32:
		return wrapArrowArray(Integer, a, mem), nil

	case *array.Float64:
		return wrapArrowArray(Real, a, mem), nil

	case *array.String:
		return wrapArrowArray(Character, a, mem), nil

	case *array.Boolean:
		return wrapArrowArray(Logical, a, mem), nil

	case *array.Int64:
		data := make([]float64, a.Len())
		valid := make([]bool, a.Len())
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				continue
			}
			data[i] = float64(a.Value(i))
			valid[i] = true
		}
		return NewRealVectorWithNA(mem, data, valid), nil

	case *array.Float32:
		data := make([]float64, a.Len())
		valid := make([]bool, a.Len())
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				continue
			}
			data[i] = float64(a.Value(i))
			valid[i] = true
		}
		return NewRealVectorWithNA(mem, data, valid), nil

	default:
		return nil, fmt.Errorf("unsupported Arrow array type: %T", arr)
	}
}
