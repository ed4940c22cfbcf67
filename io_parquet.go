package sframe

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/parquet-go/parquet-go"
)

// ParquetReadOptions configures Parquet reading behavior
type ParquetReadOptions struct {
	MaxRows int // Max rows to read (0 = unlimited)
}

// ParquetWriteOptions configures Parquet writing behavior
type ParquetWriteOptions struct {
	Compression string // "snappy", "gzip", "zstd", "none" (default "snappy")
}

// DefaultParquetWriteOptions returns default Parquet writing options
func DefaultParquetWriteOptions() ParquetWriteOptions {
	return ParquetWriteOptions{Compression: "snappy"}
}

// WriteParquet writes the frame to a Parquet file.
// NA entries are materialized: NAInteger for integers, NaN for reals, "NA"
// for strings, false for logicals.
func (df *DataFrame) WriteParquet(path string, opts ...ParquetWriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return df.WriteParquetToWriter(f, opts...)
}

// WriteParquetToWriter writes the frame to an io.Writer in Parquet format
func (df *DataFrame) WriteParquetToWriter(w io.Writer, opts ...ParquetWriteOptions) error {
	opt := DefaultParquetWriteOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	ncol := df.NCol()
	nrow := df.NRow()
	if ncol == 0 || nrow == 0 {
		return nil
	}

	names := df.Names()
	cols := make([]*Value, ncol)
	for i := 0; i < ncol; i++ {
		col, err := df.Column(i)
		if err != nil {
			for _, c := range cols[:i] {
				c.Release()
			}
			return err
		}
		cols[i] = col
	}
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	group := make(parquet.Group)
	for i, col := range cols {
		node, err := kindToParquetNode(col.Kind())
		if err != nil {
			return fmt.Errorf("column %s: %w", names[i], err)
		}
		group[names[i]] = node
	}
	schema := parquet.NewSchema(DataFrameClass, group)

	writerOpts := []parquet.WriterOption{schema}
	switch opt.Compression {
	case "snappy":
		writerOpts = append(writerOpts, parquet.Compression(&parquet.Snappy))
	case "gzip":
		writerOpts = append(writerOpts, parquet.Compression(&parquet.Gzip))
	case "zstd":
		writerOpts = append(writerOpts, parquet.Compression(&parquet.Zstd))
	}

	pw := parquet.NewWriter(w, writerOpts...)
	defer pw.Close()

	// Schema fields are sorted by name; write values in that order.
	fieldOrder := make([]int, ncol)
	for fi, field := range schema.Fields() {
		for ci, name := range names {
			if name == field.Name() {
				fieldOrder[fi] = ci
				break
			}
		}
	}

	const batchSize = 1000
	rows := make([]parquet.Row, 0, batchSize)
	for i := 0; i < nrow; i++ {
		row := make(parquet.Row, ncol)
		for fi, ci := range fieldOrder {
			row[fi] = toParquetValue(cols[ci], i)
		}
		rows = append(rows, row)

		if len(rows) >= batchSize {
			if _, err := pw.WriteRows(rows); err != nil {
				return fmt.Errorf("failed to write rows at %d: %w", i-len(rows)+1, err)
			}
			rows = rows[:0]
		}
	}

	if len(rows) > 0 {
		if _, err := pw.WriteRows(rows); err != nil {
			return fmt.Errorf("failed to write final rows: %w", err)
		}
	}

	return pw.Close()
}

func kindToParquetNode(kind Kind) (parquet.Node, error) {
	switch kind {
	case Integer:
		return parquet.Leaf(parquet.Int32Type), nil
	case Real:
		return parquet.Leaf(parquet.DoubleType), nil
	case Logical:
		return parquet.Leaf(parquet.BooleanType), nil
	case Character:
		return parquet.Leaf(parquet.ByteArrayType), nil
	default:
		return nil, fmt.Errorf("%w: %s column has no parquet representation", ErrTypeMismatch, kind)
	}
}

func toParquetValue(col *Value, i int) parquet.Value {
	switch col.Kind() {
	case Integer:
		return parquet.Int32Value(col.IntAt(i))
	case Real:
		return parquet.DoubleValue(col.RealAt(i))
	case Logical:
		return parquet.BooleanValue(col.BoolAt(i))
	case Character:
		if col.IsNA(i) {
			return parquet.ByteArrayValue([]byte("NA"))
		}
		return parquet.ByteArrayValue([]byte(col.StringAt(i)))
	default:
		return parquet.NullValue()
	}
}

// ============================================================================
// Parquet Reading
// ============================================================================

// parquetColBuilder accumulates one column while reading rows
type parquetColBuilder struct {
	kind     Kind
	i32Data  []int32
	f64Data  []float64
	boolData []bool
	strData  []string
}

// ReadParquet reads a Parquet file into a tagged tabular object.
func ReadParquet(mem memory.Allocator, path string, opts ...ParquetReadOptions) (*DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return ReadParquetFromReader(mem, f, stat.Size(), opts...)
}

// ReadParquetFromReader reads Parquet data from an io.ReaderAt into a tagged
// tabular object.
func ReadParquetFromReader(mem memory.Allocator, r io.ReaderAt, size int64, opts ...ParquetReadOptions) (*DataFrame, error) {
	mem = resolveAllocator(mem)
	opt := ParquetReadOptions{}
	if len(opts) > 0 {
		opt = opts[0]
	}

	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	schema := pf.Schema()
	fields := schema.Fields()

	names := make([]string, len(fields))
	builders := make([]parquetColBuilder, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
		builders[i].kind = parquetFieldToKind(field)
	}

	rowCount := 0
	for _, rg := range pf.RowGroups() {
		if opt.MaxRows > 0 && rowCount >= opt.MaxRows {
			break
		}

		rows := rg.Rows()
		rowBuf := make([]parquet.Row, 1000)
		for {
			n, err := rows.ReadRows(rowBuf)
			if err != nil && err != io.EOF {
				rows.Close()
				return nil, fmt.Errorf("failed to read rows: %w", err)
			}
			if n == 0 {
				break
			}

			for _, row := range rowBuf[:n] {
				if opt.MaxRows > 0 && rowCount >= opt.MaxRows {
					break
				}
				for i := range builders {
					if i < len(row) {
						appendParquetValue(&builders[i], row[i])
					}
				}
				rowCount++
			}

			if opt.MaxRows > 0 && rowCount >= opt.MaxRows {
				break
			}
		}
		rows.Close()
	}

	cols := make([]*Value, 0, len(builders))
	release := func() {
		for _, c := range cols {
			c.Release()
		}
	}
	for i := range builders {
		b := &builders[i]
		switch b.kind {
		case Integer:
			cols = append(cols, NewIntegerVector(mem, b.i32Data))
		case Real:
			cols = append(cols, NewRealVector(mem, b.f64Data))
		case Logical:
			cols = append(cols, NewLogicalVector(mem, b.boolData))
		default:
			cols = append(cols, NewCharacterVector(mem, b.strData))
		}
	}

	df, err := buildTagged(mem, names, cols, sequentialRowNames(rowCount))
	release()
	return df, err
}

func parquetFieldToKind(field parquet.Field) Kind {
	switch field.Type().Kind() {
	case parquet.Int32:
		return Integer
	case parquet.Int64, parquet.Double, parquet.Float:
		return Real
	case parquet.Boolean:
		return Logical
	default:
		return Character
	}
}

func appendParquetValue(b *parquetColBuilder, val parquet.Value) {
	switch b.kind {
	case Integer:
		if val.IsNull() {
			b.i32Data = append(b.i32Data, NAInteger)
		} else {
			b.i32Data = append(b.i32Data, val.Int32())
		}
	case Real:
		switch {
		case val.IsNull():
			b.f64Data = append(b.f64Data, math.NaN())
		case val.Kind() == parquet.Int64:
			b.f64Data = append(b.f64Data, float64(val.Int64()))
		case val.Kind() == parquet.Float:
			b.f64Data = append(b.f64Data, float64(val.Float()))
		default:
			b.f64Data = append(b.f64Data, val.Double())
		}
	case Logical:
		b.boolData = append(b.boolData, !val.IsNull() && val.Boolean())
	default:
		if val.IsNull() {
			b.strData = append(b.strData, "")
		} else {
			b.strData = append(b.strData, string(val.ByteArray()))
		}
	}
}
