package sframe

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

// CSVReadOptions configures CSV reading behavior
type CSVReadOptions struct {
	Delimiter   rune     // Field delimiter (default ',')
	HasHeader   bool     // First row is header (default true)
	ColumnNames []string // Override column names
	NAValues    []string // Strings to treat as NA
	SkipRows    int      // Skip first N rows
	MaxRows     int      // Max rows to read (0 = unlimited)
	TrimSpace   bool     // Trim whitespace from values
	Comment     rune     // Comment character (skip lines starting with this)
}

// DefaultCSVReadOptions returns default CSV reading options
func DefaultCSVReadOptions() CSVReadOptions {
	return CSVReadOptions{
		Delimiter: ',',
		HasHeader: true,
		NAValues:  []string{"", "NA", "N/A", "null", "NULL", "NaN"},
		TrimSpace: true,
	}
}

// ReadCSV reads a CSV file into a tagged tabular object.
func ReadCSV(mem memory.Allocator, path string, opts ...CSVReadOptions) (*DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ReadCSVFromReader(mem, f, opts...)
}

// ReadCSVFromReader reads CSV data from an io.Reader into a tagged tabular
// object. Column types are inferred per column: logical, then integer, then
// real, then character.
func ReadCSVFromReader(mem memory.Allocator, r io.Reader, opts ...CSVReadOptions) (*DataFrame, error) {
	mem = resolveAllocator(mem)
	opt := DefaultCSVReadOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	reader := csv.NewReader(r)
	reader.Comma = opt.Delimiter
	if opt.Comment != 0 {
		reader.Comment = opt.Comment
	}
	reader.TrimLeadingSpace = opt.TrimSpace

	for i := 0; i < opt.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("failed to skip row %d: %w", i, err)
		}
	}

	var headers []string
	if opt.HasHeader {
		var err error
		headers, err = reader.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
	} else if len(opt.ColumnNames) > 0 {
		headers = opt.ColumnNames
	}

	var records [][]string
	for {
		if opt.MaxRows > 0 && len(records) >= opt.MaxRows {
			break
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records), err)
		}
		records = append(records, record)
	}

	ncol := len(headers)
	if ncol == 0 && len(records) > 0 {
		ncol = len(records[0])
		headers = make([]string, ncol)
		for i := range headers {
			headers[i] = fmt.Sprintf("V%d", i+1)
		}
	}

	cols := make([]*Value, 0, ncol)
	release := func() {
		for _, c := range cols {
			c.Release()
		}
	}

	for i := 0; i < ncol; i++ {
		kind := inferColumnKind(records, i, opt.NAValues)
		col, err := buildColumn(mem, kind, records, i, opt.NAValues)
		if err != nil {
			release()
			return nil, fmt.Errorf("column %s: %w", headers[i], err)
		}
		cols = append(cols, col)
	}

	df, err := buildTagged(mem, headers, cols, sequentialRowNames(len(records)))
	release()
	return df, err
}

// inferColumnKind determines the narrowest vector kind holding every non-NA
// value of the column.
func inferColumnKind(records [][]string, colIdx int, naValues []string) Kind {
	hasBool := false
	hasInt := false
	hasReal := false

	for _, record := range records {
		if colIdx >= len(record) {
			continue
		}
		val := strings.TrimSpace(record[colIdx])
		if isNA(val, naValues) {
			continue
		}

		lower := strings.ToLower(val)
		if lower == "true" || lower == "false" {
			hasBool = true
			continue
		}

		if _, err := strconv.ParseInt(val, 10, 32); err == nil {
			hasInt = true
			continue
		}

		if _, err := strconv.ParseFloat(val, 64); err == nil {
			hasReal = true
			continue
		}

		return Character
	}

	if hasReal {
		return Real
	}
	if hasInt {
		return Integer
	}
	if hasBool {
		return Logical
	}
	return Character
}

func buildColumn(mem memory.Allocator, kind Kind, records [][]string, colIdx int, naValues []string) (*Value, error) {
	n := len(records)

	cell := func(i int) (string, bool) {
		if colIdx >= len(records[i]) {
			return "", false
		}
		val := strings.TrimSpace(records[i][colIdx])
		return val, !isNA(val, naValues)
	}

	switch kind {
	case Real:
		data := make([]float64, n)
		valid := make([]bool, n)
		for i := 0; i < n; i++ {
			val, ok := cell(i)
			if !ok {
				data[i] = math.NaN()
				continue
			}
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: cannot parse '%s' as real", i, val)
			}
			data[i] = f
			valid[i] = true
		}
		return NewRealVectorWithNA(mem, data, valid), nil

	case Integer:
		data := make([]int32, n)
		valid := make([]bool, n)
		for i := 0; i < n; i++ {
			val, ok := cell(i)
			if !ok {
				continue
			}
			v, err := strconv.ParseInt(val, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("row %d: cannot parse '%s' as integer", i, val)
			}
			data[i] = int32(v)
			valid[i] = true
		}
		return NewIntegerVectorWithNA(mem, data, valid), nil

	case Logical:
		data := make([]bool, n)
		for i := 0; i < n; i++ {
			val, ok := cell(i)
			if !ok {
				continue
			}
			data[i] = strings.EqualFold(val, "true")
		}
		return NewLogicalVector(mem, data), nil

	case Character:
		data := make([]string, n)
		for i := 0; i < n; i++ {
			if val, ok := cell(i); ok {
				data[i] = val
			}
		}
		return NewCharacterVector(mem, data), nil

	default:
		return nil, fmt.Errorf("unsupported kind: %s", kind)
	}
}

func isNA(val string, naValues []string) bool {
	for _, nv := range naValues {
		if val == nv {
			return true
		}
	}
	return false
}

// ============================================================================
// CSV Writing
// ============================================================================

// CSVWriteOptions configures CSV writing behavior
type CSVWriteOptions struct {
	Delimiter   rune   // Field delimiter (default ',')
	WriteHeader bool   // Write column names as first row (default true)
	NAString    string // Representation for NA entries (default "NA")
}

// DefaultCSVWriteOptions returns default CSV writing options
func DefaultCSVWriteOptions() CSVWriteOptions {
	return CSVWriteOptions{
		Delimiter:   ',',
		WriteHeader: true,
		NAString:    "NA",
	}
}

// WriteCSV writes the frame to a CSV file
func (df *DataFrame) WriteCSV(path string, opts ...CSVWriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return df.WriteCSVToWriter(f, opts...)
}

// WriteCSVToWriter writes the frame as CSV to an io.Writer
func (df *DataFrame) WriteCSVToWriter(w io.Writer, opts ...CSVWriteOptions) error {
	opt := DefaultCSVWriteOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	writer := csv.NewWriter(w)
	writer.Comma = opt.Delimiter

	ncol := df.NCol()
	nrow := df.NRow()

	if opt.WriteHeader {
		if err := writer.Write(df.Names()); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

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

	row := make([]string, ncol)
	for i := 0; i < nrow; i++ {
		for j, col := range cols {
			row[j] = formatCell(col, i, opt.NAString)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatCell renders element i of a vector for textual output.
func formatCell(col *Value, i int, naString string) string {
	if col.IsNA(i) {
		return naString
	}
	switch col.Kind() {
	case Integer:
		return strconv.FormatInt(int64(col.IntAt(i)), 10)
	case Real:
		return strconv.FormatFloat(col.RealAt(i), 'g', -1, 64)
	case Logical:
		if col.BoolAt(i) {
			return "TRUE"
		}
		return "FALSE"
	case Character:
		return col.StringAt(i)
	default:
		return ""
	}
}
