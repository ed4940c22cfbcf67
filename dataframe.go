package sframe

// DataFrame is a read view over a host tabular object: a list handle whose
// elements are the columns, with names, class, and row-names metadata. The
// view retains the underlying handle; call Release when done with it.
type DataFrame struct {
	handle *Value
}

// AsDataFrame wraps an existing list handle as a tabular view. The handle is
// retained. Wrapping a non-list handle fails with ErrTypeMismatch; no
// metadata is validated beyond the representation kind.
func AsDataFrame(v *Value) (*DataFrame, error) {
	if v == nil || v.Kind() != List {
		return nil, errTypeMismatch("AsDataFrame", List, v.Kind())
	}
	v.Retain()
	return &DataFrame{handle: v}, nil
}

// Release drops the view's reference on the underlying handle.
func (df *DataFrame) Release() {
	if df == nil || df.handle == nil {
		return
	}
	df.handle.Release()
	df.handle = nil
}

// Handle returns the underlying list handle, borrowed from the view. Callers
// that keep it past the view's lifetime must Retain it themselves.
func (df *DataFrame) Handle() *Value {
	return df.handle
}

// NCol returns the number of columns.
func (df *DataFrame) NCol() int {
	if df == nil {
		return 0
	}
	return df.handle.Length()
}

// NRow returns the number of rows, derived from the row-names descriptor when
// present. Without row-names metadata an empty column list means zero rows;
// otherwise the first column's length is used. Row count is independent of
// column count: a frame with zero columns and a compact descriptor {NA, -10}
// has 10 rows.
func (df *DataFrame) NRow() int {
	if df == nil {
		return 0
	}
	if attr, ok := df.handle.Attr(AttrRowNames); ok {
		defer attr.Release()
		if rn, ok := parseRowNames(attr); ok {
			return rn.NRows()
		}
	}
	if df.NCol() == 0 {
		return 0
	}
	return df.handle.elems[0].Length()
}

// RowNames returns the parsed row-names descriptor. The second return is
// false when the object carries no row-names metadata.
func (df *DataFrame) RowNames() (RowNames, bool) {
	if df == nil {
		return RowNames{}, false
	}
	attr, ok := df.handle.Attr(AttrRowNames)
	if !ok {
		return RowNames{}, false
	}
	defer attr.Release()
	return parseRowNames(attr)
}

// Names returns the column names in order, taken from the names attribute.
// A missing names attribute yields an empty slice, matching attribute reads.
func (df *DataFrame) Names() []string {
	if df == nil {
		return nil
	}
	attr, ok := df.handle.Attr(AttrNames)
	if !ok {
		return []string{}
	}
	defer attr.Release()
	if attr.Kind() != Character {
		return []string{}
	}
	return attr.Strings()
}

// Class returns the first element of the class attribute, "" when unset.
func (df *DataFrame) Class() string {
	if df == nil {
		return ""
	}
	attr, ok := df.handle.Attr(AttrClass)
	if !ok {
		return ""
	}
	defer attr.Release()
	if attr.Kind() != Character || attr.Length() == 0 {
		return ""
	}
	return attr.StringAt(0)
}

// Column returns the column handle at the zero-based position i, retained.
// The caller releases it. Out-of-range access fails with ErrOutOfRange.
func (df *DataFrame) Column(i int) (*Value, error) {
	if df == nil || df.handle == nil {
		return nil, errOutOfRange("Column", i, 0)
	}
	if i < 0 || i >= df.NCol() {
		return nil, errOutOfRange("Column", i, df.NCol())
	}
	return df.handle.ElementAt(i)
}

// ColumnByName returns the retained column handle with the given name, or
// ErrOutOfRange if no column carries it.
func (df *DataFrame) ColumnByName(name string) (*Value, error) {
	for i, n := range df.Names() {
		if n == name {
			return df.Column(i)
		}
	}
	return nil, errOutOfRange("ColumnByName", -1, df.NCol())
}
