package sframe

import "fmt"

// Well-known attribute keys.
const (
	AttrNames    = "names"
	AttrClass    = "class"
	AttrRowNames = "row.names"
)

// Attr returns the attribute stored under name. A missing attribute is not an
// error: the second return is false and no handle is returned. The returned
// handle is retained; the caller releases it.
func (v *Value) Attr(name string) (*Value, bool) {
	if v == nil || v.attrs == nil {
		return nil, false
	}
	a, ok := v.attrs[name]
	if !ok {
		return nil, false
	}
	a.Retain()
	return a, true
}

// HasAttr reports whether an attribute is set without retaining it.
func (v *Value) HasAttr(name string) bool {
	if v == nil || v.attrs == nil {
		return false
	}
	_, ok := v.attrs[name]
	return ok
}

// SetAttr stores val under name in the value's metadata table, replacing and
// releasing any previous entry. The value is retained. Setting an attribute
// on a sealed handle fails with ErrReadOnly; a nil or NULL val removes the
// attribute.
func (v *Value) SetAttr(name string, val *Value) error {
	if v == nil || v.kind == NullKind {
		return fmt.Errorf("SetAttr: %w: cannot set attributes on NULL", ErrTypeMismatch)
	}
	if v.sealed {
		return ErrReadOnly
	}
	old, had := v.attrs[name]
	if val == nil || val.kind == NullKind {
		if had {
			delete(v.attrs, name)
			old.Release()
		}
		return nil
	}
	if v.attrs == nil {
		v.attrs = make(map[string]*Value)
	}
	val.Retain()
	v.attrs[name] = val
	if had {
		old.Release()
	}
	return nil
}

// Seal marks the handle read-only. Subsequent SetAttr calls fail with
// ErrReadOnly. Sealing is one-way.
func (v *Value) Seal() {
	if v != nil {
		v.sealed = true
	}
}

// Sealed reports whether the handle is read-only.
func (v *Value) Sealed() bool {
	return v != nil && v.sealed
}
