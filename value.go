package sframe

import (
	"math"
	"runtime"
	"sync/atomic"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// NAInteger is the integer NA marker used when materializing integer vectors
// into raw Go slices. It matches the host convention of the smallest int32.
const NAInteger int32 = math.MinInt32

// Value is a handle to a host-runtime value. Vector kinds are backed by Arrow
// arrays owned through the Value's reference count; lists hold retained child
// handles. A Value must be released exactly once per retain, on every exit
// path. The finalizer is a backstop for handles the caller lost track of.
type Value struct {
	kind     Kind
	refCount int64
	arr      arrow.Array // vector kinds only
	elems    []*Value    // List only
	attrs    map[string]*Value
	sealed   bool
	mem      memory.Allocator
}

// newValue wraps storage in a handle with refcount 1 and a finalizer backstop.
func newValue(kind Kind, arr arrow.Array, elems []*Value, mem memory.Allocator) *Value {
	v := &Value{
		kind:     kind,
		refCount: 1,
		arr:      arr,
		elems:    elems,
		mem:      mem,
	}
	runtime.SetFinalizer(v, func(v *Value) {
		v.Release()
	})
	return v
}

func resolveAllocator(mem memory.Allocator) memory.Allocator {
	if mem == nil {
		return memory.DefaultAllocator
	}
	return mem
}

// NullValue returns a fresh handle to the host NULL value.
// NULL carries no storage; Retain and Release on it are no-ops.
func NullValue() *Value {
	return &Value{kind: NullKind}
}

// ============================================================================
// Vector Constructors
// ============================================================================

// NewIntegerVector creates an Integer vector from a Go slice.
// The data is copied into Arrow-managed memory from the given allocator.
func NewIntegerVector(mem memory.Allocator, data []int32) *Value {
	mem = resolveAllocator(mem)
	b := array.NewInt32Builder(mem)
	defer b.Release()
	b.AppendValues(data, nil)
	return newValue(Integer, b.NewArray(), nil, mem)
}

// NewIntegerVectorWithNA creates an Integer vector with NA entries.
// valid[i]==false marks element i as NA.
func NewIntegerVectorWithNA(mem memory.Allocator, data []int32, valid []bool) *Value {
	mem = resolveAllocator(mem)
	b := array.NewInt32Builder(mem)
	defer b.Release()
	b.AppendValues(data, valid)
	return newValue(Integer, b.NewArray(), nil, mem)
}

// NewRealVector creates a Real vector from a Go slice.
func NewRealVector(mem memory.Allocator, data []float64) *Value {
	mem = resolveAllocator(mem)
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.AppendValues(data, nil)
	return newValue(Real, b.NewArray(), nil, mem)
}

// NewRealVectorWithNA creates a Real vector with NA entries.
func NewRealVectorWithNA(mem memory.Allocator, data []float64, valid []bool) *Value {
	mem = resolveAllocator(mem)
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.AppendValues(data, valid)
	return newValue(Real, b.NewArray(), nil, mem)
}

// NewLogicalVector creates a Logical vector from a Go slice.
func NewLogicalVector(mem memory.Allocator, data []bool) *Value {
	mem = resolveAllocator(mem)
	b := array.NewBooleanBuilder(mem)
	defer b.Release()
	b.AppendValues(data, nil)
	return newValue(Logical, b.NewArray(), nil, mem)
}

// NewCharacterVector creates a Character vector from a Go slice.
func NewCharacterVector(mem memory.Allocator, data []string) *Value {
	mem = resolveAllocator(mem)
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.AppendValues(data, nil)
	return newValue(Character, b.NewArray(), nil, mem)
}

// NewList creates a generic vector from the given element handles.
// Each element is retained; nil elements are stored as NULL.
func NewList(mem memory.Allocator, elems ...*Value) *Value {
	mem = resolveAllocator(mem)
	children := make([]*Value, len(elems))
	for i, e := range elems {
		if e == nil {
			e = NullValue()
		}
		e.Retain()
		children[i] = e
	}
	return newValue(List, nil, children, mem)
}

// wrapArrowArray adopts an existing Arrow array as a vector handle.
// The array is retained; the caller keeps its own reference.
func wrapArrowArray(kind Kind, arr arrow.Array, mem memory.Allocator) *Value {
	arr.Retain()
	return newValue(kind, arr, nil, resolveAllocator(mem))
}

// ============================================================================
// Lifetime
// ============================================================================

// Retain increments the handle's reference count.
func (v *Value) Retain() {
	if v == nil || v.kind == NullKind {
		return
	}
	atomic.AddInt64(&v.refCount, 1)
}

// Release decrements the reference count, freeing the underlying storage when
// it reaches zero. Releasing an already-dead handle is a no-op, so the
// finalizer backstop is safe after an explicit release.
func (v *Value) Release() {
	if v == nil || v.kind == NullKind {
		return
	}
	for {
		n := atomic.LoadInt64(&v.refCount)
		if n <= 0 {
			return
		}
		if !atomic.CompareAndSwapInt64(&v.refCount, n, n-1) {
			continue
		}
		if n == 1 {
			v.free()
		}
		return
	}
}

func (v *Value) free() {
	if v.arr != nil {
		v.arr.Release()
		v.arr = nil
	}
	for _, e := range v.elems {
		e.Release()
	}
	v.elems = nil
	for _, a := range v.attrs {
		a.Release()
	}
	v.attrs = nil
}

// ============================================================================
// Shape & Element Access
// ============================================================================

// Kind returns the host representation kind of the value.
func (v *Value) Kind() Kind {
	if v == nil {
		return NullKind
	}
	return v.kind
}

// Length returns the number of elements in a vector or list, 0 for NULL.
func (v *Value) Length() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case List:
		return len(v.elems)
	case NullKind:
		return 0
	default:
		if v.arr == nil {
			return 0
		}
		return v.arr.Len()
	}
}

// IsNA reports whether element i of a vector is NA.
// Out-of-range or non-vector access reports false.
func (v *Value) IsNA(i int) bool {
	if v == nil || v.arr == nil || i < 0 || i >= v.arr.Len() {
		return false
	}
	return v.arr.IsNull(i)
}

// IntAt returns element i of an Integer vector, NAInteger for NA entries.
// Returns 0 for non-integer handles or out-of-range indices.
func (v *Value) IntAt(i int) int32 {
	a, ok := v.int32Array()
	if !ok || i < 0 || i >= a.Len() {
		return 0
	}
	if a.IsNull(i) {
		return NAInteger
	}
	return a.Value(i)
}

// RealAt returns element i of a Real vector, NaN for NA entries.
func (v *Value) RealAt(i int) float64 {
	if v == nil || v.kind != Real {
		return 0
	}
	a, ok := v.arr.(*array.Float64)
	if !ok || i < 0 || i >= a.Len() {
		return 0
	}
	if a.IsNull(i) {
		return math.NaN()
	}
	return a.Value(i)
}

// BoolAt returns element i of a Logical vector.
func (v *Value) BoolAt(i int) bool {
	if v == nil || v.kind != Logical {
		return false
	}
	a, ok := v.arr.(*array.Boolean)
	if !ok || i < 0 || i >= a.Len() {
		return false
	}
	return !a.IsNull(i) && a.Value(i)
}

// StringAt returns element i of a Character vector, "" for NA entries.
func (v *Value) StringAt(i int) string {
	if v == nil || v.kind != Character {
		return ""
	}
	a, ok := v.arr.(*array.String)
	if !ok || i < 0 || i >= a.Len() {
		return ""
	}
	if a.IsNull(i) {
		return ""
	}
	return a.Value(i)
}

// ElementAt returns the retained handle at index i of a list, or an error for
// non-list handles and out-of-range indices. The caller releases the result.
func (v *Value) ElementAt(i int) (*Value, error) {
	if v == nil || v.kind != List {
		return nil, errTypeMismatch("ElementAt", List, v.Kind())
	}
	if i < 0 || i >= len(v.elems) {
		return nil, errOutOfRange("ElementAt", i, len(v.elems))
	}
	e := v.elems[i]
	e.Retain()
	return e, nil
}

// Ints materializes an Integer vector into a Go slice, with NAInteger for NAs.
func (v *Value) Ints() []int32 {
	a, ok := v.int32Array()
	if !ok {
		return nil
	}
	out := make([]int32, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			out[i] = NAInteger
		} else {
			out[i] = a.Value(i)
		}
	}
	return out
}

// Reals materializes a Real vector into a Go slice, with NaN for NAs.
func (v *Value) Reals() []float64 {
	if v == nil || v.kind != Real {
		return nil
	}
	a, ok := v.arr.(*array.Float64)
	if !ok {
		return nil
	}
	out := make([]float64, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			out[i] = math.NaN()
		} else {
			out[i] = a.Value(i)
		}
	}
	return out
}

// Strings materializes a Character vector into a Go slice, with "" for NAs.
func (v *Value) Strings() []string {
	if v == nil || v.kind != Character {
		return nil
	}
	a, ok := v.arr.(*array.String)
	if !ok {
		return nil
	}
	out := make([]string, a.Len())
	for i := 0; i < a.Len(); i++ {
		if !a.IsNull(i) {
			out[i] = a.Value(i)
		}
	}
	return out
}

// Bools materializes a Logical vector into a Go slice, with false for NAs.
func (v *Value) Bools() []bool {
	if v == nil || v.kind != Logical {
		return nil
	}
	a, ok := v.arr.(*array.Boolean)
	if !ok {
		return nil
	}
	out := make([]bool, a.Len())
	for i := 0; i < a.Len(); i++ {
		out[i] = !a.IsNull(i) && a.Value(i)
	}
	return out
}

func (v *Value) int32Array() (*array.Int32, bool) {
	if v == nil || v.kind != Integer {
		return nil, false
	}
	a, ok := v.arr.(*array.Int32)
	return a, ok
}

// arrowArray exposes the backing Arrow array of a vector handle.
// The array stays owned by the handle; callers Retain if they keep it.
func (v *Value) arrowArray() arrow.Array {
	if v == nil {
		return nil
	}
	return v.arr
}
