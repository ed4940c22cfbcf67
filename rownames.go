package sframe

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// RowNames is the row-names descriptor of a tabular object, a tagged variant
// over the host's dual wire encoding: either an explicit label sequence or
// the compact {NA, -rowCount} form meaning "rowCount rows, anonymous labels".
type RowNames struct {
	compact bool
	count   int
	labels  []int32 // explicit integer labels; nil for compact or character labels
}

// ExplicitRowNames builds a descriptor from explicit integer labels.
func ExplicitRowNames(labels []int32) RowNames {
	return RowNames{count: len(labels), labels: labels}
}

// CompactRowNames builds the compact descriptor for n anonymous rows.
func CompactRowNames(n int) RowNames {
	if n < 0 {
		n = -n
	}
	return RowNames{compact: true, count: n}
}

// sequentialRowNames builds the explicit ascending labels 1..n.
func sequentialRowNames(n int) RowNames {
	labels := make([]int32, n)
	for i := range labels {
		labels[i] = int32(i + 1)
	}
	return ExplicitRowNames(labels)
}

// NRows returns the row count the descriptor denotes.
func (rn RowNames) NRows() int {
	return rn.count
}

// IsCompact reports whether the descriptor uses the compact encoding.
func (rn RowNames) IsCompact() bool {
	return rn.compact
}

// Labels returns the explicit integer labels, nil for the compact form.
func (rn RowNames) Labels() []int32 {
	return rn.labels
}

// encode materializes the descriptor in the host wire form: explicit labels
// as a plain integer vector, the compact form as the two-element integer
// vector {NA, -count}. The compact bit pattern is load-bearing; the host
// recognizes it by the leading NA and negative second element.
func (rn RowNames) encode(mem memory.Allocator) *Value {
	if rn.compact {
		return NewIntegerVectorWithNA(mem,
			[]int32{0, int32(-rn.count)},
			[]bool{false, true})
	}
	return NewIntegerVector(mem, rn.labels)
}

// parseRowNames decodes a row-names attribute value. The second return is
// false when v carries no usable descriptor (nil or NULL handle).
func parseRowNames(v *Value) (RowNames, bool) {
	if v == nil || v.Kind() == NullKind {
		return RowNames{}, false
	}
	switch v.Kind() {
	case Integer:
		if v.Length() == 2 && v.IsNA(0) && v.IntAt(1) < 0 {
			return CompactRowNames(int(-v.IntAt(1))), true
		}
		return ExplicitRowNames(v.Ints()), true
	case Character:
		// Character labels: only the length matters for shape.
		return RowNames{count: v.Length()}, true
	default:
		return RowNames{count: v.Length()}, true
	}
}
