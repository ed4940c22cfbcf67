package sframe

import "fmt"

// Kind identifies the host representation of a Value.
type Kind uint8

const (
	// NullKind is the null value (the host runtime's NULL).
	NullKind Kind = iota

	// Vector kinds
	Logical   // boolean vector
	Integer   // 32-bit integer vector
	Real      // 64-bit float vector
	Character // string vector

	// List is a generic vector: an ordered sequence of handles.
	List
)

// String returns the string representation of the Kind
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "NULL"
	case Logical:
		return "Logical"
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	case Character:
		return "Character"
	case List:
		return "List"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// IsVector returns true if the kind is a homogeneous vector kind
func (k Kind) IsVector() bool {
	switch k {
	case Logical, Integer, Real, Character:
		return true
	default:
		return false
	}
}
