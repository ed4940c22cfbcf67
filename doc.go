// Package sframe provides an object-oriented view over S-style tabular values:
// ordered lists of homogeneous column vectors carrying names, class, and
// row-names metadata, as an embedded S/R runtime represents a data.frame.
//
// Vector storage is backed by Apache Arrow arrays allocated from a
// memory.Allocator; handles are reference counted and must be released on
// every exit path (see ProtectStack).
package sframe
