package sframe

// ProtectStack models the host runtime's protection discipline for transient
// handles: protect on acquire, unprotect on every exit path. Protecting
// retains the handle; unprotecting releases it. Scoped use:
//
//	ps := NewProtectStack()
//	defer ps.UnprotectAll()
//	col := ps.Protect(someTransientHandle())
type ProtectStack struct {
	values []*Value
}

// NewProtectStack creates an empty protection stack.
func NewProtectStack() *ProtectStack {
	return &ProtectStack{}
}

// Protect retains v and pushes it on the stack. Returns v for chaining.
// Protecting nil is a no-op.
func (ps *ProtectStack) Protect(v *Value) *Value {
	if v == nil {
		return nil
	}
	v.Retain()
	ps.values = append(ps.values, v)
	return v
}

// Unprotect pops and releases the top n handles, LIFO order.
// n larger than the stack depth drains the stack.
func (ps *ProtectStack) Unprotect(n int) {
	if n > len(ps.values) {
		n = len(ps.values)
	}
	for i := 0; i < n; i++ {
		top := ps.values[len(ps.values)-1]
		ps.values = ps.values[:len(ps.values)-1]
		top.Release()
	}
}

// UnprotectAll drains the stack, releasing every protected handle.
func (ps *ProtectStack) UnprotectAll() {
	ps.Unprotect(len(ps.values))
}

// Depth returns the number of handles currently protected.
func (ps *ProtectStack) Depth() int {
	return len(ps.values)
}
