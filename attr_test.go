package sframe

import (
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

func TestAttrGetSet(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	list := NewList(mem)
	defer list.Release()

	// Missing attribute reads signal absent, not an error.
	if _, ok := list.Attr("names"); ok {
		t.Error("Attr(names) present on fresh list")
	}

	names := NewCharacterVector(mem, []string{"a"})
	if err := list.SetAttr(AttrNames, names); err != nil {
		t.Fatalf("SetAttr failed: %v", err)
	}
	names.Release()

	got, ok := list.Attr(AttrNames)
	if !ok {
		t.Fatal("Attr(names) absent after SetAttr")
	}
	if got.StringAt(0) != "a" {
		t.Errorf("names[0] = %q, want \"a\"", got.StringAt(0))
	}
	got.Release()
}

func TestAttrReplace(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	list := NewList(mem)
	defer list.Release()

	first := NewCharacterVector(mem, []string{"old"})
	if err := list.SetAttr(AttrClass, first); err != nil {
		t.Fatalf("SetAttr failed: %v", err)
	}
	first.Release()

	// Replacing releases the previous attribute value.
	second := NewCharacterVector(mem, []string{"new"})
	if err := list.SetAttr(AttrClass, second); err != nil {
		t.Fatalf("SetAttr failed: %v", err)
	}
	second.Release()

	got, _ := list.Attr(AttrClass)
	if got.StringAt(0) != "new" {
		t.Errorf("class = %q, want \"new\"", got.StringAt(0))
	}
	got.Release()
}

func TestAttrRemove(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	list := NewList(mem)
	defer list.Release()

	v := NewIntegerVector(mem, []int32{1})
	if err := list.SetAttr("dim", v); err != nil {
		t.Fatalf("SetAttr failed: %v", err)
	}
	v.Release()

	// Setting NULL removes the attribute.
	if err := list.SetAttr("dim", nil); err != nil {
		t.Fatalf("SetAttr(nil) failed: %v", err)
	}
	if list.HasAttr("dim") {
		t.Error("attribute still present after removal")
	}
}

func TestSealedHandleRejectsWrites(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	list := NewList(mem)
	defer list.Release()
	list.Seal()

	if !list.Sealed() {
		t.Error("Sealed() = false after Seal")
	}

	v := NewIntegerVector(mem, []int32{1})
	defer v.Release()
	if err := list.SetAttr(AttrNames, v); !errors.Is(err, ErrReadOnly) {
		t.Errorf("SetAttr on sealed handle error = %v, want ErrReadOnly", err)
	}
}
