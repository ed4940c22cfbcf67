package sframe

import (
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

func TestDisplayBasic(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	df, err := BuildDataFrame(mem,
		IntColumn("id", []int32{1, 2}),
		StringColumn("name", []string{"alice", "bob"}),
	)
	if err != nil {
		t.Fatalf("BuildDataFrame failed: %v", err)
	}
	defer df.Release()

	out := df.String()
	if !strings.Contains(out, "data.frame [2 x 2]") {
		t.Errorf("output missing shape header:\n%s", out)
	}
	for _, want := range []string{"id", "name", "alice", "bob"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayElision(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	data := make([]int32, 50)
	for i := range data {
		data[i] = int32(i + 1)
	}
	df, err := BuildDataFrame(mem, IntColumn("n", data))
	if err != nil {
		t.Fatalf("BuildDataFrame failed: %v", err)
	}
	defer df.Release()

	out := df.Format(DisplayConfig{MaxRows: 6, ShowShape: true})
	if !strings.Contains(out, "...") {
		t.Errorf("output missing elision marker:\n%s", out)
	}
	if !strings.Contains(out, "50") {
		t.Errorf("output missing tail row:\n%s", out)
	}
	if strings.Contains(out, "\n25 ") {
		t.Errorf("output shows elided middle row:\n%s", out)
	}
}

func TestDisplayNA(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	col := NewIntegerVectorWithNA(mem, []int32{1, 0}, []bool{true, false})
	df, err := BuildDataFrame(mem, ColumnValue("x", col))
	col.Release()
	if err != nil {
		t.Fatalf("BuildDataFrame failed: %v", err)
	}
	defer df.Release()

	if !strings.Contains(df.String(), "NA") {
		t.Errorf("output missing NA:\n%s", df.String())
	}
}

func TestDisplayEmpty(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	df, err := BuildDataFrame(mem)
	if err != nil {
		t.Fatalf("BuildDataFrame failed: %v", err)
	}
	defer df.Release()

	if !strings.Contains(df.String(), "[0 x 0]") {
		t.Errorf("output = %q, want 0x0 header", df.String())
	}
}
