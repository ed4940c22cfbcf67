package sframe

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

func TestParquetRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	src, err := BuildDataFrame(mem,
		IntColumn("a", []int32{1, 2, 3}),
		RealColumn("b", []float64{1.5, 2.5, 3.5}),
		StringColumn("c", []string{"x", "y", "z"}),
	)
	if err != nil {
		t.Fatalf("BuildDataFrame failed: %v", err)
	}
	defer src.Release()

	var buf bytes.Buffer
	if err := src.WriteParquetToWriter(&buf); err != nil {
		t.Fatalf("WriteParquetToWriter failed: %v", err)
	}

	df, err := ReadParquetFromReader(mem, bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("ReadParquetFromReader failed: %v", err)
	}
	defer df.Release()

	if df.NRow() != 3 || df.NCol() != 3 {
		t.Fatalf("shape = %dx%d, want 3x3", df.NRow(), df.NCol())
	}
	if df.Class() != "data.frame" {
		t.Errorf("Class() = %q, want \"data.frame\"", df.Class())
	}

	a, err := df.ColumnByName("a")
	if err != nil {
		t.Fatalf("ColumnByName(a) failed: %v", err)
	}
	if a.Kind() != Integer || a.IntAt(2) != 3 {
		t.Errorf("a = %s %v, want Integer [1 2 3]", a.Kind(), a.Ints())
	}
	a.Release()

	b, err := df.ColumnByName("b")
	if err != nil {
		t.Fatalf("ColumnByName(b) failed: %v", err)
	}
	if b.Kind() != Real || b.RealAt(0) != 1.5 {
		t.Errorf("b = %s %v, want Real [1.5 2.5 3.5]", b.Kind(), b.Reals())
	}
	b.Release()

	c, err := df.ColumnByName("c")
	if err != nil {
		t.Fatalf("ColumnByName(c) failed: %v", err)
	}
	if c.Kind() != Character || c.StringAt(1) != "y" {
		t.Errorf("c = %s %v, want Character [x y z]", c.Kind(), c.Strings())
	}
	c.Release()
}

func TestParquetFileRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	path := filepath.Join(t.TempDir(), "frame.parquet")

	src, err := BuildDataFrame(mem,
		BoolColumn("flag", []bool{true, false, true, false}),
	)
	if err != nil {
		t.Fatalf("BuildDataFrame failed: %v", err)
	}
	defer src.Release()

	if err := src.WriteParquet(path); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	df, err := ReadParquet(mem, path)
	if err != nil {
		t.Fatalf("ReadParquet failed: %v", err)
	}
	defer df.Release()

	if df.NRow() != 4 {
		t.Errorf("NRow() = %d, want 4", df.NRow())
	}
	flag, _ := df.Column(0)
	if flag.Kind() != Logical || !flag.BoolAt(0) || flag.BoolAt(1) {
		t.Errorf("flag = %s %v, want Logical [true false true false]", flag.Kind(), flag.Bools())
	}
	flag.Release()
}

func TestParquetMaxRows(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	data := make([]int32, 100)
	for i := range data {
		data[i] = int32(i)
	}
	src, err := BuildDataFrame(mem, IntColumn("n", data))
	if err != nil {
		t.Fatalf("BuildDataFrame failed: %v", err)
	}
	defer src.Release()

	var buf bytes.Buffer
	if err := src.WriteParquetToWriter(&buf); err != nil {
		t.Fatalf("WriteParquetToWriter failed: %v", err)
	}

	df, err := ReadParquetFromReader(mem, bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		ParquetReadOptions{MaxRows: 10})
	if err != nil {
		t.Fatalf("ReadParquetFromReader failed: %v", err)
	}
	defer df.Release()

	if df.NRow() != 10 {
		t.Errorf("NRow() = %d, want 10", df.NRow())
	}
}

func TestParquetEmptyFrame(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	df, err := BuildDataFrame(mem)
	if err != nil {
		t.Fatalf("BuildDataFrame failed: %v", err)
	}
	defer df.Release()

	// Writing an empty frame is a no-op, not an error.
	var buf bytes.Buffer
	if err := df.WriteParquetToWriter(&buf); err != nil {
		t.Fatalf("WriteParquetToWriter failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for empty frame, want 0", buf.Len())
	}
}
