package sframe

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

func TestReadCSVInference(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	csvData := `id,score,name,active
1,1.5,alice,true
2,2.5,bob,false
3,3.5,carol,true
`
	df, err := ReadCSVFromReader(mem, strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ReadCSVFromReader failed: %v", err)
	}
	defer df.Release()

	if df.NRow() != 3 || df.NCol() != 4 {
		t.Fatalf("shape = %dx%d, want 3x4", df.NRow(), df.NCol())
	}

	wantKinds := []Kind{Integer, Real, Character, Logical}
	for i, want := range wantKinds {
		col, err := df.Column(i)
		if err != nil {
			t.Fatalf("Column(%d) failed: %v", i, err)
		}
		if col.Kind() != want {
			t.Errorf("column %d kind = %s, want %s", i, col.Kind(), want)
		}
		col.Release()
	}

	if df.Class() != "data.frame" {
		t.Errorf("Class() = %q, want \"data.frame\"", df.Class())
	}
}

func TestReadCSVWithNA(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	csvData := `x,y
1,2.5
NA,3.5
3,NA
`
	df, err := ReadCSVFromReader(mem, strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ReadCSVFromReader failed: %v", err)
	}
	defer df.Release()

	x, _ := df.Column(0)
	if !x.IsNA(1) {
		t.Error("x[1] should be NA")
	}
	if x.IntAt(0) != 1 || x.IntAt(2) != 3 {
		t.Errorf("x = %v, want [1 NA 3]", x.Ints())
	}
	x.Release()

	y, _ := df.Column(1)
	if !y.IsNA(2) {
		t.Error("y[2] should be NA")
	}
	y.Release()
}

func TestReadCSVNoHeader(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	opt := DefaultCSVReadOptions()
	opt.HasHeader = false

	df, err := ReadCSVFromReader(mem, strings.NewReader("1,a\n2,b\n"), opt)
	if err != nil {
		t.Fatalf("ReadCSVFromReader failed: %v", err)
	}
	defer df.Release()

	names := df.Names()
	if names[0] != "V1" || names[1] != "V2" {
		t.Errorf("Names() = %v, want [V1 V2]", names)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	src, err := BuildDataFrame(mem,
		IntColumn("n", []int32{1, 2, 3}),
		StringColumn("s", []string{"x", "y", "z"}),
	)
	if err != nil {
		t.Fatalf("BuildDataFrame failed: %v", err)
	}
	defer src.Release()

	var buf bytes.Buffer
	if err := src.WriteCSVToWriter(&buf); err != nil {
		t.Fatalf("WriteCSVToWriter failed: %v", err)
	}

	df, err := ReadCSVFromReader(mem, &buf)
	if err != nil {
		t.Fatalf("ReadCSVFromReader failed: %v", err)
	}
	defer df.Release()

	if df.NRow() != 3 || df.NCol() != 2 {
		t.Errorf("shape = %dx%d, want 3x2", df.NRow(), df.NCol())
	}
	s, _ := df.Column(1)
	if s.StringAt(2) != "z" {
		t.Errorf("s[2] = %q, want \"z\"", s.StringAt(2))
	}
	s.Release()
}

func TestWriteCSVRendersNA(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	col := NewIntegerVectorWithNA(mem, []int32{1, 0}, []bool{true, false})
	df, err := BuildDataFrame(mem, ColumnValue("x", col))
	col.Release()
	if err != nil {
		t.Fatalf("BuildDataFrame failed: %v", err)
	}
	defer df.Release()

	var buf bytes.Buffer
	if err := df.WriteCSVToWriter(&buf); err != nil {
		t.Fatalf("WriteCSVToWriter failed: %v", err)
	}

	want := "x\n1\nNA\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
