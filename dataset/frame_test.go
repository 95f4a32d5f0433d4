package dataset

import (
	"testing"

	pferrors "github.com/YuminosukeSato/panelforecast/pkg/errors"
)

func buildTestFrame(t *testing.T) *Frame {
	t.Helper()
	f := New()
	if err := f.AddStringColumn("id", []string{"B", "A", "B", "A", "C"}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}
	if err := f.AddFloatColumn("value", []float64{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("AddFloatColumn failed: %v", err)
	}
	return f
}

func TestGroupByStringPreservesDiscoveryOrder(t *testing.T) {
	f := buildTestFrame(t)
	groups, err := f.GroupByString("id")
	if err != nil {
		t.Fatalf("GroupByString failed: %v", err)
	}
	wantKeys := []string{"B", "A", "C"}
	if len(groups) != len(wantKeys) {
		t.Fatalf("group count = %d, want %d", len(groups), len(wantKeys))
	}
	for i, key := range wantKeys {
		if groups[i].Key != key {
			t.Errorf("groups[%d].Key = %q, want %q", i, groups[i].Key, key)
		}
	}

	vals, err := groups[0].Frame.FloatColumn("value")
	if err != nil {
		t.Fatalf("FloatColumn failed: %v", err)
	}
	if len(vals) != 2 || vals[0] != 1 || vals[1] != 3 {
		t.Errorf("group B values = %v, want [1 3]", vals)
	}
}

func TestGroupFramesAreIndependentCopies(t *testing.T) {
	f := buildTestFrame(t)
	groups, err := f.GroupByString("id")
	if err != nil {
		t.Fatalf("GroupByString failed: %v", err)
	}
	if err := groups[0].Frame.AddFloatColumn("value", []float64{-1, -1}); err != nil {
		t.Fatalf("AddFloatColumn failed: %v", err)
	}
	orig, err := f.FloatColumn("value")
	if err != nil {
		t.Fatalf("FloatColumn failed: %v", err)
	}
	if orig[0] != 1 {
		t.Error("mutating a group frame changed the source frame")
	}
}

func TestTail(t *testing.T) {
	f := buildTestFrame(t)
	tail := f.Tail(2)
	if tail.NumRows() != 2 {
		t.Fatalf("tail rows = %d, want 2", tail.NumRows())
	}
	ids, err := tail.StringColumn("id")
	if err != nil {
		t.Fatalf("StringColumn failed: %v", err)
	}
	if ids[0] != "A" || ids[1] != "C" {
		t.Errorf("tail ids = %v, want [A C]", ids)
	}

	all := f.Tail(10)
	if all.NumRows() != f.NumRows() {
		t.Errorf("Tail(10) rows = %d, want %d", all.NumRows(), f.NumRows())
	}
}

func TestAddFloatColumnReplacesExisting(t *testing.T) {
	f := buildTestFrame(t)
	if err := f.AddFloatColumn("value", []float64{9, 9, 9, 9, 9}); err != nil {
		t.Fatalf("AddFloatColumn failed: %v", err)
	}
	if f.NumCols() != 2 {
		t.Fatalf("column count = %d, want 2", f.NumCols())
	}
	vals, err := f.FloatColumn("value")
	if err != nil {
		t.Fatalf("FloatColumn failed: %v", err)
	}
	if vals[0] != 9 {
		t.Errorf("value[0] = %v, want 9", vals[0])
	}

	// Replacing a string column with floats is rejected.
	if err := f.AddFloatColumn("id", []float64{1, 2, 3, 4, 5}); err == nil {
		t.Error("expected error replacing a string column with floats")
	}
	// Length mismatch is rejected.
	if err := f.AddFloatColumn("other", []float64{1}); err == nil {
		t.Error("expected error for length mismatch")
	}
}

func TestRenameColumn(t *testing.T) {
	f := buildTestFrame(t)
	if err := f.RenameColumn("value", "prediction"); err != nil {
		t.Fatalf("RenameColumn failed: %v", err)
	}
	if f.Has("value") || !f.Has("prediction") {
		t.Errorf("columns = %v, want [id prediction]", f.Columns())
	}
	if err := f.RenameColumn("missing", "x"); err == nil {
		t.Error("expected error renaming a missing column")
	}
	var missing *pferrors.MissingColumnError
	if err := f.RenameColumn("missing", "x"); !pferrors.As(err, &missing) {
		t.Errorf("error type = %T, want MissingColumnError", err)
	}
}

func TestPrependStringColumn(t *testing.T) {
	f := New()
	if err := f.AddFloatColumn("value", []float64{1, 2}); err != nil {
		t.Fatalf("AddFloatColumn failed: %v", err)
	}
	if err := f.PrependStringColumn("id", "A"); err != nil {
		t.Fatalf("PrependStringColumn failed: %v", err)
	}
	cols := f.Columns()
	if cols[0] != "id" || cols[1] != "value" {
		t.Errorf("columns = %v, want [id value]", cols)
	}
	ids, err := f.StringColumn("id")
	if err != nil {
		t.Fatalf("StringColumn failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "A" || ids[1] != "A" {
		t.Errorf("ids = %v, want [A A]", ids)
	}
}

func TestSelectMatrix(t *testing.T) {
	f := New()
	if err := f.AddFloatColumn("a", []float64{1, 2, 3}); err != nil {
		t.Fatalf("AddFloatColumn failed: %v", err)
	}
	if err := f.AddFloatColumn("b", []float64{4, 5, 6}); err != nil {
		t.Fatalf("AddFloatColumn failed: %v", err)
	}

	m, err := f.SelectMatrix([]string{"b", "a"})
	if err != nil {
		t.Fatalf("SelectMatrix failed: %v", err)
	}
	rows, cols := m.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("matrix dims = %dx%d, want 3x2", rows, cols)
	}
	if m.At(0, 0) != 4 || m.At(0, 1) != 1 || m.At(2, 0) != 6 {
		t.Errorf("matrix values wrong: %v", m.RawMatrix().Data)
	}

	if _, err := f.SelectMatrix([]string{"missing"}); err == nil {
		t.Error("expected error selecting a missing column")
	}
	if _, err := f.SelectMatrix(nil); err == nil {
		t.Error("expected error selecting no columns")
	}
}

func TestConcat(t *testing.T) {
	a := New()
	if err := a.AddStringColumn("id", []string{"A"}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}
	if err := a.AddFloatColumn("value", []float64{1}); err != nil {
		t.Fatalf("AddFloatColumn failed: %v", err)
	}
	b := New()
	if err := b.AddStringColumn("id", []string{"B", "B"}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}
	if err := b.AddFloatColumn("value", []float64{2, 3}); err != nil {
		t.Fatalf("AddFloatColumn failed: %v", err)
	}

	out, err := Concat(a, b)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	if out.NumRows() != 3 {
		t.Fatalf("rows = %d, want 3", out.NumRows())
	}
	ids, err := out.StringColumn("id")
	if err != nil {
		t.Fatalf("StringColumn failed: %v", err)
	}
	if ids[0] != "A" || ids[1] != "B" || ids[2] != "B" {
		t.Errorf("ids = %v, want [A B B]", ids)
	}

	// Mismatched columns are rejected.
	c := New()
	if err := c.AddStringColumn("other", []string{"X"}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}
	if err := c.AddFloatColumn("value", []float64{4}); err != nil {
		t.Fatalf("AddFloatColumn failed: %v", err)
	}
	if _, err := Concat(a, c); err == nil {
		t.Error("expected error concatenating mismatched frames")
	}
}

func TestDropColumn(t *testing.T) {
	f := buildTestFrame(t)
	if err := f.DropColumn("id"); err != nil {
		t.Fatalf("DropColumn failed: %v", err)
	}
	if f.Has("id") {
		t.Error("id column still present")
	}
	if err := f.DropColumn("id"); err == nil {
		t.Error("expected error dropping a missing column")
	}
}
