package column

import "testing"

func TestPlanLayout(t *testing.T) {
	schema := Schema{
		{Name: "id", Type: ColumnTypeInt},
		{Name: "name", Type: ColumnTypeText, MaxLength: 16},
		{Name: "score", Type: ColumnTypeInt},
	}
	meta, err := Plan(schema)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	if meta.NumCols != 3 {
		t.Errorf("NumCols = %d; want 3", meta.NumCols)
	}

	// text slot is MaxLength+1 bytes
	wantOffsets := []uint32{0, 4, 21}
	for i, cm := range meta.Columns {
		if cm.Offset != wantOffsets[i] {
			t.Errorf("column %q offset = %d; want %d", cm.Name, cm.Offset, wantOffsets[i])
		}
	}
	if meta.Columns[1].ByteSize != 17 {
		t.Errorf("text ByteSize = %d; want 17", meta.Columns[1].ByteSize)
	}
	if meta.RowSize != 25 {
		t.Errorf("RowSize = %d; want 25", meta.RowSize)
	}
}

func TestPlanRejectsTextWithoutLength(t *testing.T) {
	schema := Schema{{Name: "name", Type: ColumnTypeText}}
	if _, err := Plan(schema); err == nil {
		t.Fatal("Plan accepted a TEXT column with no MaxLength")
	}
}

func TestPlanRejectsEmptySchema(t *testing.T) {
	if _, err := Plan(Schema{}); err == nil {
		t.Fatal("Plan accepted an empty schema")
	}
}
