package table

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestOpenBootstrapsRootLeaf(t *testing.T) {
	tbl, _ := openTestTable(t)
	defer tbl.Close()

	root, err := tbl.page(0)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if getNodeType(root) != NodeLeaf {
		t.Error("fresh root is not a leaf")
	}
	if !isNodeRoot(root) {
		t.Error("fresh root not flagged as root")
	}
	if leafNodeNumCells(root) != 0 {
		t.Errorf("fresh root has %d cells", leafNodeNumCells(root))
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	tbl, path := openTestTable(t)

	for k := uint32(1); k <= 20; k++ {
		insertKey(t, tbl, k)
	}

	var rowsBefore []Row
	cursor, err := tbl.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for cursor.Valid() {
		row, err := cursor.Row()
		if err != nil {
			t.Fatalf("Row: %v", err)
		}
		rowsBefore = append(rowsBefore, row)
		if err := cursor.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}

	var treeBefore bytes.Buffer
	if err := tbl.WriteTree(&treeBefore); err != nil {
		t.Fatalf("WriteTree: %v", err)
	}

	if err := tbl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	var rowsAfter []Row
	cursor, err = reopened.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for cursor.Valid() {
		row, err := cursor.Row()
		if err != nil {
			t.Fatalf("Row: %v", err)
		}
		rowsAfter = append(rowsAfter, row)
		if err := cursor.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}

	if !reflect.DeepEqual(rowsBefore, rowsAfter) {
		t.Fatalf("rows changed across reopen:\nbefore %v\nafter  %v", rowsBefore, rowsAfter)
	}

	var treeAfter bytes.Buffer
	if err := reopened.WriteTree(&treeAfter); err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	if treeBefore.String() != treeAfter.String() {
		t.Fatalf("tree changed across reopen:\nbefore:\n%safter:\n%s", treeBefore.String(), treeAfter.String())
	}
	validateTree(t, reopened)
}

// Format test: the leaf rendering of WriteTree.
func TestWriteTreeLeafFormat(t *testing.T) {
	tbl, _ := openTestTable(t)
	defer tbl.Close()

	for _, k := range []uint32{3, 1, 2} {
		insertKey(t, tbl, k)
	}

	var buf bytes.Buffer
	if err := tbl.WriteTree(&buf); err != nil {
		t.Fatalf("WriteTree: %v", err)
	}

	want := "- leaf (size 3)\n  - 1\n  - 2\n  - 3\n"
	if buf.String() != want {
		t.Errorf("WriteTree output:\n%swant:\n%s", buf.String(), want)
	}
}

// Format test: an internal root after the first leaf split.
func TestWriteTreeInternalFormat(t *testing.T) {
	tbl, _ := openTestTable(t)
	defer tbl.Close()

	for k := uint32(1); k <= LeafNodeMaxCells+1; k++ {
		insertKey(t, tbl, k)
	}

	var want strings.Builder
	want.WriteString("- internal (size 1)\n")
	want.WriteString(fmt.Sprintf("  - leaf (size %d)\n", LeafNodeLeftSplitCount))
	for k := uint32(1); k <= LeafNodeLeftSplitCount; k++ {
		want.WriteString(fmt.Sprintf("    - %d\n", k))
	}
	want.WriteString(fmt.Sprintf("  - key %d\n", LeafNodeLeftSplitCount))
	want.WriteString(fmt.Sprintf("  - leaf (size %d)\n", LeafNodeRightSplitCount))
	for k := LeafNodeLeftSplitCount + 1; k <= LeafNodeMaxCells+1; k++ {
		want.WriteString(fmt.Sprintf("    - %d\n", k))
	}

	var buf bytes.Buffer
	if err := tbl.WriteTree(&buf); err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	if buf.String() != want.String() {
		t.Errorf("WriteTree output:\n%swant:\n%s", buf.String(), want.String())
	}
}

// Format test: the .constants listing.
func TestWriteConstantsFormat(t *testing.T) {
	var buf bytes.Buffer
	WriteConstants(&buf)

	want := strings.Join([]string{
		"ROW_SIZE: 293",
		"COMMON_NODE_HEADER_SIZE: 6",
		"LEAF_NODE_HEADER_SIZE: 14",
		"LEAF_NODE_CELL_SIZE: 297",
		"LEAF_NODE_SPACE_FOR_CELLS: 4082",
		"LEAF_NODE_MAX_CELLS: 13",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("WriteConstants output:\n%swant:\n%s", buf.String(), want)
	}
}
