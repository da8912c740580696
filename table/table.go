package table

import (
	"fmt"
	"io"

	"dblite/pager"
)

// Table is one users table bound to one database file. The tree root lives
// at page 0 for the lifetime of the database.
type Table struct {
	pager       *pager.Pager
	rootPageNum uint32
}

// Open opens or creates the database file. A brand-new file gets page 0
// initialized as an empty root leaf.
func Open(path string) (*Table, error) {
	pg, err := pager.Open(path)
	if err != nil {
		return nil, err
	}

	t := &Table{pager: pg, rootPageNum: 0}

	if pg.NumPages == 0 {
		root, err := pg.GetPage(0)
		if err != nil {
			return nil, err
		}
		initializeLeafNode(root.Data[:])
		setNodeRoot(root.Data[:], true)
	}

	return t, nil
}

// Close flushes every resident page and closes the file.
func (t *Table) Close() error {
	return t.pager.Close()
}

// page returns the raw buffer backing pageNum.
func (t *Table) page(pageNum uint32) ([]byte, error) {
	pg, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	return pg.Data[:], nil
}

// WriteTree renders the tree rooted at page 0, two-space indented per level.
func (t *Table) WriteTree(w io.Writer) error {
	return t.writeNode(w, t.rootPageNum, 0)
}

func (t *Table) writeNode(w io.Writer, pageNum, level uint32) error {
	node, err := t.page(pageNum)
	if err != nil {
		return err
	}

	switch getNodeType(node) {
	case NodeLeaf:
		numCells := leafNodeNumCells(node)
		indent(w, level)
		fmt.Fprintf(w, "- leaf (size %d)\n", numCells)
		for i := uint32(0); i < numCells; i++ {
			indent(w, level+1)
			fmt.Fprintf(w, "- %d\n", leafNodeKey(node, i))
		}

	case NodeInternal:
		numKeys := internalNodeNumKeys(node)
		indent(w, level)
		fmt.Fprintf(w, "- internal (size %d)\n", numKeys)
		if numKeys > 0 {
			for i := uint32(0); i <= numKeys; i++ {
				child, err := internalNodeChild(node, i)
				if err != nil {
					return err
				}
				if err := t.writeNode(w, child, level+1); err != nil {
					return err
				}
				if i < numKeys {
					indent(w, level+1)
					fmt.Fprintf(w, "- key %d\n", internalNodeKey(node, i))
				}
			}
		}
	}

	return nil
}

func indent(w io.Writer, level uint32) {
	for i := uint32(0); i < level; i++ {
		fmt.Fprint(w, "  ")
	}
}

// WriteConstants reports the layout constants the engine was compiled with.
func WriteConstants(w io.Writer) {
	fmt.Fprintf(w, "ROW_SIZE: %d\n", RowSize)
	fmt.Fprintf(w, "COMMON_NODE_HEADER_SIZE: %d\n", CommonNodeHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_HEADER_SIZE: %d\n", LeafNodeHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_CELL_SIZE: %d\n", LeafNodeCellSize)
	fmt.Fprintf(w, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", LeafNodeSpaceForCells)
	fmt.Fprintf(w, "LEAF_NODE_MAX_CELLS: %d\n", LeafNodeMaxCells)
}
