package table

// Cursor is a position within the sorted key sequence: a leaf page, a cell
// index, and a flag marking one past the last row. Cursors are transient;
// discard them after a mutation.
type Cursor struct {
	table      *Table
	pageNum    uint32
	cellNum    uint32
	endOfTable bool
}

// Start returns a cursor on the first row of the table. Searching for key 0
// lands on the leftmost leaf because no stored key is smaller.
func (t *Table) Start() (*Cursor, error) {
	cursor, err := t.find(0)
	if err != nil {
		return nil, err
	}

	node, err := t.page(cursor.pageNum)
	if err != nil {
		return nil, err
	}
	cursor.endOfTable = leafNodeNumCells(node) == 0
	return cursor, nil
}

// Valid reports whether the cursor is positioned on an existing row.
func (c *Cursor) Valid() bool {
	return !c.endOfTable
}

// Key returns the key under the cursor. Call only while Valid.
func (c *Cursor) Key() (uint32, error) {
	node, err := c.table.page(c.pageNum)
	if err != nil {
		return 0, err
	}
	return leafNodeKey(node, c.cellNum), nil
}

// Row deserializes the row under the cursor. Call only while Valid.
func (c *Cursor) Row() (Row, error) {
	var row Row
	buf, err := c.value()
	if err != nil {
		return row, err
	}
	DeserializeRow(buf, &row)
	return row, nil
}

// value returns the mutable value slot under the cursor.
func (c *Cursor) value() ([]byte, error) {
	node, err := c.table.page(c.pageNum)
	if err != nil {
		return nil, err
	}
	return leafNodeValue(node, c.cellNum), nil
}

// Next advances to the following key, crossing to the sibling leaf when the
// current one is exhausted.
func (c *Cursor) Next() error {
	node, err := c.table.page(c.pageNum)
	if err != nil {
		return err
	}

	c.cellNum++
	if c.cellNum >= leafNodeNumCells(node) {
		nextPageNum := leafNodeNextLeaf(node)
		if nextPageNum == 0 {
			// Rightmost leaf.
			c.endOfTable = true
		} else {
			c.pageNum = nextPageNum
			c.cellNum = 0
		}
	}
	return nil
}
