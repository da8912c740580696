package table

import "github.com/pkg/errors"

// ErrDuplicateKey reports an insert whose key is already present.
var ErrDuplicateKey = errors.New("duplicate key")

// Insert adds the row under its ID. The tree is left untouched when the key
// is already present.
func (t *Table) Insert(row *Row) error {
	key := row.ID

	cursor, err := t.find(key)
	if err != nil {
		return err
	}

	node, err := t.page(cursor.pageNum)
	if err != nil {
		return err
	}
	numCells := leafNodeNumCells(node)
	if cursor.cellNum < numCells && leafNodeKey(node, cursor.cellNum) == key {
		return ErrDuplicateKey
	}

	return t.leafNodeInsert(cursor, key, row)
}

// find positions a cursor at key, or at the cell the key would occupy.
func (t *Table) find(key uint32) (*Cursor, error) {
	root, err := t.page(t.rootPageNum)
	if err != nil {
		return nil, err
	}

	if getNodeType(root) == NodeLeaf {
		return t.leafNodeFind(t.rootPageNum, key)
	}
	return t.internalNodeFind(t.rootPageNum, key)
}

func (t *Table) leafNodeFind(pageNum, key uint32) (*Cursor, error) {
	node, err := t.page(pageNum)
	if err != nil {
		return nil, err
	}
	numCells := leafNodeNumCells(node)

	cursor := &Cursor{table: t, pageNum: pageNum}

	// Binary search for the first cell with key >= target.
	minIndex := uint32(0)
	onePastMaxIndex := numCells
	for onePastMaxIndex != minIndex {
		index := (minIndex + onePastMaxIndex) / 2
		keyAtIndex := leafNodeKey(node, index)
		if key == keyAtIndex {
			cursor.cellNum = index
			return cursor, nil
		}
		if key < keyAtIndex {
			onePastMaxIndex = index
		} else {
			minIndex = index + 1
		}
	}

	cursor.cellNum = minIndex
	return cursor, nil
}

func (t *Table) internalNodeFind(pageNum, key uint32) (*Cursor, error) {
	node, err := t.page(pageNum)
	if err != nil {
		return nil, err
	}

	childIndex := internalNodeFindChild(node, key)
	childNum, err := internalNodeChild(node, childIndex)
	if err != nil {
		return nil, err
	}

	child, err := t.page(childNum)
	if err != nil {
		return nil, err
	}
	switch getNodeType(child) {
	case NodeLeaf:
		return t.leafNodeFind(childNum, key)
	default:
		return t.internalNodeFind(childNum, key)
	}
}

// nodeMaxKey is the largest key in the subtree rooted at node: the key of
// its last cell for a leaf, the right child's max for an internal node.
func (t *Table) nodeMaxKey(node []byte) (uint32, error) {
	if getNodeType(node) == NodeLeaf {
		numCells := leafNodeNumCells(node)
		if numCells == 0 {
			return 0, errors.New("max key of empty leaf")
		}
		return leafNodeKey(node, numCells-1), nil
	}

	rightChildNum := internalNodeRightChild(node)
	if rightChildNum == InvalidPageNum {
		return 0, errors.New("max key of internal node with no right child")
	}
	rightChild, err := t.page(rightChildNum)
	if err != nil {
		return 0, err
	}
	return t.nodeMaxKey(rightChild)
}

func (t *Table) leafNodeInsert(cursor *Cursor, key uint32, row *Row) error {
	node, err := t.page(cursor.pageNum)
	if err != nil {
		return err
	}

	numCells := leafNodeNumCells(node)
	if numCells >= LeafNodeMaxCells {
		return t.leafNodeSplitAndInsert(cursor, key, row)
	}

	if cursor.cellNum < numCells {
		// Make room for the new cell.
		for i := numCells; i > cursor.cellNum; i-- {
			copy(leafNodeCell(node, i), leafNodeCell(node, i-1))
		}
	}

	setLeafNodeNumCells(node, numCells+1)
	setLeafNodeKey(node, cursor.cellNum, key)
	SerializeRow(row, leafNodeValue(node, cursor.cellNum))
	return nil
}

// leafNodeSplitAndInsert distributes the full leaf's cells plus the new one
// across the old leaf and a new right sibling, then pushes the sibling into
// the parent (creating a new root when the leaf was the root).
func (t *Table) leafNodeSplitAndInsert(cursor *Cursor, key uint32, row *Row) error {
	oldNode, err := t.page(cursor.pageNum)
	if err != nil {
		return err
	}
	oldMax, err := t.nodeMaxKey(oldNode)
	if err != nil {
		return err
	}

	newPageNum := t.pager.UnusedPageNum()
	newNode, err := t.page(newPageNum)
	if err != nil {
		return err
	}
	initializeLeafNode(newNode)
	setNodeParent(newNode, nodeParent(oldNode))
	setLeafNodeNextLeaf(newNode, leafNodeNextLeaf(oldNode))
	setLeafNodeNextLeaf(oldNode, newPageNum)

	// All existing cells plus the new one are divided between the old
	// (left) and new (right) nodes, working from the highest index down so
	// nothing is overwritten before it moves.
	for i := int32(LeafNodeMaxCells); i >= 0; i-- {
		var destinationNode []byte
		if uint32(i) >= LeafNodeLeftSplitCount {
			destinationNode = newNode
		} else {
			destinationNode = oldNode
		}
		indexWithinNode := uint32(i) % LeafNodeLeftSplitCount
		destination := leafNodeCell(destinationNode, indexWithinNode)

		if uint32(i) == cursor.cellNum {
			setLeafNodeKey(destinationNode, indexWithinNode, key)
			SerializeRow(row, leafNodeValue(destinationNode, indexWithinNode))
		} else if uint32(i) > cursor.cellNum {
			copy(destination, leafNodeCell(oldNode, uint32(i)-1))
		} else {
			copy(destination, leafNodeCell(oldNode, uint32(i)))
		}
	}

	setLeafNodeNumCells(oldNode, LeafNodeLeftSplitCount)
	setLeafNodeNumCells(newNode, LeafNodeRightSplitCount)

	if isNodeRoot(oldNode) {
		return t.createNewRoot(newPageNum)
	}

	parentPageNum := nodeParent(oldNode)
	newMax, err := t.nodeMaxKey(oldNode)
	if err != nil {
		return err
	}
	parent, err := t.page(parentPageNum)
	if err != nil {
		return err
	}
	updateInternalNodeKey(parent, oldMax, newMax)
	return t.internalNodeInsert(parentPageNum, newPageNum)
}

// createNewRoot handles a root split: the old root's contents move to a
// fresh left child, and page 0 becomes an internal node over the left child
// and rightChildPageNum.
func (t *Table) createNewRoot(rightChildPageNum uint32) error {
	root, err := t.page(t.rootPageNum)
	if err != nil {
		return err
	}
	rightChild, err := t.page(rightChildPageNum)
	if err != nil {
		return err
	}
	leftChildPageNum := t.pager.UnusedPageNum()
	leftChild, err := t.page(leftChildPageNum)
	if err != nil {
		return err
	}

	if getNodeType(root) == NodeInternal {
		initializeInternalNode(rightChild)
		initializeInternalNode(leftChild)
	}

	// Left child has data copied from the old root.
	copy(leftChild, root)
	setNodeRoot(leftChild, false)

	// Repoint grandchildren before the root page is reinitialized.
	if getNodeType(leftChild) == NodeInternal {
		for i := uint32(0); i <= internalNodeNumKeys(leftChild); i++ {
			childNum, err := internalNodeChild(leftChild, i)
			if err != nil {
				return err
			}
			child, err := t.page(childNum)
			if err != nil {
				return err
			}
			setNodeParent(child, leftChildPageNum)
		}
	}

	// Root becomes a new internal node with one key and two children.
	initializeInternalNode(root)
	setNodeRoot(root, true)
	setInternalNodeNumKeys(root, 1)
	setInternalNodeChild(root, 0, leftChildPageNum)
	leftChildMaxKey, err := t.nodeMaxKey(leftChild)
	if err != nil {
		return err
	}
	setInternalNodeKey(root, 0, leftChildMaxKey)
	setInternalNodeRightChild(root, rightChildPageNum)
	setNodeParent(leftChild, t.rootPageNum)
	setNodeParent(rightChild, t.rootPageNum)
	return nil
}

// internalNodeInsert attaches childPageNum to the internal node at
// parentPageNum, splitting the parent when it is already at capacity.
func (t *Table) internalNodeInsert(parentPageNum, childPageNum uint32) error {
	parent, err := t.page(parentPageNum)
	if err != nil {
		return err
	}
	child, err := t.page(childPageNum)
	if err != nil {
		return err
	}

	childMaxKey, err := t.nodeMaxKey(child)
	if err != nil {
		return err
	}
	index := internalNodeFindChild(parent, childMaxKey)

	originalNumKeys := internalNodeNumKeys(parent)
	if originalNumKeys >= InternalNodeMaxKeys {
		return t.internalNodeSplitAndInsert(parentPageNum, childPageNum)
	}

	rightChildPageNum := internalNodeRightChild(parent)
	if rightChildPageNum == InvalidPageNum {
		// Empty node: the first child attached becomes the right child.
		setInternalNodeRightChild(parent, childPageNum)
		setNodeParent(child, parentPageNum)
		return nil
	}
	rightChild, err := t.page(rightChildPageNum)
	if err != nil {
		return err
	}

	// The slot at originalNumKeys is claimed up front; both branches below
	// fill it completely.
	setInternalNodeNumKeys(parent, originalNumKeys+1)

	rightMax, err := t.nodeMaxKey(rightChild)
	if err != nil {
		return err
	}
	if childMaxKey > rightMax {
		// New child outranks the right child, which drops into the cell
		// array keyed by its own max.
		setInternalNodeChild(parent, originalNumKeys, rightChildPageNum)
		setInternalNodeKey(parent, originalNumKeys, rightMax)
		setInternalNodeRightChild(parent, childPageNum)
	} else {
		for i := originalNumKeys; i > index; i-- {
			copy(internalNodeCell(parent, i), internalNodeCell(parent, i-1))
		}
		setInternalNodeChild(parent, index, childPageNum)
		setInternalNodeKey(parent, index, childMaxKey)
	}
	setNodeParent(child, parentPageNum)
	return nil
}

// internalNodeSplitAndInsert splits a full internal node, moving its upper
// half into a new sibling, then places childPageNum in whichever side covers
// its key range.
func (t *Table) internalNodeSplitAndInsert(parentPageNum, childPageNum uint32) error {
	oldPageNum := parentPageNum
	oldNode, err := t.page(oldPageNum)
	if err != nil {
		return err
	}
	oldMax, err := t.nodeMaxKey(oldNode)
	if err != nil {
		return err
	}

	child, err := t.page(childPageNum)
	if err != nil {
		return err
	}
	childMax, err := t.nodeMaxKey(child)
	if err != nil {
		return err
	}

	newPageNum := t.pager.UnusedPageNum()
	splittingRoot := isNodeRoot(oldNode)

	var parent []byte
	if splittingRoot {
		// createNewRoot moves the old root's cells to a fresh left child;
		// keep working on that copy.
		if err := t.createNewRoot(newPageNum); err != nil {
			return err
		}
		parent, err = t.page(t.rootPageNum)
		if err != nil {
			return err
		}
		oldPageNum, err = internalNodeChild(parent, 0)
		if err != nil {
			return err
		}
		oldNode, err = t.page(oldPageNum)
		if err != nil {
			return err
		}
	} else {
		parent, err = t.page(nodeParent(oldNode))
		if err != nil {
			return err
		}
		newNode, err := t.page(newPageNum)
		if err != nil {
			return err
		}
		initializeInternalNode(newNode)
	}

	// Move the old right child over first and mark the slot empty so the
	// promotion below can refill it.
	curPageNum := internalNodeRightChild(oldNode)
	if err := t.internalNodeInsert(newPageNum, curPageNum); err != nil {
		return err
	}
	setInternalNodeRightChild(oldNode, InvalidPageNum)

	// Move the upper half of the cells into the new node.
	for i := InternalNodeMaxKeys - 1; i > InternalNodeMaxKeys/2; i-- {
		curPageNum, err = internalNodeChild(oldNode, i)
		if err != nil {
			return err
		}
		if err := t.internalNodeInsert(newPageNum, curPageNum); err != nil {
			return err
		}
		setInternalNodeNumKeys(oldNode, internalNodeNumKeys(oldNode)-1)
	}

	// The old node's highest remaining child becomes its right child.
	remaining := internalNodeNumKeys(oldNode)
	promoted, err := internalNodeChild(oldNode, remaining-1)
	if err != nil {
		return err
	}
	setInternalNodeRightChild(oldNode, promoted)
	setInternalNodeNumKeys(oldNode, remaining-1)

	maxAfterSplit, err := t.nodeMaxKey(oldNode)
	if err != nil {
		return err
	}
	destinationPageNum := newPageNum
	if childMax < maxAfterSplit {
		destinationPageNum = oldPageNum
	}
	if err := t.internalNodeInsert(destinationPageNum, childPageNum); err != nil {
		return err
	}

	newMaxOfOld, err := t.nodeMaxKey(oldNode)
	if err != nil {
		return err
	}
	updateInternalNodeKey(parent, oldMax, newMaxOfOld)

	if !splittingRoot {
		if err := t.internalNodeInsert(nodeParent(oldNode), newPageNum); err != nil {
			return err
		}
	}
	return nil
}
