package table

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

type NodeType uint8

const (
	NodeInternal NodeType = iota
	NodeLeaf
)

func getNodeType(node []byte) NodeType {
	return NodeType(node[NodeTypeOffset])
}

func setNodeType(node []byte, t NodeType) {
	node[NodeTypeOffset] = byte(t)
}

func isNodeRoot(node []byte) bool {
	return node[IsRootOffset] != 0
}

func setNodeRoot(node []byte, isRoot bool) {
	if isRoot {
		node[IsRootOffset] = 1
	} else {
		node[IsRootOffset] = 0
	}
}

func nodeParent(node []byte) uint32 {
	return binary.LittleEndian.Uint32(node[ParentPointerOffset:])
}

func setNodeParent(node []byte, parent uint32) {
	binary.LittleEndian.PutUint32(node[ParentPointerOffset:], parent)
}

func leafNodeNumCells(node []byte) uint32 {
	return binary.LittleEndian.Uint32(node[LeafNodeNumCellsOffset:])
}

func setLeafNodeNumCells(node []byte, n uint32) {
	binary.LittleEndian.PutUint32(node[LeafNodeNumCellsOffset:], n)
}

func leafNodeNextLeaf(node []byte) uint32 {
	return binary.LittleEndian.Uint32(node[LeafNodeNextLeafOffset:])
}

func setLeafNodeNextLeaf(node []byte, next uint32) {
	binary.LittleEndian.PutUint32(node[LeafNodeNextLeafOffset:], next)
}

func leafNodeCell(node []byte, cellNum uint32) []byte {
	off := LeafNodeHeaderSize + cellNum*LeafNodeCellSize
	return node[off : off+LeafNodeCellSize]
}

func leafNodeKey(node []byte, cellNum uint32) uint32 {
	return binary.LittleEndian.Uint32(leafNodeCell(node, cellNum)[LeafNodeKeyOffset:])
}

func setLeafNodeKey(node []byte, cellNum uint32, key uint32) {
	binary.LittleEndian.PutUint32(leafNodeCell(node, cellNum)[LeafNodeKeyOffset:], key)
}

func leafNodeValue(node []byte, cellNum uint32) []byte {
	cell := leafNodeCell(node, cellNum)
	return cell[LeafNodeKeySize : LeafNodeKeySize+LeafNodeValueSize]
}

func initializeLeafNode(node []byte) {
	setNodeType(node, NodeLeaf)
	setNodeRoot(node, false)
	setLeafNodeNumCells(node, 0)
	setLeafNodeNextLeaf(node, 0) // 0 = no sibling; page 0 is always the root
}

func internalNodeNumKeys(node []byte) uint32 {
	return binary.LittleEndian.Uint32(node[InternalNodeNumKeysOffset:])
}

func setInternalNodeNumKeys(node []byte, n uint32) {
	binary.LittleEndian.PutUint32(node[InternalNodeNumKeysOffset:], n)
}

func internalNodeRightChild(node []byte) uint32 {
	return binary.LittleEndian.Uint32(node[InternalNodeRightChildOffset:])
}

func setInternalNodeRightChild(node []byte, child uint32) {
	binary.LittleEndian.PutUint32(node[InternalNodeRightChildOffset:], child)
}

func internalNodeCell(node []byte, cellNum uint32) []byte {
	off := InternalNodeHeaderSize + cellNum*InternalNodeCellSize
	return node[off : off+InternalNodeCellSize]
}

// internalNodeChild resolves child number childNum, where childNum equal to
// the key count names the right child. Out-of-range children and a child
// slot still holding InvalidPageNum are corruption.
func internalNodeChild(node []byte, childNum uint32) (uint32, error) {
	numKeys := internalNodeNumKeys(node)
	if childNum > numKeys {
		return 0, errors.Errorf("child %d out of bounds (%d keys)", childNum, numKeys)
	}
	if childNum == numKeys {
		right := internalNodeRightChild(node)
		if right == InvalidPageNum {
			return 0, errors.New("right child of internal node is unset")
		}
		return right, nil
	}
	child := binary.LittleEndian.Uint32(internalNodeCell(node, childNum))
	if child == InvalidPageNum {
		return 0, errors.Errorf("child %d of internal node is unset", childNum)
	}
	return child, nil
}

func setInternalNodeChild(node []byte, cellNum uint32, child uint32) {
	binary.LittleEndian.PutUint32(internalNodeCell(node, cellNum), child)
}

func internalNodeKey(node []byte, keyNum uint32) uint32 {
	return binary.LittleEndian.Uint32(internalNodeCell(node, keyNum)[InternalNodeChildSize:])
}

func setInternalNodeKey(node []byte, keyNum uint32, key uint32) {
	binary.LittleEndian.PutUint32(internalNodeCell(node, keyNum)[InternalNodeChildSize:], key)
}

func initializeInternalNode(node []byte) {
	setNodeType(node, NodeInternal)
	setNodeRoot(node, false)
	setInternalNodeNumKeys(node, 0)
	// An empty internal node has no right child yet; leaving 0 here would
	// alias the root page.
	setInternalNodeRightChild(node, InvalidPageNum)
}

// internalNodeFindChild returns the index of the first key >= key, which is
// also the child slot whose subtree may contain key.
func internalNodeFindChild(node []byte, key uint32) uint32 {
	numKeys := internalNodeNumKeys(node)

	minIndex := uint32(0)
	maxIndex := numKeys
	for minIndex != maxIndex {
		index := (minIndex + maxIndex) / 2
		keyToRight := internalNodeKey(node, index)
		if keyToRight >= key {
			maxIndex = index
		} else {
			minIndex = index + 1
		}
	}
	return minIndex
}

// updateInternalNodeKey rewrites the separator that used to read oldKey. If
// the node tracked the changed child through its right child pointer there
// is no slot to fix: oldKey is above every key, the lookup lands one past the
// last key, and the node is left unchanged.
func updateInternalNodeKey(node []byte, oldKey, newKey uint32) {
	oldChildIndex := internalNodeFindChild(node, oldKey)
	if oldChildIndex < internalNodeNumKeys(node) {
		setInternalNodeKey(node, oldChildIndex, newKey)
	}
}
