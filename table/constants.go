package table

import (
	"unsafe"

	"dblite/column"
	"dblite/pager"
)

// Users table schema. The engine persists exactly this shape; the column
// planner turns it into offsets and the row size below.
const (
	ColumnUsernameSize = 32
	ColumnEmailSize    = 255

	// slot sizes on disk (payload + terminating zero)
	UsernameSlotSize = ColumnUsernameSize + 1
	EmailSlotSize    = ColumnEmailSize + 1
)

var UsersSchema = column.Schema{
	{Name: "id", Type: column.ColumnTypeInt},
	{Name: "username", Type: column.ColumnTypeText, MaxLength: ColumnUsernameSize},
	{Name: "email", Type: column.ColumnTypeText, MaxLength: ColumnEmailSize},
}

var (
	usersMeta = column.MustPlan(UsersSchema)

	idOffset       = usersMeta.Columns[0].Offset
	usernameOffset = usersMeta.Columns[1].Offset
	emailOffset    = usersMeta.Columns[2].Offset

	RowSize = usersMeta.RowSize
)

// Common Node Header Layout
const (
	NodeTypeSize         = uint32(unsafe.Sizeof(uint8(0)))
	NodeTypeOffset       = uint32(0)
	IsRootSize           = uint32(unsafe.Sizeof(uint8(0)))
	IsRootOffset         = NodeTypeOffset + NodeTypeSize
	ParentPointerSize    = uint32(unsafe.Sizeof(uint32(0)))
	ParentPointerOffset  = IsRootOffset + IsRootSize
	CommonNodeHeaderSize = NodeTypeSize + IsRootSize + ParentPointerSize
)

// Leaf Node Header Layout
const (
	LeafNodeNumCellsSize   = uint32(unsafe.Sizeof(uint32(0)))
	LeafNodeNumCellsOffset = CommonNodeHeaderSize
	LeafNodeNextLeafSize   = uint32(unsafe.Sizeof(uint32(0)))
	LeafNodeNextLeafOffset = LeafNodeNumCellsOffset + LeafNodeNumCellsSize
	LeafNodeHeaderSize     = CommonNodeHeaderSize + LeafNodeNumCellsSize + LeafNodeNextLeafSize

	LeafNodeKeySize   = uint32(unsafe.Sizeof(uint32(0)))
	LeafNodeKeyOffset = uint32(0)
)

// Leaf Node Body Layout, derived from the planned row size.
var (
	LeafNodeValueSize       = RowSize
	LeafNodeCellSize        = LeafNodeKeySize + LeafNodeValueSize
	LeafNodeSpaceForCells   = uint32(pager.PageSize) - LeafNodeHeaderSize
	LeafNodeMaxCells        = LeafNodeSpaceForCells / LeafNodeCellSize
	LeafNodeRightSplitCount = (LeafNodeMaxCells + 1) / 2
	LeafNodeLeftSplitCount  = LeafNodeMaxCells + 1 - LeafNodeRightSplitCount
)

// Internal Node Header Layout
const (
	InternalNodeNumKeysSize      = uint32(unsafe.Sizeof(uint32(0)))
	InternalNodeNumKeysOffset    = CommonNodeHeaderSize
	InternalNodeRightChildSize   = uint32(unsafe.Sizeof(uint32(0)))
	InternalNodeRightChildOffset = InternalNodeNumKeysOffset + InternalNodeNumKeysSize
	InternalNodeHeaderSize       = CommonNodeHeaderSize + InternalNodeNumKeysSize + InternalNodeRightChildSize

	InternalNodeChildSize = uint32(unsafe.Sizeof(uint32(0)))
	InternalNodeKeySize   = uint32(unsafe.Sizeof(uint32(0)))
	InternalNodeCellSize  = InternalNodeChildSize + InternalNodeKeySize

	// Kept small to exercise splits.
	InternalNodeMaxKeys = uint32(3)
)

// InvalidPageNum marks the right child of a freshly initialized internal
// node before any child has been attached.
const InvalidPageNum = ^uint32(0)
