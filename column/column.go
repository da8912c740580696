package column

import "github.com/pkg/errors"

type ColumnType int

const (
	ColumnTypeInt ColumnType = iota
	ColumnTypeText
)

// Column describes one column of a table schema before layout planning.
type Column struct {
	Name      string
	Type      ColumnType
	MaxLength uint32 // text columns: payload bytes before the terminator
}

type Schema []Column

// ColMeta is a Column with its computed position inside a serialized row.
type ColMeta struct {
	Name      string
	Type      ColumnType
	Offset    uint32
	ByteSize  uint32
	MaxLength uint32
}

// Meta is the planned on-disk layout of a whole row.
type Meta struct {
	NumCols int
	Columns []ColMeta
	RowSize uint32
}

// Plan lays the schema's columns out back to back and computes the row size.
// Int columns occupy 4 bytes. Text columns occupy MaxLength+1 bytes so a
// terminating zero always fits, which keeps serialized rows reproducible
// byte for byte.
func Plan(schema Schema) (*Meta, error) {
	var metas []ColMeta
	var offset uint32

	for _, col := range schema {
		switch col.Type {
		case ColumnTypeInt:
			metas = append(metas, ColMeta{
				Name:     col.Name,
				Type:     ColumnTypeInt,
				Offset:   offset,
				ByteSize: 4,
			})
			offset += 4

		case ColumnTypeText:
			if col.MaxLength == 0 {
				return nil, errors.Errorf("TEXT column %q must have MaxLength>0", col.Name)
			}
			slot := col.MaxLength + 1
			metas = append(metas, ColMeta{
				Name:      col.Name,
				Type:      ColumnTypeText,
				Offset:    offset,
				ByteSize:  slot,
				MaxLength: col.MaxLength,
			})
			offset += slot

		default:
			return nil, errors.Errorf("unsupported column type for %q", col.Name)
		}
	}

	if offset == 0 {
		return nil, errors.New("schema must have at least one column")
	}

	return &Meta{
		NumCols: len(schema),
		Columns: metas,
		RowSize: offset,
	}, nil
}

// MustPlan is Plan for schemas fixed at compile time.
func MustPlan(schema Schema) *Meta {
	meta, err := Plan(schema)
	if err != nil {
		panic(err)
	}
	return meta
}
