package table

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Row is one record of the users table. Username and Email are fixed slots
// holding the payload followed by at least one zero byte.
type Row struct {
	ID       uint32
	Username [UsernameSlotSize]byte
	Email    [EmailSlotSize]byte
}

// NewRow builds a row from string columns. Callers are expected to have
// validated the lengths; overlong values are truncated to the slot.
func NewRow(id uint32, username, email string) Row {
	r := Row{ID: id}
	copy(r.Username[:ColumnUsernameSize], username)
	copy(r.Email[:ColumnEmailSize], email)
	return r
}

func (r *Row) UsernameString() string {
	return sliceToString(r.Username[:])
}

func (r *Row) EmailString() string {
	return sliceToString(r.Email[:])
}

func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.UsernameString(), r.EmailString())
}

func sliceToString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

// SerializeRow writes the row into dst at its fixed offsets. The full
// username and email slots are copied, trailing bytes included, so the same
// row value always produces identical bytes.
func SerializeRow(row *Row, dst []byte) {
	binary.LittleEndian.PutUint32(dst[idOffset:], row.ID)
	copy(dst[usernameOffset:usernameOffset+UsernameSlotSize], row.Username[:])
	copy(dst[emailOffset:emailOffset+EmailSlotSize], row.Email[:])
}

// DeserializeRow reads a row back from its serialized form.
func DeserializeRow(src []byte, row *Row) {
	row.ID = binary.LittleEndian.Uint32(src[idOffset:])
	copy(row.Username[:], src[usernameOffset:usernameOffset+UsernameSlotSize])
	copy(row.Email[:], src[emailOffset:emailOffset+EmailSlotSize])
}
