package table

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestRowSerializeRoundTrip(t *testing.T) {
	orig := NewRow(42, "alice", "alice@example.com")

	buf := make([]byte, RowSize)
	SerializeRow(&orig, buf)

	var got Row
	DeserializeRow(buf, &got)
	if !reflect.DeepEqual(orig, got) {
		t.Fatalf("roundtrip mismatch: got %+v; want %+v", got, orig)
	}
	if got.UsernameString() != "alice" || got.EmailString() != "alice@example.com" {
		t.Errorf("strings = %q, %q", got.UsernameString(), got.EmailString())
	}
}

func TestRowSerializeOverwritesFullSlots(t *testing.T) {
	row := NewRow(1, "a", "b@x")

	clean := make([]byte, RowSize)
	SerializeRow(&row, clean)

	dirty := bytes.Repeat([]byte{0xFF}, int(RowSize))
	SerializeRow(&row, dirty)

	// The full fixed slots are copied, so prior buffer contents never leak
	// into serialized pages.
	if !bytes.Equal(clean, dirty) {
		t.Fatal("serialized bytes depend on prior buffer contents")
	}
}

func TestRowMaxLengthColumns(t *testing.T) {
	username := strings.Repeat("u", ColumnUsernameSize)
	email := strings.Repeat("e", ColumnEmailSize)
	row := NewRow(1, username, email)

	buf := make([]byte, RowSize)
	SerializeRow(&row, buf)

	var got Row
	DeserializeRow(buf, &got)
	if got.UsernameString() != username {
		t.Errorf("username lost at max length: %q", got.UsernameString())
	}
	if got.EmailString() != email {
		t.Errorf("email lost at max length: %q", got.EmailString())
	}
}

func TestRowString(t *testing.T) {
	row := NewRow(3, "bob", "b@x")
	if got := row.String(); got != "(3, bob, b@x)" {
		t.Errorf("String() = %q; want %q", got, "(3, bob, b@x)")
	}
}
