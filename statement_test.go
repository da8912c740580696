package main

import (
	"strings"
	"testing"
)

func TestPrepareInsert(t *testing.T) {
	var stmt Statement
	if got := prepareStatement("insert alice 1 a@x", &stmt); got != PrepareSuccess {
		t.Fatalf("prepareStatement = %v; want PrepareSuccess", got)
	}
	if stmt.Type != StatementInsert {
		t.Errorf("Type = %v; want StatementInsert", stmt.Type)
	}
	row := &stmt.RowToInsert
	if row.ID != 1 {
		t.Errorf("ID = %d; want 1", row.ID)
	}
	if row.UsernameString() != "alice" {
		t.Errorf("username = %q; want %q", row.UsernameString(), "alice")
	}
	if row.EmailString() != "a@x" {
		t.Errorf("email = %q; want %q", row.EmailString(), "a@x")
	}
}

func TestPrepareSelect(t *testing.T) {
	var stmt Statement
	if got := prepareStatement("select", &stmt); got != PrepareSuccess {
		t.Fatalf("prepareStatement = %v; want PrepareSuccess", got)
	}
	if stmt.Type != StatementSelect {
		t.Errorf("Type = %v; want StatementSelect", stmt.Type)
	}
}

func TestPrepareErrors(t *testing.T) {
	cases := []struct {
		input string
		want  PrepareResult
	}{
		{"insert alice 1", PrepareSyntaxError},
		{"insert alice one a@x", PrepareSyntaxError},
		{"insert alice -1 a@x", PrepareNegativeID},
		{"insert " + strings.Repeat("a", 33) + " 1 a@x", PrepareStringTooLong},
		{"insert alice 1 " + strings.Repeat("e", 256), PrepareStringTooLong},
		{"delete 1", PrepareUnrecognizedStatement},
		{"", PrepareUnrecognizedStatement},
	}
	for _, c := range cases {
		var stmt Statement
		if got := prepareStatement(c.input, &stmt); got != c.want {
			t.Errorf("prepareStatement(%q) = %v; want %v", c.input, got, c.want)
		}
	}
}

func TestPrepareBoundaryLengths(t *testing.T) {
	username := strings.Repeat("u", 32)
	email := strings.Repeat("e", 255)

	var stmt Statement
	if got := prepareStatement("insert "+username+" 1 "+email, &stmt); got != PrepareSuccess {
		t.Fatalf("max-length columns rejected: %v", got)
	}
	if stmt.RowToInsert.UsernameString() != username {
		t.Error("max-length username truncated")
	}
	if stmt.RowToInsert.EmailString() != email {
		t.Error("max-length email truncated")
	}
}

func TestPrepareAcceptsZeroID(t *testing.T) {
	var stmt Statement
	if got := prepareStatement("insert alice 0 a@x", &stmt); got != PrepareSuccess {
		t.Fatalf("id 0 rejected: %v", got)
	}
}
