package main

import (
	"strconv"
	"strings"

	"dblite/table"
)

type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

type Statement struct {
	Type        StatementType
	RowToInsert table.Row
}

type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareSyntaxError
	PrepareNegativeID
	PrepareStringTooLong
	PrepareUnrecognizedStatement
)

func prepareStatement(input string, stmt *Statement) PrepareResult {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return PrepareUnrecognizedStatement
	}

	switch tokens[0] {
	case "insert":
		return prepareInsert(tokens, stmt)
	case "select":
		stmt.Type = StatementSelect
		return PrepareSuccess
	default:
		return PrepareUnrecognizedStatement
	}
}

// prepareInsert parses `insert <username> <id> <email>`.
func prepareInsert(tokens []string, stmt *Statement) PrepareResult {
	stmt.Type = StatementInsert

	if len(tokens) != 4 {
		return PrepareSyntaxError
	}
	username, idToken, email := tokens[1], tokens[2], tokens[3]

	id, err := strconv.Atoi(idToken)
	if err != nil {
		return PrepareSyntaxError
	}
	if id < 0 {
		return PrepareNegativeID
	}
	if len(username) > table.ColumnUsernameSize {
		return PrepareStringTooLong
	}
	if len(email) > table.ColumnEmailSize {
		return PrepareStringTooLong
	}

	stmt.RowToInsert = table.NewRow(uint32(id), username, email)
	return PrepareSuccess
}
