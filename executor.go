package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"dblite/table"
)

type ExecuteResult int

const (
	ExecuteSuccess ExecuteResult = iota
	ExecuteDuplicateKey
)

// executeStatement runs a prepared statement against the table. Recoverable
// outcomes come back as an ExecuteResult; anything else is an engine error
// the caller must not swallow.
func executeStatement(stmt *Statement, tbl *table.Table, w io.Writer) (ExecuteResult, error) {
	switch stmt.Type {
	case StatementInsert:
		return executeInsert(stmt, tbl)
	case StatementSelect:
		return executeSelect(tbl, w)
	default:
		return ExecuteSuccess, errors.Errorf("unknown statement type %d", stmt.Type)
	}
}

func executeInsert(stmt *Statement, tbl *table.Table) (ExecuteResult, error) {
	err := tbl.Insert(&stmt.RowToInsert)
	if errors.Is(err, table.ErrDuplicateKey) {
		return ExecuteDuplicateKey, nil
	}
	if err != nil {
		return ExecuteSuccess, err
	}
	return ExecuteSuccess, nil
}

func executeSelect(tbl *table.Table, w io.Writer) (ExecuteResult, error) {
	cursor, err := tbl.Start()
	if err != nil {
		return ExecuteSuccess, err
	}

	if !cursor.Valid() {
		fmt.Fprintln(w, "DB is empty.")
		return ExecuteSuccess, nil
	}

	for cursor.Valid() {
		row, err := cursor.Row()
		if err != nil {
			return ExecuteSuccess, err
		}
		fmt.Fprintln(w, row)
		if err := cursor.Next(); err != nil {
			return ExecuteSuccess, err
		}
	}
	return ExecuteSuccess, nil
}
