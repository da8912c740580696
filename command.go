package main

import (
	"fmt"
	"os"

	"dblite/table"
)

type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandUnrecognizedCommand
)

func doMetaCommand(input string, tbl *table.Table) MetaCommandResult {
	switch input {
	case ".exit":
		if err := tbl.Close(); err != nil {
			fmt.Printf("Error closing database: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
		return MetaCommandSuccess
	case ".btree":
		fmt.Println("Tree:")
		if err := tbl.WriteTree(os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return MetaCommandSuccess
	case ".constants":
		fmt.Println("Constants:")
		table.WriteConstants(os.Stdout)
		return MetaCommandSuccess
	default:
		return MetaCommandUnrecognizedCommand
	}
}
