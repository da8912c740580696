package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"dblite/table"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Must supply a database filename.")
		os.Exit(1)
	}

	tbl, err := table.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}

	assistant := NewAssistant()
	reader := bufio.NewReader(os.Stdin)

	for {
		printPrompt()

		input, err := readInput(reader)
		if err != nil {
			fmt.Printf("Error reading input: %v\n", err)
			os.Exit(1)
		}

		if query, ok := assistantQuery(input); ok {
			translated, err := assistant.Translate(query)
			if err != nil {
				fmt.Printf("Assistant unavailable: %v\n", err)
				continue
			}
			// The assistant's reply is run as if the user had typed it.
			input = translated
		}

		if strings.HasPrefix(input, ".") {
			switch doMetaCommand(input, tbl) {
			case MetaCommandSuccess:
			case MetaCommandUnrecognizedCommand:
				fmt.Printf("Unrecognized command '%s'\n", input)
			}
			continue
		}

		var stmt Statement
		switch prepareStatement(input, &stmt) {
		case PrepareSuccess:
		case PrepareSyntaxError:
			fmt.Println("Syntax error. Could not parse statement.")
			continue
		case PrepareNegativeID:
			fmt.Println("ID must be positive.")
			continue
		case PrepareStringTooLong:
			fmt.Println("String is too long.")
			continue
		case PrepareUnrecognizedStatement:
			fmt.Printf("Unrecognized keyword at start of '%s'.\n", input)
			continue
		}

		result, err := executeStatement(&stmt, tbl, os.Stdout)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		switch result {
		case ExecuteSuccess:
			fmt.Println("Executed.")
		case ExecuteDuplicateKey:
			fmt.Println("Error: Duplicate key.")
		}
	}
}
