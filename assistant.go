package main

import (
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// assistantPrefix marks REPL lines to hand to the natural-language
// assistant. The match is case-sensitive.
const assistantPrefix = "Ada "

// Translator turns a natural-language request into a statement the parser
// understands. The engine accepts whatever text comes back and re-parses
// it; the translator is not part of its correctness contract.
type Translator interface {
	Translate(query string) (string, error)
}

// assistantQuery reports whether input is addressed to the assistant and
// returns the query with the prefix stripped.
func assistantQuery(input string) (string, bool) {
	if !strings.HasPrefix(input, assistantPrefix) {
		return "", false
	}
	return strings.TrimPrefix(input, assistantPrefix), true
}

// ExecTranslator shells out to an assistant binary and returns everything it
// prints on stdout, trimmed of surrounding whitespace. The binary runs out of
// process; the REPL keeps working when it is missing.
type ExecTranslator struct {
	Command string
}

func NewAssistant() *ExecTranslator {
	return &ExecTranslator{Command: "ada"}
}

func (a *ExecTranslator) Translate(query string) (string, error) {
	out, err := exec.Command(a.Command, query).Output()
	if err != nil {
		return "", errors.Wrap(err, "assistant")
	}
	reply := strings.TrimSpace(string(out))
	if reply == "" {
		return "", errors.New("assistant returned no command")
	}
	return reply, nil
}
