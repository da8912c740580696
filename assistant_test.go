package main

import "testing"

func TestAssistantQuery(t *testing.T) {
	query, ok := assistantQuery("Ada add a user named bob")
	if !ok {
		t.Fatal("assistant line not recognized")
	}
	if query != "add a user named bob" {
		t.Errorf("query = %q", query)
	}

	if _, ok := assistantQuery("select"); ok {
		t.Error("plain statement routed to assistant")
	}
	// The prefix match is case-sensitive.
	if _, ok := assistantQuery("ada add a user"); ok {
		t.Error("lowercase prefix routed to assistant")
	}
}

func TestExecTranslator(t *testing.T) {
	tr := &ExecTranslator{Command: "echo"}
	got, err := tr.Translate("select")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "select" {
		t.Errorf("Translate = %q; want %q", got, "select")
	}
}

func TestExecTranslatorMissingBinary(t *testing.T) {
	tr := &ExecTranslator{Command: "definitely-not-a-real-assistant"}
	if _, err := tr.Translate("select"); err == nil {
		t.Fatal("missing assistant binary did not error")
	}
}
