package main

import "testing"

func TestRunRejectsUnknownCommand(t *testing.T) {
	t.Setenv("LOG_LEVEL", "critical")

	if code := run([]string{"rollback"}); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}
