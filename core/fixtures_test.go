package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFixture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suite.yaml")
	content := `
entry_point: solution
deadline_ms: 2000
cases:
  - description: adds two numbers
    hidden: false
    input:
      a: 2
      b: 3
    expected: 5
  - description: handles floats
    input:
      a: 0.1
      b: 0.2
    expected: 0.3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	entryPoint, deadlineMs, cases, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entryPoint != "solution" {
		t.Fatalf("expected entry_point solution, got %s", entryPoint)
	}
	if deadlineMs != 2000 {
		t.Fatalf("expected deadline_ms 2000, got %d", deadlineMs)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	if cases[0].Description != "adds two numbers" || cases[0].Hidden {
		t.Fatalf("unexpected first case: %+v", cases[0])
	}
	if !Compare(cases[0].Expected, IntValue(5)) {
		t.Fatalf("expected first case expected value to be 5, got %v", Repr(cases[0].Expected))
	}
	if !Compare(cases[1].Expected, FloatValue(0.3)) {
		t.Fatalf("expected second case expected value to be 0.3, got %v", Repr(cases[1].Expected))
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	_, _, _, err := LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected an error for a missing fixture file")
	}
}
