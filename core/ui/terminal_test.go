package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableAlignsUnicodeCells(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	tbl := w.NewTable("Item", "Total").AlignRight(1)
	tbl.AddRow("Storage (24 m³)", "1 200 kr")
	tbl.AddRow("Truck", "50 kr")
	tbl.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	width := len([]rune(lines[2]))
	for i, l := range lines {
		if n := len([]rune(l)); n != width {
			t.Errorf("line %d is %d runes wide, want %d: %q", i, n, width, l)
		}
	}
	if !strings.HasSuffix(lines[3], "   50 kr") {
		t.Errorf("amount not right-aligned: %q", lines[3])
	}
}

func TestAddRowPadsMissingCells(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewWriter(&buf, true).NewTable("a", "b", "c")
	tbl.AddRow("x")
	if len(tbl.rows[0]) != 3 {
		t.Errorf("row has %d cells, want 3", len(tbl.rows[0]))
	}
}

func TestNoColorAndVerbosity(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Success("done")
	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("escape codes written with noColor: %q", buf.String())
	}

	buf.Reset()
	w.SetVerbosity(0)
	w.Info("hidden")
	w.Dim("hidden")
	if buf.Len() != 0 {
		t.Errorf("quiet writer printed %q", buf.String())
	}

	buf.Reset()
	NewWriter(&buf, false).Success("done")
	if !strings.Contains(buf.String(), Green) {
		t.Errorf("expected colored output, got %q", buf.String())
	}
}
