package buffer

import "testing"

func TestDocumentLineIndex(t *testing.T) {
	doc := NewDocument("(let (x 1)\n  y)\n")

	if got := doc.LineCount(); got != 3 {
		t.Errorf("LineCount() = %d, want 3", got)
	}
	if got := doc.LineAt(10); got != 0 {
		t.Errorf("LineAt(10) = %d, want 0", got)
	}
	if got := doc.LineAt(12); got != 1 {
		t.Errorf("LineAt(12) = %d, want 1", got)
	}
	if got := doc.ColumnAt(13); got != 2 {
		t.Errorf("ColumnAt(13) = %d, want 2", got)
	}
	if got := doc.Line(1); got != "  y)" {
		t.Errorf("Line(1) = %q, want %q", got, "  y)")
	}
	if got := doc.LineIndent(1); got != 2 {
		t.Errorf("LineIndent(1) = %d, want 2", got)
	}
	if got := doc.LineEnd(1); got != 15 {
		t.Errorf("LineEnd(1) = %d, want 15", got)
	}
}

func TestDocumentEmpty(t *testing.T) {
	doc := NewDocument("")
	if got := doc.LineCount(); got != 1 {
		t.Errorf("LineCount() = %d, want 1", got)
	}
	if got := doc.Line(0); got != "" {
		t.Errorf("Line(0) = %q, want empty", got)
	}
	if got := doc.LineAt(0); got != 0 {
		t.Errorf("LineAt(0) = %d, want 0", got)
	}
}

func TestReadRangeClamps(t *testing.T) {
	doc := NewDocument("abc")
	tests := []struct {
		start, end int
		want       string
	}{
		{0, 3, "abc"},
		{-5, 2, "ab"},
		{1, 99, "bc"},
		{2, 1, ""},
		{5, 9, ""},
	}
	for _, tt := range tests {
		if got := doc.ReadRange(tt.start, tt.end); got != tt.want {
			t.Errorf("ReadRange(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestSetLineIndent(t *testing.T) {
	doc := NewDocument("(let (x 1)\n  y)\n")
	doc.SetLineIndent(1, 4)

	if got := doc.Line(1); got != "    y)" {
		t.Errorf("Line(1) = %q, want %q", got, "    y)")
	}
	if got := doc.Line(0); got != "(let (x 1)" {
		t.Errorf("Line(0) = %q, want unchanged", got)
	}
	// The line index must track the mutation.
	if got := doc.LineStart(2); got != 18 {
		t.Errorf("LineStart(2) = %d, want 18", got)
	}
}

func TestSetLineIndentRemovesTabs(t *testing.T) {
	doc := NewDocument("\t\tfoo")
	doc.SetLineIndent(0, 2)
	if got := doc.Text(); got != "  foo" {
		t.Errorf("Text() = %q, want %q", got, "  foo")
	}
}

func TestSetLineIndentOutOfRangeIsNoop(t *testing.T) {
	doc := NewDocument("a\nb")
	doc.SetLineIndent(5, 2)
	doc.SetLineIndent(-1, 2)
	doc.SetLineIndent(0, -1)
	if got := doc.Text(); got != "a\nb" {
		t.Errorf("Text() = %q, want unchanged", got)
	}
}
