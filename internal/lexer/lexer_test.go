package lexer

import "testing"

func TestScanAllKinds(t *testing.T) {
	src := `(foo "bar") ; c`
	tokens := ScanAll(src)

	want := []struct {
		kind Kind
		text string
	}{
		{KindOpen, "("},
		{KindAtom, "foo"},
		{KindWhitespace, " "},
		{KindString, `"bar"`},
		{KindClose, ")"},
		{KindWhitespace, " "},
		{KindComment, "; c"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("len(tokens) = %d, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind {
			t.Errorf("token %d kind = %v, want %v", i, tokens[i].Kind, w.kind)
		}
		if got := tokens[i].Text(src); got != w.text {
			t.Errorf("token %d text = %q, want %q", i, got, w.text)
		}
	}
}

func TestScanAllCoversBuffer(t *testing.T) {
	src := "(defun f (a)\n  a) ; done"
	tokens := ScanAll(src)
	pos := 0
	for i, tok := range tokens {
		if tok.Start != pos {
			t.Fatalf("token %d starts at %d, want %d", i, tok.Start, pos)
		}
		pos = tok.End
	}
	if pos != len(src) {
		t.Errorf("tokens end at %d, want %d", pos, len(src))
	}
}

func TestNestedBlockComment(t *testing.T) {
	src := "/* a /* b */ c */x"
	tokens := ScanAll(src)
	if len(tokens) != 2 {
		t.Fatalf("len(tokens) = %d, want 2", len(tokens))
	}
	if tokens[0].Kind != KindComment || tokens[0].End != 17 {
		t.Errorf("comment = %v [%d,%d), want comment ending at 17",
			tokens[0].Kind, tokens[0].Start, tokens[0].End)
	}
	if tokens[1].Kind != KindAtom || tokens[1].Text(src) != "x" {
		t.Errorf("trailing token = %q, want atom \"x\"", tokens[1].Text(src))
	}
}

func TestUnterminatedTokensAreIncomplete(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind Kind
	}{
		{"string", `"abc`, KindString},
		{"block comment", "/* abc", KindComment},
		{"nested block comment", "/* a /* b */", KindComment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := ScanAll(tt.src)
			last := tokens[len(tokens)-1]
			if last.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", last.Kind, tt.kind)
			}
			if !last.Incomplete {
				t.Error("Incomplete = false, want true")
			}
			if last.End != len(tt.src) {
				t.Errorf("End = %d, want %d", last.End, len(tt.src))
			}
		})
	}
}

func TestScanForwardReturnsEndOfInputOnUnterminated(t *testing.T) {
	if _, ok := Scan(`  "abc`, 0, Forward); ok {
		t.Error("Scan on unterminated string returned a token, want end of input")
	}
}

func TestScanSkipsTrivia(t *testing.T) {
	src := "  ; note\n  foo"
	tok, ok := Scan(src, 0, Forward)
	if !ok {
		t.Fatal("Scan returned end of input")
	}
	if tok.Kind != KindAtom || tok.Text(src) != "foo" {
		t.Errorf("Scan = %q (%v), want atom \"foo\"", tok.Text(src), tok.Kind)
	}
}

func TestScanBackward(t *testing.T) {
	src := "foo bar ; trailing"
	tok, ok := Scan(src, len(src), Backward)
	if !ok {
		t.Fatal("Scan returned end of input")
	}
	if tok.Text(src) != "bar" {
		t.Errorf("Scan = %q, want \"bar\"", tok.Text(src))
	}
	tok, ok = Scan(src, tok.Start, Backward)
	if !ok {
		t.Fatal("second Scan returned end of input")
	}
	if tok.Text(src) != "foo" {
		t.Errorf("second Scan = %q, want \"foo\"", tok.Text(src))
	}
	if _, ok := Scan(src, tok.Start, Backward); ok {
		t.Error("Scan before first token returned a token, want end of input")
	}
}

func TestStringBackslashKeepsQuoteOpen(t *testing.T) {
	src := `"a\"b" x`
	tokens := ScanAll(src)
	if tokens[0].Kind != KindString || tokens[0].End != 6 {
		t.Errorf("string token = %v [%d,%d), want string ending at 6",
			tokens[0].Kind, tokens[0].Start, tokens[0].End)
	}
}

func TestAtomStopsAtDelimiters(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"foo)", "foo"},
		{"foo(", "foo"},
		{`foo"s"`, "foo"},
		{"foo;c", "foo"},
		{"foo/*c*/", "foo"},
		{"?x rest", "?x"},
	}
	for _, tt := range tests {
		tok := ScanAll(tt.src)[0]
		if tok.Kind != KindAtom || tok.Text(tt.src) != tt.want {
			t.Errorf("first token of %q = %q (%v), want atom %q",
				tt.src, tok.Text(tt.src), tok.Kind, tt.want)
		}
	}
}
