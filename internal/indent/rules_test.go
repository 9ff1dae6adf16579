package indent

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRuleset(t *testing.T) {
	rs := DefaultRuleset()

	if rs.Width != 2 {
		t.Errorf("Width = %d, want 2", rs.Width)
	}
	if rs.MaxDedentDepth != 64 {
		t.Errorf("MaxDedentDepth = %d, want 64", rs.MaxDedentDepth)
	}
	if !rs.IsBinding("let") {
		t.Error("IsBinding(let) = false, want true")
	}
	if !rs.IsSequence("progn") {
		t.Error("IsSequence(progn) = false, want true")
	}
	if !rs.IsDefine("procedure") {
		t.Error("IsDefine(procedure) = false, want true")
	}
	if !rs.IsClass("defclass") {
		t.Error("IsClass(defclass) = false, want true")
	}
	if !rs.IsWrapping("when") {
		t.Error("IsWrapping(when) = false, want true")
	}
	if !rs.IsKeywordMarker("@optional") {
		t.Error("IsKeywordMarker(@optional) = false, want true")
	}
	if off, ok := rs.AlignOffset("and"); !ok || off != 1 {
		t.Errorf("AlignOffset(and) = (%d, %v), want (1, true)", off, ok)
	}
	if _, ok := rs.AlignOffset("let"); ok {
		t.Error("AlignOffset(let) matched, want no match")
	}
}

func TestLoadRuleset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	data := `
width = 4
binding = ["myLet"]

[align]
myAnd = 2
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	rs, err := LoadRuleset(path)
	if err != nil {
		t.Fatalf("LoadRuleset() error = %v", err)
	}
	if rs.Width != 4 {
		t.Errorf("Width = %d, want 4", rs.Width)
	}
	// Omitted fields fall back to safe values.
	if rs.MaxDedentDepth != 64 {
		t.Errorf("MaxDedentDepth = %d, want 64", rs.MaxDedentDepth)
	}
	if !rs.IsBinding("myLet") {
		t.Error("IsBinding(myLet) = false, want true")
	}
	if rs.IsBinding("let") {
		t.Error("IsBinding(let) = true, want false after override")
	}
	if off, ok := rs.AlignOffset("myAnd"); !ok || off != 2 {
		t.Errorf("AlignOffset(myAnd) = (%d, %v), want (2, true)", off, ok)
	}
}

func TestLoadRulesetErrors(t *testing.T) {
	if _, err := LoadRuleset(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadRuleset on a missing file returned nil error")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("width = ["), 0644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	if _, err := LoadRuleset(path); err == nil {
		t.Error("LoadRuleset on malformed TOML returned nil error")
	}
}
