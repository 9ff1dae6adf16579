package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	skerrors "github.com/Aurelbuche/skill-mode/internal/errors"
	"github.com/Aurelbuche/skill-mode/internal/logging"
)

func captureLogger() (*logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.WarnLevel,
		Output: &buf,
	})
	return logger, &buf
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestBuildFromFinderFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib.fnd"), `
(alpha "doc for alpha" "alpha(x)")
("beta" ?short "doc")
stray
(  )
`)

	b := NewBuilder(logging.Nop())
	cat := New()
	b.Build(cat, BuildOptions{DocRoots: []string{dir}, Recursive: true})

	want := []string{"alpha", "beta"}
	if got := cat.Get(Functions); !reflect.DeepEqual(got, want) {
		t.Errorf("Get(Functions) = %v, want %v", got, want)
	}
}

func TestBuildPrefixFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib.fnd"), "(alpha) (beta)")

	b := NewBuilder(logging.Nop())
	cat := New()
	b.Build(cat, BuildOptions{
		DocRoots:  []string{dir},
		Recursive: true,
		Prefixes:  map[Category][]string{Functions: {"al"}},
	})

	if got := cat.Get(Functions); !reflect.DeepEqual(got, []string{"alpha"}) {
		t.Errorf("Get(Functions) = %v, want [alpha]", got)
	}
}

func TestBuildFromSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "defs.il"), `
(defun trFoo (x) x)
procedure(trBar(y) y)
(defmacro trMac (f) f)
(defclass trClass () ())
(defmethod trDo ((c trClass)) nil)
`)
	writeFile(t, filepath.Join(dir, "more.ils"), "globalProc(trBaz() nil)\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "(defun trIgnored () nil)\n")

	b := NewBuilder(logging.Nop())
	cat := New()
	b.Build(cat, BuildOptions{SourceRoots: []string{dir}, Recursive: true})

	tests := []struct {
		cat  Category
		want []string
	}{
		{Functions, []string{"trBar", "trBaz", "trFoo"}},
		{Forms, []string{"trMac"}},
		{Classes, []string{"trClass"}},
		{Methods, []string{"trDo"}},
	}
	for _, tt := range tests {
		if got := cat.Get(tt.cat); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Get(%s) = %v, want %v", tt.cat, got, tt.want)
		}
	}
}

func TestBuildIsOrderIndependent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.il"), "(defun dup () nil)\n(defun aOnly () nil)\n")
	writeFile(t, filepath.Join(dir, "b.il"), "(defun dup () nil)\n(defun bOnly () nil)\n")

	b := NewBuilder(logging.Nop())
	first := New()
	b.Build(first, BuildOptions{SourceRoots: []string{dir}, Recursive: true})
	second := New()
	b.Build(second, BuildOptions{SourceRoots: []string{dir}, Recursive: true})

	want := []string{"aOnly", "bOnly", "dup"}
	if got := first.Get(Functions); !reflect.DeepEqual(got, want) {
		t.Errorf("first build = %v, want %v", got, want)
	}
	if got := second.Get(Functions); !reflect.DeepEqual(got, first.Get(Functions)) {
		t.Errorf("second build = %v, want same membership as first", got)
	}
}

func TestBuildReplacesPreviousContents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.fnd"), "(alpha)")

	b := NewBuilder(logging.Nop())
	cat := New()
	cat.Add(Functions, "leftover")
	b.Build(cat, BuildOptions{DocRoots: []string{dir}, Recursive: true})

	if got := cat.Get(Functions); !reflect.DeepEqual(got, []string{"alpha"}) {
		t.Errorf("Get(Functions) = %v, want [alpha]", got)
	}
}

func TestBuildSkipsMissingRoot(t *testing.T) {
	b := NewBuilder(logging.Nop())
	cat := New()
	visited := b.Build(cat, BuildOptions{
		DocRoots:  []string{filepath.Join(t.TempDir(), "nope")},
		Recursive: true,
	})
	if visited != 0 {
		t.Errorf("visited = %d, want 0", visited)
	}
}

func TestBuildLogsMissingRoot(t *testing.T) {
	logger, buf := captureLogger()
	b := NewBuilder(logger)
	cat := New()
	b.Build(cat, BuildOptions{
		DocRoots:  []string{filepath.Join(t.TempDir(), "nope")},
		Recursive: true,
	})
	if !strings.Contains(buf.String(), string(skerrors.CatalogSourceMissing)) {
		t.Errorf("log output = %q, want it to mention %s", buf.String(), skerrors.CatalogSourceMissing)
	}
}

func TestBuildBoundsWalkDepth(t *testing.T) {
	dir := t.TempDir()
	deep := dir
	for i := 0; i < maxWalkDepth+3; i++ {
		deep = filepath.Join(deep, "d")
	}
	writeFile(t, filepath.Join(deep, "deep.il"), "(defun tooDeep () nil)\n")

	logger, buf := captureLogger()
	b := NewBuilder(logger)
	cat := New()
	b.Build(cat, BuildOptions{SourceRoots: []string{dir}, Recursive: true})

	if got := cat.Get(Functions); len(got) != 0 {
		t.Errorf("Get(Functions) = %v, want empty", got)
	}
	if !strings.Contains(buf.String(), string(skerrors.DepthExceeded)) {
		t.Errorf("log output = %q, want it to mention %s", buf.String(), skerrors.DepthExceeded)
	}
}

func TestBuildNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.il"), "(defun topFn () nil)\n")
	writeFile(t, filepath.Join(dir, "sub", "deep.il"), "(defun deepFn () nil)\n")

	b := NewBuilder(logging.Nop())
	cat := New()
	b.Build(cat, BuildOptions{SourceRoots: []string{dir}, Recursive: false})

	if got := cat.Get(Functions); !reflect.DeepEqual(got, []string{"topFn"}) {
		t.Errorf("Get(Functions) = %v, want [topFn]", got)
	}
}

func TestRecordName(t *testing.T) {
	tests := []struct {
		record string
		want   string
	}{
		{`(alpha "doc")`, "alpha"},
		{`("beta" rest)`, "beta"},
		{"stray", ""},
		{"(  )", ""},
		{"((nested))", ""},
	}
	for _, tt := range tests {
		if got := recordName(tt.record); got != tt.want {
			t.Errorf("recordName(%q) = %q, want %q", tt.record, got, tt.want)
		}
	}
}
