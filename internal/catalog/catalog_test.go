package catalog

import (
	"reflect"
	"testing"
)

func TestAddAndGet(t *testing.T) {
	c := New()
	c.Add(Functions, "beta", "alpha", "beta", "")

	got := c.Get(Functions)
	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get(Functions) = %v, want %v", got, want)
	}
	if got := c.Len(Functions); got != 2 {
		t.Errorf("Len(Functions) = %d, want 2", got)
	}
}

func TestAddInvalidCategoryIsNoop(t *testing.T) {
	c := New()
	c.Add(Uncategorized, "x")
	c.Add(Category("bogus"), "y")
	for _, cat := range Categories() {
		if c.Len(cat) != 0 {
			t.Errorf("Len(%s) = %d, want 0", cat, c.Len(cat))
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	c := New()
	c.Add(Functions, "trName")
	c.Add(Classes, "trName")

	if got := c.Classify("trName"); got != Classes {
		t.Errorf("Classify = %s, want %s", got, Classes)
	}
	c.Add(Methods, "trName")
	if got := c.Classify("trName"); got != Methods {
		t.Errorf("Classify = %s, want %s", got, Methods)
	}
	if got := c.Classify("unknown"); got != Uncategorized {
		t.Errorf("Classify(unknown) = %s, want %s", got, Uncategorized)
	}
}

func TestReplaceSwapsWholesale(t *testing.T) {
	c := New()
	c.Add(Functions, "old")

	c.Replace(map[Category]map[string]bool{
		Forms: {"fresh": true, "": true},
	})

	if got := c.Len(Functions); got != 0 {
		t.Errorf("Len(Functions) after Replace = %d, want 0", got)
	}
	if got := c.Get(Forms); !reflect.DeepEqual(got, []string{"fresh"}) {
		t.Errorf("Get(Forms) = %v, want [fresh]", got)
	}
}

func TestCategoryValid(t *testing.T) {
	for _, cat := range Categories() {
		if !cat.Valid() {
			t.Errorf("%s.Valid() = false, want true", cat)
		}
	}
	if Uncategorized.Valid() {
		t.Error("Uncategorized.Valid() = true, want false")
	}
}

func TestHasAcceptedPrefix(t *testing.T) {
	tests := []struct {
		name     string
		prefixes []string
		want     bool
	}{
		{"alpha", nil, true},
		{"alpha", []string{"al"}, true},
		{"beta", []string{"al"}, false},
		{"beta", []string{"al", "be"}, true},
	}
	for _, tt := range tests {
		if got := hasAcceptedPrefix(tt.name, tt.prefixes); got != tt.want {
			t.Errorf("hasAcceptedPrefix(%q, %v) = %v, want %v", tt.name, tt.prefixes, got, tt.want)
		}
	}
}
