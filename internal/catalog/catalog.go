// Package catalog builds and serves the categorized symbol tables scraped
// from SKILL documentation finder files and source trees. The catalog is the
// only process-wide state in the module; it is owned by an explicit service
// object and guarded against rebuild-while-read.
package catalog

import (
	"sort"
	"strings"
	"sync"
)

// Category names one of the four symbol tables.
type Category string

const (
	// Functions holds names defined with defun, procedure or globalProc,
	// plus every finder-file record.
	Functions Category = "functions"
	// Forms holds macro and special-form names (defmacro).
	Forms Category = "forms"
	// Classes holds defclass names.
	Classes Category = "classes"
	// Methods holds defmethod names.
	Methods Category = "methods"

	// Uncategorized is what Classify degrades to for unknown names.
	Uncategorized Category = "uncategorized"
)

// Categories lists the four buildable categories in a stable order.
func Categories() []Category {
	return []Category{Functions, Forms, Classes, Methods}
}

// Valid reports whether c names a buildable category.
func (c Category) Valid() bool {
	switch c {
	case Functions, Forms, Classes, Methods:
		return true
	}
	return false
}

// Catalog owns the four deduplicated symbol sets. Reads and rebuilds may
// interleave when exposed as a service, so access goes through a lock.
type Catalog struct {
	mu   sync.RWMutex
	sets map[Category]map[string]bool
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{sets: emptySets()}
}

func emptySets() map[Category]map[string]bool {
	sets := make(map[Category]map[string]bool, 4)
	for _, c := range Categories() {
		sets[c] = make(map[string]bool)
	}
	return sets
}

// Add merges names into a category, deduplicating. Empty names are dropped.
func (c *Catalog) Add(cat Category, names ...string) {
	if !cat.Valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range names {
		if n != "" {
			c.sets[cat][n] = true
		}
	}
}

// Get returns the sorted names of one category.
func (c *Catalog) Get(cat Category) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.sets[cat]))
	for n := range c.sets[cat] {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of names in one category.
func (c *Catalog) Len(cat Category) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sets[cat])
}

// Classify returns the category of a name, or Uncategorized. When a name
// appears in several categories the most specific wins: methods before
// classes before forms before functions.
func (c *Catalog) Classify(name string) Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cat := range []Category{Methods, Classes, Forms, Functions} {
		if c.sets[cat][name] {
			return cat
		}
	}
	return Uncategorized
}

// Replace swaps in freshly built sets wholesale. Build passes merge into
// their own working sets and install the result here; the catalog never
// shrinks mid-pass.
func (c *Catalog) Replace(sets map[Category]map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fresh := emptySets()
	for cat, names := range sets {
		if !cat.Valid() {
			continue
		}
		for n := range names {
			if n != "" {
				fresh[cat][n] = true
			}
		}
	}
	c.sets = fresh
}

// hasAcceptedPrefix applies the accepted-prefix filter; an empty filter
// accepts everything.
func hasAcceptedPrefix(name string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
