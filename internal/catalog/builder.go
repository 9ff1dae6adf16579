package catalog

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Aurelbuche/skill-mode/internal/errors"
	"github.com/Aurelbuche/skill-mode/internal/lexer"
	"github.com/Aurelbuche/skill-mode/internal/logging"
	"github.com/Aurelbuche/skill-mode/internal/sexp"
)

// maxWalkDepth bounds the recursive directory walk so a pathological tree
// (or a symlink cycle the OS lets through) cannot hang a build.
const maxWalkDepth = 32

// BuildOptions selects the trees to scan and the filters to apply.
type BuildOptions struct {
	// DocRoots are directories scanned for finder files (*.fnd).
	DocRoots []string
	// SourceRoots are directories scanned for SKILL sources (*.il, *.ils).
	SourceRoots []string
	// Recursive walks subdirectories; otherwise only the root entries.
	Recursive bool
	// Prefixes filters finder-file names per category; an empty or missing
	// list accepts everything.
	Prefixes map[Category][]string
}

// Builder performs one-shot synchronous scans. Per-file errors are logged
// and skipped: one bad file never aborts a build.
type Builder struct {
	logger *logging.Logger
}

// NewBuilder returns a builder logging through logger.
func NewBuilder(logger *logging.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build scans the configured trees and installs the result into cat
// wholesale. It returns the number of files visited.
func (b *Builder) Build(cat *Catalog, opts BuildOptions) int {
	sets := emptySets()
	visited := 0

	for _, root := range opts.DocRoots {
		visited += b.walk(root, opts.Recursive, func(path string) {
			if strings.EqualFold(filepath.Ext(path), ".fnd") {
				b.scanFinderFile(path, opts.Prefixes[Functions], sets)
			}
		})
	}
	for _, root := range opts.SourceRoots {
		visited += b.walk(root, opts.Recursive, func(path string) {
			ext := strings.ToLower(filepath.Ext(path))
			if ext == ".il" || ext == ".ils" {
				b.scanSourceFile(path, sets)
			}
		})
	}

	cat.Replace(sets)
	return visited
}

// walk visits regular files under root, bounded in depth. Unreadable
// directories are skipped, not fatal.
func (b *Builder) walk(root string, recursive bool, visit func(path string)) int {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				b.logger.Warn("Skipping unavailable scan root", map[string]interface{}{
					"root": root,
					"error": errors.New(errors.CatalogSourceMissing,
						"scan root unavailable", err).Error(),
				})
				return nil
			}
			b.logger.Warn("Skipping unreadable entry", map[string]interface{}{
				"path": path, "error": err.Error(),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive {
				return filepath.SkipDir
			}
			if walkDepth(root, path) > maxWalkDepth {
				b.logger.Warn("Stopping walk at depth bound", map[string]interface{}{
					"path": path,
					"error": errors.New(errors.DepthExceeded,
						"directory walk depth bound reached", nil).Error(),
				})
				return filepath.SkipDir
			}
			return nil
		}
		count++
		visit(path)
		return nil
	})
	if err != nil {
		b.logger.Warn("Scan aborted for root", map[string]interface{}{
			"root": root, "error": err.Error(),
		})
	}
	return count
}

func walkDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return maxWalkDepth + 1
	}
	return strings.Count(rel, string(filepath.Separator))
}

// scanFinderFile reads a documentation finder file as a sequence of
// top-level records; the first element of each record is the symbol name.
// Malformed records are skipped.
func (b *Builder) scanFinderFile(path string, prefixes []string, sets map[Category]map[string]bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		b.logger.Warn("Skipping unreadable finder file", map[string]interface{}{
			"path": path, "error": err.Error(),
		})
		return
	}

	src := string(data)
	nav := sexp.NewNavigator(src)
	offset := 0
	for {
		text, next, ok := nav.ForwardSexp(offset)
		if !ok {
			return
		}
		offset = next
		name := recordName(text)
		if name == "" || !hasAcceptedPrefix(name, prefixes) {
			continue
		}
		sets[Functions][name] = true
	}
}

// recordName extracts the first element of a record. The element may be a
// bare atom or a quoted string.
func recordName(record string) string {
	if !strings.HasPrefix(record, "(") {
		// A stray top-level atom is not a record.
		return ""
	}
	t, ok := lexer.Scan(record, 1, lexer.Forward)
	if !ok {
		return ""
	}
	switch t.Kind {
	case lexer.KindAtom:
		return t.Text(record)
	case lexer.KindString:
		return strings.Trim(t.Text(record), `"`)
	default:
		return ""
	}
}

// Category anchor patterns for source scanning. Each matches a definition
// keyword in either Lisp or SKILL call syntax and captures the defined name.
var anchorPatterns = map[Category]*regexp.Regexp{
	Functions: regexp.MustCompile(`(?:^|[(\s])(?:defun|procedure|globalProc)[(\s]+([A-Za-z_][A-Za-z0-9_]*)`),
	Forms:     regexp.MustCompile(`(?:^|[(\s])defmacro[(\s]+([A-Za-z_][A-Za-z0-9_]*)`),
	Classes:   regexp.MustCompile(`(?:^|[(\s])defclass[(\s]+([A-Za-z_][A-Za-z0-9_]*)`),
	Methods:   regexp.MustCompile(`(?:^|[(\s])defmethod[(\s]+([A-Za-z_][A-Za-z0-9_]*)`),
}

// scanSourceFile scans a SKILL source file line by line with the category
// anchor patterns.
func (b *Builder) scanSourceFile(path string, sets map[Category]map[string]bool) {
	f, err := os.Open(path)
	if err != nil {
		b.logger.Warn("Skipping unreadable source file", map[string]interface{}{
			"path": path, "error": err.Error(),
		})
		return
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		for cat, re := range anchorPatterns {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				sets[cat][m[1]] = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		b.logger.Warn("Stopped scanning source file", map[string]interface{}{
			"path": path, "error": err.Error(),
		})
	}
}
