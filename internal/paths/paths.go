// Package paths resolves the well-known file locations of a skill-mode
// workspace.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ModeDirName is the per-workspace directory holding config and state.
const ModeDirName = ".skillmode"

// ModeDir returns the skill-mode directory under root.
func ModeDir(root string) string {
	return filepath.Join(root, ModeDirName)
}

// ConfigPath returns the configuration file location under root.
func ConfigPath(root string) string {
	return filepath.Join(ModeDir(root), "config.json")
}

// CatalogDBPath returns the catalog database location under root.
func CatalogDBPath(root string) string {
	return filepath.Join(ModeDir(root), "catalog.db")
}

// RulesPath returns the indent rule table override location under root.
func RulesPath(root string) string {
	return filepath.Join(ModeDir(root), "rules.toml")
}

// EnsureModeDir creates the skill-mode directory if needed.
func EnsureModeDir(root string) error {
	return os.MkdirAll(ModeDir(root), 0755)
}

// Canonicalize converts an absolute path to a root-relative path with
// forward slashes, resolving symlinks where the files exist.
func Canonicalize(absolutePath, root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = root
		} else {
			return "", err
		}
	}

	rel, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// IsWithin checks if a path is within root.
func IsWithin(path, root string) bool {
	rel, err := Canonicalize(path, root)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, "../")
}
