package hostfs

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultRoot is the root used when nothing else was configured.
const DefaultRoot = "/"

var ErrInvalidPath = errors.New("invalid host path")

var (
	rootMu sync.RWMutex
	root   = DefaultRoot
)

// SetRoot changes the directory account files are read from.
// An empty dir restores DefaultRoot.
func SetRoot(dir string) error {
	if dir == "" {
		dir = DefaultRoot
	}
	if !filepath.IsAbs(dir) {
		return ErrInvalidPath
	}
	rootMu.Lock()
	root = filepath.Clean(dir)
	rootMu.Unlock()
	return nil
}

// Root returns the current root.
func Root() string {
	rootMu.RLock()
	defer rootMu.RUnlock()
	return root
}

// Path joins the root with a relative path (no leading slash).
// Example: Path("etc/passwd") -> /etc/passwd
func Path(rel string) (string, error) {
	rel = strings.TrimPrefix(rel, "/")
	clean := filepath.Clean(rel)
	if clean == "." || clean == "" {
		return "", ErrInvalidPath
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidPath
	}
	return filepath.Join(Root(), clean), nil
}
