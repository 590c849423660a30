// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SQLitePath extracts the file path from a SQLite DSN such as
// "data/lists.db" or "file:data/lists.db?_pragma=busy_timeout(5000)". It
// returns "" for in-memory databases.
func SQLitePath(dsn string) string {
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if p == "" || p == ":memory:" || strings.HasPrefix(dsn, "file::memory:") {
		return ""
	}
	return p
}

// EnsureParentDir creates the directory that will hold path and returns it.
// A path in the working directory needs no directory and returns ".".
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)
	if dir == "." {
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
