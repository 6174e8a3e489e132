package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Workspace is a temporary tree of workspace roots.
type Workspace struct {
	T *testing.T
	// Dir holds every root as a direct child.
	Dir   string
	Roots []string
}

// NewWorkspace creates one root named name under a temp dir. Entries are
// slash-separated paths relative to the root; a trailing "/" makes a folder,
// anything else an empty file.
func NewWorkspace(t *testing.T, name string, entries ...string) *Workspace {
	t.Helper()

	ws := &Workspace{T: t, Dir: t.TempDir()}
	ws.AddRoot(name, entries...)
	return ws
}

// AddRoot creates another root next to the existing ones.
func (w *Workspace) AddRoot(name string, entries ...string) string {
	w.T.Helper()

	root := filepath.Join(w.Dir, name)
	if err := os.MkdirAll(root, 0755); err != nil {
		w.T.Fatalf("Failed to create root %s: %v", name, err)
	}
	w.Roots = append(w.Roots, root)
	w.Add(root, entries...)
	return root
}

// Root returns the first root.
func (w *Workspace) Root() string {
	return w.Roots[0]
}

// Add creates entries below root.
func (w *Workspace) Add(root string, entries ...string) {
	w.T.Helper()

	for _, entry := range entries {
		p := filepath.Join(root, filepath.FromSlash(entry))
		if strings.HasSuffix(entry, "/") {
			if err := os.MkdirAll(p, 0755); err != nil {
				w.T.Fatalf("Failed to create %s: %v", entry, err)
			}
			continue
		}
		WriteFile(w.T, p, "")
	}
}

// Path returns the absolute path of a slash-separated path below the first root.
func (w *Workspace) Path(rel string) string {
	return filepath.Join(w.Root(), filepath.FromSlash(rel))
}

// Exists reports whether the slash-separated path below the first root exists.
func (w *Workspace) Exists(rel string) bool {
	_, err := os.Stat(w.Path(rel))
	return err == nil
}

// IsDir reports whether the slash-separated path below the first root is a folder.
func (w *Workspace) IsDir(rel string) bool {
	info, err := os.Stat(w.Path(rel))
	return err == nil && info.IsDir()
}
