// Package workspace models the roots a picker session creates paths in.
//
// Labels are the "/"-prefixed names shown to the user. With a single root a
// folder is labelled by its path relative to the root ("/src/api"); with
// several roots the root's basename comes first ("/backend/src/api").
package workspace

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/firefly-engineering/create-new/internal/dirindex"
	"github.com/firefly-engineering/create-new/internal/errors"
)

// FolderIndex lists and matches the folders of a root.
type FolderIndex interface {
	ListFolders(ctx context.Context, root string) ([]string, error)
	MatchFolders(ctx context.Context, root, pattern string) ([]string, error)
}

// Root is one workspace root.
type Root struct {
	Name string
	Path string
}

// Folder is a labelled absolute folder.
type Folder struct {
	Label string
	Path  string
}

// Workspace is an ordered set of roots backed by a folder index.
type Workspace struct {
	Roots []Root
	index FolderIndex
}

// New creates a Workspace for the given absolute root paths, in order.
func New(paths []string, index FolderIndex) *Workspace {
	roots := make([]Root, len(paths))
	for i, p := range paths {
		p = filepath.Clean(p)
		roots[i] = Root{Name: filepath.Base(p), Path: p}
	}
	return &Workspace{Roots: roots, index: index}
}

// Multi reports whether the workspace has more than one root.
func (w *Workspace) Multi() bool {
	return len(w.Roots) > 1
}

// RootLabel returns the label of a root shortcut.
func (w *Workspace) RootLabel(r Root) string {
	if w.Multi() {
		return "/" + r.Name
	}
	return "/"
}

// Label returns the label of a folder relative to root r.
func (w *Workspace) Label(r Root, folder string) string {
	if w.Multi() {
		return path.Join("/", r.Name, folder)
	}
	return path.Join("/", folder)
}

// Folders returns the labelled folders of r from the index.
func (w *Workspace) Folders(ctx context.Context, r Root) ([]Folder, error) {
	rels, err := w.index.ListFolders(ctx, r.Path)
	if err != nil {
		return nil, err
	}

	folders := make([]Folder, 0, len(rels))
	for _, rel := range rels {
		abs, err := dirindex.Abs(r.Path, rel)
		if err != nil {
			return nil, err
		}
		folders = append(folders, Folder{Label: w.Label(r, rel), Path: abs})
	}
	return folders, nil
}

// MatchingRoot returns the root a rooted request points into: the only root
// of a single-root workspace, otherwise the root whose label is the first
// segment of the request.
func (w *Workspace) MatchingRoot(request string) (Root, bool) {
	switch len(w.Roots) {
	case 0:
		return Root{}, false
	case 1:
		return w.Roots[0], true
	}

	first := "/" + strings.SplitN(strings.TrimPrefix(request, "/"), "/", 2)[0]
	for _, r := range w.Roots {
		if w.RootLabel(r) == first {
			return r, true
		}
	}
	return Root{}, false
}

// Resolve turns a rooted request into an absolute path. A trailing "/" is
// kept so that folders stay recognizable.
func (w *Workspace) Resolve(request string) (string, error) {
	r, ok := w.MatchingRoot(request)
	if !ok {
		return "", errors.NoMatchingRoot(request)
	}

	base := r.Path
	if w.Multi() {
		base = filepath.Dir(r.Path)
	}
	return Join(base, request), nil
}

// Complete returns the labels of the folders a request can complete to.
// Requests must start with "/". In a multi-root workspace a request still
// naming its root ("/", "/ba") completes to root labels.
func (w *Workspace) Complete(ctx context.Context, request string) ([]string, error) {
	if w.Multi() && isRootRequest(request) {
		var labels []string
		prefix := strings.ToLower(request)
		for _, r := range w.Roots {
			label := w.RootLabel(r)
			if strings.HasPrefix(strings.ToLower(label), prefix) {
				labels = append(labels, label)
			}
		}
		return labels, nil
	}

	rel := strings.TrimPrefix(request, "/")
	roots := w.Roots
	if w.Multi() {
		r, ok := w.MatchingRoot(request)
		if !ok {
			return nil, nil
		}
		roots = []Root{r}
		rel = rel[strings.Index(rel, "/")+1:]
	}

	var labels []string
	for _, r := range roots {
		matches, err := w.index.MatchFolders(ctx, r.Path, dirindex.EscapeGlob(rel)+"*")
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			labels = append(labels, w.Label(r, m))
		}
	}
	return labels, nil
}

func isRootRequest(request string) bool {
	if request == "/" {
		return true
	}
	return path.Dir(request) == "/" && !strings.HasSuffix(request, "/")
}

// ActiveFolder returns the shortcut for the folder of the active file, if
// that folder lies inside a root and is not the root itself.
func (w *Workspace) ActiveFolder(file string) (Folder, bool) {
	dir := filepath.Dir(filepath.Clean(file))
	r, rel, ok := w.containing(dir)
	if !ok || rel == "." {
		return Folder{}, false
	}
	return Folder{Label: w.relativeLabel(r, rel), Path: dir}, true
}

// CurrentFolder returns the folder of file labelled the way the menu labels
// it. Folders outside every root are labelled like a root.
func (w *Workspace) CurrentFolder(file string) Folder {
	dir := filepath.Dir(filepath.Clean(file))
	r, rel, ok := w.containing(dir)
	switch {
	case !ok && w.Multi():
		return Folder{Label: "/" + filepath.Base(dir), Path: dir}
	case !ok:
		return Folder{Label: "/", Path: dir}
	case rel == ".":
		return Folder{Label: w.RootLabel(r), Path: dir}
	}
	return Folder{Label: w.relativeLabel(r, rel), Path: dir}
}

func (w *Workspace) relativeLabel(r Root, rel string) string {
	return w.Label(r, filepath.ToSlash(rel))
}

// containing returns the root holding dir and dir relative to it.
func (w *Workspace) containing(dir string) (Root, string, bool) {
	var best Root
	var bestRel string
	found := false
	for _, r := range w.Roots {
		rel, err := filepath.Rel(r.Path, dir)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		// Nested roots: the deepest one wins.
		if !found || len(r.Path) > len(best.Path) {
			best, bestRel, found = r, rel, true
		}
	}
	return best, bestRel, found
}

// Join appends a slash-separated request to base, keeping a trailing "/".
func Join(base, request string) string {
	joined := filepath.Join(base, filepath.FromSlash(request))
	if strings.HasSuffix(request, "/") && !strings.HasSuffix(joined, string(filepath.Separator)) {
		joined += string(filepath.Separator)
	}
	return joined
}
