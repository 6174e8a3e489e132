package dirindex

import (
	"bufio"
	"bytes"
	"context"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/create-new/internal/logging"
	"github.com/firefly-engineering/create-new/internal/system"
)

// GitignoreFile is the ignore file read at the top of each root.
const GitignoreFile = ".gitignore"

// Rules are the exclusion settings of one root.
type Rules struct {
	// Exclude holds doublestar globs matched against relative folder paths.
	Exclude []string
	// RespectGitignore adds the entries of the root's .gitignore to Exclude.
	RespectGitignore bool
}

// RulesFunc returns the rules for a root.
type RulesFunc func(root string) (Rules, error)

// Index memoizes folder listings per root. It is safe for concurrent use.
type Index struct {
	fs    system.FileSystem
	rules RulesFunc

	mu    sync.Mutex
	roots map[string]*listing
}

type listing struct {
	done    chan struct{}
	folders []string
	err     error
}

// New creates an Index reading through fsys. A nil rules func excludes nothing.
func New(fsys system.FileSystem, rules RulesFunc) *Index {
	if rules == nil {
		rules = func(string) (Rules, error) { return Rules{}, nil }
	}
	return &Index{
		fs:    fsys,
		rules: rules,
		roots: make(map[string]*listing),
	}
}

// ListFolders returns every non-excluded folder under root, sorted.
// The first call for a root walks it; later calls reuse the result.
func (x *Index) ListFolders(ctx context.Context, root string) ([]string, error) {
	x.mu.Lock()
	l, ok := x.roots[root]
	if !ok {
		l = &listing{done: make(chan struct{})}
		x.roots[root] = l
	}
	x.mu.Unlock()

	if !ok {
		l.folders, l.err = x.walk(ctx, root)
		if l.err != nil {
			// Forget failures so the next call retries.
			x.mu.Lock()
			delete(x.roots, root)
			x.mu.Unlock()
		}
		close(l.done)
	}

	select {
	case <-l.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if l.err != nil {
		return nil, l.err
	}
	return append([]string(nil), l.folders...), nil
}

// MatchFolders returns the folders of root matching pattern, compared
// case-insensitively, in ListFolders order.
func (x *Index) MatchFolders(ctx context.Context, root, pattern string) ([]string, error) {
	folders, err := x.ListFolders(ctx, root)
	if err != nil {
		return nil, err
	}

	pattern = strings.ToLower(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, nil
	}

	var matches []string
	for _, folder := range folders {
		ok, err := doublestar.Match(pattern, strings.ToLower(folder))
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, folder)
		}
	}
	return matches, nil
}

// Invalidate drops the memoized listing of root.
func (x *Index) Invalidate(root string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.roots, root)
}

func (x *Index) walk(ctx context.Context, root string) ([]string, error) {
	rules, err := x.rules(root)
	if err != nil {
		return nil, err
	}

	exclude := append([]string(nil), rules.Exclude...)
	if rules.RespectGitignore {
		if data, err := x.fs.ReadFile(filepath.Join(root, GitignoreFile)); err == nil {
			exclude = append(exclude, GitignoreGlobs(data)...)
		}
	}

	var folders []string
	var visit func(rel string) error
	visit = func(rel string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := x.fs.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			if rel == "" {
				return err
			}
			logging.Debug("skipping unreadable folder", "root", root, "folder", rel, "error", err)
			return nil
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			child := path.Join(rel, entry.Name())
			if excluded(exclude, child) {
				continue
			}
			folders = append(folders, child)
			if err := visit(child); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(""); err != nil {
		return nil, err
	}

	sort.Strings(folders)
	logging.Debug("indexed workspace root", "root", root, "folders", len(folders), "exclude", len(exclude))
	return folders, nil
}

func excluded(globs []string, folder string) bool {
	for _, glob := range globs {
		if ok, _ := doublestar.Match(glob, folder); ok {
			return true
		}
	}
	return false
}

// GitignoreGlobs converts .gitignore entries to exclude globs. Entries
// anchored with a leading "/" match from the root, others at any depth.
// Blank lines, comments and negations are skipped.
func GitignoreGlobs(data []byte) []string {
	var globs []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		entry := strings.TrimRight(scanner.Text(), " \r")
		if entry == "" || strings.HasPrefix(entry, "#") || strings.HasPrefix(entry, "!") {
			continue
		}
		entry = strings.TrimSuffix(entry, "/")
		if entry == "" {
			continue
		}
		if strings.HasPrefix(entry, "/") {
			globs = append(globs, entry[1:])
		} else {
			globs = append(globs, "**/"+entry)
		}
	}
	return globs
}

// EscapeGlob quotes the glob metacharacters of s.
func EscapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '*', '?', '[', ']', '{', '}':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Abs returns the absolute path of folder inside root. The result never
// escapes root, even when folder contains ".." or symlinks.
func Abs(root, folder string) (string, error) {
	if folder == "" {
		return root, nil
	}
	return securejoin.SecureJoin(root, filepath.FromSlash(folder))
}
