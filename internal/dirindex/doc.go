// Package dirindex lists the folders of a workspace root.
//
// The index walks a root once, on first use, and keeps the sorted relative
// folder paths for the lifetime of the Index. Folders matching an exclude
// glob, or an entry of the root's .gitignore, are skipped along with
// everything below them.
//
//	idx := dirindex.New(fsys, rules)
//	folders, err := idx.ListFolders(ctx, "/home/me/project")
//	matches, err := idx.MatchFolders(ctx, "/home/me/project", "src/a*")
//
// Paths returned by the index are POSIX-style and relative to the root,
// without leading or trailing separators. MatchFolders matches its glob
// case-insensitively; use EscapeGlob to embed user input in a pattern.
package dirindex
