// Package creator creates picked paths and queues files for the editor.
package creator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/create-new/internal/logging"
	"github.com/firefly-engineering/create-new/internal/system"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// IsFolder reports whether path names a folder, i.e. ends with a separator.
func IsFolder(path string) bool {
	return strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator))
}

// Creator creates files and folders.
type Creator struct {
	fs system.FileSystem
}

// New creates a Creator writing through fsys.
func New(fsys system.FileSystem) *Creator {
	return &Creator{fs: fsys}
}

// CreatePath creates path with its missing parents. Paths ending with a
// separator become folders, others empty files. Existing paths are left
// alone.
func (c *Creator) CreatePath(path string) error {
	target := filepath.Clean(path)
	if c.fs.Exists(target) {
		logging.Debug("path already exists", "path", target)
		return nil
	}

	if IsFolder(path) {
		if err := c.fs.MkdirAll(target, dirPerm); err != nil {
			return fmt.Errorf("failed to create folder %s: %w", target, err)
		}
		logging.Debug("created folder", "path", target)
		return nil
	}

	if err := c.fs.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return fmt.Errorf("failed to create folder for %s: %w", target, err)
	}
	if err := c.fs.Touch(target, filePerm); err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}
	logging.Debug("created file", "path", target)
	return nil
}

// Editor collects files to open and opens them together in one editor
// invocation.
type Editor struct {
	command string
	exec    system.CommandExecutor
	files   []string
}

// NewEditor creates an Editor running command, a shell-style command line
// such as "code --wait".
func NewEditor(command string, exec system.CommandExecutor) *Editor {
	return &Editor{command: command, exec: exec}
}

// Open queues path. Folders are ignored.
func (e *Editor) Open(path string) error {
	if IsFolder(path) {
		return nil
	}
	for _, f := range e.files {
		if f == path {
			return nil
		}
	}
	e.files = append(e.files, path)
	return nil
}

// Files returns the queued files.
func (e *Editor) Files() []string {
	return append([]string(nil), e.files...)
}

// Launch opens the queued files. It does nothing when none are queued.
func (e *Editor) Launch(ctx context.Context) error {
	if len(e.files) == 0 {
		return nil
	}

	argv, err := shellquote.Split(e.command)
	if err != nil {
		return fmt.Errorf("invalid editor command %q: %w", e.command, err)
	}
	if len(argv) == 0 {
		return fmt.Errorf("empty editor command")
	}

	args := append(argv[1:], e.files...)
	logging.Debug("launching editor", "editor", argv[0], "args", args)
	if err := e.exec.ExecuteInteractive(ctx, argv[0], args...); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", argv[0], err)
	}
	return nil
}
