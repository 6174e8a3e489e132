package system

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MockFS implements FileSystem for testing.
type MockFS struct {
	mu    sync.RWMutex
	files map[string]*mockFile
	dirs  map[string]bool

	// Error injection
	ReadFileErr error
	StatErr     error
	MkdirAllErr error
	TouchErr    error
	ReadDirErr  error

	// Touched records every path passed to Touch, in order.
	Touched []string
}

type mockFile struct {
	data []byte
	mode fs.FileMode
}

// NewMockFS creates a new MockFS with an empty filesystem.
func NewMockFS() *MockFS {
	return &MockFS{
		files: make(map[string]*mockFile),
		dirs:  map[string]bool{"/": true},
	}
}

// AddFile adds a file and its parent directories to the mock filesystem.
func (m *MockFS) AddFile(path string, data []byte, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, mode: mode}
	m.addParents(filepath.Dir(path))
}

// AddDir adds a directory and its parents to the mock filesystem.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addParents(path)
}

func (m *MockFS) addParents(dir string) {
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

// GetFile returns the contents of a file in the mock filesystem.
func (m *MockFS) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, false
	}
	return f.data, true
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return f.data, nil
}

func (m *MockFS) Stat(path string) (fs.FileInfo, error) {
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if f, ok := m.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(f.data)), mode: f.mode}, nil
	}
	if _, ok := m.dirs[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), isDir: true, mode: fs.ModeDir | 0755}, nil
	}
	return nil, fs.ErrNotExist
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllErr != nil {
		return m.MkdirAllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; ok {
		return fs.ErrExist
	}
	m.addParents(path)
	return nil
}

// Touch fails with fs.ErrNotExist when the parent directory is missing,
// like the OS does.
func (m *MockFS) Touch(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Touched = append(m.Touched, path)
	if m.TouchErr != nil {
		return m.TouchErr
	}
	if !m.dirs[filepath.Dir(path)] {
		return fs.ErrNotExist
	}
	if m.dirs[path] {
		return fs.ErrExist
	}
	if _, ok := m.files[path]; !ok {
		m.files[path] = &mockFile{mode: perm}
	}
	return nil
}

func (m *MockFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, fileOk := m.files[path]
	return fileOk || m.dirs[path]
}

func (m *MockFS) IsDir(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[path]
}

// ReadDir returns the direct children of path sorted by name.
func (m *MockFS) ReadDir(path string) ([]fs.DirEntry, error) {
	if m.ReadDirErr != nil {
		return nil, m.ReadDirErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.dirs[path] {
		return nil, fs.ErrNotExist
	}

	entries := make(map[string]fs.DirEntry)
	for p, f := range m.files {
		if filepath.Dir(p) == path {
			name := filepath.Base(p)
			entries[name] = &mockDirEntry{name: name, mode: f.mode}
		}
	}
	for p := range m.dirs {
		if p != path && filepath.Dir(p) == path {
			name := filepath.Base(p)
			entries[name] = &mockDirEntry{name: name, isDir: true, mode: fs.ModeDir | 0755}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

// mockFileInfo implements fs.FileInfo for testing.
type mockFileInfo struct {
	name  string
	size  int64
	mode  fs.FileMode
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Now() }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry for testing.
type mockDirEntry struct {
	name  string
	mode  fs.FileMode
	isDir bool
}

func (m *mockDirEntry) Name() string      { return m.name }
func (m *mockDirEntry) IsDir() bool       { return m.isDir }
func (m *mockDirEntry) Type() fs.FileMode { return m.mode.Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) {
	return &mockFileInfo{name: m.name, mode: m.mode, isDir: m.isDir}, nil
}

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []MockCommand

	// InteractiveErr is returned by ExecuteInteractive if set.
	InteractiveErr error
}

// MockCommand records an executed command.
type MockCommand struct {
	Name string
	Args []string
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Commands: make([]MockCommand, 0),
	}
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args})
	return m.InteractiveErr
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// Reset clears all recorded commands.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = make([]MockCommand, 0)
}
