// Package app provides the application context for create-new.
// It allows dependency injection for testing.
package app

import (
	"github.com/firefly-engineering/create-new/internal/audit"
	"github.com/firefly-engineering/create-new/internal/config"
	"github.com/firefly-engineering/create-new/internal/creator"
	"github.com/firefly-engineering/create-new/internal/dirindex"
	"github.com/firefly-engineering/create-new/internal/errors"
	"github.com/firefly-engineering/create-new/internal/logging"
	"github.com/firefly-engineering/create-new/internal/system"
	"github.com/firefly-engineering/create-new/internal/workspace"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Config is the loaded user configuration
	Config *config.Config

	// FS is the file system folders are listed from and paths created in
	FS system.FileSystem

	// Executor runs the editor
	Executor system.CommandExecutor

	// Index memoizes the folders of each workspace root
	Index *dirindex.Index

	// History records the created paths
	History *audit.Logger
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithConfig sets a custom configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithFS sets a custom file system
func WithFS(fsys system.FileSystem) Option {
	return func(a *App) {
		a.FS = fsys
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// New creates a new App with the given options.
// Unset dependencies fall back to the defaults.
func New(opts ...Option) *App {
	app := &App{
		Paths:    config.DefaultPaths(),
		Config:   config.Default(),
		FS:       system.DefaultFS(),
		Executor: system.DefaultExecutor(),
	}

	for _, opt := range opts {
		opt(app)
	}

	app.Index = dirindex.New(app.FS, app.rules)
	app.History = audit.NewLogger(app.Paths.StateDir)
	return app
}

// LoadConfig reads the user configuration, or the file at path, into the app.
func (a *App) LoadConfig(path string) error {
	cfg, err := config.Load(a.Paths, path)
	if err != nil {
		return errors.ConfigError("failed to load configuration", err)
	}
	a.Config = cfg
	return nil
}

// rules returns the exclusion rules of a root, honoring its own config file.
func (a *App) rules(root string) (dirindex.Rules, error) {
	cfg, err := a.Config.ForRoot(root)
	if err != nil {
		logging.Warn("ignoring invalid root configuration", "root", root, "error", err)
		cfg = a.Config
	}
	return dirindex.Rules{
		Exclude:          cfg.ExcludeGlobs(),
		RespectGitignore: cfg.RespectGitignore,
	}, nil
}

// Workspace returns the workspace made of the existing folders among roots.
// Missing roots are reported and dropped.
func (a *App) Workspace(roots []string) *workspace.Workspace {
	var existing []string
	for _, root := range roots {
		if !a.FS.IsDir(root) {
			logging.UserWarning("Workspace root %s is not a folder, skipping", root)
			continue
		}
		existing = append(existing, root)
	}
	return workspace.New(existing, a.Index)
}

// Creator returns the creator writing through the app's file system.
func (a *App) Creator() *creator.Creator {
	return creator.New(a.FS)
}

// Editor returns the editor configured to open created files.
func (a *App) Editor() *creator.Editor {
	return creator.NewEditor(a.Config.EditorCommand(), a.Executor)
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
