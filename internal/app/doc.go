// Package app provides the application context for create-new.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths    *config.Paths           // Configuration directory
//	    Config   *config.Config          // Loaded user configuration
//	    FS       system.FileSystem       // Listing and creation
//	    Executor system.CommandExecutor  // Editor launcher
//	    Index    *dirindex.Index         // Folder listings per root
//	    History  *audit.Logger           // Created paths, under Paths.StateDir
//	}
//
// The Index reads each root's exclusion rules from Config, merged with
// the root's own .create-new file.
//
// # Creating an App
//
//	// Production usage
//	a := app.New()
//	if err := a.LoadConfig(configPath); err != nil {
//	    return err
//	}
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithFS(system.NewMockFS()),
//	    app.WithExecutor(system.NewMockExecutor()),
//	)
//
// # Available Options
//
//	WithPaths(paths)      // Custom path configuration
//	WithConfig(config)    // Custom configuration
//	WithFS(fs)            // Custom file system
//	WithExecutor(exec)    // Custom command executor
package app
