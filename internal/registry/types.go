package registry

import (
	"context"

	"github.com/bookpm/bookpm/internal/pkgtree"
)

// Declaration is the compatibility metadata one published version carries.
type Declaration struct {
	// Compatibility is the engine range the version declares support for.
	// Empty when the version declares none; such versions are never chosen.
	Compatibility string
}

// InstalledPlugin is a plugin found in an installed dependency tree.
type InstalledPlugin struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"path"`
	Depth   int    `json:"depth"`
}

// Logger is a project's progress sink.
type Logger interface {
	Info(format string, args ...any)
	OK(format string, args ...any)
}

// Project is the book a plugin is installed into.
type Project interface {
	Root() string
	Log() Logger
}

// InstallOptions configures one installer run.
type InstallOptions struct {
	// Quiet suppresses the package manager's own output.
	Quiet bool
	// Prefix is the directory whose node_modules receives the package.
	Prefix string
	// Preload asks the installer to bring the package manager up before
	// installing, so setup failures surface before anything is written.
	Preload bool
}

// Loader prepares the registry client. It is called at most once per
// Registry unless it fails.
type Loader interface {
	Load(ctx context.Context) error
}

// VersionQuerier lists every published version of a package together with
// its compatibility declaration.
type VersionQuerier interface {
	QueryVersions(ctx context.Context, packageName string) (map[string]Declaration, error)
}

// PackageInstaller installs one package version into a directory.
type PackageInstaller interface {
	InstallPackage(ctx context.Context, name, version, targetDir string, opts InstallOptions) error
}

// TreeInspector reads the dependency tree installed under a directory.
type TreeInspector interface {
	Inspect(dir string) (*pkgtree.Tree, error)
}

// CompatibilityFunc reports whether the host engine satisfies a range.
type CompatibilityFunc func(rng string) bool
