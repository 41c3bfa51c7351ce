package registry

import (
	"go.uber.org/zap"
)

// Options wires a Registry to its collaborators.
type Options struct {
	Loader     Loader
	Querier    VersionQuerier
	Installer  PackageInstaller
	Inspector  TreeInspector
	Compatible CompatibilityFunc
	// DefaultsDir holds the plugins bundled with the host. Empty disables
	// the defaults scan in ListForProject.
	DefaultsDir string
	Logger      *zap.Logger
}

// Registry resolves, installs, and lists plugins.
type Registry struct {
	guard       loadGuard
	querier     VersionQuerier
	installer   PackageInstaller
	inspector   TreeInspector
	compatible  CompatibilityFunc
	defaultsDir string
	log         *zap.Logger
}

// New returns a Registry using the given collaborators.
func New(opts Options) *Registry {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	compatible := opts.Compatible
	if compatible == nil {
		compatible = func(string) bool { return false }
	}
	return &Registry{
		guard:       loadGuard{loader: opts.Loader},
		querier:     opts.Querier,
		installer:   opts.Installer,
		inspector:   opts.Inspector,
		compatible:  compatible,
		defaultsDir: opts.DefaultsDir,
		log:         log,
	}
}

// DefaultsDir returns the bundled defaults directory, or "" when unset.
func (r *Registry) DefaultsDir() string {
	return r.defaultsDir
}
