package registry

import (
	"context"

	"go.uber.org/zap"

	"github.com/bookpm/bookpm/internal/plugin"
)

// Install installs a plugin into the project's root. An empty version means
// "resolve the newest compatible one"; when none exists Install returns a
// *NoSatisfactoryVersionError and the installer is not run. Installer
// failures are returned as they are, so the caller can decide whether a
// retry makes sense.
//
// Install does not check whether the plugin is already present; installing
// the same version twice reinstalls it.
func (r *Registry) Install(ctx context.Context, project Project, name, version string) error {
	log := project.Log()
	log.Info("installing plugin %q", name)

	if version == "" {
		log.Info("no version specified, resolving plugin %q", name)
		resolved, ok, err := r.Resolve(ctx, name)
		if err != nil {
			return err
		}
		if !ok {
			return &NoSatisfactoryVersionError{Plugin: name}
		}
		version = resolved
	}

	pkg := plugin.PackageName(name)
	log.Info("install plugin %q from npm (%s) with version %s", name, pkg, version)

	opts := InstallOptions{
		Quiet:   true,
		Prefix:  project.Root(),
		Preload: true,
	}
	r.log.Debug("running installer",
		zap.String("package", pkg),
		zap.String("version", version),
		zap.String("target", project.Root()))

	if err := r.installer.InstallPackage(ctx, pkg, version, project.Root(), opts); err != nil {
		return err
	}

	log.OK("plugin %q installed with success", name)
	return nil
}
