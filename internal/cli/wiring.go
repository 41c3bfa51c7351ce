package cli

import (
	"fmt"

	"github.com/bookpm/bookpm/internal/branding"
	"github.com/bookpm/bookpm/internal/config"
	"github.com/bookpm/bookpm/internal/engine"
	"github.com/bookpm/bookpm/internal/npm"
	"github.com/bookpm/bookpm/internal/pkgtree"
	"github.com/bookpm/bookpm/internal/registry"
	"github.com/spf13/cobra"
)

// buildRegistry wires a Registry from the loaded configuration.
func buildRegistry(cmd *cobra.Command) (*registry.Registry, error) {
	host, err := engine.New(config.EngineVersion())
	if err != nil {
		return nil, fmt.Errorf("configured %s: %w", config.KeyEngineVersion, err)
	}

	npmLog := logger.Named("npm")
	client := npm.NewClient(npm.ClientOptions{
		RegistryURL: config.RegistryURL(),
		UserAgent:   branding.UserAgent(buildVersion),
		Logger:      npmLog,
	})

	return registry.New(registry.Options{
		Loader:  client,
		Querier: client,
		Installer: &npm.Installer{
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
			Logger: npmLog,
		},
		Inspector:   pkgtree.NewReader(),
		Compatible:  host.Satisfies,
		DefaultsDir: config.DefaultsDir(),
		Logger:      logger.Named("registry"),
	}), nil
}
