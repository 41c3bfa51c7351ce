// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults cover a missing or empty file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	EngineName      string `yaml:"engine_name"`
	DefaultRegistry string `yaml:"default_registry"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:         "bookpm",
			DisplayName:     "bookpm",
			Description:     "Plugin manager for book projects",
			HomeDir:         ".bookpm",
			EnvPrefix:       "BOOKPM",
			EngineName:      "gitbook",
			DefaultRegistry: "https://registry.npmjs.org/",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "bookpm").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".bookpm").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "BOOKPM").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// EngineName returns the key plugins use under "engines" in package.json to
// declare which host engine versions they support (e.g., "gitbook").
func EngineName() string { load(); return defaults.EngineName }

// DefaultRegistry returns the registry URL used when neither the config nor
// npm itself names one.
func DefaultRegistry() string { load(); return defaults.DefaultRegistry }

// UserAgent returns the User-Agent header sent to the registry.
func UserAgent(version string) string {
	load()
	return defaults.CLIName + "/" + version
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "BOOKPM_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
