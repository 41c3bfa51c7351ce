package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bookpm/bookpm/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by bookpm.
const (
	KeyRegistry      = "registry"
	KeyEngineVersion = "engine_version"
	KeyDefaultsDir   = "defaults_dir"
)

// DefaultEngineVersion is the host engine version assumed when none is set.
const DefaultEngineVersion = "3.2.3"

// Dir returns the path to the config directory (~/.bookpm/), or the value
// of BOOKPM_HOME when set.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.bookpm/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyEngineVersion, DefaultEngineVersion)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// RegistryURL returns the configured registry override, or "" to let npm
// decide.
func RegistryURL() string {
	return Get(KeyRegistry)
}

// EngineVersion returns the host engine version plugins are matched against.
func EngineVersion() string {
	if v := Get(KeyEngineVersion); v != "" {
		return v
	}
	return DefaultEngineVersion
}

// DefaultsDir returns the bundled plugins directory. Without a configured
// value it is ../plugins next to the executable, when that exists.
func DefaultsDir() string {
	if dir := Get(KeyDefaultsDir); dir != "" {
		return dir
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return bundledDir(filepath.Dir(exe))
}

func bundledDir(binDir string) string {
	dir := filepath.Join(binDir, "..", "plugins")
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}
	return filepath.Clean(dir)
}
