// Package config manages user-level settings stored at ~/.bookpm/config.yaml.
// It reads the registry override, the host engine version, and the bundled
// plugins directory, with BOOKPM_* environment variables taking precedence.
package config
