// Package engine answers whether a plugin's declared compatibility range
// admits the host engine version.
package engine

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Host is a host engine at a fixed version.
type Host struct {
	version *semver.Version
}

// New parses the host engine version. A leading "v" is tolerated.
func New(version string) (*Host, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing engine version %q: %w", version, err)
	}
	return &Host{version: v}, nil
}

// Version returns the host engine version string.
func (h *Host) Version() string {
	return h.version.String()
}

// Satisfies reports whether rng (an npm-style range such as ">=2.0.0" or
// "^3.0.0 || 4.x") admits the host version. Ranges that do not parse are
// never satisfied.
func (h *Host) Satisfies(rng string) bool {
	rng = strings.TrimSpace(rng)
	if rng == "" {
		return false
	}
	c, err := semver.NewConstraint(rng)
	if err != nil {
		return false
	}
	return c.Check(h.version)
}
