package registry

import (
	"errors"
	"fmt"
)

// ErrNoSatisfactoryVersion matches NoSatisfactoryVersionError with errors.Is.
var ErrNoSatisfactoryVersion = errors.New("no satisfactory version")

// NoSatisfactoryVersionError reports that Install was asked to pick a version
// and no published version is compatible with the host engine.
type NoSatisfactoryVersionError struct {
	Plugin string
}

func (e *NoSatisfactoryVersionError) Error() string {
	return fmt.Sprintf("found no satisfactory version for plugin %q", e.Plugin)
}

// Is makes errors.Is(err, ErrNoSatisfactoryVersion) hold.
func (e *NoSatisfactoryVersionError) Is(target error) bool {
	return target == ErrNoSatisfactoryVersion
}
