package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/bookpm/bookpm/internal/plugin"
)

// candidate is one published version considered during resolution.
type candidate struct {
	tag     string
	version *semver.Version
	decl    Declaration
}

// Resolve returns the newest published version of a plugin whose declared
// engine range the host satisfies. ok is false when no version qualifies;
// that is a normal outcome, not an error. Errors report a registry that
// could not be loaded or queried.
func (r *Registry) Resolve(ctx context.Context, name string) (version string, ok bool, err error) {
	if err := r.guard.ensure(ctx); err != nil {
		return "", false, fmt.Errorf("loading registry: %w", err)
	}

	pkg := plugin.PackageName(name)
	versions, err := r.querier.QueryVersions(ctx, pkg)
	if err != nil {
		return "", false, fmt.Errorf("querying versions of %s: %w", pkg, err)
	}

	best := r.pickNewest(pkg, versions)
	if best == nil {
		r.log.Debug("no compatible version", zap.String("package", pkg), zap.Int("published", len(versions)))
		return "", false, nil
	}

	r.log.Debug("resolved version", zap.String("package", pkg), zap.String("version", best.tag))
	return best.tag, true, nil
}

// pickNewest filters versions down to compatible candidates and returns the
// greatest, or nil.
func (r *Registry) pickNewest(pkg string, versions map[string]Declaration) *candidate {
	var best *candidate
	for tag, decl := range versions {
		if decl.Compatibility == "" {
			continue
		}
		v, err := semver.NewVersion(tag)
		if err != nil {
			r.log.Debug("skipping unparsable version", zap.String("package", pkg), zap.String("version", tag))
			continue
		}
		if !r.compatible(decl.Compatibility) {
			continue
		}

		c := &candidate{tag: tag, version: v, decl: decl}
		if best == nil || compareCandidates(c, best) > 0 {
			best = c
		}
	}
	return best
}

// compareCandidates orders by semver precedence. Distinct tags of equal
// precedence ("1.0.0+a" and "1.0.0+b") fall back to string order so that the
// order is total and map iteration order cannot change the result.
func compareCandidates(a, b *candidate) int {
	if c := a.version.Compare(b.version); c != 0 {
		return c
	}
	return strings.Compare(a.tag, b.tag)
}
