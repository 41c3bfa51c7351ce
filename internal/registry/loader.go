package registry

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// loadGuard runs a Loader once. Callers that arrive while the first load is
// in flight wait for it and share its outcome. A failed load is not
// remembered, so a later call tries again.
type loadGuard struct {
	loader  Loader
	group   singleflight.Group
	done    atomic.Bool
	// waiting counts callers inside group.Do, the loader's own call included.
	waiting atomic.Int32
}

func (g *loadGuard) ensure(ctx context.Context) error {
	if g.loader == nil || g.done.Load() {
		return nil
	}
	g.waiting.Add(1)
	defer g.waiting.Add(-1)
	_, err, _ := g.group.Do("load", func() (any, error) {
		if g.done.Load() {
			return nil, nil
		}
		if err := g.loader.Load(ctx); err != nil {
			return nil, err
		}
		g.done.Store(true)
		return nil, nil
	})
	return err
}
