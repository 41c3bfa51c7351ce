package registry

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bookpm/bookpm/internal/pkgtree"
	"github.com/bookpm/bookpm/internal/plugin"
)

// ListInstalledAt lists the plugins installed in the tree rooted at dir, in
// depth-first discovery order. The root is always descended. Below it, only
// plugin packages are recorded and descended; any other package is pruned
// together with everything beneath it. When a plugin name occurs more than
// once, the first occurrence is kept.
//
// A tree that cannot be read fails the whole listing.
func (r *Registry) ListInstalledAt(dir string) ([]InstalledPlugin, error) {
	tree, err := r.inspector.Inspect(dir)
	if err != nil {
		return nil, fmt.Errorf("listing plugins in %s: %w", dir, err)
	}

	var found []InstalledPlugin
	collectPlugins(tree, tree.Root(), true, &found)
	r.log.Debug("scanned plugin tree",
		zap.String("dir", dir),
		zap.Int("packages", tree.Len()),
		zap.Int("plugins", len(found)))

	return dedupeByName(found), nil
}

// ListForProject lists the plugins available to a project: those installed
// in the project root and those bundled in the defaults directory. A plugin
// installed in the project shadows a bundled plugin of the same name.
func (r *Registry) ListForProject(ctx context.Context, project Project) ([]InstalledPlugin, error) {
	var projectPlugins, defaultPlugins []InstalledPlugin

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projectPlugins, err = r.ListInstalledAt(project.Root())
		return err
	})
	if r.defaultsDir != "" {
		g.Go(func() error {
			var err error
			defaultPlugins, err = r.ListInstalledAt(r.defaultsDir)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Project entries come first so dedupeByName keeps them.
	all := make([]InstalledPlugin, 0, len(projectPlugins)+len(defaultPlugins))
	all = append(all, projectPlugins...)
	all = append(all, defaultPlugins...)
	return dedupeByName(all), nil
}

func collectPlugins(tree *pkgtree.Tree, idx int, isRoot bool, out *[]InstalledPlugin) {
	node := tree.Node(idx)

	if plugin.IsPluginPackage(node.Name) {
		*out = append(*out, InstalledPlugin{
			Name:    plugin.Name(node.Name),
			Version: node.Version,
			Path:    node.RealPath,
			Depth:   node.Depth,
		})
	} else if !isRoot {
		return
	}

	for _, child := range node.Children {
		collectPlugins(tree, child, false, out)
	}
}

// dedupeByName keeps the first entry for each plugin name.
func dedupeByName(plugins []InstalledPlugin) []InstalledPlugin {
	seen := make(map[string]bool, len(plugins))
	result := make([]InstalledPlugin, 0, len(plugins))
	for _, p := range plugins {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		result = append(result, p)
	}
	return result
}
