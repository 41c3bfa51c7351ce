package pkgtree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxDepth bounds how far below the root the reader descends.
const DefaultMaxDepth = 4

const modulesDir = "node_modules"

// Reader reads installed dependency trees from disk.
type Reader struct {
	// MaxDepth is the deepest level read below the root. Packages at
	// MaxDepth are recorded but their own dependencies are not.
	MaxDepth int
}

// NewReader returns a Reader with the default depth limit.
func NewReader() *Reader {
	return &Reader{MaxDepth: DefaultMaxDepth}
}

// Inspect reads the tree rooted at dir. The root's package.json is optional;
// every package found below it must carry valid metadata with a name, or the
// whole read fails.
//
// A package's children are its declared dependencies in declaration order,
// resolved through node_modules directories from the package upward to the
// root, followed by any other packages in its own node_modules sorted by
// name. devDependencies are not followed and missing dependencies are
// skipped.
func (r *Reader) Inspect(dir string) (*Tree, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("reading package tree at %s: %w", dir, err)
	}

	meta, err := parseOptionalMetadata(filepath.Join(root, metadataFile))
	if err != nil {
		return nil, err
	}

	w := &walker{
		tree:     &Tree{},
		root:     root,
		maxDepth: r.MaxDepth,
		onPath:   map[string]bool{root: true},
	}
	idx := w.tree.add(-1, Node{Name: meta.Name, Version: meta.Version, RealPath: root})
	if err := w.expand(idx, meta); err != nil {
		return nil, err
	}
	return w.tree, nil
}

type walker struct {
	tree     *Tree
	root     string
	maxDepth int
	onPath   map[string]bool // real paths on the current ancestry chain
}

func (w *walker) expand(parent int, meta *Metadata) error {
	node := w.tree.Nodes[parent]
	if node.Depth >= w.maxDepth {
		return nil
	}

	dirs, err := w.childDirs(node.RealPath, meta)
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		real, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", dir, err)
		}
		if w.onPath[real] {
			continue
		}

		childMeta, err := ParseMetadata(filepath.Join(real, metadataFile))
		if err != nil {
			return err
		}
		if childMeta.Name == "" {
			return fmt.Errorf("package at %s has no name", real)
		}

		idx := w.tree.add(parent, Node{
			Name:     childMeta.Name,
			Version:  childMeta.Version,
			RealPath: real,
			Depth:    node.Depth + 1,
		})

		w.onPath[real] = true
		err = w.expand(idx, childMeta)
		delete(w.onPath, real)
		if err != nil {
			return err
		}
	}

	return nil
}

// childDirs returns the package directories below pkgDir in child order.
func (w *walker) childDirs(pkgDir string, meta *Metadata) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string

	for _, name := range meta.Dependencies {
		dir, ok := w.locate(pkgDir, name)
		if !ok || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	extra, err := listModules(filepath.Join(pkgDir, modulesDir))
	if err != nil {
		return nil, err
	}
	for _, dir := range extra {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	return dirs, nil
}

// locate finds dependency name for the package at pkgDir, checking
// node_modules in pkgDir and then in each ancestor up to the root.
func (w *walker) locate(pkgDir, name string) (string, bool) {
	for cur := pkgDir; ; cur = filepath.Dir(cur) {
		candidate := filepath.Join(cur, modulesDir, filepath.FromSlash(name))
		if isPackageDir(candidate) {
			return candidate, true
		}
		if cur == w.root || !within(cur, w.root) || filepath.Dir(cur) == cur {
			return "", false
		}
	}
}

// listModules lists the package directories directly inside a node_modules
// directory, expanding @scope directories. Entries are sorted by name.
func listModules(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var result []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		if strings.HasPrefix(name, "@") {
			scoped, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			for _, s := range scoped {
				p := filepath.Join(path, s.Name())
				if isPackageDir(p) {
					result = append(result, p)
				}
			}
			continue
		}

		if isPackageDir(path) {
			result = append(result, path)
		}
	}
	return result, nil
}

// isPackageDir reports whether dir is a directory holding a package.json.
// Symlinked packages count.
func isPackageDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, metadataFile))
	return err == nil && info.Mode().IsRegular()
}

func within(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}
