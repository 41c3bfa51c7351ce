package pkgtree

// Node is one installed package in a Tree.
type Node struct {
	Name     string
	Version  string
	RealPath string // directory with symlinks resolved
	Depth    int    // 0 for the root
	Children []int  // indexes into Tree.Nodes, in discovery order
}

// Tree is an arena of installed packages. Nodes[0] is the root directory that
// was inspected. A package reachable from several parents appears once per
// parent, so the same name can occur at several depths.
type Tree struct {
	Nodes []Node
}

// Root returns the index of the root node.
func (t *Tree) Root() int { return 0 }

// Node returns the node at index i.
func (t *Tree) Node(i int) *Node { return &t.Nodes[i] }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.Nodes) }

// add appends n as a child of parent and returns its index. A negative parent
// adds a root.
func (t *Tree) add(parent int, n Node) int {
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, n)
	if parent >= 0 {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	}
	return idx
}

// Builder assembles a Tree by hand. Tests and callers that already know the
// layout of a dependency tree use it instead of reading one from disk.
type Builder struct {
	tree Tree
}

// NewBuilder starts a tree whose root is the given package.
func NewBuilder(name, version, path string) *Builder {
	b := &Builder{}
	b.tree.add(-1, Node{Name: name, Version: version, RealPath: path})
	return b
}

// Add appends a package below parent and returns its index. Depth is derived
// from the parent.
func (b *Builder) Add(parent int, name, version, path string) int {
	depth := b.tree.Nodes[parent].Depth + 1
	return b.tree.add(parent, Node{Name: name, Version: version, RealPath: path, Depth: depth})
}

// Tree returns the assembled tree.
func (b *Builder) Tree() *Tree {
	return &b.tree
}
