// Package pkgtree reads the dependency tree installed under a directory. It
// parses each package.json it meets, validates it against an embedded JSON
// schema, and follows declared dependencies through node_modules the way
// Node resolves them. The result is an arena of nodes carrying each
// package's name, version, real path, and depth.
package pkgtree
