// Package plugin maps between public plugin names ("highlight") and the
// package names they are published under on npm ("gitbook-plugin-highlight").
package plugin

import "strings"

// Prefix marks a package as belonging to the plugin namespace.
const Prefix = "gitbook-plugin-"

// PackageName returns the registry package name for a plugin. Names that
// already carry the prefix are returned unchanged.
func PackageName(name string) string {
	if strings.HasPrefix(name, Prefix) {
		return name
	}
	return Prefix + name
}

// Name returns the plugin name for a package name. The first occurrence of
// the prefix is removed wherever it appears in the string, so
// "x-gitbook-plugin-y" becomes "x-y".
func Name(packageName string) string {
	return strings.Replace(packageName, Prefix, "", 1)
}

// IsPluginPackage reports whether name is a package in the plugin namespace.
func IsPluginPackage(name string) bool {
	return name != "" && strings.HasPrefix(name, Prefix)
}
