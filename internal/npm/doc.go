// Package npm talks to the npm ecosystem on behalf of the plugin registry.
// Client reads published versions and their engine ranges from an npm
// registry over HTTP. Installer drives the npm executable to install a
// package version into a book.
package npm
