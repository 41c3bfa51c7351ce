// Package cli defines the Cobra command tree for the bookpm CLI. Each file
// registers one top-level command with the root command. Commands delegate
// to the registry for resolving, installing, and listing plugins and only
// handle flags and output.
package cli
