// Package registry resolves, installs, and lists book plugins.
//
// Resolve picks the newest published version whose engine range the host
// accepts. Install resolves when no version is given and hands the package
// to an installer. ListInstalledAt and ListForProject walk installed
// dependency trees and report the plugins found, with project installs
// shadowing bundled defaults of the same name.
//
// The only shared state is the registry loader guard, which runs the loader
// once per Registry. Two concurrent Install calls for the same plugin into
// the same project are not coordinated; callers that need that must
// serialize on the (project, plugin) pair. No call applies its own timeout;
// cancellation comes from the caller's context.
package registry
