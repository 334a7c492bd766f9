// Package version reports the release of the gob8 tools.
package version

import (
	"fmt"
	"runtime/debug"
)

// Vendor names the publisher of the tools.
const Vendor = "hexaflex"

// Release is reported when the binary carries no module version.
const Release = "v1.0.0"

// Number returns the module version the binary was built from,
// or Release for local builds.
func Number() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return Release
	}
	return info.Main.Version
}

// String returns version information for the named tool.
func String(app string) string {
	return fmt.Sprintf("%s %s %s", Vendor, app, Number())
}
