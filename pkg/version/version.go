// Package version exposes the build version of esgcalc.
package version

import "runtime/debug"

// Set at build time with -ldflags "-X .../pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Build-time injection target.
var version = ""

const devVersion = "dev"

// GetVersion returns the ldflags version, falling back to the module version
// recorded in the build info and finally to "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion
}
