package version

import (
	"runtime/debug"
)

// Info contains build information supplied during compile time.
type Info struct {
	*debug.BuildInfo
	Version string `json:"version"`
}

// version is set through -ldflags "-X contentpackage.run/internal/version.version=...".
var version string

// Get version related embedded information.
func Get() Info {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		panic("no build info available: binary was built without module support")
	}

	return Info{buildInfo, version}
}

// Short returns the linked version, falling back to the main module version.
func (i Info) Short() string {
	if i.Version != "" {
		return i.Version
	}
	if i.BuildInfo != nil && i.Main.Version != "" {
		return i.Main.Version
	}
	return "(devel)"
}
