//go:build mage

package main

import (
	"runtime"
)

// Constants that define build behaviour.
const (
	module     = "contentpackage.run"
	cliCmdName = "content-package"
)

// Types for target configuration.
type (
	archTarget struct{ OS, Arch string }
	command    struct{ ReleaseArchitectures []archTarget }
)

// Variables that define build behaviour.
var (
	// commands defines which commands under ./cmd shall be build and what architectures are
	// released.
	commands = map[string]*command{
		cliCmdName: {[]archTarget{linuxAMD64Arch, {"linux", "arm64"}, {"darwin", "amd64"}, {"darwin", "arm64"}}},
	}
)

// Variables that are automatically set and should not be touched.
var (
	nativeArch     = archTarget{runtime.GOOS, runtime.GOARCH}
	linuxAMD64Arch = archTarget{"linux", "amd64"}
	locations      = newLocations()
)
