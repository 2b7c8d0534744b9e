//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

// Build all binaries for the architecture of this machine.
func (Build) Binaries() {
	targets := []any{}
	for name := range commands {
		targets = append(targets, mg.F(Build.Binary, name, nativeArch.OS, nativeArch.Arch))
	}

	mg.Deps(targets...)
}

// Build release binaries for every configured architecture and copy them
// to bin/<name>_<os>_<arch>.
func (Build) ReleaseBinaries() error {
	targets := []any{}
	for name, cmd := range commands {
		for _, arch := range cmd.ReleaseArchitectures {
			targets = append(targets, mg.F(Build.Binary, name, arch.OS, arch.Arch))
		}
	}
	mg.Deps(targets...)

	for name, cmd := range commands {
		for _, arch := range cmd.ReleaseArchitectures {
			dst := filepath.Join("bin", fmt.Sprintf("%s_%s_%s", name, arch.OS, arch.Arch))
			if err := sh.Copy(dst, locations.binaryDst(name, arch)); err != nil {
				return fmt.Errorf("copying %s release binary: %w", name, err)
			}
		}
	}
	return nil
}

// Builds binaries from /cmd directory.
func (Build) Binary(cmd string, goos, goarch string) error {
	version, err := binaryVersion()
	if err != nil {
		return err
	}

	env := map[string]string{}
	if _, ok := os.LookupEnv("CGO_ENABLED"); !ok {
		env["CGO_ENABLED"] = "0"
	}

	bin := locations.binaryDst(cmd, nativeArch)
	if goos != "" || goarch != "" {
		if goos == "" || goarch == "" {
			return fmt.Errorf("building cmd/%s: both os and arch are required, got %q/%q", cmd, goos, goarch)
		}
		bin = locations.binaryDst(cmd, archTarget{goos, goarch})
		env["GOOS"] = goos
		env["GOARCH"] = goarch
	}

	ldflags := "-w -s --extldflags '-zrelro -znow -O1' " + fmt.Sprintf("-X '%s/internal/version.version=%s'", module, version)
	cmdline := []string{"build", "--ldflags", ldflags, "--trimpath", "--mod=readonly", "-v", "-o", bin, "./cmd/" + cmd}

	if err := sh.RunWithV(env, "go", cmdline...); err != nil {
		return fmt.Errorf("compiling cmd/%s: %w", cmd, err)
	}
	return nil
}
