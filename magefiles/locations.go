//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type Locations struct {
	cache string
}

func newLocations() Locations {
	cache, err := filepath.Abs(".cache")
	if err != nil {
		cache = ".cache"
	}
	return Locations{cache: cache}
}

// ensureTestCaches creates the report directories of both test suites.
func (l Locations) ensureTestCaches() error {
	for _, dir := range []string{l.unitTestCache(), l.IntegrationTestCache()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// binaryVersion is the VERSION env var or, without it, the closest git tag.
func binaryVersion() (string, error) {
	if v := strings.TrimSpace(os.Getenv("VERSION")); v != "" {
		return v, nil
	}
	out, err := exec.Command("git", "describe", "--tags").Output()
	if err != nil {
		return "", fmt.Errorf("git describe: %w", err)
	}
	return filepath.Base(strings.TrimSpace(string(out))), nil
}

func (l Locations) Cache() string                 { return l.cache }
func (l Locations) unitTestCache() string         { return filepath.Join(l.Cache(), "unit") }
func (l Locations) UnitTestCoverageReport() string { return filepath.Join(l.unitTestCache(), "cover.txt") }
func (l Locations) UnitTestExecReport() string    { return filepath.Join(l.unitTestCache(), "exec.json") }
func (l Locations) UnitTestStdOut() string        { return filepath.Join(l.unitTestCache(), "out.txt") }
func (l Locations) IntegrationTestCache() string  { return filepath.Join(l.Cache(), "integration") }
func (l Locations) CLIIntegrationTestCoverageReport() string {
	return filepath.Join(l.IntegrationTestCache(), "cli-cover.txt")
}

func (l Locations) CLIIntegrationTestExecReport() string {
	return filepath.Join(l.IntegrationTestCache(), "cli-exec.json")
}

func (l Locations) binaryDst(name string, arch archTarget) string {
	if arch == nativeArch {
		return filepath.Join("bin", name)
	}
	return filepath.Join("bin", arch.OS+"_"+arch.Arch, name)
}
