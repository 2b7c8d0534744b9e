//go:build mage

package main

// This file can't be named ns_test.go because go then thinks this is test code.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Test mg.Namespace

func (Test) GoModTidy() error {
	return sh.RunV("go", "mod", "tidy")
}

func (Test) ValidateGitClean() error {
	o, err := sh.Output("git", "status", "--porcelain")
	if err != nil {
		return err
	}

	if len(o) != 0 {
		return errors.New("repo is dirty, probably because gofmt or go mod tidy touched something")
	}
	return nil
}

// Runs unittests.
func (Test) Unit() error {
	if err := locations.ensureTestCaches(); err != nil {
		return err
	}

	testCmd := fmt.Sprintf("set -o pipefail; go test -coverprofile=%s -race -test.v", locations.UnitTestCoverageReport())
	testCmd += " ./internal/... ./cmd/... ./apis/... "
	testCmd += "| tee " + locations.UnitTestStdOut()

	// cgo needed to enable race detector -race
	testErr := sh.RunWithV(map[string]string{"CGO_ENABLED": "1"}, "bash", "-c", testCmd)
	reportErr := sh.RunV("bash", "-c",
		"set -o pipefail; cat "+locations.UnitTestStdOut()+" | go tool test2json > "+locations.UnitTestExecReport())
	return errors.Join(testErr, reportErr)
}

// Runs the given integration suite as given by the first
// positional argument. The options are 'all' and 'content-package'.
func (t Test) Integration(ctx context.Context, suite string) error {
	switch strings.ToLower(strings.TrimSpace(suite)) {
	case "all", cliCmdName:
		mg.CtxDeps(ctx, t.cliIntegration)
		return nil
	default:
		return fmt.Errorf("unknown test suite: %s", suite)
	}
}

func (Test) cliIntegration(_ context.Context) error {
	if err := locations.ensureTestCaches(); err != nil {
		return err
	}

	args := []string{
		"test",
		"-tags=integration",
		"-coverprofile", locations.CLIIntegrationTestCoverageReport(),
		"-json",
		"./integration/" + cliCmdName + "/...",
	}

	out, testErr := sh.Output("go", args...)
	reportErr := os.WriteFile(locations.CLIIntegrationTestExecReport(), []byte(out), 0o600)
	return errors.Join(testErr, reportErr)
}
