//go:build integration

/* #nosec */

package contentpackage

import (
	"os"
	"os/exec"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gbytes"
	. "github.com/onsi/gomega/gexec"
)

type subCommandTestCase struct {
	Args                  []string
	Env                   []string
	ExpectedExitCode      int
	ExpectedOutput        []string
	ExpectedErrorOutput   []string
	AdditionalValidations func()
}

func testSubCommand(subcommand string) func(tc subCommandTestCase) {
	return func(tc subCommandTestCase) {
		runSubCommand(subcommand, tc)
	}
}

func runSubCommand(subcommand string, tc subCommandTestCase) {
	args := append([]string{subcommand}, tc.Args...)
	cmd := exec.Command(_binaryPath, args...)
	cmd.Env = append(os.Environ(), tc.Env...)

	session, err := Start(cmd, GinkgoWriter, GinkgoWriter)
	Expect(err).ToNot(HaveOccurred())
	Eventually(session).Should(Exit(tc.ExpectedExitCode))

	for _, line := range tc.ExpectedOutput {
		Expect(session.Out).To(Say(line))
	}
	for _, line := range tc.ExpectedErrorOutput {
		Expect(session.Err).To(Say(line))
	}

	if tc.AdditionalValidations != nil {
		tc.AdditionalValidations()
	}
}

// fixture copies testdata/name into a fresh directory and returns the copy.
func fixture(name string) string {
	src := filepath.Join("testdata", name)
	dst := filepath.Join(GinkgoT().TempDir(), filepath.Base(name))

	Expect(filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o600)
	})).To(Succeed())

	return dst
}
