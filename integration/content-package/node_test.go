//go:build integration

package contentpackage

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("node subcommand", func() {
	It("packages flagged content and applies headers", func() {
		node := fixture("node")
		outDir := GinkgoT().TempDir()

		runSubCommand("node", subCommandTestCase{
			Args:             []string{node, "--output-dir", outDir, "--header-line", "managed by {{ .Role }}"},
			ExpectedExitCode: 0,
			ExpectedOutput:   []string{"nodePackage.zip", "file-header-conf"},
		})

		Expect(filepath.Join(outDir, "nodePackage.zip")).To(BeAnExistingFile())

		data, err := os.ReadFile(filepath.Join(node, "config", "app.conf"))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(Equal("# BEGIN GENERATED HEADER\n# managed by aem-author\n# END GENERATED HEADER\nListen 80\n"))
	})
})

var _ = DescribeTable("model subcommand",
	testSubCommand("model"),
	Entry("cloud targets",
		subCommandTestCase{
			Args:             []string{"cloud-targets", filepath.Join("testdata", "node")},
			ExpectedExitCode: 0,
			ExpectedOutput:   []string{"author"},
		},
	),
	Entry("has role",
		subCommandTestCase{
			Args:             []string{"has-role", filepath.Join("testdata", "node"), "aem-author"},
			ExpectedExitCode: 0,
			ExpectedOutput:   []string{"true"},
		},
	),
	Entry("missing model",
		subCommandTestCase{
			Args:             []string{"packages", "testdata"},
			ExpectedExitCode: 1,
		},
	),
)
