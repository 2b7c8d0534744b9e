//go:build integration

package contentpackage

import (
	"archive/zip"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("build subcommand", func() {
	It("packages a content description", func() {
		input := fixture("content.json")
		outDir := GinkgoT().TempDir()
		metricsFile := filepath.Join(outDir, "build.prom")

		runSubCommand("build", subCommandTestCase{
			Args: []string{
				input,
				"--options", filepath.Join("testdata", "options.yaml"),
				"--output-dir", outDir,
				"--metrics-file", metricsFile,
			},
			ExpectedExitCode: 0,
			ExpectedOutput:   []string{"myName.zip"},
		})

		Expect(input).ToNot(BeAnExistingFile())
		Expect(metricsFile).To(BeAnExistingFile())

		r, err := zip.OpenReader(filepath.Join(outDir, "myName.zip"))
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		names := []string{}
		for _, f := range r.File {
			names = append(names, f.Name)
		}
		Expect(names).To(Equal([]string{
			"META-INF/vault/properties.xml",
			"META-INF/vault/filter.xml",
			"META-INF/vault/definition/.content.xml",
			"jcr_root/content/test/.content.xml",
		}))

		runSubCommand("inspect", subCommandTestCase{
			Args:             []string{filepath.Join(outDir, "myName.zip")},
			ExpectedExitCode: 0,
			ExpectedOutput:   []string{"acHandling\\s+merge", "/content/test\\s+-\\s+exclude:"},
		})
	})

	It("takes the output directory from the environment", func() {
		input := fixture("content.json")
		outDir := GinkgoT().TempDir()

		runSubCommand("build", subCommandTestCase{
			Args:             []string{input, "--options", filepath.Join("testdata", "options.yaml")},
			Env:              []string{"CONTENT_PACKAGE_OUTPUT_DIR=" + outDir},
			ExpectedExitCode: 0,
		})

		Expect(filepath.Join(outDir, "myName.zip")).To(BeAnExistingFile())
	})

	It("keeps the input when packaging fails", func() {
		input := fixture("content.json")

		runSubCommand("build", subCommandTestCase{
			Args:                []string{input, "--options", filepath.Join("testdata", "node", "model.yaml")},
			ExpectedExitCode:    1,
			ExpectedErrorOutput: []string{"loading package options"},
		})

		Expect(input).To(BeAnExistingFile())
	})
})

var _ = DescribeTable("build subcommand arguments",
	testSubCommand("build"),
	Entry("no input",
		subCommandTestCase{
			ExpectedExitCode: 1,
		},
	),
	Entry("missing options flag",
		subCommandTestCase{
			Args:                []string{"content.json"},
			ExpectedExitCode:    1,
			ExpectedErrorOutput: []string{"--options is required"},
		},
	),
)
