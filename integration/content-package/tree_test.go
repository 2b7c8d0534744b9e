//go:build integration

package contentpackage

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
)

var _ = DescribeTable("tree subcommand",
	testSubCommand("tree"),
	Entry("content description",
		subCommandTestCase{
			Args:             []string{"--root-path", "/content/test", filepath.Join("testdata", "content.json")},
			ExpectedExitCode: 0,
			ExpectedOutput: []string{
				`/content/test \[cq:Page\]`,
				`└── jcr:content \[cq:PageContent\]`,
				`\s+└── par \[nt:unstructured\]`,
			},
		},
	),
	Entry("missing source",
		subCommandTestCase{
			Args:             []string{"invisible_chicken.json"},
			ExpectedExitCode: 1,
		},
	),
)
