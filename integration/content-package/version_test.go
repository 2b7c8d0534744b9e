//go:build integration

package contentpackage

import (
	"github.com/onsi/ginkgo/v2"
)

var _ = ginkgo.DescribeTable("version subcommand",
	testSubCommand("version"),
	ginkgo.Entry("linked version",
		subCommandTestCase{
			ExpectedExitCode: 0,
			ExpectedOutput:   []string{"version v0.0.0"},
		},
	),
	ginkgo.Entry("using an unknown flag",
		subCommandTestCase{
			Args:             []string{"--unknown"},
			ExpectedExitCode: 1,
		},
	),
)
