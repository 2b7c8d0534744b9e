package vaultfilter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
)

func include(p string) vaultv1alpha1.FilterRule {
	return vaultv1alpha1.FilterRule{Kind: vaultv1alpha1.FilterRuleInclude, Pattern: p}
}

func exclude(p string) vaultv1alpha1.FilterRule {
	return vaultv1alpha1.FilterRule{Kind: vaultv1alpha1.FilterRuleExclude, Pattern: p}
}

func TestCompile(t *testing.T) {
	t.Parallel()

	out, err := Compile([]vaultv1alpha1.FilterSpec{
		{Root: "/content/test/1"},
		{Root: "/content/test/2", Rules: []vaultv1alpha1.FilterRule{include("pattern1"), exclude("pattern2")}},
	})
	require.NoError(t, err)

	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>
<workspaceFilter version="1.0">
    <filter root="/content/test/1"></filter>
    <filter root="/content/test/2">
        <include pattern="pattern1"></include>
        <exclude pattern="pattern2"></exclude>
    </filter>
</workspaceFilter>
`, string(out))
}

func TestCompileEmpty(t *testing.T) {
	t.Parallel()

	out, err := Compile(nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<workspaceFilter version="1.0"></workspaceFilter>`)

	specs, err := Parse(out)
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestCompilePreservesOrderAndCardinality(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 3, 10} {
		n := n

		t.Run(fmt.Sprintf("%d filters", n), func(t *testing.T) {
			t.Parallel()

			var specs []vaultv1alpha1.FilterSpec
			for i := 0; i < n; i++ {
				spec := vaultv1alpha1.FilterSpec{Root: "/content/dup"}
				if i%2 == 1 {
					spec.Root = fmt.Sprintf("/content/%d", i)
					spec.Mode = "merge"
				}
				for j := 0; j < i; j++ {
					if j%2 == 0 {
						spec.Rules = append(spec.Rules, exclude(fmt.Sprintf("e%d", j)))
					} else {
						spec.Rules = append(spec.Rules, include(fmt.Sprintf("i%d", j)))
					}
				}
				specs = append(specs, spec)
			}

			out, err := Compile(specs)
			require.NoError(t, err)
			assert.Equal(t, n, strings.Count(string(out), "<filter "))

			parsed, err := Parse(out)
			require.NoError(t, err)
			assert.Equal(t, specs, parsed)
		})
	}
}

func TestCompileUnknownRuleKind(t *testing.T) {
	t.Parallel()

	_, err := Compile([]vaultv1alpha1.FilterSpec{{
		Root:  "/content",
		Rules: []vaultv1alpha1.FilterRule{{Kind: "maybe", Pattern: "x"}},
	}})
	require.EqualError(t, err, `filter 0 (/content) rule 0: unknown rule kind "maybe"`)
}

func TestParseUnexpectedElement(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`<workspaceFilter version="1.0"><filter root="/a"><other/></filter></workspaceFilter>`))
	require.Error(t, err)
}
