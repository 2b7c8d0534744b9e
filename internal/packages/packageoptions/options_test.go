package packageoptions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	utilpointer "k8s.io/utils/pointer"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	"contentpackage.run/internal/packages/packagetypes"
)

var expectedOptions = vaultv1alpha1.PackageOptions{
	Group:        "myGroup",
	Name:         "myName",
	RootPath:     "/content/test",
	ACHandling:   vaultv1alpha1.ACHandlingIgnore,
	RequiresRoot: utilpointer.Bool(true),
	Filters: []vaultv1alpha1.FilterSpec{
		{Root: "/content/test/1"},
		{Root: "/content/test/2", Rules: []vaultv1alpha1.FilterRule{
			{Kind: vaultv1alpha1.FilterRuleInclude, Pattern: "pattern1"},
			{Kind: vaultv1alpha1.FilterRuleExclude, Pattern: "pattern2"},
		}},
	},
}

const yamlOptions = `packageGroup: myGroup
packageName: myName
packageRootPath: /content/test
packageACHandling: ignore
packageRequiresRoot: true
packageFilters:
- filter: /content/test/1
- filter: /content/test/2
  rules:
  - rule: include
    pattern: pattern1
  - rule: exclude
    pattern: pattern2
`

const jsonOptions = `{
  "packageGroup": "myGroup",
  "packageName": "myName",
  "packageRootPath": "/content/test",
  "packageACHandling": "ignore",
  "packageRequiresRoot": true,
  "packageFilters": [
    {"filter": "/content/test/1"},
    {"filter": "/content/test/2", "rules": [
      {"rule": "include", "pattern": "pattern1"},
      {"rule": "exclude", "pattern": "pattern2"}
    ]}
  ]
}`

const tomlOptions = `packageGroup = "myGroup"
packageName = "myName"
packageRootPath = "/content/test"
packageACHandling = "ignore"
packageRequiresRoot = true

[[packageFilters]]
filter = "/content/test/1"

[[packageFilters]]
filter = "/content/test/2"
rules = [
  { rule = "include", pattern = "pattern1" },
  { rule = "exclude", pattern = "pattern2" },
]
`

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "options.yaml", data: yamlOptions},
		{name: "options.yml", data: yamlOptions},
		{name: "options.json", data: jsonOptions},
		{name: "options.toml", data: tomlOptions},
	}
	for i := range tests {
		test := tests[i]

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			opts, err := Decode(test.name, []byte(test.data))
			require.NoError(t, err)
			assert.Equal(t, expectedOptions, opts)
			require.NoError(t, Validate(opts))
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		reason packagetypes.DecodeReason
	}{
		{name: "options.txt", data: "", reason: packagetypes.DecodeReasonUnsupportedExtension},
		{name: "options.yaml", data: "packageGroup: [", reason: packagetypes.DecodeReasonInvalidOptions},
		{name: "options.yaml", data: "unknownKey: 1", reason: packagetypes.DecodeReasonInvalidOptions},
		{name: "options.toml", data: "packageGroup = ", reason: packagetypes.DecodeReasonInvalidOptions},
	}
	for i := range tests {
		test := tests[i]

		t.Run(test.name+"/"+test.data, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(test.name, []byte(test.data))
			var dErr *packagetypes.DecodeError
			require.ErrorAs(t, err, &dErr)
			assert.Equal(t, test.reason, dErr.Reason)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "options.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlOptions), 0o600))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "myName", opts.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var ioErr *packagetypes.IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"packageGroup":      "myGroup",
		"packageName":       "myName",
		"packageRootPath":   "/content/test",
		"packageACHandling": "ignore",
		"otherProcessorKey": "ignored",
		"packageFilters": []any{
			map[string]any{"filter": "/content/test/1"},
		},
	}
	require.True(t, HasMarker(raw))

	opts, err := FromMap(raw)
	require.NoError(t, err)
	assert.Equal(t, "myGroup", opts.Group)
	assert.Equal(t, []vaultv1alpha1.FilterSpec{{Root: "/content/test/1"}}, opts.Filters)

	assert.False(t, HasMarker(map[string]any{"packageGroup": "x"}))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts vaultv1alpha1.PackageOptions
		msg  string
	}{
		{
			name: "blank group",
			opts: vaultv1alpha1.PackageOptions{Group: " ", Name: "n", RootPath: "/content"},
			msg:  "invalid package options: packageGroup: Required value: must not be blank",
		},
		{
			name: "missing name and root",
			opts: vaultv1alpha1.PackageOptions{Group: "g"},
			msg: "invalid package options: [packageName: Required value: must not be blank, " +
				"packageRootPath: Required value: must not be blank]",
		},
		{
			name: "relative root",
			opts: vaultv1alpha1.PackageOptions{Group: "g", Name: "n", RootPath: "content"},
			msg:  `invalid package options: packageRootPath: Invalid value: "content": must be an absolute path`,
		},
		{
			name: "bad rule kind",
			opts: vaultv1alpha1.PackageOptions{Group: "g", Name: "n", RootPath: "/c", Filters: []vaultv1alpha1.FilterSpec{
				{Root: "/c", Rules: []vaultv1alpha1.FilterRule{{Kind: "maybe", Pattern: "p"}}},
			}},
			msg: `invalid package options: packageFilters[0].rules[0].rule: Unsupported value: "maybe": ` +
				`supported values: "include", "exclude"`,
		},
	}
	for i := range tests {
		test := tests[i]

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(test.opts)
			var cErr *packagetypes.ConfigurationError
			require.ErrorAs(t, err, &cErr)
			assert.EqualError(t, err, test.msg)
		})
	}
}

func TestValidateUnknownACHandling(t *testing.T) {
	t.Parallel()

	err := Validate(vaultv1alpha1.PackageOptions{
		Group: "g", Name: "n", RootPath: "/c", ACHandling: "somethingNew",
	})
	require.NoError(t, err)
}
