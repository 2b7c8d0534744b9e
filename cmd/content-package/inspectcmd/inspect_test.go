package inspectcmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	internalcmd "contentpackage.run/internal/cmd"
)

func testInfo() *internalcmd.PackageInfo {
	return &internalcmd.PackageInfo{
		Path:       "myName.zip",
		Properties: map[string]string{"group": "myGroup", "name": "myName"},
		Filters:    []vaultv1alpha1.FilterSpec{{Root: "/content/test"}},
		Entries: []internalcmd.EntryInfo{
			{Path: "META-INF/vault/properties.xml", Size: 512},
		},
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		Args    []string
		Entries bool
	}{
		"default": {Args: []string{"myName.zip"}},
		"entries": {Args: []string{"--entries", "myName.zip"}, Entries: true},
	} {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			inspector := &inspectorMock{}
			inspector.On("Package", mock.Anything, "myName.zip").Return(testInfo(), nil)

			factory := &inspectorFactoryMock{}
			factory.On("Inspector").Return(inspector)

			cmd := NewCmd(factory)
			stdout := &bytes.Buffer{}
			cmd.SetOut(stdout)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tc.Args)

			require.NoError(t, cmd.Execute())
			assert.Contains(t, stdout.String(), "myGroup")
			assert.Contains(t, stdout.String(), "/content/test")
			if tc.Entries {
				assert.Contains(t, stdout.String(), "META-INF/vault/properties.xml")
			} else {
				assert.NotContains(t, stdout.String(), "META-INF/vault/properties.xml")
			}
		})
	}
}

func TestInspect_Failure(t *testing.T) {
	t.Parallel()

	inspector := &inspectorMock{}
	inspector.On("Package", mock.Anything, "broken.zip").
		Return((*internalcmd.PackageInfo)(nil), errors.New("zip: not a valid zip file"))

	factory := &inspectorFactoryMock{}
	factory.On("Inspector").Return(inspector)

	cmd := NewCmd(factory)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"broken.zip"})

	require.ErrorContains(t, cmd.Execute(), "not a valid zip file")
}

type inspectorFactoryMock struct {
	mock.Mock
}

func (m *inspectorFactoryMock) Inspector() Inspector {
	args := m.Called()

	return args.Get(0).(Inspector)
}

type inspectorMock struct {
	mock.Mock
}

func (m *inspectorMock) Package(ctx context.Context, path string) (*internalcmd.PackageInfo, error) {
	args := m.Called(ctx, path)

	return args.Get(0).(*internalcmd.PackageInfo), args.Error(1)
}
