package packageoptions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"sigs.k8s.io/yaml"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	"contentpackage.run/internal/packages/packagetypes"
)

// HasMarker reports whether raw file options request packaging.
func HasMarker(raw map[string]any) bool {
	_, ok := raw[vaultv1alpha1.OptionPackageName]
	return ok
}

// FromMap decodes options given as a generic map, e.g. a model.yaml file entry.
// Unknown keys are ignored as they belong to other processors.
func FromMap(raw map[string]any) (vaultv1alpha1.PackageOptions, error) {
	var opts vaultv1alpha1.PackageOptions

	data, err := yaml.Marshal(raw)
	if err != nil {
		return opts, &packagetypes.DecodeError{Reason: packagetypes.DecodeReasonInvalidOptions, Err: err}
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, &packagetypes.DecodeError{Reason: packagetypes.DecodeReasonInvalidOptions, Err: err}
	}
	return opts, nil
}

// Decode reads options in the format implied by the file extension
// (.yaml, .yml, .json or .toml).
func Decode(name string, data []byte) (vaultv1alpha1.PackageOptions, error) {
	var opts vaultv1alpha1.PackageOptions

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &opts); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				row, col := derr.Position()
				return opts, &packagetypes.DecodeError{
					Reason:  packagetypes.DecodeReasonInvalidOptions,
					Path:    name,
					Details: fmt.Sprintf("line %d column %d", row, col),
					Err:     err,
				}
			}
			return opts, &packagetypes.DecodeError{Reason: packagetypes.DecodeReasonInvalidOptions, Path: name, Err: err}
		}

	case ".yaml", ".yml", ".json":
		if err := yaml.UnmarshalStrict(data, &opts); err != nil {
			return opts, &packagetypes.DecodeError{Reason: packagetypes.DecodeReasonInvalidOptions, Path: name, Err: err}
		}

	default:
		return opts, &packagetypes.DecodeError{
			Reason:  packagetypes.DecodeReasonUnsupportedExtension,
			Path:    name,
			Details: fmt.Sprintf("%q, expected .yaml, .yml, .json or .toml", ext),
		}
	}
	return opts, nil
}

// Load reads and decodes an options file.
func Load(path string) (vaultv1alpha1.PackageOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return vaultv1alpha1.PackageOptions{}, &packagetypes.IOError{Op: "read", Path: path, Err: err}
	}
	return Decode(path, data)
}
