// Package model reads the model.yaml description generated for a deployment node.
package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"sigs.k8s.io/yaml"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	"contentpackage.run/internal/packages/packagetypes"
)

// File is the name of the model description inside of a node directory.
const File = "model.yaml"

const cloudManagerTargetKey = "cloudManager.target"

// ContentPackageFile is a file entry flagged for content packaging.
type ContentPackageFile struct {
	// Path of the file, resolved against the node directory.
	Path string
	// Options are the packaging options of the file entry.
	Options map[string]any
	// File is the complete file entry.
	File map[string]any
	// Role the file belongs to.
	Role string
}

func NewReader(opts ...ReaderOption) *Reader {
	var cfg ReaderConfig

	cfg.Option(opts...)
	cfg.Default()

	return &Reader{cfg: cfg}
}

// Reader answers questions about the model of a node directory.
type Reader struct {
	cfg ReaderConfig
}

type ReaderConfig struct {
	Log logr.Logger
}

func (c *ReaderConfig) Option(opts ...ReaderOption) {
	for _, opt := range opts {
		opt.ConfigureReader(c)
	}
}

func (c *ReaderConfig) Default() {
	if c.Log.GetSink() == nil {
		c.Log = logr.Discard()
	}
}

type ReaderOption interface {
	ConfigureReader(*ReaderConfig)
}

type WithLog struct{ Log logr.Logger }

func (w WithLog) ConfigureReader(c *ReaderConfig) {
	c.Log = w.Log
}

// ContentPackagesForNode lists all file entries of all roles carrying
// packaging options, in model order.
func (r *Reader) ContentPackagesForNode(nodeDir string) ([]ContentPackageFile, error) {
	roles, err := r.roles(nodeDir)
	if err != nil {
		return nil, err
	}

	var files []ContentPackageFile
	for i, role := range roles {
		rawFiles, ok := role["files"]
		if !ok || rawFiles == nil {
			continue
		}
		list, ok := rawFiles.([]any)
		if !ok {
			return nil, invalidModel(fmt.Sprintf("roles[%d].files", i), "expected list, got %T", rawFiles)
		}

		for j, rawFile := range list {
			file, ok := rawFile.(map[string]any)
			if !ok {
				return nil, invalidModel(fmt.Sprintf("roles[%d].files[%d]", i, j), "expected map, got %T", rawFile)
			}
			rawOpts, flagged := file[vaultv1alpha1.ModelOptionsProperty]
			if !flagged || rawOpts == nil {
				continue
			}
			opts, ok := rawOpts.(map[string]any)
			if !ok {
				return nil, invalidModel(
					fmt.Sprintf("roles[%d].files[%d].%s", i, j, vaultv1alpha1.ModelOptionsProperty),
					"expected map, got %T", rawOpts)
			}
			path, _ := file["path"].(string)
			if path == "" {
				return nil, invalidModel(fmt.Sprintf("roles[%d].files[%d].path", i, j), "must not be blank")
			}
			roleName, _ := role["role"].(string)

			files = append(files, ContentPackageFile{
				Path:    filepath.Join(nodeDir, filepath.FromSlash(path)),
				Options: opts,
				File:    file,
				Role:    roleName,
			})
		}
	}

	r.cfg.Log.V(1).Info("collected content packages", "node", nodeDir, "count", len(files))
	return files, nil
}

// HasRole reports whether the node has the role assigned.
func (r *Reader) HasRole(nodeDir, roleName string) (bool, error) {
	roles, err := r.roles(nodeDir)
	if err != nil {
		return false, err
	}
	for _, role := range roles {
		if name, _ := role["role"].(string); name == roleName {
			return true, nil
		}
	}
	return false, nil
}

// CloudManagerTargets collects the cloudManager.target values of all roles.
// A target may be a single string or a list; blank values are skipped and
// duplicates are dropped keeping the first occurrence.
func (r *Reader) CloudManagerTargets(nodeDir string) ([]string, error) {
	roles, err := r.roles(nodeDir)
	if err != nil {
		return nil, err
	}

	targets := []string{}
	seen := map[string]struct{}{}
	add := func(target string) {
		if strings.TrimSpace(target) == "" {
			return
		}
		if _, ok := seen[target]; ok {
			return
		}
		seen[target] = struct{}{}
		targets = append(targets, target)
	}

	for i, role := range roles {
		config, ok := role["config"].(map[string]any)
		if !ok {
			continue
		}
		value, found := GetDeep(config, cloudManagerTargetKey)
		if !found || value == nil {
			continue
		}
		path := fmt.Sprintf("roles[%d].config.%s", i, cloudManagerTargetKey)

		switch v := value.(type) {
		case string:
			add(v)
		case []any:
			for j, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, invalidModel(fmt.Sprintf("%s[%d]", path, j), "expected string, got %T", item)
				}
				add(s)
			}
		default:
			return nil, invalidModel(path, "invalid value %v", value)
		}
	}
	return targets, nil
}

// GetDeep looks up a dotted key. A literal key containing dots takes
// precedence over nested maps.
func GetDeep(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for i := 0; i < len(key); i++ {
		if key[i] != '.' {
			continue
		}
		if nested, ok := m[key[:i]].(map[string]any); ok {
			if v, ok := GetDeep(nested, key[i+1:]); ok {
				return v, true
			}
		}
	}
	return nil, false
}

func (r *Reader) roles(nodeDir string) ([]map[string]any, error) {
	data, err := r.read(nodeDir)
	if err != nil {
		return nil, err
	}

	rawRoles, ok := data["roles"]
	if !ok || rawRoles == nil {
		return nil, nil
	}
	list, ok := rawRoles.([]any)
	if !ok {
		return nil, invalidModel("roles", "expected list, got %T", rawRoles)
	}

	roles := make([]map[string]any, 0, len(list))
	for i, raw := range list {
		role, ok := raw.(map[string]any)
		if !ok {
			return nil, invalidModel(fmt.Sprintf("roles[%d]", i), "expected map, got %T", raw)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (r *Reader) read(nodeDir string) (map[string]any, error) {
	path := filepath.Join(nodeDir, File)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &packagetypes.IOError{Op: "read model", Path: path, Err: err}
	}

	data := map[string]any{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, &packagetypes.DecodeError{Reason: packagetypes.DecodeReasonSyntax, Path: path, Err: err}
	}
	return data, nil
}

func invalidModel(path, format string, args ...any) error {
	return &packagetypes.DecodeError{
		Reason:  packagetypes.DecodeReasonInvalidModel,
		Path:    path,
		Details: fmt.Sprintf(format, args...),
	}
}
