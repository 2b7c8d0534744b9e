package vaultmeta

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	"contentpackage.run/internal/packages/contenttree"
	"contentpackage.run/internal/packages/jcrxml"
	"contentpackage.run/internal/packages/packagetypes"
	"contentpackage.run/internal/packages/resource"
)

const (
	// DefinitionPrimaryType of the package definition node.
	DefinitionPrimaryType = "vlt:PackageDefinition"

	unstructured = "nt:unstructured"
)

var ErrNoResolver = errors.New("thumbnail image set but no resource resolver configured")

// Definition builds the package definition node.
// Filters are mirrored as f<index> children below a filter node.
func Definition(opts vaultv1alpha1.PackageOptions) *contenttree.Node {
	def := contenttree.NewNode(DefinitionPrimaryType)
	setString := func(name, v string) {
		if v != "" {
			def.SetProperty(name, contenttree.StringValue(v))
		}
	}
	setString(PropertyGroup, opts.Group)
	setString(PropertyName, opts.Name)
	setString(PropertyVersion, opts.Version)
	setString(PropertyDescription, opts.Description)
	setString(PropertyACHandling, string(opts.ACHandling))
	setString(PropertyPackageType, string(opts.PackageType))
	setString("jcr:createdBy", opts.CreatedBy)
	if opts.RequiresRoot != nil {
		def.SetProperty(PropertyRequiresRoot, contenttree.BoolValue(*opts.RequiresRoot))
	}
	if opts.AllowIndexDefinitions != nil {
		def.SetProperty(PropertyAllowIndexDefinitions, contenttree.BoolValue(*opts.AllowIndexDefinitions))
	}

	filter := contenttree.NewNode(unstructured)
	for i, spec := range opts.Filters {
		f := contenttree.NewNode(unstructured).
			SetProperty("root", contenttree.StringValue(spec.Root))
		if spec.Mode != "" {
			f.SetProperty("mode", contenttree.StringValue(spec.Mode))
		}
		if len(spec.Rules) > 0 {
			rules := contenttree.NewNode(unstructured)
			for j, rule := range spec.Rules {
				rules.AddChild("r"+strconv.Itoa(j), contenttree.NewNode(unstructured).
					SetProperty("type", contenttree.StringValue(string(rule.Kind))).
					SetProperty("pattern", contenttree.StringValue(rule.Pattern)))
			}
			f.AddChild("rules", rules)
		}
		filter.AddChild("f"+strconv.Itoa(i), f)
	}
	def.AddChild("filter", filter)

	return def
}

// ThumbnailPath returns the archive path of the thumbnail for a locator.
func ThumbnailPath(locator string) string {
	ext := resource.Extension(locator)
	if ext == "" {
		ext = packagetypes.DefaultThumbnailExtension
	}
	return packagetypes.DefinitionFolder + "/" + packagetypes.ThumbnailBasename + "." + ext
}

// WriteDefinition returns the definition node document and, when a thumbnail
// locator is set, the thumbnail copied through the resolver.
func WriteDefinition(
	ctx context.Context, opts vaultv1alpha1.PackageOptions, resolver resource.Resolver,
) ([]packagetypes.Entry, error) {
	data, err := jcrxml.Serialize(Definition(opts))
	if err != nil {
		return nil, fmt.Errorf("serialize package definition: %w", err)
	}
	entries := []packagetypes.Entry{{Path: packagetypes.DefinitionXMLPath, Data: data}}

	if opts.ThumbnailImage == "" {
		return entries, nil
	}
	if resolver == nil {
		return nil, ErrNoResolver
	}

	thumb, err := resource.ReadAll(ctx, resolver, opts.ThumbnailImage)
	if err != nil {
		return nil, err
	}
	return append(entries, packagetypes.Entry{
		Path: ThumbnailPath(opts.ThumbnailImage),
		Data: thumb,
	}), nil
}
