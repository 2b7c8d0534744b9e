package packageoptions

import (
	"strings"

	"golang.org/x/exp/slices"
	"k8s.io/apimachinery/pkg/util/validation/field"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	"contentpackage.run/internal/packages/packagetypes"
)

var (
	supportedPackageTypes = []string{
		string(vaultv1alpha1.PackageTypeApplication),
		string(vaultv1alpha1.PackageTypeContent),
		string(vaultv1alpha1.PackageTypeContainer),
		string(vaultv1alpha1.PackageTypeMixed),
	}
	supportedRuleKinds = []string{
		string(vaultv1alpha1.FilterRuleInclude),
		string(vaultv1alpha1.FilterRuleExclude),
	}
)

// Validate checks the options and returns a *packagetypes.ConfigurationError
// listing every problem found. Unknown acHandling values are accepted.
func Validate(opts vaultv1alpha1.PackageOptions) error {
	var errs field.ErrorList

	required := func(key, v string) {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, field.Required(field.NewPath(key), "must not be blank"))
		}
	}
	required(vaultv1alpha1.OptionPackageGroup, opts.Group)
	required(vaultv1alpha1.OptionPackageName, opts.Name)
	required(vaultv1alpha1.OptionPackageRootPath, opts.RootPath)

	if opts.RootPath != "" && !strings.HasPrefix(opts.RootPath, "/") {
		errs = append(errs, field.Invalid(
			field.NewPath(vaultv1alpha1.OptionPackageRootPath), opts.RootPath, "must be an absolute path"))
	}
	if strings.ContainsAny(opts.Name, `/\`) {
		errs = append(errs, field.Invalid(
			field.NewPath(vaultv1alpha1.OptionPackageName), opts.Name, "must not contain path separators"))
	}
	if opts.PackageType != "" && !slices.Contains(supportedPackageTypes, string(opts.PackageType)) {
		errs = append(errs, field.NotSupported(
			field.NewPath(vaultv1alpha1.OptionPackageType), opts.PackageType, supportedPackageTypes))
	}

	filtersPath := field.NewPath(vaultv1alpha1.OptionPackageFilters)
	for i, f := range opts.Filters {
		fPath := filtersPath.Index(i)
		if strings.TrimSpace(f.Root) == "" {
			errs = append(errs, field.Required(fPath.Child("filter"), "must not be blank"))
		}
		for j, r := range f.Rules {
			rPath := fPath.Child("rules").Index(j)
			if !slices.Contains(supportedRuleKinds, string(r.Kind)) {
				errs = append(errs, field.NotSupported(rPath.Child("rule"), r.Kind, supportedRuleKinds))
			}
			if r.Pattern == "" {
				errs = append(errs, field.Required(rPath.Child("pattern"), "must not be empty"))
			}
		}
	}

	if len(errs) > 0 {
		return &packagetypes.ConfigurationError{Errors: errs}
	}
	return nil
}
