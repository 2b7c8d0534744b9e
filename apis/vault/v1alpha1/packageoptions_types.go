package v1alpha1

// Option keys as they appear in model.yaml file entries and options files.
const (
	OptionPackageGroup                 = "packageGroup"
	OptionPackageName                  = "packageName"
	OptionPackageRootPath              = "packageRootPath"
	OptionPackageVersion               = "packageVersion"
	OptionPackageDescription           = "packageDescription"
	OptionPackageACHandling            = "packageACHandling"
	OptionPackageType                  = "packageType"
	OptionPackageThumbnailImage        = "packageThumbnailImage"
	OptionPackageRequiresRoot          = "packageRequiresRoot"
	OptionPackageAllowIndexDefinitions = "packageAllowIndexDefinitions"
	OptionPackageFilters               = "packageFilters"

	// ModelOptionsProperty marks a file entry in model.yaml as packaging input.
	ModelOptionsProperty = "aemContentPackageProperties"
)

// ACHandling controls how access control entries are handled on import.
// Values outside of the known set are passed through as-is.
type ACHandling string

const (
	ACHandlingIgnore        ACHandling = "ignore"
	ACHandlingOverwrite     ACHandling = "overwrite"
	ACHandlingMerge         ACHandling = "merge"
	ACHandlingMergePreserve ACHandling = "merge_preserve"
	ACHandlingClear         ACHandling = "clear"
)

// IsKnown reports whether the value is one of the documented modes.
func (h ACHandling) IsKnown() bool {
	switch h {
	case ACHandlingIgnore, ACHandlingOverwrite, ACHandlingMerge,
		ACHandlingMergePreserve, ACHandlingClear:
		return true
	}
	return false
}

// PackageType is the FileVault package type marker.
type PackageType string

const (
	PackageTypeApplication PackageType = "application"
	PackageTypeContent     PackageType = "content"
	PackageTypeContainer   PackageType = "container"
	PackageTypeMixed       PackageType = "mixed"
)

// PackageOptions holds all package-level settings of a single packaging run.
type PackageOptions struct {
	// Group of the package, e.g. "my-company". Required.
	Group string `json:"packageGroup" toml:"packageGroup"`
	// Name of the package. Required, also used as output file name.
	Name string `json:"packageName" toml:"packageName"`
	// RootPath is the repository path the content tree is mounted at. Required.
	RootPath string `json:"packageRootPath" toml:"packageRootPath"`
	// Version of the package.
	Version string `json:"packageVersion,omitempty" toml:"packageVersion,omitempty"`
	// Description overrides the description taken from the input documentation field.
	Description string `json:"packageDescription,omitempty" toml:"packageDescription,omitempty"`
	// ACHandling mode written to the package properties.
	ACHandling ACHandling `json:"packageACHandling,omitempty" toml:"packageACHandling,omitempty"`
	// PackageType marker written to the package properties.
	PackageType PackageType `json:"packageType,omitempty" toml:"packageType,omitempty"`
	// ThumbnailImage is a file path, bundled resource locator or s3:// URL.
	ThumbnailImage string `json:"packageThumbnailImage,omitempty" toml:"packageThumbnailImage,omitempty"`
	// RequiresRoot marks the package as requiring admin privileges to install.
	RequiresRoot *bool `json:"packageRequiresRoot,omitempty" toml:"packageRequiresRoot,omitempty"`
	// AllowIndexDefinitions allows oak index definitions in the package.
	AllowIndexDefinitions *bool `json:"packageAllowIndexDefinitions,omitempty" toml:"packageAllowIndexDefinitions,omitempty"`
	// CreatedBy is recorded in the package properties.
	CreatedBy string `json:"-" toml:"-"`
	// Filters in declaration order.
	Filters []FilterSpec `json:"packageFilters,omitempty" toml:"packageFilters,omitempty"`
}

// FilterSpec declares a single workspace filter root.
type FilterSpec struct {
	// Root is the absolute repository path of the filter.
	Root string `json:"filter" toml:"filter"`
	// Mode is the optional import mode (replace, merge, update).
	Mode string `json:"mode,omitempty" toml:"mode,omitempty"`
	// Rules are applied in declaration order.
	Rules []FilterRule `json:"rules,omitempty" toml:"rules,omitempty"`
}

// FilterRuleKind is either include or exclude.
type FilterRuleKind string

const (
	FilterRuleInclude FilterRuleKind = "include"
	FilterRuleExclude FilterRuleKind = "exclude"
)

// FilterRule is a single include or exclude pattern of a filter.
type FilterRule struct {
	Kind    FilterRuleKind `json:"rule" toml:"rule"`
	Pattern string         `json:"pattern" toml:"pattern"`
}
