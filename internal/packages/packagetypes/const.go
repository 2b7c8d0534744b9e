package packagetypes

const (
	// ContentRootFolder is the archive folder repository content is stored under.
	ContentRootFolder = "jcr_root"
	// ContentXMLFilename holds the serialized node within its folder.
	ContentXMLFilename = ".content.xml"
	// VaultFolder contains package metadata.
	VaultFolder = "META-INF/vault"
	// FilterXMLPath is the archive path of the workspace filter.
	FilterXMLPath = VaultFolder + "/filter.xml"
	// PropertiesXMLPath is the archive path of the package properties.
	PropertiesXMLPath = VaultFolder + "/properties.xml"
	// DefinitionFolder contains the package definition node and thumbnail.
	DefinitionFolder = VaultFolder + "/definition"
	// DefinitionXMLPath is the archive path of the package definition node.
	DefinitionXMLPath = DefinitionFolder + "/" + ContentXMLFilename
	// ThumbnailBasename is the file name of the thumbnail without extension.
	ThumbnailBasename = "thumbnail"
	// DefaultThumbnailExtension is used when the thumbnail locator has no extension.
	DefaultThumbnailExtension = "png"
	// ArchiveExtension of produced packages.
	ArchiveExtension = ".zip"
)
