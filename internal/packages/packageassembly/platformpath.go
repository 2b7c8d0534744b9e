package packageassembly

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"contentpackage.run/internal/packages/packagetypes"
)

// characters that are not safe in file names on common platforms.
const unsafeChars = `%/:\*?"<>|`

// PlatformName maps a repository node name to a file system name.
// "jcr:content" becomes "_jcr_content", names already looking like an escaped
// prefix get an additional leading underscore and unsafe characters are
// percent-encoded.
func PlatformName(name string) string {
	var b strings.Builder

	prefix, local, found := strings.Cut(name, ":")
	switch {
	case found && prefix != "" && local != "":
		b.WriteString("_" + prefix + "_")
		name = local
	case strings.HasPrefix(name, "_") && strings.Contains(name[1:], "_"):
		b.WriteByte('_')
	}

	for i := 0; i < len(name); i++ {
		c := name[i]
		if strings.IndexByte(unsafeChars, c) >= 0 {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// RepositoryName reverses PlatformName.
func RepositoryName(name string) string {
	var b strings.Builder
	switch {
	case strings.HasPrefix(name, "__"):
		name = name[1:]
	case strings.HasPrefix(name, "_"):
		if i := strings.IndexByte(name[1:], '_'); i > 0 {
			b.WriteString(name[1:i+1] + ":")
			name = name[i+2:]
		}
	}

	for i := 0; i < len(name); i++ {
		if name[i] == '%' && i+2 < len(name) {
			if c, err := strconv.ParseUint(name[i+1:i+3], 16, 8); err == nil {
				b.WriteByte(byte(c))
				i += 2
				continue
			}
		}
		b.WriteByte(name[i])
	}
	return b.String()
}

// ContentPath returns the archive path of the .content.xml for a repository root path.
func ContentPath(rootPath string) string {
	segments := strings.Split(strings.Trim(path.Clean("/"+rootPath), "/"), "/")
	parts := make([]string, 0, len(segments)+2)
	parts = append(parts, packagetypes.ContentRootFolder)
	for _, s := range segments {
		if s != "" {
			parts = append(parts, PlatformName(s))
		}
	}
	parts = append(parts, packagetypes.ContentXMLFilename)
	return strings.Join(parts, "/")
}
