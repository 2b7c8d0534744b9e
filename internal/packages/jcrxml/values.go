package jcrxml

import (
	"strings"

	"contentpackage.run/internal/packages/contenttree"
)

// FormatValue renders a property value as a DocView attribute value.
// Strings carry no type hint; multi values are written as "[a,b]".
func FormatValue(name string, v contenttree.Value) string {
	var b strings.Builder
	if hasTypeHint(name, v.Type) {
		b.WriteString("{" + string(v.Type) + "}")
	}

	if !v.Multi {
		b.WriteString(escapeSingle(v.String()))
		return b.String()
	}

	if len(v.Items) == 1 && v.Items[0] == "" {
		return b.String() + "[" + emptyItem + "]"
	}

	b.WriteByte('[')
	for i, item := range v.Items {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeMultiItem(item))
	}
	b.WriteByte(']')
	return b.String()
}

// ParseValue reads a DocView attribute value back into a typed value.
func ParseValue(name, raw string) contenttree.Value {
	t := contenttree.TypeString
	if name == contenttree.PropertyMixinTypes {
		t = contenttree.TypeName
	}
	if strings.HasPrefix(raw, "{") {
		if end := strings.IndexByte(raw, '}'); end > 0 {
			if known, ok := contenttree.LookupType(raw[1:end]); ok {
				t = known
				raw = raw[end+1:]
			}
		}
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		return contenttree.MultiValue(t, splitMulti(raw[1:len(raw)-1])...)
	}
	return contenttree.Value{Type: t, Items: []string{unescape(raw)}}
}

func hasTypeHint(name string, t contenttree.PropertyType) bool {
	if t == contenttree.TypeString || t == "" {
		return false
	}
	// mixin types are implicitly names
	return !(name == contenttree.PropertyMixinTypes && t == contenttree.TypeName)
}

func escapeSingle(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		s = `\` + s
	}
	return s
}

func escapeMultiItem(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, ",", `\,`)
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// emptyItem stands for a multi value holding exactly one empty string,
// which would otherwise read back as an empty list.
const emptyItem = `\0`

func splitMulti(s string) []string {
	items := []string{}
	switch s {
	case "":
		return items
	case emptyItem:
		return []string{""}
	}
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case s[i] == ',':
			items = append(items, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(s[i])
		}
	}
	return append(items, cur.String())
}
