package contenttree

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"contentpackage.run/internal/packages/packagetypes"
)

// CommentKey is the documentation field of a content description.
const CommentKey = "_comment"

// Document is a decoded content description.
type Document struct {
	// Comment is the documentation of the description, lines joined by "\n".
	Comment string
	Root    *Node
}

// Parse converts a generic decoded content description into a Document.
// Keys starting with "_" are documentation fields and never become properties.
func Parse(raw Object) (*Document, error) {
	comment, err := parseComment(raw.Values[CommentKey])
	if err != nil {
		return nil, err
	}

	root, err := ParseNode(raw)
	if err != nil {
		return nil, err
	}

	return &Document{Comment: comment, Root: root}, nil
}

// ParseNode converts a generic decoded node description and all of its descendants.
func ParseNode(raw Object) (*Node, error) {
	return parseNode("", raw)
}

func parseComment(v any) (string, error) {
	switch c := v.(type) {
	case nil:
		return "", nil
	case string:
		return c, nil
	case []any:
		lines := make([]string, 0, len(c))
		for _, l := range c {
			s, ok := l.(string)
			if !ok {
				return "", &packagetypes.DecodeError{
					Reason:  packagetypes.DecodeReasonUnsupportedValue,
					Path:    CommentKey,
					Details: fmt.Sprintf("expected list of strings, got %T item", l),
				}
			}
			lines = append(lines, s)
		}
		return strings.Join(lines, "\n"), nil
	}
	return "", &packagetypes.DecodeError{
		Reason:  packagetypes.DecodeReasonUnsupportedValue,
		Path:    CommentKey,
		Details: fmt.Sprintf("expected string or list of strings, got %T", v),
	}
}

func parseNode(path string, raw Object) (*Node, error) {
	pt, ok := raw.Values[PropertyPrimaryType].(string)
	if !ok || strings.TrimSpace(pt) == "" {
		return nil, &packagetypes.DecodeError{
			Reason: packagetypes.DecodeReasonMissingPrimaryType,
			Path:   nodePath(path),
		}
	}
	node := NewNode(pt)

	for _, key := range raw.Keys {
		if key == PropertyPrimaryType || strings.HasPrefix(key, "_") {
			continue
		}
		childPath := joinPath(path, key)

		if obj, isObj := asObject(raw.Values[key]); isObj {
			child, err := parseNode(childPath, obj)
			if err != nil {
				return nil, err
			}
			node.AddChild(key, child)
			continue
		}

		v, err := parseValue(childPath, raw.Values[key])
		if err != nil {
			return nil, err
		}
		if key == PropertyMixinTypes && v.Type == TypeString {
			v.Type = TypeName
		}
		node.SetProperty(key, v)
	}

	return node, nil
}

func nodePath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

func parseValue(path string, raw any) (Value, error) {
	list, isList := raw.([]any)
	if !isList {
		t, item, err := parseScalar(path, raw)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: t, Items: []string{item}}, nil
	}

	v := MultiValue(TypeString)
	types := make([]PropertyType, 0, len(list))
	for i, r := range list {
		t, item, err := parseScalar(fmt.Sprintf("%s[%d]", path, i), r)
		if err != nil {
			return Value{}, err
		}
		types = append(types, t)
		v.Items = append(v.Items, item)
	}

	for i, t := range types {
		switch {
		case i == 0:
			v.Type = t
		case t == v.Type:
		case isNumeric(v.Type) && isNumeric(t):
			// Longs widen to doubles.
			v.Type = TypeDouble
		case isTextual(v.Type) && isTextual(t):
			v.Type = TypeString
		default:
			return Value{}, &packagetypes.DecodeError{
				Reason:  packagetypes.DecodeReasonUnsupportedValue,
				Path:    fmt.Sprintf("%s[%d]", path, i),
				Details: fmt.Sprintf("mixed types %s and %s in multi value", v.Type, t),
			}
		}
	}

	switch v.Type {
	case TypeDouble:
		for i := range v.Items {
			v.Items[i], _ = NormalizeItem(TypeDouble, v.Items[i])
		}
	case TypeString:
		// Items detected as dates in a string list keep their literal text.
		for i, t := range types {
			if s, ok := list[i].(string); ok && t == TypeDate {
				v.Items[i] = s
			}
		}
	}
	return v, nil
}

func isNumeric(t PropertyType) bool {
	return t == TypeLong || t == TypeDouble
}

func isTextual(t PropertyType) bool {
	return t == TypeString || t == TypeDate
}

func parseScalar(path string, raw any) (PropertyType, string, error) {
	switch s := raw.(type) {
	case string:
		return parseString(path, s)
	case bool:
		return TypeBoolean, BoolValue(s).String(), nil
	case json.Number:
		if i, err := s.Int64(); err == nil {
			return TypeLong, LongValue(i).String(), nil
		}
		f, err := s.Float64()
		if err != nil {
			return "", "", &packagetypes.DecodeError{
				Reason: packagetypes.DecodeReasonUnsupportedValue, Path: path, Err: err,
			}
		}
		return TypeDouble, DoubleValue(f).String(), nil
	case float64:
		return TypeDouble, DoubleValue(s).String(), nil
	case int:
		return TypeLong, LongValue(int64(s)).String(), nil
	case int64:
		return TypeLong, LongValue(s).String(), nil
	}

	details := fmt.Sprintf("%T is not a scalar", raw)
	if raw == nil {
		details = "null values are not supported"
	}
	return "", "", &packagetypes.DecodeError{
		Reason:  packagetypes.DecodeReasonUnsupportedValue,
		Path:    path,
		Details: details,
	}
}

// parseString detects explicit "{Type}value" hints and RFC 3339 dates.
// A leading backslash escapes a literal "{".
func parseString(path, s string) (PropertyType, string, error) {
	if strings.HasPrefix(s, `\{`) {
		return TypeString, s[1:], nil
	}
	if strings.HasPrefix(s, "{") {
		if end := strings.IndexByte(s, '}'); end > 0 {
			if t, ok := LookupType(s[1:end]); ok {
				item, valid := NormalizeItem(t, s[end+1:])
				if !valid {
					return "", "", &packagetypes.DecodeError{
						Reason:  packagetypes.DecodeReasonUnsupportedValue,
						Path:    path,
						Details: fmt.Sprintf("%q is not a valid %s", s[end+1:], t),
					}
				}
				return t, item, nil
			}
		}
	}
	if d, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return TypeDate, d.Format(DateLayout), nil
	}
	return TypeString, s, nil
}
