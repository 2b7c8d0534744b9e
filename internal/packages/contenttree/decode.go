package contenttree

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"contentpackage.run/internal/fileheader"
	"contentpackage.run/internal/packages/packagetypes"
)

// Decode reads a JSON or YAML content description.
// A leading "/* ... */" comment block is stripped and, when the
// description carries no _comment field, used as its documentation.
func Decode(data []byte) (*Document, error) {
	headerLines, body, hasHeader := fileheader.BlockStyle.SplitHeader(data)
	if !hasHeader {
		headerLines, body, hasHeader = fileheader.BlockStyle.Split(data)
	}

	raw, err := DecodeObject(body)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if doc.Comment == "" && hasHeader {
		doc.Comment = strings.Join(headerLines, "\n")
	}
	return doc, nil
}

// DecodeObject decodes a JSON or YAML mapping, keeping key order.
func DecodeObject(data []byte) (Object, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return Object{}, &packagetypes.DecodeError{Reason: packagetypes.DecodeReasonSyntax, Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Object{}, &packagetypes.DecodeError{
			Reason: packagetypes.DecodeReasonSyntax, Details: "empty document",
		}
	}

	v, err := fromYAML(doc.Content[0])
	if err != nil {
		return Object{}, err
	}
	obj, ok := v.(Object)
	if !ok {
		return Object{}, &packagetypes.DecodeError{
			Reason:  packagetypes.DecodeReasonSyntax,
			Details: fmt.Sprintf("top level must be a mapping, got %T", v),
		}
	}
	return obj, nil
}

func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAML(n.Alias)

	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return obj, nil

	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil

	case yaml.ScalarNode:
		return scalarFromYAML(n)
	}

	return nil, &packagetypes.DecodeError{
		Reason:  packagetypes.DecodeReasonSyntax,
		Details: fmt.Sprintf("unexpected node kind %d at line %d", n.Kind, n.Line),
	}
}

func scalarFromYAML(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, &packagetypes.DecodeError{Reason: packagetypes.DecodeReasonSyntax, Err: err}
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, &packagetypes.DecodeError{Reason: packagetypes.DecodeReasonSyntax, Err: err}
		}
		return i, nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			var yf float64
			if derr := n.Decode(&yf); derr != nil {
				return nil, &packagetypes.DecodeError{Reason: packagetypes.DecodeReasonSyntax, Err: derr}
			}
			f = yf
		}
		return f, nil
	}
	// Strings and timestamps keep their literal form.
	return n.Value, nil
}
