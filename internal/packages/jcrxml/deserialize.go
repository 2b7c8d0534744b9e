package jcrxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"contentpackage.run/internal/packages/contenttree"
	"contentpackage.run/internal/packages/packagetypes"
)

// Deserialize decodes a DocView XML document back into a node tree.
// Namespace declarations are dropped, names keep their prefixes.
func Deserialize(data []byte) (*contenttree.Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		root  *contenttree.Node
		stack []*contenttree.Node
	)
	for {
		// RawToken keeps prefixes instead of resolving them to URIs.
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &packagetypes.DecodeError{Reason: packagetypes.DecodeReasonSyntax, Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := qualifiedName(t.Name)
			node, err := nodeFromElement(name, t.Attr)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &packagetypes.DecodeError{
						Reason: packagetypes.DecodeReasonInvalidDocument, Details: "multiple root elements",
					}
				}
				root = node
			} else {
				stack[len(stack)-1].AddChild(DecodeName(name), node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, &packagetypes.DecodeError{
					Reason: packagetypes.DecodeReasonInvalidDocument, Details: "unbalanced end element",
				}
			}
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, &packagetypes.DecodeError{
			Reason: packagetypes.DecodeReasonInvalidDocument, Details: "no root element",
		}
	}
	if len(stack) != 0 {
		return nil, &packagetypes.DecodeError{
			Reason: packagetypes.DecodeReasonInvalidDocument, Details: "unclosed elements",
		}
	}
	return root, nil
}

func nodeFromElement(name string, attrs []xml.Attr) (*contenttree.Node, error) {
	node := contenttree.NewNode("")
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		attrName := DecodeName(qualifiedName(a.Name))
		if attrName == contenttree.PropertyPrimaryType {
			node.PrimaryType = a.Value
			continue
		}
		node.SetProperty(attrName, ParseValue(attrName, a.Value))
	}
	if node.PrimaryType == "" {
		return nil, &packagetypes.DecodeError{
			Reason: packagetypes.DecodeReasonMissingPrimaryType,
			Path:   DecodeName(name),
		}
	}
	return node, nil
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return fmt.Sprintf("%s:%s", n.Space, n.Local)
}
