package jcrxml

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"contentpackage.run/internal/packages/contenttree"
)

// RootElement is the element name of the serialized top level node.
const RootElement = "jcr:root"

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Serialize encodes a node and all of its descendants as a DocView XML document.
func Serialize(root *contenttree.Node, opts ...SerializeOption) ([]byte, error) {
	var cfg SerializeConfig

	cfg.Option(opts...)
	cfg.Default()

	namespaces, err := collectNamespaces(root, cfg.Namespaces)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(xmlHeader)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", cfg.Indent)

	nsAttrs := make([]xml.Attr, 0, len(namespaces))
	for _, ns := range namespaces {
		nsAttrs = append(nsAttrs, xml.Attr{Name: xml.Name{Local: "xmlns:" + ns.Prefix}, Value: ns.URI})
	}

	if err := encodeNode(enc, RootElement, root, nsAttrs); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("flush xml: %w", err)
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func encodeNode(enc *xml.Encoder, element string, n *contenttree.Node, extra []xml.Attr) error {
	start := xml.StartElement{Name: xml.Name{Local: element}, Attr: extra}
	start.Attr = append(start.Attr, xml.Attr{
		Name: xml.Name{Local: contenttree.PropertyPrimaryType}, Value: n.PrimaryType,
	})
	if mixins, ok := n.Properties[contenttree.PropertyMixinTypes]; ok {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: contenttree.PropertyMixinTypes},
			Value: FormatValue(contenttree.PropertyMixinTypes, mixins),
		})
	}
	for _, name := range n.PropertyNames() {
		if name == contenttree.PropertyMixinTypes || name == contenttree.PropertyPrimaryType {
			continue
		}
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: EncodeName(name)},
			Value: FormatValue(name, n.Properties[name]),
		})
	}

	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("encode element %s: %w", element, err)
	}
	for _, c := range n.Children {
		if err := encodeNode(enc, EncodeName(c.Name), c.Node, nil); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("encode element %s: %w", element, err)
	}
	return nil
}

type SerializeConfig struct {
	// Namespaces maps prefixes to URIs, DefaultNamespaces are always included.
	Namespaces map[string]string
	Indent     string
}

func (c *SerializeConfig) Option(opts ...SerializeOption) {
	for _, opt := range opts {
		opt.ConfigureSerialize(c)
	}
}

func (c *SerializeConfig) Default() {
	merged := make(map[string]string, len(DefaultNamespaces)+len(c.Namespaces))
	for p, uri := range DefaultNamespaces {
		merged[p] = uri
	}
	for p, uri := range c.Namespaces {
		merged[p] = uri
	}
	c.Namespaces = merged

	if c.Indent == "" {
		c.Indent = "    "
	}
}

type SerializeOption interface {
	ConfigureSerialize(*SerializeConfig)
}

// WithNamespaces registers additional namespace prefixes.
type WithNamespaces map[string]string

func (w WithNamespaces) ConfigureSerialize(c *SerializeConfig) {
	if c.Namespaces == nil {
		c.Namespaces = map[string]string{}
	}
	for p, uri := range w {
		c.Namespaces[p] = uri
	}
}

// WithIndent sets the indentation of nested elements.
type WithIndent string

func (w WithIndent) ConfigureSerialize(c *SerializeConfig) {
	c.Indent = string(w)
}
