package vaultmeta

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	"contentpackage.run/internal/packages/contenttree"
	"contentpackage.run/internal/packages/packagetypes"
)

// Property keys of properties.xml.
const (
	PropertyGroup                 = "group"
	PropertyName                  = "name"
	PropertyVersion               = "version"
	PropertyDescription           = "description"
	PropertyACHandling            = "acHandling"
	PropertyPackageType           = "packageType"
	PropertyCreated               = "created"
	PropertyCreatedBy             = "createdBy"
	PropertyRequiresRoot          = "requiresRoot"
	PropertyAllowIndexDefinitions = "allowIndexDefinitions"
)

const (
	propertiesDocType = `<!DOCTYPE properties SYSTEM "http://java.sun.com/dtd/properties.dtd">`
	propertiesComment = "FileVault Package Properties"
)

type propertiesXML struct {
	XMLName xml.Name   `xml:"properties"`
	Comment string     `xml:"comment"`
	Entries []entryXML `xml:"entry"`
}

type entryXML struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Properties returns the non-blank package properties by key.
func Properties(opts vaultv1alpha1.PackageOptions, created time.Time) map[string]string {
	props := map[string]string{}
	set := func(k, v string) {
		if v != "" {
			props[k] = v
		}
	}

	set(PropertyGroup, opts.Group)
	set(PropertyName, opts.Name)
	set(PropertyVersion, opts.Version)
	set(PropertyDescription, opts.Description)
	set(PropertyACHandling, string(opts.ACHandling))
	set(PropertyPackageType, string(opts.PackageType))
	set(PropertyCreatedBy, opts.CreatedBy)
	if !created.IsZero() {
		set(PropertyCreated, created.Format(contenttree.DateLayout))
	}
	if opts.RequiresRoot != nil {
		set(PropertyRequiresRoot, strconv.FormatBool(*opts.RequiresRoot))
	}
	if opts.AllowIndexDefinitions != nil {
		set(PropertyAllowIndexDefinitions, strconv.FormatBool(*opts.AllowIndexDefinitions))
	}
	return props
}

// WriteProperties renders properties.xml in the Java properties XML format.
// Entries are sorted by key, blank values are left out.
func WriteProperties(opts vaultv1alpha1.PackageOptions, created time.Time) ([]byte, error) {
	props := Properties(opts, created)
	keys := maps.Keys(props)
	slices.Sort(keys)

	doc := propertiesXML{Comment: propertiesComment}
	for _, k := range keys {
		doc.Entries = append(doc.Entries, entryXML{Key: k, Value: props[k]})
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n")
	buf.WriteString(propertiesDocType + "\n")
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode package properties: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ParseProperties reads a properties.xml document.
func ParseProperties(data []byte) (map[string]string, error) {
	var doc propertiesXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &packagetypes.DecodeError{
			Reason: packagetypes.DecodeReasonSyntax,
			Path:   packagetypes.PropertiesXMLPath,
			Err:    err,
		}
	}

	props := make(map[string]string, len(doc.Entries))
	for _, e := range doc.Entries {
		props[e.Key] = e.Value
	}
	return props, nil
}
