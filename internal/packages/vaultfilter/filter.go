package vaultfilter

import (
	"bytes"
	"encoding/xml"
	"fmt"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	"contentpackage.run/internal/packages/packagetypes"
)

// Version of the workspace filter format.
const Version = "1.0"

type workspaceFilterXML struct {
	XMLName xml.Name    `xml:"workspaceFilter"`
	Version string      `xml:"version,attr"`
	Filters []filterXML `xml:"filter"`
}

type filterXML struct {
	Root string `xml:"root,attr"`
	Mode string `xml:"mode,attr,omitempty"`
	// include and exclude elements interleave, ",any" keeps their order.
	Rules []ruleXML `xml:",any"`
}

type ruleXML struct {
	XMLName xml.Name
	Pattern string `xml:"pattern,attr"`
}

// Compile renders filter specs into a workspace filter document.
// Filters and their rules keep declaration order and are never merged.
func Compile(specs []vaultv1alpha1.FilterSpec) ([]byte, error) {
	doc := workspaceFilterXML{Version: Version, Filters: make([]filterXML, 0, len(specs))}

	for i, spec := range specs {
		f := filterXML{Root: spec.Root, Mode: spec.Mode}
		for j, rule := range spec.Rules {
			switch rule.Kind {
			case vaultv1alpha1.FilterRuleInclude, vaultv1alpha1.FilterRuleExclude:
			default:
				return nil, fmt.Errorf("filter %d (%s) rule %d: unknown rule kind %q", i, spec.Root, j, rule.Kind)
			}
			f.Rules = append(f.Rules, ruleXML{
				XMLName: xml.Name{Local: string(rule.Kind)},
				Pattern: rule.Pattern,
			})
		}
		doc.Filters = append(doc.Filters, f)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode workspace filter: %w", err)
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// Parse reads a workspace filter document.
func Parse(data []byte) ([]vaultv1alpha1.FilterSpec, error) {
	var doc workspaceFilterXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &packagetypes.DecodeError{Reason: packagetypes.DecodeReasonSyntax, Path: packagetypes.FilterXMLPath, Err: err}
	}

	specs := make([]vaultv1alpha1.FilterSpec, 0, len(doc.Filters))
	for _, f := range doc.Filters {
		spec := vaultv1alpha1.FilterSpec{Root: f.Root, Mode: f.Mode}
		for _, r := range f.Rules {
			kind := vaultv1alpha1.FilterRuleKind(r.XMLName.Local)
			if kind != vaultv1alpha1.FilterRuleInclude && kind != vaultv1alpha1.FilterRuleExclude {
				return nil, &packagetypes.DecodeError{
					Reason:  packagetypes.DecodeReasonInvalidDocument,
					Path:    packagetypes.FilterXMLPath,
					Details: fmt.Sprintf("unexpected element %q in filter %s", r.XMLName.Local, f.Root),
				}
			}
			spec.Rules = append(spec.Rules, vaultv1alpha1.FilterRule{Kind: kind, Pattern: r.Pattern})
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
