package jcrxml

import (
	"fmt"
	"sort"
	"strings"

	"contentpackage.run/internal/packages/contenttree"
	"contentpackage.run/internal/packages/packagetypes"
)

// DefaultNamespaces maps well known prefixes to their namespace URIs.
var DefaultNamespaces = map[string]string{
	"jcr":     "http://www.jcp.org/jcr/1.0",
	"nt":      "http://www.jcp.org/jcr/nt/1.0",
	"mix":     "http://www.jcp.org/jcr/mix/1.0",
	"sv":      "http://www.jcp.org/jcr/sv/1.0",
	"rep":     "internal",
	"oak":     "http://jackrabbit.apache.org/oak/ns/1.0",
	"sling":   "http://sling.apache.org/jcr/sling/1.0",
	"cq":      "http://www.day.com/jcr/cq/1.0",
	"dam":     "http://www.day.com/dam/1.0",
	"vlt":     "http://www.day.com/jcr/vault/1.0",
	"granite": "http://www.adobe.com/jcr/granite/1.0",
	"social":  "http://www.adobe.com/social/1.0",
}

type namespace struct {
	Prefix string
	URI    string
}

// collectNamespaces scans the whole tree once so every prefix used anywhere is
// declared on the root element exactly once.
func collectNamespaces(root *contenttree.Node, known map[string]string) ([]namespace, error) {
	used := map[string]struct{}{"jcr": {}}
	use := func(name string) {
		if p := contenttree.Prefix(name); p != "" && p != "xml" {
			used[p] = struct{}{}
		}
	}

	err := root.Walk(func(path string, n *contenttree.Node) error {
		if i := strings.LastIndexByte(path, '/'); i >= 0 {
			use(path[i+1:])
		} else {
			use(path)
		}
		use(n.PrimaryType)
		for name, v := range n.Properties {
			use(name)
			if v.Type == contenttree.TypeName || name == contenttree.PropertyMixinTypes {
				for _, item := range v.Items {
					use(item)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]namespace, 0, len(used))
	for p := range used {
		uri, ok := known[p]
		if !ok {
			return nil, &packagetypes.DecodeError{
				Reason:  packagetypes.DecodeReasonUnknownNamespace,
				Details: fmt.Sprintf("prefix %q is not registered", p),
			}
		}
		out = append(out, namespace{Prefix: p, URI: uri})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out, nil
}
