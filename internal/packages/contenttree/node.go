package contenttree

import (
	"sort"
	"strings"
)

const (
	PropertyPrimaryType = "jcr:primaryType"
	PropertyMixinTypes  = "jcr:mixinTypes"
)

// Node is a single repository node with its properties and ordered children.
type Node struct {
	PrimaryType string
	Properties  map[string]Value
	Children    []Child
}

// Child is a named child node. Children keep their declaration order.
type Child struct {
	Name string
	Node *Node
}

// NewNode returns an empty node of the given primary type.
func NewNode(primaryType string) *Node {
	return &Node{
		PrimaryType: primaryType,
		Properties:  map[string]Value{},
	}
}

// SetProperty sets or replaces a property and returns the node for chaining.
func (n *Node) SetProperty(name string, v Value) *Node {
	if n.Properties == nil {
		n.Properties = map[string]Value{}
	}
	n.Properties[name] = v
	return n
}

// AddChild appends a child node. A child with the same name is replaced in place.
func (n *Node) AddChild(name string, child *Node) *Node {
	for i := range n.Children {
		if n.Children[i].Name == name {
			n.Children[i].Node = child
			return n
		}
	}
	n.Children = append(n.Children, Child{Name: name, Node: child})
	return n
}

// Child returns the direct child with the given name or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c.Node
		}
	}
	return nil
}

// PropertyNames returns all property names sorted lexically.
func (n *Node) PropertyNames() []string {
	names := make([]string, 0, len(n.Properties))
	for name := range n.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WalkFunc is called for every node in depth-first, declaration order.
// path is slash separated and relative to the walked root, "" for the root itself.
type WalkFunc func(path string, node *Node) error

// Walk traverses the tree rooted at n.
func (n *Node) Walk(fn WalkFunc) error {
	return walk("", n, fn)
}

func walk(path string, n *Node, fn WalkFunc) error {
	if err := fn(path, n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := walk(joinPath(path, c.Name), c.Node, fn); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// Equal compares two trees. Property order is irrelevant, child order is significant.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.PrimaryType != o.PrimaryType ||
		len(n.Properties) != len(o.Properties) ||
		len(n.Children) != len(o.Children) {
		return false
	}
	for name, v := range n.Properties {
		ov, ok := o.Properties[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	for i := range n.Children {
		if n.Children[i].Name != o.Children[i].Name ||
			!n.Children[i].Node.Equal(o.Children[i].Node) {
			return false
		}
	}
	return true
}

// Prefix returns the namespace prefix of a qualified JCR name, "" if unqualified.
func Prefix(name string) string {
	if i := strings.IndexByte(name, ':'); i > 0 {
		return name[:i]
	}
	return ""
}
