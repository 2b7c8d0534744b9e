package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/disiqueira/gotree"
	"github.com/go-logr/logr"

	"contentpackage.run/internal/packages/contenttree"
	"contentpackage.run/internal/packages/packagetypes"
)

func NewTree(opts ...TreeOption) *Tree {
	var cfg TreeConfig

	cfg.Option(opts...)
	cfg.Default()

	return &Tree{
		cfg: cfg,
	}
}

// Tree renders content descriptions as a node tree.
type Tree struct {
	cfg TreeConfig
}

type TreeConfig struct {
	Log logr.Logger
}

func (c *TreeConfig) Option(opts ...TreeOption) {
	for _, opt := range opts {
		opt.ConfigureTree(c)
	}
}

func (c *TreeConfig) Default() {
	if c.Log.GetSink() == nil {
		c.Log = logr.Discard()
	}
}

type TreeOption interface {
	ConfigureTree(*TreeConfig)
}

func (t *Tree) RenderContent(_ context.Context, srcPath string, opts ...RenderContentOption) (string, error) {
	var cfg RenderContentConfig

	cfg.Option(opts...)

	t.cfg.Log.Info("loading content description", "path", srcPath)

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", &packagetypes.IOError{Op: "read", Path: srcPath, Err: err}
	}

	doc, err := contenttree.Decode(data)
	if err != nil {
		return "", fmt.Errorf("decoding content description: %w", err)
	}

	header := cfg.RootPath
	if header == "" {
		header = "jcr:root"
	}

	tree := gotree.New(fmt.Sprintf("%s [%s]", header, doc.Root.PrimaryType))
	addProperties(tree, doc.Root, cfg.ShowProperties)
	addChildren(tree, doc.Root, cfg.ShowProperties)

	return tree.Print(), nil
}

func addChildren(parent gotree.Tree, n *contenttree.Node, props bool) {
	for _, c := range n.Children {
		child := parent.Add(fmt.Sprintf("%s [%s]", c.Name, c.Node.PrimaryType))
		addProperties(child, c.Node, props)
		addChildren(child, c.Node, props)
	}
}

func addProperties(parent gotree.Tree, n *contenttree.Node, props bool) {
	if !props {
		return
	}
	for _, name := range n.PropertyNames() {
		v := n.Properties[name]
		value := strings.Join(v.Items, ", ")
		if v.Multi {
			value = "[" + value + "]"
		}
		parent.Add(fmt.Sprintf("@%s {%s} = %s", name, v.Type, value))
	}
}

type RenderContentConfig struct {
	RootPath       string
	ShowProperties bool
}

func (c *RenderContentConfig) Option(opts ...RenderContentOption) {
	for _, opt := range opts {
		opt.ConfigureRenderContent(c)
	}
}

type RenderContentOption interface {
	ConfigureRenderContent(*RenderContentConfig)
}
