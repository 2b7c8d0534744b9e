package packageassembly

import (
	"github.com/go-logr/logr"

	"contentpackage.run/internal/packages/resource"
)

type WithLog struct{ Log logr.Logger }

func (w WithLog) ConfigureAssembler(c *AssemblerConfig) {
	c.Log = w.Log
}

type WithClock struct{ Clock Clock }

func (w WithClock) ConfigureAssembler(c *AssemblerConfig) {
	c.Clock = w.Clock
}

type WithResolver struct{ Resolver resource.Resolver }

func (w WithResolver) ConfigureAssembler(c *AssemblerConfig) {
	c.Resolver = w.Resolver
}

type WithOutputDir string

func (w WithOutputDir) ConfigureAssembler(c *AssemblerConfig) {
	c.OutputDir = string(w)
}

type WithNamespaces map[string]string

func (w WithNamespaces) ConfigureAssembler(c *AssemblerConfig) {
	if c.Namespaces == nil {
		c.Namespaces = map[string]string{}
	}
	for prefix, uri := range w {
		c.Namespaces[prefix] = uri
	}
}

type WithCreatedBy string

func (w WithCreatedBy) ConfigureAssembler(c *AssemblerConfig) {
	c.CreatedBy = string(w)
}
