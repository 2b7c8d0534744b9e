// Package postprocess runs the closed, ordered set of processors that
// transform generated files after they have been written.
package postprocess

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	"contentpackage.run/internal/fileheader"
	"contentpackage.run/internal/packages/packageassembly"
	"contentpackage.run/internal/packages/packageoptions"
)

// Context is the per file input of all processors.
type Context struct {
	// Options are the raw processor options of the file.
	Options map[string]any
	// HeaderLines are written as file header, if any.
	HeaderLines []string
}

// Processor transforms a single file.
type Processor interface {
	Name() string
	Accepts(file string, pctx Context) bool
	// Apply processes file and returns the path of the resulting file,
	// which may differ from file when the processor replaces it.
	Apply(ctx context.Context, file string, pctx Context) (string, error)
}

// Packager builds content packages, implemented by *packageassembly.Assembler.
type Packager interface {
	Accepts(file string, rawOptions map[string]any) bool
	Package(ctx context.Context, input string, opts vaultv1alpha1.PackageOptions) (packageassembly.Result, error)
}

// DefaultProcessors returns the processors in the order they run:
// content packaging first, file headers after.
func DefaultProcessors(packager Packager) []Processor {
	procs := []Processor{NewContentPackage(packager)}
	for _, h := range fileheader.Defaults {
		procs = append(procs, NewFileHeader(h))
	}
	return procs
}

func NewPipeline(processors []Processor, opts ...PipelineOption) *Pipeline {
	var cfg PipelineConfig

	cfg.Option(opts...)
	cfg.Default()

	return &Pipeline{cfg: cfg, processors: processors}
}

// Pipeline applies every accepting processor in order.
type Pipeline struct {
	cfg        PipelineConfig
	processors []Processor
}

type PipelineConfig struct {
	Log logr.Logger
}

func (c *PipelineConfig) Option(opts ...PipelineOption) {
	for _, opt := range opts {
		opt.ConfigurePipeline(c)
	}
}

func (c *PipelineConfig) Default() {
	if c.Log.GetSink() == nil {
		c.Log = logr.Discard()
	}
}

type PipelineOption interface {
	ConfigurePipeline(*PipelineConfig)
}

type WithLog struct{ Log logr.Logger }

func (w WithLog) ConfigurePipeline(c *PipelineConfig) {
	c.Log = w.Log
}

// Outcome of processing one file.
type Outcome struct {
	// File is the final file after all processors ran.
	File string
	// Applied lists the names of processors that ran.
	Applied []string
}

// Process runs all processors accepting the file. Each processor sees the
// file produced by the one before it.
func (p *Pipeline) Process(ctx context.Context, file string, pctx Context) (Outcome, error) {
	out := Outcome{File: file}
	for _, proc := range p.processors {
		if !proc.Accepts(out.File, pctx) {
			continue
		}
		p.cfg.Log.V(1).Info("applying processor", "processor", proc.Name(), "file", out.File)

		next, err := proc.Apply(ctx, out.File, pctx)
		if err != nil {
			return out, fmt.Errorf("%s processor: %w", proc.Name(), err)
		}
		out.File = next
		out.Applied = append(out.Applied, proc.Name())
	}
	return out, nil
}

// ContentPackageName is the name of the content package processor.
const ContentPackageName = "content-package"

func NewContentPackage(packager Packager) *ContentPackage {
	return &ContentPackage{packager: packager}
}

// ContentPackage replaces a content description with its package archive.
type ContentPackage struct {
	packager Packager
}

func (c *ContentPackage) Name() string { return ContentPackageName }

func (c *ContentPackage) Accepts(file string, pctx Context) bool {
	return c.packager.Accepts(file, pctx.Options)
}

func (c *ContentPackage) Apply(ctx context.Context, file string, pctx Context) (string, error) {
	opts, err := packageoptions.FromMap(pctx.Options)
	if err != nil {
		return "", err
	}
	res, err := c.packager.Package(ctx, file, opts)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

func NewFileHeader(h fileheader.Header) *FileHeader {
	return &FileHeader{header: h}
}

// FileHeader writes the header lines into text files of one kind.
type FileHeader struct {
	header fileheader.Header
}

func (f *FileHeader) Name() string { return "file-header-" + f.header.Name() }

func (f *FileHeader) Accepts(file string, pctx Context) bool {
	return len(pctx.HeaderLines) > 0 && f.header.Accepts(file)
}

func (f *FileHeader) Apply(_ context.Context, file string, pctx Context) (string, error) {
	if err := f.header.Apply(file, fileheader.Context{CommentLines: pctx.HeaderLines}); err != nil {
		return "", err
	}
	return file, nil
}
