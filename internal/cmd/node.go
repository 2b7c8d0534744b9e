package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-logr/logr"

	"contentpackage.run/internal/model"
	"contentpackage.run/internal/postprocess"
)

func NewNode(opts ...NodeOption) *Node {
	var cfg NodeConfig

	cfg.Option(opts...)
	cfg.Default()

	return &Node{
		cfg: cfg,
	}
}

// Node packages every file the model of a node directory flags for packaging.
type Node struct {
	cfg NodeConfig
}

type NodeConfig struct {
	Log    logr.Logger
	Reader *model.Reader
	Build  *Build
	Header *Header
}

func (c *NodeConfig) Option(opts ...NodeOption) {
	for _, opt := range opts {
		opt.ConfigureNode(c)
	}
}

func (c *NodeConfig) Default() {
	if c.Log.GetSink() == nil {
		c.Log = logr.Discard()
	}

	if c.Reader == nil {
		c.Reader = model.NewReader(model.WithLog{Log: c.Log})
	}

	if c.Build == nil {
		c.Build = NewBuild(WithLog{Log: c.Log})
	}

	if c.Header == nil {
		c.Header = NewHeader(WithLog{Log: c.Log})
	}
}

type NodeOption interface {
	ConfigureNode(*NodeConfig)
}

// NodeFileResult is the outcome for one flagged file.
type NodeFileResult struct {
	Input   string
	Output  string
	Role    string
	Applied []string
}

// ProcessNode runs the post-processing pipeline over all flagged files of
// nodeDir, one after the other. Processing stops at the first failure.
func (n *Node) ProcessNode(
	ctx context.Context, nodeDir string, opts ...ProcessNodeOption,
) ([]NodeFileResult, error) {
	var cfg ProcessNodeConfig

	cfg.Option(opts...)

	files, err := n.cfg.Reader.ContentPackagesForNode(nodeDir)
	if err != nil {
		return nil, fmt.Errorf("reading model of %s: %w", nodeDir, err)
	}

	pipeline := postprocess.NewPipeline(
		postprocess.DefaultProcessors(n.cfg.Build.Assembler(cfg.OutputDir)),
		postprocess.WithLog{Log: n.cfg.Log},
	)

	results := make([]NodeFileResult, 0, len(files))
	for _, f := range files {
		lines, err := n.cfg.Header.RenderLines(cfg.HeaderLines, HeaderData{
			File: filepath.Base(f.Path),
			Node: filepath.Base(nodeDir),
			Role: f.Role,
		})
		if err != nil {
			return results, err
		}

		out, err := pipeline.Process(ctx, f.Path, postprocess.Context{
			Options:     f.Options,
			HeaderLines: lines,
		})
		if err != nil {
			return results, fmt.Errorf("processing %s: %w", f.Path, err)
		}

		results = append(results, NodeFileResult{
			Input:   f.Path,
			Output:  out.File,
			Role:    f.Role,
			Applied: out.Applied,
		})
	}

	if cfg.MetricsFile != "" {
		if err := n.cfg.Build.cfg.Recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			n.cfg.Log.Error(err, "writing metrics")
		}
	}

	return results, nil
}

type ProcessNodeConfig struct {
	OutputDir   string
	HeaderLines []string
	MetricsFile string
}

func (c *ProcessNodeConfig) Option(opts ...ProcessNodeOption) {
	for _, opt := range opts {
		opt.ConfigureProcessNode(c)
	}
}

type ProcessNodeOption interface {
	ConfigureProcessNode(*ProcessNodeConfig)
}
