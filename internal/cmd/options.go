package cmd

import (
	"github.com/go-logr/logr"

	"contentpackage.run/internal/metrics"
	"contentpackage.run/internal/model"
	"contentpackage.run/internal/packages/resource"
)

type WithBuild struct{ Build *Build }

func (w WithBuild) ConfigureNode(c *NodeConfig) {
	c.Build = w.Build
}

type WithClock struct{ Clock Clock }

func (w WithClock) ConfigureBuild(c *BuildConfig) {
	c.Clock = w.Clock
}

func (w WithClock) ConfigureHeader(c *HeaderConfig) {
	c.Clock = w.Clock
}

type WithCreatedBy string

func (w WithCreatedBy) ConfigureBuild(c *BuildConfig) {
	c.CreatedBy = string(w)
}

type WithHeader struct{ Header *Header }

func (w WithHeader) ConfigureNode(c *NodeConfig) {
	c.Header = w.Header
}

type WithHeaderLines []string

func (w WithHeaderLines) ConfigureProcessNode(c *ProcessNodeConfig) {
	c.HeaderLines = []string(w)
}

type WithLog struct{ Log logr.Logger }

func (w WithLog) ConfigureBuild(c *BuildConfig) {
	c.Log = w.Log
}

func (w WithLog) ConfigureHeader(c *HeaderConfig) {
	c.Log = w.Log
}

func (w WithLog) ConfigureInspect(c *InspectConfig) {
	c.Log = w.Log
}

func (w WithLog) ConfigureNode(c *NodeConfig) {
	c.Log = w.Log
}

func (w WithLog) ConfigureTree(c *TreeConfig) {
	c.Log = w.Log
}

type WithMetricsFile string

func (w WithMetricsFile) ConfigureBuildPackage(c *BuildPackageConfig) {
	c.MetricsFile = string(w)
}

func (w WithMetricsFile) ConfigureProcessNode(c *ProcessNodeConfig) {
	c.MetricsFile = string(w)
}

type WithModelReader struct{ Reader *model.Reader }

func (w WithModelReader) ConfigureNode(c *NodeConfig) {
	c.Reader = w.Reader
}

type WithOptionsFile string

func (w WithOptionsFile) ConfigureBuildPackage(c *BuildPackageConfig) {
	c.OptionsFile = string(w)
}

type WithOutputDir string

func (w WithOutputDir) ConfigureBuildPackage(c *BuildPackageConfig) {
	c.OutputDir = string(w)
}

func (w WithOutputDir) ConfigureProcessNode(c *ProcessNodeConfig) {
	c.OutputDir = string(w)
}

type WithRecorder struct{ Recorder *metrics.Recorder }

func (w WithRecorder) ConfigureBuild(c *BuildConfig) {
	c.Recorder = w.Recorder
}

type WithResolver struct{ Resolver resource.Resolver }

func (w WithResolver) ConfigureBuild(c *BuildConfig) {
	c.Resolver = w.Resolver
}

type WithRootPath string

func (w WithRootPath) ConfigureRenderContent(c *RenderContentConfig) {
	c.RootPath = string(w)
}

type WithShowProperties bool

func (w WithShowProperties) ConfigureRenderContent(c *RenderContentConfig) {
	c.ShowProperties = bool(w)
}
