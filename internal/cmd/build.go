package cmd

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	"contentpackage.run/internal/metrics"
	"contentpackage.run/internal/packages/packageassembly"
	"contentpackage.run/internal/packages/packageoptions"
	"contentpackage.run/internal/packages/resource"
)

func NewBuild(opts ...BuildOption) *Build {
	var cfg BuildConfig

	cfg.Option(opts...)
	cfg.Default()

	return &Build{
		cfg: cfg,
	}
}

// Build packages single content description files.
type Build struct {
	cfg BuildConfig
}

type BuildConfig struct {
	Log       logr.Logger
	Clock     Clock
	Resolver  resource.Resolver
	Recorder  *metrics.Recorder
	CreatedBy string
}

func (c *BuildConfig) Option(opts ...BuildOption) {
	for _, opt := range opts {
		opt.ConfigureBuild(c)
	}
}

func (c *BuildConfig) Default() {
	if c.Log.GetSink() == nil {
		c.Log = logr.Discard()
	}

	if c.Clock == nil {
		c.Clock = &defaultClock{}
	}

	if c.Resolver == nil {
		c.Resolver = resource.NewLoader(resource.WithLog{Log: c.Log})
	}

	if c.Recorder == nil {
		c.Recorder = metrics.NewRecorder()
	}
}

type BuildOption interface {
	ConfigureBuild(*BuildConfig)
}

// Assembler returns an assembler writing to outputDir, instrumented with the
// configured metrics recorder.
func (b *Build) Assembler(outputDir string) *InstrumentedAssembler {
	return &InstrumentedAssembler{
		Assembler: packageassembly.NewAssembler(
			packageassembly.WithLog{Log: b.cfg.Log},
			packageassembly.WithClock{Clock: b.cfg.Clock},
			packageassembly.WithResolver{Resolver: b.cfg.Resolver},
			packageassembly.WithOutputDir(outputDir),
			packageassembly.WithCreatedBy(b.cfg.CreatedBy),
		),
		clock:    b.cfg.Clock,
		recorder: b.cfg.Recorder,
	}
}

// BuildPackage packages the input file using the options file given through
// WithOptionsFile.
func (b *Build) BuildPackage(
	ctx context.Context, input string, opts ...BuildPackageOption,
) (packageassembly.Result, error) {
	var cfg BuildPackageConfig

	cfg.Option(opts...)

	if cfg.OptionsFile == "" {
		return packageassembly.Result{}, fmt.Errorf("%w: options file required", ErrInvalidArgs)
	}

	b.cfg.Log.Info("loading package options", "path", cfg.OptionsFile)
	pkgOpts, err := packageoptions.Load(cfg.OptionsFile)
	if err != nil {
		return packageassembly.Result{}, fmt.Errorf("loading package options: %w", err)
	}

	res, err := b.Assembler(cfg.OutputDir).Package(ctx, input, pkgOpts)

	if cfg.MetricsFile != "" {
		if mErr := b.cfg.Recorder.WriteTextfile(cfg.MetricsFile); mErr != nil {
			b.cfg.Log.Error(mErr, "writing metrics")
		}
	}

	return res, err
}

type BuildPackageConfig struct {
	OptionsFile string
	OutputDir   string
	MetricsFile string
}

func (c *BuildPackageConfig) Option(opts ...BuildPackageOption) {
	for _, opt := range opts {
		opt.ConfigureBuildPackage(c)
	}
}

type BuildPackageOption interface {
	ConfigureBuildPackage(*BuildPackageConfig)
}

// InstrumentedAssembler records every packaging run.
type InstrumentedAssembler struct {
	*packageassembly.Assembler

	clock    Clock
	recorder *metrics.Recorder
}

func (a *InstrumentedAssembler) Package(
	ctx context.Context, input string, opts vaultv1alpha1.PackageOptions,
) (packageassembly.Result, error) {
	start := a.clock.Now()
	res, err := a.Assembler.Package(ctx, input, opts)
	a.recorder.ObserveBuild(opts.Group, opts.Name, res.Path, res.RemoveErr, err, a.clock.Now().Sub(start))

	return res, err
}
