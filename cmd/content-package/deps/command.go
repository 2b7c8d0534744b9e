package deps

import (
	"github.com/spf13/cobra"
	"go.uber.org/dig"

	"contentpackage.run/cmd/content-package/buildcmd"
	"contentpackage.run/cmd/content-package/headercmd"
	"contentpackage.run/cmd/content-package/inspectcmd"
	"contentpackage.run/cmd/content-package/modelcmd"
	"contentpackage.run/cmd/content-package/nodecmd"
	"contentpackage.run/cmd/content-package/treecmd"
	"contentpackage.run/cmd/content-package/versioncmd"
	internalcmd "contentpackage.run/internal/cmd"
	"contentpackage.run/internal/metrics"
	"contentpackage.run/internal/model"
	"contentpackage.run/internal/packages/resource"
)

type RootSubCommandResult struct {
	dig.Out

	SubCommand *cobra.Command `group:"rootSubCommands"`
}

func ProvideBuildCmd(builderFactory buildcmd.BuilderFactory, settings Settings) RootSubCommandResult {
	return RootSubCommandResult{
		SubCommand: buildcmd.NewCmd(builderFactory, buildcmd.Defaults{
			OutputDir:   settings.OutputDir,
			MetricsFile: settings.MetricsFile,
		}),
	}
}

func ProvideBuilderFactory(f LogFactory, recorder *metrics.Recorder, settings Settings) buildcmd.BuilderFactory {
	return newBuilderFactory(f, recorder, settings)
}

func newBuilderFactory(f LogFactory, recorder *metrics.Recorder, settings Settings) *defaultBuilderFactory {
	return &defaultBuilderFactory{
		logFactory: f,
		recorder:   recorder,
		createdBy:  settings.CreatedBy,
		s3:         settings.S3.LoaderConfig(),
	}
}

// Loggers are created on use, after flags were parsed.
type defaultBuilderFactory struct {
	logFactory LogFactory
	recorder   *metrics.Recorder
	createdBy  string
	s3         resource.S3Config
}

func (f *defaultBuilderFactory) Builder() buildcmd.Builder {
	return f.build()
}

func (f *defaultBuilderFactory) build() *internalcmd.Build {
	log := f.logFactory.Logger()

	return internalcmd.NewBuild(
		internalcmd.WithLog{Log: log},
		internalcmd.WithResolver{Resolver: resource.NewLoader(
			resource.WithLog{Log: log},
			resource.WithS3Config(f.s3),
		)},
		internalcmd.WithRecorder{Recorder: f.recorder},
		internalcmd.WithCreatedBy(f.createdBy),
	)
}

func ProvideNodeCmd(factory nodecmd.ProcessorFactory, settings Settings) RootSubCommandResult {
	return RootSubCommandResult{
		SubCommand: nodecmd.NewCmd(factory, nodecmd.Defaults{
			OutputDir:   settings.OutputDir,
			MetricsFile: settings.MetricsFile,
			HeaderLines: settings.HeaderLines,
		}),
	}
}

func ProvideProcessorFactory(
	f LogFactory, recorder *metrics.Recorder, settings Settings,
) nodecmd.ProcessorFactory {
	return &defaultProcessorFactory{
		logFactory:     f,
		builderFactory: newBuilderFactory(f, recorder, settings),
	}
}

type defaultProcessorFactory struct {
	logFactory     LogFactory
	builderFactory *defaultBuilderFactory
}

func (f *defaultProcessorFactory) Processor() nodecmd.Processor {
	log := f.logFactory.Logger()

	return internalcmd.NewNode(
		internalcmd.WithLog{Log: log},
		internalcmd.WithModelReader{Reader: model.NewReader(model.WithLog{Log: log})},
		internalcmd.WithBuild{Build: f.builderFactory.build()},
		internalcmd.WithHeader{Header: internalcmd.NewHeader(internalcmd.WithLog{Log: log})},
	)
}

func ProvideModelCmd() RootSubCommandResult {
	return RootSubCommandResult{
		SubCommand: modelcmd.NewCmd(model.NewReader()),
	}
}

func ProvideHeaderCmd(factory headercmd.HeaderFactory) RootSubCommandResult {
	return RootSubCommandResult{
		SubCommand: headercmd.NewCmd(factory),
	}
}

func ProvideHeaderFactory(f LogFactory) headercmd.HeaderFactory {
	return &defaultHeaderFactory{logFactory: f}
}

type defaultHeaderFactory struct {
	logFactory LogFactory
}

func (f *defaultHeaderFactory) Header() headercmd.Header {
	return internalcmd.NewHeader(internalcmd.WithLog{Log: f.logFactory.Logger()})
}

func ProvideTreeCmd(rendererFactory treecmd.RendererFactory) RootSubCommandResult {
	return RootSubCommandResult{
		SubCommand: treecmd.NewCmd(rendererFactory),
	}
}

func ProvideRendererFactory(f LogFactory) treecmd.RendererFactory {
	return &defaultRendererFactory{logFactory: f}
}

type defaultRendererFactory struct {
	logFactory LogFactory
}

func (f *defaultRendererFactory) Renderer() treecmd.Renderer {
	return internalcmd.NewTree(
		internalcmd.WithLog{
			Log: f.logFactory.Logger(),
		},
	)
}

func ProvideInspectCmd(factory inspectcmd.InspectorFactory) RootSubCommandResult {
	return RootSubCommandResult{
		SubCommand: inspectcmd.NewCmd(factory),
	}
}

func ProvideInspectorFactory(f LogFactory) inspectcmd.InspectorFactory {
	return &defaultInspectorFactory{logFactory: f}
}

type defaultInspectorFactory struct {
	logFactory LogFactory
}

func (f *defaultInspectorFactory) Inspector() inspectcmd.Inspector {
	return internalcmd.NewInspect(internalcmd.WithLog{Log: f.logFactory.Logger()})
}

func ProvideVersionCmd() RootSubCommandResult {
	return RootSubCommandResult{
		SubCommand: versioncmd.NewCmd(),
	}
}
