package deps

import (
	"os"

	"go.uber.org/dig"

	"contentpackage.run/cmd/content-package/rootcmd"
	"contentpackage.run/internal/metrics"
)

func Build() (*dig.Container, error) {
	container := dig.New()

	for _, c := range constructors() {
		if err := container.Provide(c); err != nil {
			return nil, err
		}
	}

	return container, nil
}

func constructors() []any {
	return []any{
		rootcmd.ProvideRootCmd,
		ProvideIOStreams,
		ProvideArgs,
		ProvideSettings,
		ProvideLogFactory,
		ProvideRecorder,
		ProvideBuildCmd,
		ProvideBuilderFactory,
		ProvideNodeCmd,
		ProvideProcessorFactory,
		ProvideModelCmd,
		ProvideHeaderCmd,
		ProvideHeaderFactory,
		ProvideTreeCmd,
		ProvideRendererFactory,
		ProvideInspectCmd,
		ProvideInspectorFactory,
		ProvideVersionCmd,
	}
}

func ProvideIOStreams() rootcmd.IOStreams {
	return rootcmd.IOStreams{
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

func ProvideArgs() []string {
	return os.Args[1:]
}

// ProvideRecorder shares one metrics registry between all commands of a process.
func ProvideRecorder() *metrics.Recorder {
	return metrics.NewRecorder()
}
