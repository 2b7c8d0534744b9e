package deps

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"go.uber.org/zap/zapcore"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"contentpackage.run/cmd/content-package/rootcmd"
)

// loggerName prefixes every log line of the CLI.
const loggerName = "content-package"

// ProvideLogFactory configures logging from settings. The zap flags bound to
// the root command still override the settings once parsed.
func ProvideLogFactory(streams rootcmd.IOStreams, settings Settings) (LogFactory, error) {
	opts, err := newLogOptions(streams, settings)
	if err != nil {
		return nil, err
	}
	opts.BindFlags(flag.CommandLine)

	return &ZapLogFactory{opts: opts}, nil
}

func newLogOptions(streams rootcmd.IOStreams, settings Settings) (*zap.Options, error) {
	level, err := parseLogLevel(settings.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := &zap.Options{
		DestWriter:      streams.ErrOut,
		Level:           level,
		StacktraceLevel: zapcore.ErrorLevel,
	}
	switch strings.ToLower(settings.LogFormat) {
	case "", "console":
		opts.Development = true
	case "json":
	default:
		return nil, fmt.Errorf("unknown log format %q, expected console or json", settings.LogFormat)
	}

	return opts, nil
}

// parseLogLevel accepts zap level names or a logr verbosity,
// e.g. "2" enables log.V(2) messages.
func parseLogLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.ErrorLevel, nil
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return zapcore.Level(-v), nil
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

type LogFactory interface {
	Logger() logr.Logger
}

type ZapLogFactory struct {
	opts *zap.Options
}

func (f *ZapLogFactory) Logger() logr.Logger {
	return zap.New(zap.UseFlagOptions(f.opts)).WithName(loggerName)
}
