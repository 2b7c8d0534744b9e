package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/go-logr/logr"

	"contentpackage.run/internal/fileheader"
)

var ErrUnsupportedFile = errors.New("no file header supports this file")

func NewHeader(opts ...HeaderOption) *Header {
	var cfg HeaderConfig

	cfg.Option(opts...)
	cfg.Default()

	return &Header{
		cfg: cfg,
	}
}

// Header renders header line templates and applies them to files.
type Header struct {
	cfg HeaderConfig
}

type HeaderConfig struct {
	Log   logr.Logger
	Clock Clock
}

func (c *HeaderConfig) Option(opts ...HeaderOption) {
	for _, opt := range opts {
		opt.ConfigureHeader(c)
	}
}

func (c *HeaderConfig) Default() {
	if c.Log.GetSink() == nil {
		c.Log = logr.Discard()
	}

	if c.Clock == nil {
		c.Clock = &defaultClock{}
	}
}

type HeaderOption interface {
	ConfigureHeader(*HeaderConfig)
}

// HeaderData is available to header line templates.
type HeaderData struct {
	// File name without directory.
	File string
	// Node directory name, if processed as part of a node.
	Node string
	// Role the file belongs to, if known.
	Role string
	Now  time.Time
}

// RenderLines executes every line as a template with sprig functions,
// e.g. "Generated {{ .Now | date \"2006-01-02\" }} for {{ .Role | upper }}".
func (h *Header) RenderLines(lines []string, data HeaderData) ([]string, error) {
	if data.Now.IsZero() {
		data.Now = h.cfg.Clock.Now()
	}

	rendered := make([]string, 0, len(lines))
	for i, line := range lines {
		tmpl, err := template.New(fmt.Sprintf("line-%d", i)).
			Funcs(sprig.TxtFuncMap()).
			Option("missingkey=error").
			Parse(line)
		if err != nil {
			return nil, fmt.Errorf("parsing header line %d: %w", i+1, err)
		}

		var b strings.Builder
		if err := tmpl.Execute(&b, data); err != nil {
			return nil, fmt.Errorf("rendering header line %d: %w", i+1, err)
		}
		// a template may expand to several lines
		rendered = append(rendered, strings.Split(b.String(), "\n")...)
	}
	return rendered, nil
}

// Apply renders lines and writes them as header into file.
func (h *Header) Apply(file string, lines []string, data HeaderData) error {
	hdr, ok := fileheader.Lookup(file)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, file)
	}
	if data.File == "" {
		data.File = filepath.Base(file)
	}

	rendered, err := h.RenderLines(lines, data)
	if err != nil {
		return err
	}

	h.cfg.Log.Info("applying file header", "file", file, "format", hdr.Name(), "lines", len(rendered))
	return hdr.Apply(file, fileheader.Context{CommentLines: rendered})
}

// Extract returns the header lines of file.
func (h *Header) Extract(file string) ([]string, error) {
	hdr, ok := fileheader.Lookup(file)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, file)
	}

	ctx, err := hdr.Extract(file)
	if err != nil {
		return nil, err
	}
	return ctx.CommentLines, nil
}
