package fileheader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Context carries the comment lines of a file header.
type Context struct {
	CommentLines []string
}

// Header applies and extracts comment headers for one kind of text file.
type Header interface {
	// Name identifies the header kind, e.g. "json".
	Name() string
	// Accepts reports whether the file is of a kind this header handles.
	Accepts(file string) bool
	// Apply writes the comment lines to the top of the file, replacing a
	// previously applied header. Comments not written by Apply are kept.
	Apply(file string, ctx Context) error
	// Extract reads a previously applied header back. Files without one
	// yield no lines.
	Extract(file string) (Context, error)
}

// New returns a Header for files whose base name matches one of the glob patterns.
func New(name string, style Style, patterns ...string) (Header, error) {
	h := &commentHeader{name: name, style: style}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q for %s header: %w", p, name, err)
		}
		h.globs = append(h.globs, g)
	}
	return h, nil
}

// MustNew is like New but panics on invalid patterns.
func MustNew(name string, style Style, patterns ...string) Header {
	h, err := New(name, style, patterns...)
	if err != nil {
		panic(err)
	}
	return h
}

type commentHeader struct {
	name  string
	style Style
	globs []glob.Glob
}

func (h *commentHeader) Name() string { return h.name }

func (h *commentHeader) Accepts(file string) bool {
	base := filepath.Base(file)
	for _, g := range h.globs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (h *commentHeader) Apply(file string, ctx Context) error {
	info, err := os.Stat(file)
	if err != nil {
		return fmt.Errorf("stat %s: %w", file, err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	if err := os.WriteFile(file, h.style.Render(ctx.CommentLines, data), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	return nil
}

func (h *commentHeader) Extract(file string) (Context, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Context{}, fmt.Errorf("read %s: %w", file, err)
	}
	lines, _, _ := h.style.SplitHeader(data)
	return Context{CommentLines: lines}, nil
}

// Built-in headers.
var (
	Any  = MustNew("any", HashStyle, "*.any")
	Conf = MustNew("conf", HashStyle, "*.conf", "*.properties", "*.{yaml,yml}")
	JSON = MustNew("json", BlockStyle, "*.json")
	XML  = MustNew("xml", XMLStyle, "*.xml")
)

// Defaults lists the built-in headers in priority order.
var Defaults = []Header{Any, Conf, JSON, XML}

// Lookup returns the first header accepting the file.
func Lookup(file string, headers ...Header) (Header, bool) {
	if len(headers) == 0 {
		headers = Defaults
	}
	for _, h := range headers {
		if h.Accepts(file) {
			return h, true
		}
	}
	return nil, false
}

// ByName returns the built-in header with the given name.
func ByName(name string) (Header, bool) {
	for _, h := range Defaults {
		if h.Name() == name {
			return h, true
		}
	}
	return nil, false
}
