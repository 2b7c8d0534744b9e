package resource

import (
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-logr/logr"

	"contentpackage.run/internal/packages/packagetypes"
)

// Locator prefixes understood by the Loader.
const (
	FilePrefix      = "file:"
	ClasspathPrefix = "classpath:"
	BundledPrefix   = "bundled:"
	S3Scheme        = "s3://"
)

//go:embed bundled
var bundled embed.FS

// Bundled returns the resources shipped with the binary, rooted at the bundled folder.
func Bundled() fs.FS {
	sub, err := fs.Sub(bundled, "bundled")
	if err != nil {
		panic(err)
	}
	return sub
}

// Resolver opens resources referenced by a locator string.
type Resolver interface {
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
}

// Extension returns the lower-cased file extension of the locator without dot
// or "" if there is none.
func Extension(locator string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(filepath.ToSlash(locator)), "."))
}

// ReadAll opens and fully reads the resource behind locator.
func ReadAll(ctx context.Context, r Resolver, locator string) (data []byte, err error) {
	rc, err := r.Open(ctx, locator)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cErr := rc.Close(); err == nil && cErr != nil {
			err = &packagetypes.IOError{Op: "close", Path: locator, Err: cErr}
		}
	}()

	data, err = io.ReadAll(rc)
	if err != nil {
		return nil, &packagetypes.IOError{Op: "read", Path: locator, Err: err}
	}
	return data, nil
}

func NewLoader(opts ...LoaderOption) *Loader {
	var cfg LoaderConfig

	cfg.Option(opts...)
	cfg.Default()

	return &Loader{cfg: cfg, newS3: newS3Client}
}

// Loader resolves file paths, bundled resources and S3 objects.
// It is safe for concurrent use.
type Loader struct {
	cfg LoaderConfig

	newS3    func(context.Context, S3Config) (ObjectGetter, error)
	s3Once   sync.Once
	s3Client ObjectGetter
	s3Err    error
}

type LoaderConfig struct {
	Log logr.Logger
	// Bundled backs classpath: and bundled: locators.
	Bundled fs.FS
	// S3 client, created once from S3Config on first use when nil.
	S3       ObjectGetter
	S3Config S3Config
}

func (c *LoaderConfig) Option(opts ...LoaderOption) {
	for _, opt := range opts {
		opt.ConfigureLoader(c)
	}
}

func (c *LoaderConfig) Default() {
	if c.Log.GetSink() == nil {
		c.Log = logr.Discard()
	}

	if c.Bundled == nil {
		c.Bundled = Bundled()
	}
}

type LoaderOption interface {
	ConfigureLoader(*LoaderConfig)
}

type baseDirKey struct{}

// WithBaseDir returns a context in which relative file locators are resolved
// against dir instead of the working directory.
func WithBaseDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, baseDirKey{}, dir)
}

// BaseDirFromContext returns the directory set by WithBaseDir or "".
func BaseDirFromContext(ctx context.Context) string {
	dir, _ := ctx.Value(baseDirKey{}).(string)
	return dir
}

func (l *Loader) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(locator, S3Scheme):
		return l.openS3(ctx, locator)
	case strings.HasPrefix(locator, ClasspathPrefix):
		return l.openBundled(locator, strings.TrimPrefix(locator, ClasspathPrefix))
	case strings.HasPrefix(locator, BundledPrefix):
		return l.openBundled(locator, strings.TrimPrefix(locator, BundledPrefix))
	default:
		return l.openFile(ctx, locator, strings.TrimPrefix(locator, FilePrefix))
	}
}

func (l *Loader) openBundled(locator, name string) (io.ReadCloser, error) {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	l.cfg.Log.V(1).Info("opening bundled resource", "name", name)

	f, err := l.cfg.Bundled.Open(name)
	if err != nil {
		return nil, &packagetypes.ResourceNotFoundError{Locator: locator, Err: err}
	}
	return f, nil
}

func (l *Loader) openFile(ctx context.Context, locator, name string) (io.ReadCloser, error) {
	if dir := BaseDirFromContext(ctx); dir != "" && !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	l.cfg.Log.V(1).Info("opening file resource", "path", name)

	f, err := os.Open(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &packagetypes.ResourceNotFoundError{Locator: locator, Err: err}
	case err != nil:
		return nil, &packagetypes.IOError{Op: "open", Path: name, Err: err}
	}
	return f, nil
}
