package packageassembly

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-logr/logr"
	"golang.org/x/exp/slices"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	"contentpackage.run/internal/packages/contenttree"
	"contentpackage.run/internal/packages/jcrxml"
	"contentpackage.run/internal/packages/packageoptions"
	"contentpackage.run/internal/packages/packagetypes"
	"contentpackage.run/internal/packages/resource"
	"contentpackage.run/internal/packages/vaultfilter"
	"contentpackage.run/internal/packages/vaultmeta"
)

// Input file extensions the assembler can decode.
var supportedExtensions = []string{".json", ".yaml", ".yml"}

func NewAssembler(opts ...AssemblerOption) *Assembler {
	var cfg AssemblerConfig

	cfg.Option(opts...)
	cfg.Default()

	return &Assembler{cfg: cfg, removeInput: os.Remove}
}

// Assembler turns a content description file into a content package archive.
// It holds no state between runs, separate runs may execute concurrently as
// long as they write to different output paths.
type Assembler struct {
	cfg AssemblerConfig

	removeInput func(name string) error
}

type AssemblerConfig struct {
	Log      logr.Logger
	Clock    Clock
	Resolver resource.Resolver
	// OutputDir defaults to the directory of the input file.
	OutputDir string
	// Namespaces in addition to the well known ones.
	Namespaces map[string]string
	// CreatedBy is recorded when the options do not set it.
	CreatedBy string
}

func (c *AssemblerConfig) Option(opts ...AssemblerOption) {
	for _, opt := range opts {
		opt.ConfigureAssembler(c)
	}
}

func (c *AssemblerConfig) Default() {
	if c.Log.GetSink() == nil {
		c.Log = logr.Discard()
	}

	if c.Clock == nil {
		c.Clock = defaultClock{}
	}

	if c.Resolver == nil {
		c.Resolver = resource.NewLoader(resource.WithLog{Log: c.Log})
	}
}

type AssemblerOption interface {
	ConfigureAssembler(*AssemblerConfig)
}

type Clock interface {
	Now() time.Time
}

type defaultClock struct{}

func (defaultClock) Now() time.Time { return time.Now() }

// Result describes a packaging run.
type Result struct {
	// Path of the written archive.
	Path string
	// Entries in archive order.
	Entries []string
	// State reached, StateDone on success.
	State State
	// History of all states passed through.
	History []State
	// RemoveErr is set when the input could not be deleted after the
	// archive was written. The archive is still valid in that case.
	RemoveErr error
}

func (r *Result) transition(s State) {
	r.State = s
	r.History = append(r.History, s)
}

// Accepts reports whether the file is a content description that is marked
// for packaging by its raw options.
func (a *Assembler) Accepts(file string, rawOptions map[string]any) bool {
	return isSupportedInput(file) && packageoptions.HasMarker(rawOptions)
}

func isSupportedInput(file string) bool {
	return slices.Contains(supportedExtensions, strings.ToLower(filepath.Ext(file)))
}

// Package builds the archive for input and removes input afterwards.
// On failure no archive is left at the output path and the error is a
// *packagetypes.PackageError.
func (a *Assembler) Package(
	ctx context.Context, input string, opts vaultv1alpha1.PackageOptions,
) (Result, error) {
	res := Result{State: StateIdle, History: []State{StateIdle}}
	log := a.cfg.Log.WithValues("input", input, "group", opts.Group, "name", opts.Name)

	fail := func(err error) (Result, error) {
		res.transition(StateFailed)
		log.Error(err, "packaging failed")
		return res, &packagetypes.PackageError{Group: opts.Group, Name: opts.Name, Input: input, Err: err}
	}

	res.transition(StateValidating)
	if err := packageoptions.Validate(opts); err != nil {
		return fail(err)
	}
	if !isSupportedInput(input) {
		return fail(&packagetypes.DecodeError{
			Reason:  packagetypes.DecodeReasonUnsupportedExtension,
			Path:    input,
			Details: fmt.Sprintf("expected one of %s", strings.Join(supportedExtensions, ", ")),
		})
	}
	if opts.ACHandling != "" && !opts.ACHandling.IsKnown() {
		log.V(1).Info("unknown acHandling, passing through", "acHandling", opts.ACHandling)
	}
	if opts.CreatedBy == "" {
		opts.CreatedBy = a.cfg.CreatedBy
	}

	// relative thumbnail paths are relative to the content description
	ctx = resource.WithBaseDir(ctx, filepath.Dir(input))
	entries, err := a.buildEntries(ctx, log, input, &opts, &res)
	if err != nil {
		return fail(err)
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	outputDir := a.cfg.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(input)
	}
	outputPath := filepath.Join(outputDir, opts.Name+packagetypes.ArchiveExtension)

	if err := writeArchive(outputPath, entries, a.cfg.Clock.Now()); err != nil {
		return fail(err)
	}
	res.transition(StateWritten)
	res.Path = outputPath
	for _, e := range entries {
		res.Entries = append(res.Entries, e.Path)
	}
	log.Info("wrote content package", "path", outputPath, "entries", len(entries))

	if err := a.removeInput(input); err != nil && !errors.Is(err, os.ErrNotExist) {
		res.RemoveErr = &packagetypes.IOError{Op: "remove", Path: input, Err: err}
		log.Error(res.RemoveErr, "could not remove packaged input")
	} else {
		res.transition(StateSourceRemoved)
	}

	res.transition(StateDone)
	return res, nil
}

// buildEntries decodes the input and renders all archive entries in archive order.
func (a *Assembler) buildEntries(
	ctx context.Context, log logr.Logger, input string,
	opts *vaultv1alpha1.PackageOptions, res *Result,
) ([]packagetypes.Entry, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, &packagetypes.IOError{Op: "read", Path: input, Err: err}
	}
	doc, err := contenttree.Decode(data)
	if err != nil {
		return nil, err
	}
	if opts.Description == "" {
		opts.Description = doc.Comment
	}
	if dlog := log.V(2); dlog.Enabled() {
		dlog.Info("decoded content tree", "tree", spew.Sdump(doc.Root))
	}

	content, err := jcrxml.Serialize(doc.Root, jcrxml.WithNamespaces(a.cfg.Namespaces))
	if err != nil {
		return nil, err
	}
	res.transition(StateTreeBuilt)

	if len(opts.Filters) == 0 {
		opts.Filters = []vaultv1alpha1.FilterSpec{{Root: opts.RootPath}}
	}
	filter, err := vaultfilter.Compile(opts.Filters)
	if err != nil {
		return nil, err
	}
	res.transition(StateFilterBuilt)

	props, err := vaultmeta.WriteProperties(*opts, a.cfg.Clock.Now())
	if err != nil {
		return nil, err
	}
	definition, err := vaultmeta.WriteDefinition(ctx, *opts, a.cfg.Resolver)
	if err != nil {
		return nil, err
	}
	res.transition(StateMetadataBuilt)

	entries := []packagetypes.Entry{
		{Path: packagetypes.PropertiesXMLPath, Data: props},
		{Path: packagetypes.FilterXMLPath, Data: filter},
	}
	entries = append(entries, definition...)
	entries = append(entries, packagetypes.Entry{Path: ContentPath(opts.RootPath), Data: content})
	return entries, nil
}
