package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	vaultv1alpha1 "contentpackage.run/apis/vault/v1alpha1"
	"contentpackage.run/internal/packages/packageassembly"
	"contentpackage.run/internal/packages/packagetypes"
	"contentpackage.run/internal/packages/vaultfilter"
	"contentpackage.run/internal/packages/vaultmeta"
)

func NewInspect(opts ...InspectOption) *Inspect {
	var cfg InspectConfig

	cfg.Option(opts...)
	cfg.Default()

	return &Inspect{
		cfg: cfg,
	}
}

// Inspect reads back written content packages.
type Inspect struct {
	cfg InspectConfig
}

type InspectConfig struct {
	Log logr.Logger
}

func (c *InspectConfig) Option(opts ...InspectOption) {
	for _, opt := range opts {
		opt.ConfigureInspect(c)
	}
}

func (c *InspectConfig) Default() {
	if c.Log.GetSink() == nil {
		c.Log = logr.Discard()
	}
}

type InspectOption interface {
	ConfigureInspect(*InspectConfig)
}

// PackageInfo summarizes a content package archive.
type PackageInfo struct {
	Path       string
	Properties map[string]string
	Filters    []vaultv1alpha1.FilterSpec
	// Entries in archive order.
	Entries []EntryInfo
}

type EntryInfo struct {
	Path string
	Size int
}

func (i *Inspect) Package(_ context.Context, path string) (*PackageInfo, error) {
	i.cfg.Log.Info("reading package", "path", path)

	files, order, err := packageassembly.ReadArchive(path)
	if err != nil {
		return nil, err
	}

	info := &PackageInfo{Path: path}
	for _, name := range order {
		info.Entries = append(info.Entries, EntryInfo{Path: name, Size: len(files[name])})
	}

	props, ok := files[packagetypes.PropertiesXMLPath]
	if !ok {
		return nil, fmt.Errorf("%s: missing %s", path, packagetypes.PropertiesXMLPath)
	}
	if info.Properties, err = vaultmeta.ParseProperties(props); err != nil {
		return nil, err
	}

	filter, ok := files[packagetypes.FilterXMLPath]
	if !ok {
		return nil, fmt.Errorf("%s: missing %s", path, packagetypes.FilterXMLPath)
	}
	if info.Filters, err = vaultfilter.Parse(filter); err != nil {
		return nil, err
	}

	return info, nil
}

// PropertiesTable lists package properties sorted by key.
func (p *PackageInfo) PropertiesTable() *TextTable {
	table := NewTextTable("Property", "Value")

	keys := maps.Keys(p.Properties)
	slices.Sort(keys)
	for _, k := range keys {
		table.AddRow(k, p.Properties[k])
	}
	return table
}

// FiltersTable lists filters with their rules in declaration order.
func (p *PackageInfo) FiltersTable() *TextTable {
	table := NewTextTable("Filter", "Mode", "Rules")

	for _, f := range p.Filters {
		rules := make([]string, 0, len(f.Rules))
		for _, r := range f.Rules {
			rules = append(rules, string(r.Kind)+":"+r.Pattern)
		}
		mode := f.Mode
		if mode == "" {
			mode = "-"
		}
		table.AddRow(f.Root, mode, strings.Join(rules, " "))
	}
	return table
}

// EntriesTable lists archive entries with their uncompressed sizes.
func (p *PackageInfo) EntriesTable() *TextTable {
	table := NewTextTable("Entry", "Size")

	for _, e := range p.Entries {
		table.AddRow(e.Path, e.Size)
	}
	return table
}
