// Package generator holds the host side of every generator: option lookup, base image
// selection, image naming and the other defaults a concrete generator delegates to.
package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/thecloudstation/imagegen/pkg/component"
	"github.com/thecloudstation/imagegen/pkg/image"
	"github.com/thecloudstation/imagegen/pkg/project"
)

const (
	// FromModeDocker uses a plain image reference as base image
	FromModeDocker = "docker"

	// FromModeImageStreamTag uses an OpenShift ImageStreamTag as builder image
	FromModeImageStreamTag = "istag"

	// LatestTag is attached to images built from snapshot versions
	LatestTag = "latest"
)

// Base implements the parts of component.Generator that do not depend on the framework
type Base struct {
	name     string
	ctx      *component.GeneratorContext
	selector FromSelector
	config   map[string]string
	logger   hclog.Logger
}

// NewBase creates a Base for the named generator. selector may be nil when the
// generator has no default base image.
func NewBase(name string, ctx *component.GeneratorContext, selector FromSelector) Base {
	if ctx == nil {
		ctx = component.NewGeneratorContext(nil, nil)
	}
	logger := ctx.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return Base{
		name:     name,
		ctx:      ctx,
		selector: selector,
		config:   make(map[string]string),
		logger:   logger.Named(name),
	}
}

// Name returns the generator name
func (b *Base) Name() string {
	return b.name
}

// Context returns the generator context
func (b *Base) Context() *component.GeneratorContext {
	return b.ctx
}

// Project returns the project the generator runs against
func (b *Base) Project() *project.Project {
	return b.ctx.Project
}

// Logger returns the generator's named logger
func (b *Base) Logger() hclog.Logger {
	return b.logger
}

// Config returns the generator settings
func (b *Base) Config() (interface{}, error) {
	return b.config, nil
}

// ConfigSet replaces the generator settings
func (b *Base) ConfigSet(config interface{}) error {
	switch cfg := config.(type) {
	case nil:
		b.config = make(map[string]string)
	case map[string]string:
		b.config = make(map[string]string, len(cfg))
		for k, v := range cfg {
			b.config[k] = v
		}
	case map[string]interface{}:
		b.config = make(map[string]string, len(cfg))
		for k, v := range cfg {
			if v == nil {
				continue
			}
			b.config[k] = fmt.Sprint(v)
		}
	default:
		return fmt.Errorf("unsupported configuration type %T for generator %s", config, b.name)
	}
	return nil
}

// Get resolves a generator option. Generator settings win over the
// fabric8.generator.<name>.<key> override property, which wins over the project property
// of the same name, which wins over the key default.
func (b *Base) Get(key Key) string {
	if v, ok := b.config[key.Name]; ok {
		return v
	}
	if v, ok := b.lookupProperty(key.Property(b.name)); ok {
		return v
	}
	return key.Default
}

// GetWithFallback resolves an option like Get but consults the given property name
// instead of the generator-scoped one and falls back to def.
func (b *Base) GetWithFallback(key Key, property string, def string) string {
	if v, ok := b.config[key.Name]; ok {
		return v
	}
	if v, ok := b.lookupProperty(property); ok {
		return v
	}
	return def
}

func (b *Base) lookupProperty(name string) (string, bool) {
	if v, ok := b.ctx.Properties[name]; ok {
		return v, true
	}
	return b.ctx.Project.Property(name)
}

// ShouldAddDefaultImage reports whether a default image may be appended: only when the
// user has not configured a build image already, unless "add" forces it.
func (b *Base) ShouldAddDefaultImage(configs []image.ImageConfiguration) bool {
	if !image.ContainsBuildConfiguration(configs) {
		return true
	}
	return strings.EqualFold(b.GetWithFallback(KeyAdd, KeyAdd.GlobalProperty(), KeyAdd.Default), "true")
}

// AddLatestTagIfSnapshot tags the build with "latest" when the project is a snapshot
func (b *Base) AddLatestTagIfSnapshot(build *image.BuildConfiguration) {
	if b.ctx.Project.IsSnapshot() {
		build.Tags = []string{LatestTag}
	}
}

// ImageName returns the name of the generated image. The default format is "%g/%a:%l",
// or "%a:%l" on OpenShift where the namespace takes the place of the group.
func (b *Base) ImageName() string {
	def := "%g/%a:%l"
	if b.ctx.IsOpenShift() {
		def = "%a:%l"
	}
	format := b.GetWithFallback(KeyName, KeyName.GlobalProperty(), def)
	return FormatImageName(format, b.ctx.Project, b.now())
}

// Alias returns the configured alias of the generated image as is, empty unless configured
func (b *Base) Alias() string {
	return b.GetWithFallback(KeyAlias, KeyAlias.GlobalProperty(), "")
}

// AddFrom sets the base image of build according to the "from" and "fromMode" options
func (b *Base) AddFrom(build *image.BuildConfiguration) error {
	fromMode := b.GetWithFallback(KeyFromMode, KeyFromMode.GlobalProperty(), b.defaultFromMode())
	from := b.GetWithFallback(KeyFrom, KeyFrom.GlobalProperty(), "")

	switch strings.ToLower(fromMode) {
	case FromModeDocker:
		if from == "" && b.selector != nil {
			from = b.selector.From()
		}
		build.From = from
		b.logger.Info("using base image", "from", from)

	case FromModeImageStreamTag:
		var ext map[string]string
		if from != "" {
			ext = imageStreamTagFromName(from)
		} else if b.selector != nil {
			ext = b.selector.ImageStreamTagFromExt()
		}
		if ext == nil {
			return nil
		}
		build.FromExt = ext
		if ns := ext[FromExtNamespace]; ns != "" {
			b.logger.Info("using ImageStreamTag as builder image", "name", ext[FromExtName], "namespace", ns)
		} else {
			b.logger.Info("using ImageStreamTag as builder image", "name", ext[FromExtName])
		}

	default:
		return fmt.Errorf("invalid fromMode %q in configuration of generator %s", fromMode, b.name)
	}

	return nil
}

func (b *Base) now() time.Time {
	if b.ctx.Now == nil {
		return time.Now()
	}
	return b.ctx.Now()
}

func (b *Base) defaultFromMode() string {
	if b.ctx.IsOpenShift() && b.selector != nil && b.selector.IsRedHat() {
		return FromModeImageStreamTag
	}
	return FromModeDocker
}

// SortedConfigKeys returns the configured option names in order; used for logging
func (b *Base) SortedConfigKeys() []string {
	keys := make([]string, 0, len(b.config))
	for k := range b.config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
