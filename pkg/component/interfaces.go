package component

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/thecloudstation/imagegen/pkg/image"
	"github.com/thecloudstation/imagegen/pkg/project"
)

// Generator defines the interface for plugins that contribute default image
// configurations when they recognize something about the project
type Generator interface {
	// Name returns the generator name used for registration and configuration
	Name() string

	// IsApplicable reports whether the generator recognizes the project
	IsApplicable() bool

	// Customize returns the image list with this generator's contribution applied.
	// The input is returned unchanged when the generator has nothing to add.
	Customize(ctx context.Context, configs []image.ImageConfiguration) ([]image.ImageConfiguration, error)

	// Config returns the current configuration
	Config() (interface{}, error)

	// ConfigSet sets the configuration for the generator
	ConfigSet(config interface{}) error
}

// Factory creates a generator bound to a project context
type Factory func(ctx *GeneratorContext) Generator

// Configurable is a common interface for all components that can be configured
type Configurable interface {
	// Config returns the current configuration
	Config() (interface{}, error)

	// ConfigSet sets the configuration
	ConfigSet(config interface{}) error
}

// PlatformMode is the target platform flavour
type PlatformMode string

const (
	ModeKubernetes PlatformMode = "kubernetes"
	ModeOpenShift  PlatformMode = "openshift"
)

// BuildStrategy is how images are built on OpenShift
type BuildStrategy string

const (
	StrategyS2I    BuildStrategy = "s2i"
	StrategyDocker BuildStrategy = "docker"
)

// ParsePlatformMode converts a string to a PlatformMode; empty means kubernetes
func ParsePlatformMode(s string) (PlatformMode, error) {
	switch PlatformMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeKubernetes:
		return ModeKubernetes, nil
	case ModeOpenShift:
		return ModeOpenShift, nil
	default:
		return "", fmt.Errorf("unknown platform mode %q (expected kubernetes or openshift)", s)
	}
}

// ParseBuildStrategy converts a string to a BuildStrategy; empty means s2i
func ParseBuildStrategy(s string) (BuildStrategy, error) {
	switch BuildStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyS2I:
		return StrategyS2I, nil
	case StrategyDocker:
		return StrategyDocker, nil
	default:
		return "", fmt.Errorf("unknown build strategy %q (expected s2i or docker)", s)
	}
}

// GeneratorContext is what the host hands to every generator
type GeneratorContext struct {
	// Project is the loaded Maven project
	Project *project.Project

	// Mode is the target platform
	Mode PlatformMode

	// Strategy is the OpenShift build strategy
	Strategy BuildStrategy

	// Properties are explicit overrides (e.g., from --set), checked before project properties
	Properties map[string]string

	// Logger is the structured logger
	Logger hclog.Logger

	// Now returns the current time; used for timestamped snapshot tags
	Now func() time.Time
}

// NewGeneratorContext creates a context with kubernetes mode and s2i strategy
func NewGeneratorContext(p *project.Project, logger hclog.Logger) *GeneratorContext {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &GeneratorContext{
		Project:    p,
		Mode:       ModeKubernetes,
		Strategy:   StrategyS2I,
		Properties: make(map[string]string),
		Logger:     logger,
		Now:        time.Now,
	}
}

// IsOpenShift reports whether the target platform is OpenShift
func (c *GeneratorContext) IsOpenShift() bool {
	return c.Mode == ModeOpenShift
}

// IsS2I reports whether images are built with source-to-image on OpenShift
func (c *GeneratorContext) IsS2I() bool {
	return c.Mode == ModeOpenShift && c.Strategy == StrategyS2I
}
