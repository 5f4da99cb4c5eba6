package config

import (
	"github.com/thecloudstation/imagegen/pkg/component"
	"github.com/thecloudstation/imagegen/pkg/image"
)

// DefaultFileName is the settings file looked up in the project directory
const DefaultFileName = "imagegen.hcl"

// Settings represents the root configuration structure
type Settings struct {
	// Mode is the target platform (kubernetes or openshift)
	Mode string `hcl:"mode,optional"`

	// Strategy is the OpenShift build strategy (s2i or docker)
	Strategy string `hcl:"strategy,optional"`

	// Variables contains variable definitions
	Variables []*VariableConfig `hcl:"variable,block"`

	// Generators filters which generators run
	Generators *GeneratorsConfig `hcl:"generators,block"`

	// Generator contains per generator options
	Generator []*GeneratorConfig `hcl:"generator,block"`

	// Image contains user supplied image configurations
	Image []*image.ImageConfiguration `hcl:"image,block"`
}

// VariableConfig represents an HCL variable block definition
type VariableConfig struct {
	// Name is the variable name (block label)
	Name string `hcl:"name,label"`

	// Default is the default value if not provided
	Default string `hcl:"default,optional"`

	// Env is a list of environment variable names to check for value
	Env []string `hcl:"env,optional"`

	// Description documents the variable purpose
	Description string `hcl:"description,optional"`
}

// GeneratorsConfig selects generators by name
type GeneratorsConfig struct {
	// Includes lists the generators to run, in order; empty means all
	Includes []string `hcl:"includes,optional"`

	// Excludes lists generators that never run
	Excludes []string `hcl:"excludes,optional"`
}

// GeneratorConfig holds the options of one generator
type GeneratorConfig struct {
	// Name is the generator name (block label)
	Name string `hcl:"name,label"`

	// Options are the generator's key/value settings
	Options map[string]string `hcl:",remain"`
}

// GetGenerator returns a generator block by name
func (s *Settings) GetGenerator(name string) *GeneratorConfig {
	for _, g := range s.Generator {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// GeneratorConfig returns a copy of the options configured for a generator
func (s *Settings) GeneratorConfig(name string) map[string]string {
	options := make(map[string]string)
	if g := s.GetGenerator(name); g != nil {
		for k, v := range g.Options {
			options[k] = v
		}
	}
	return options
}

// Images returns a copy of the user supplied images, the initial list generators work on
func (s *Settings) Images() []image.ImageConfiguration {
	images := make([]image.ImageConfiguration, 0, len(s.Image))
	for _, img := range s.Image {
		if img == nil {
			continue
		}
		images = append(images, *img)
	}
	return images
}

// EnabledGenerators filters the available generator names. With includes set, the
// result follows the include order; otherwise it follows available. Excludes always apply.
func (s *Settings) EnabledGenerators(available []string) []string {
	excluded := make(map[string]bool)
	names := available
	if s.Generators != nil {
		for _, name := range s.Generators.Excludes {
			excluded[name] = true
		}
		if len(s.Generators.Includes) > 0 {
			names = s.Generators.Includes
		}
	}

	enabled := make([]string, 0, len(names))
	for _, name := range names {
		if !excluded[name] {
			enabled = append(enabled, name)
		}
	}
	return enabled
}

// PlatformMode returns the parsed mode; empty means kubernetes
func (s *Settings) PlatformMode() (component.PlatformMode, error) {
	return component.ParsePlatformMode(s.Mode)
}

// BuildStrategy returns the parsed strategy; empty means s2i
func (s *Settings) BuildStrategy() (component.BuildStrategy, error) {
	return component.ParseBuildStrategy(s.Strategy)
}
