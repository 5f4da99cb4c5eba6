package plugin

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/thecloudstation/imagegen/pkg/component"
)

// settingsLister is implemented by generators that can report their configured option names
type settingsLister interface {
	SortedConfigKeys() []string
}

// Loader handles loading and configuring plugins
type Loader struct {
	registry *Registry
	logger   hclog.Logger
}

// NewLoader creates a new plugin loader
func NewLoader(registry *Registry, logger hclog.Logger) *Loader {
	if registry == nil {
		registry = globalRegistry
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Loader{
		registry: registry,
		logger:   logger,
	}
}

// Registry returns the registry the loader resolves plugins from
func (l *Loader) Registry() *Registry {
	return l.registry
}

// LoadGenerator creates a generator for ctx and applies its settings
func (l *Loader) LoadGenerator(name string, ctx *component.GeneratorContext, config map[string]string) (component.Generator, error) {
	l.logger.Debug("loading generator plugin", "name", name)

	factory, err := l.registry.GetGenerator(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get generator plugin %q: %w", name, err)
	}

	generator := factory(ctx)
	if generator == nil {
		return nil, fmt.Errorf("generator plugin %q returned no generator", name)
	}

	if err := configureComponent(generator, config); err != nil {
		return nil, fmt.Errorf("failed to configure generator %q: %w", name, err)
	}

	if lister, ok := generator.(settingsLister); ok {
		l.logger.Debug("generator plugin loaded", "name", name, "settings", lister.SortedConfigKeys())
	} else {
		l.logger.Debug("generator plugin loaded", "name", name, "settings", len(config))
	}
	return generator, nil
}

// configureComponent configures a component with the given configuration
func configureComponent(comp component.Configurable, config map[string]string) error {
	// Always call ConfigSet so a reused component drops earlier settings
	if err := comp.ConfigSet(config); err != nil {
		return fmt.Errorf("component configuration failed: %w", err)
	}

	return nil
}
