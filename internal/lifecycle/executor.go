package lifecycle

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/thecloudstation/imagegen/internal/config"
	"github.com/thecloudstation/imagegen/internal/plugin"
	"github.com/thecloudstation/imagegen/pkg/component"
	"github.com/thecloudstation/imagegen/pkg/image"
)

// Executor runs the enabled generators over the image list
type Executor struct {
	settings     *config.Settings
	pluginLoader *plugin.Loader
	logger       hclog.Logger
}

// GeneratorStatus describes a registered generator for a project
type GeneratorStatus struct {
	Name       string
	Enabled    bool
	Applicable bool
}

// NewExecutor creates a new executor over the global plugin registry
func NewExecutor(settings *config.Settings, logger hclog.Logger) *Executor {
	return NewExecutorWithRegistry(settings, nil, logger)
}

// NewExecutorWithRegistry creates an executor over the given registry
func NewExecutorWithRegistry(settings *config.Settings, registry *plugin.Registry, logger hclog.Logger) *Executor {
	if settings == nil {
		settings = &config.Settings{}
	}
	if logger == nil {
		logger = hclog.Default()
	}

	return &Executor{
		settings:     settings,
		pluginLoader: plugin.NewLoader(registry, logger),
		logger:       logger,
	}
}

// EnabledGenerators returns the generators to run, in run order
func (e *Executor) EnabledGenerators() []string {
	return e.settings.EnabledGenerators(e.pluginLoader.Registry().List())
}

// Execute threads the image list through every enabled generator and returns the result.
// The first generator error stops the run.
func (e *Executor) Execute(ctx context.Context, genCtx *component.GeneratorContext, initial []image.ImageConfiguration) ([]image.ImageConfiguration, error) {
	names := e.EnabledGenerators()
	e.logger.Info("running generators", "generators", names, "images", len(initial))

	configs := initial
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		configs, err = e.ExecuteGenerator(ctx, genCtx, name, configs)
		if err != nil {
			return nil, fmt.Errorf("generator %s failed: %w", name, err)
		}
	}

	e.logger.Info("generators completed", "images", len(configs))
	return configs, nil
}

// ExecuteGenerator runs a single generator
func (e *Executor) ExecuteGenerator(ctx context.Context, genCtx *component.GeneratorContext, name string, configs []image.ImageConfiguration) ([]image.ImageConfiguration, error) {
	generator, err := e.pluginLoader.LoadGenerator(name, genCtx, e.settings.GeneratorConfig(name))
	if err != nil {
		return nil, fmt.Errorf("failed to load generator: %w", err)
	}

	if !generator.IsApplicable() {
		e.logger.Debug("generator not applicable", "generator", name)
		return configs, nil
	}

	before := len(configs)
	result, err := generator.Customize(ctx, configs)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("generator applied", "generator", name, "added", len(result)-before)

	return result, nil
}

// Status reports every registered generator with whether it runs and applies to the project
func (e *Executor) Status(genCtx *component.GeneratorContext) ([]GeneratorStatus, error) {
	enabled := make(map[string]bool)
	for _, name := range e.EnabledGenerators() {
		enabled[name] = true
	}

	var statuses []GeneratorStatus
	for _, name := range e.pluginLoader.Registry().List() {
		generator, err := e.pluginLoader.LoadGenerator(name, genCtx, e.settings.GeneratorConfig(name))
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, GeneratorStatus{
			Name:       name,
			Enabled:    enabled[name],
			Applicable: generator.IsApplicable(),
		})
	}

	return statuses, nil
}
