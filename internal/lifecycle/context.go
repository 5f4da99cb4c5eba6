package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/thecloudstation/imagegen/internal/config"
	"github.com/thecloudstation/imagegen/pkg/component"
	"github.com/thecloudstation/imagegen/pkg/project"
)

// ExecutionContext provides context for one generator run
type ExecutionContext struct {
	// Context is the Go context
	Context context.Context

	// Logger is the structured logger
	Logger hclog.Logger

	// Settings is the parsed settings file
	Settings *config.Settings

	// Project is the loaded Maven project
	Project *project.Project

	// Properties are explicit property overrides, e.g. from --set
	Properties map[string]string

	// Mode and Strategy override the settings file when non-empty
	Mode     string
	Strategy string
}

// NewExecutionContext creates a new execution context
func NewExecutionContext(ctx context.Context, settings *config.Settings, p *project.Project) *ExecutionContext {
	if settings == nil {
		settings = &config.Settings{}
	}

	return &ExecutionContext{
		Context:    ctx,
		Logger:     hclog.Default(),
		Settings:   settings,
		Project:    p,
		Properties: make(map[string]string),
	}
}

// WithLogger sets the logger
func (e *ExecutionContext) WithLogger(logger hclog.Logger) *ExecutionContext {
	e.Logger = logger
	return e
}

// WithProperties sets the property overrides
func (e *ExecutionContext) WithProperties(props map[string]string) *ExecutionContext {
	e.Properties = props
	return e
}

// WithMode overrides the platform mode and build strategy of the settings file
func (e *ExecutionContext) WithMode(mode, strategy string) *ExecutionContext {
	e.Mode = mode
	e.Strategy = strategy
	return e
}

// GeneratorContext builds the context handed to every generator
func (e *ExecutionContext) GeneratorContext() (*component.GeneratorContext, error) {
	modeName := e.Settings.Mode
	if e.Mode != "" {
		modeName = e.Mode
	}
	mode, err := component.ParsePlatformMode(modeName)
	if err != nil {
		return nil, err
	}

	strategyName := e.Settings.Strategy
	if e.Strategy != "" {
		strategyName = e.Strategy
	}
	strategy, err := component.ParseBuildStrategy(strategyName)
	if err != nil {
		return nil, err
	}

	if e.Project == nil {
		return nil, fmt.Errorf("no project loaded")
	}

	genCtx := component.NewGeneratorContext(e.Project, e.Logger)
	genCtx.Mode = mode
	genCtx.Strategy = strategy
	genCtx.Now = time.Now
	for k, v := range e.Properties {
		genCtx.Properties[k] = v
	}

	return genCtx, nil
}
