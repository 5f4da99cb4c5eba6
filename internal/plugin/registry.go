package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/thecloudstation/imagegen/pkg/component"
)

// Plugin represents a registered plugin with its components
type Plugin struct {
	// Name is the plugin name
	Name string

	// Generator creates the generator component bound to a project
	Generator component.Factory
}

// Registry manages the collection of registered plugins
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Plugin
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]*Plugin),
	}
}

// Global registry instance
var globalRegistry = NewRegistry()

// Default returns the global registry builtin plugins register with
func Default() *Registry {
	return globalRegistry
}

// Register registers a plugin in the global registry
func Register(name string, plugin *Plugin) {
	globalRegistry.Register(name, plugin)
}

// Get retrieves a plugin from the global registry
func Get(name string) (*Plugin, error) {
	return globalRegistry.Get(name)
}

// List returns all registered plugin names
func List() []string {
	return globalRegistry.List()
}

// HasGenerator checks if a generator plugin exists
func HasGenerator(name string) bool {
	return globalRegistry.HasGenerator(name)
}

// GetGenerator retrieves a generator factory from the global registry
func GetGenerator(name string) (component.Factory, error) {
	return globalRegistry.GetGenerator(name)
}

// Register registers a plugin in the registry
func (r *Registry) Register(name string, plugin *Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if plugin == nil {
		return
	}

	plugin.Name = name
	r.plugins[name] = plugin
}

// Get retrieves a plugin by name
func (r *Registry) Get(name string) (*Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugin, exists := r.plugins[name]
	if !exists {
		return nil, fmt.Errorf("plugin not found: %s", name)
	}

	return plugin, nil
}

// List returns all registered plugin names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// HasGenerator checks if a generator plugin exists
func (r *Registry) HasGenerator(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugin, exists := r.plugins[name]
	return exists && plugin.Generator != nil
}

// GetGenerator retrieves a generator factory by plugin name
func (r *Registry) GetGenerator(name string) (component.Factory, error) {
	plugin, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	if plugin.Generator == nil {
		return nil, fmt.Errorf("plugin %s does not provide a generator component", name)
	}

	return plugin.Generator, nil
}
