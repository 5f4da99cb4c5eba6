package plugin

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-hclog"
	"github.com/thecloudstation/imagegen/pkg/component"
	"github.com/thecloudstation/imagegen/pkg/image"
)

// mockGenerator implements component.Generator for testing
type mockGenerator struct {
	name      string
	ctx       *component.GeneratorContext
	config    map[string]string
	configErr error
}

func (m *mockGenerator) Name() string { return m.name }

func (m *mockGenerator) IsApplicable() bool { return true }

func (m *mockGenerator) Customize(ctx context.Context, configs []image.ImageConfiguration) ([]image.ImageConfiguration, error) {
	return append(configs, image.ImageConfiguration{Name: m.name}), nil
}

func (m *mockGenerator) Config() (interface{}, error) {
	return m.config, nil
}

func (m *mockGenerator) ConfigSet(config interface{}) error {
	if m.configErr != nil {
		return m.configErr
	}
	if cfg, ok := config.(map[string]string); ok {
		m.config = cfg
	}
	return nil
}

func mockFactory(name string) component.Factory {
	return func(ctx *component.GeneratorContext) component.Generator {
		return &mockGenerator{name: name, ctx: ctx}
	}
}

// listingGenerator reports its option names like generators built on generator.Base
type listingGenerator struct {
	mockGenerator
}

func (l *listingGenerator) SortedConfigKeys() []string {
	keys := make([]string, 0, len(l.config))
	for k := range l.config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestNewLoader(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		logger   hclog.Logger
	}{
		{"with registry and logger", NewRegistry(), hclog.NewNullLogger()},
		{"nil registry uses global", nil, hclog.NewNullLogger()},
		{"nil logger", NewRegistry(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewLoader(tt.registry, tt.logger)
			if loader.logger == nil {
				t.Error("NewLoader() left logger nil")
			}
			if tt.registry == nil && loader.Registry() != globalRegistry {
				t.Error("NewLoader(nil) should use the global registry")
			}
			if tt.registry != nil && loader.Registry() != tt.registry {
				t.Error("NewLoader() should keep the given registry")
			}
		})
	}
}

func TestLoader_LoadGenerator(t *testing.T) {
	reg := NewRegistry()
	reg.Register("test-gen", &Plugin{Generator: mockFactory("test-gen")})
	reg.Register("no-gen", &Plugin{})
	reg.Register("nil-gen", &Plugin{Generator: func(*component.GeneratorContext) component.Generator { return nil }})
	reg.Register("bad-config", &Plugin{Generator: func(*component.GeneratorContext) component.Generator {
		return &mockGenerator{name: "bad-config", configErr: errors.New("boom")}
	}})

	tests := []struct {
		name        string
		plugin      string
		config      map[string]string
		expectError string
	}{
		{name: "configured", plugin: "test-gen", config: map[string]string{"webPort": "9000"}},
		{name: "no settings", plugin: "test-gen"},
		{name: "missing plugin", plugin: "missing", expectError: "plugin not found: missing"},
		{name: "plugin without generator", plugin: "no-gen", expectError: "does not provide a generator"},
		{name: "factory returns nil", plugin: "nil-gen", expectError: "returned no generator"},
		{name: "config error", plugin: "bad-config", expectError: "failed to configure generator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewLoader(reg, nil)
			ctx := component.NewGeneratorContext(nil, nil)

			gen, err := loader.LoadGenerator(tt.plugin, ctx, tt.config)
			if tt.expectError != "" {
				if err == nil || !strings.Contains(err.Error(), tt.expectError) {
					t.Fatalf("LoadGenerator() error = %v, expected %q", err, tt.expectError)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadGenerator() error = %v", err)
			}

			mock := gen.(*mockGenerator)
			if mock.ctx != ctx {
				t.Error("LoadGenerator() did not pass the context to the factory")
			}
			if diff := cmp.Diff(tt.config, mock.config); diff != "" {
				t.Errorf("settings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoader_FreshInstancePerLoad(t *testing.T) {
	reg := NewRegistry()
	reg.Register("test-gen", &Plugin{Generator: mockFactory("test-gen")})
	loader := NewLoader(reg, nil)

	first, err := loader.LoadGenerator("test-gen", nil, map[string]string{"a": "1"})
	if err != nil {
		t.Fatalf("LoadGenerator() error = %v", err)
	}
	second, err := loader.LoadGenerator("test-gen", nil, nil)
	if err != nil {
		t.Fatalf("LoadGenerator() error = %v", err)
	}

	if first == second {
		t.Error("LoadGenerator() should create a new generator for each call")
	}
	if cfg, _ := first.Config(); len(cfg.(map[string]string)) != 1 {
		t.Error("loading a second generator changed the first one's settings")
	}
}

func TestLoader_LoadGeneratorLogsSettingNames(t *testing.T) {
	reg := NewRegistry()
	reg.Register("listing", &Plugin{Generator: func(ctx *component.GeneratorContext) component.Generator {
		return &listingGenerator{mockGenerator{name: "listing", ctx: ctx}}
	}})

	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Level: hclog.Debug, Output: &buf})

	_, err := NewLoader(reg, logger).LoadGenerator("listing", component.NewGeneratorContext(nil, nil),
		map[string]string{"webPort": "8081", "jolokiaPort": "0"})
	if err != nil {
		t.Fatalf("LoadGenerator() error = %v", err)
	}

	var loaded string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "generator plugin loaded") {
			loaded = line
		}
	}
	if loaded == "" {
		t.Fatalf("no load line logged:\n%s", buf.String())
	}
	for _, key := range []string{"jolokiaPort", "webPort"} {
		if !strings.Contains(loaded, key) {
			t.Errorf("load line missing setting %q: %s", key, loaded)
		}
	}
	if strings.Index(loaded, "jolokiaPort") > strings.Index(loaded, "webPort") {
		t.Errorf("settings not sorted: %s", loaded)
	}
}
