package config

import (
	"strings"
	"testing"

	"github.com/thecloudstation/imagegen/pkg/image"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		settings    *Settings
		expectError string
	}{
		{
			name:     "empty settings",
			settings: &Settings{},
		},
		{
			name: "valid settings",
			settings: &Settings{
				Mode:       "openshift",
				Strategy:   "s2i",
				Variables:  []*VariableConfig{{Name: "web_port"}},
				Generators: &GeneratorsConfig{Includes: []string{"spring-boot"}, Excludes: []string{"vertx"}},
				Generator:  []*GeneratorConfig{{Name: "spring-boot"}},
				Image:      []*image.ImageConfiguration{{Name: "db"}, {Name: "cache"}},
			},
		},
		{
			name:        "nil settings",
			settings:    nil,
			expectError: "settings are nil",
		},
		{
			name:        "unknown mode",
			settings:    &Settings{Mode: "nomad"},
			expectError: "unknown platform mode",
		},
		{
			name:        "unknown strategy",
			settings:    &Settings{Strategy: "buildah"},
			expectError: "unknown build strategy",
		},
		{
			name:        "duplicate generator",
			settings:    &Settings{Generator: []*GeneratorConfig{{Name: "spring-boot"}, {Name: "spring-boot"}}},
			expectError: `duplicate generator name: "spring-boot"`,
		},
		{
			name:        "invalid generator name",
			settings:    &Settings{Generator: []*GeneratorConfig{{Name: "spring boot"}}},
			expectError: "invalid generator name",
		},
		{
			name:        "duplicate include",
			settings:    &Settings{Generators: &GeneratorsConfig{Includes: []string{"a", "a"}}},
			expectError: `duplicate included generator name: "a"`,
		},
		{
			name:        "invalid exclude",
			settings:    &Settings{Generators: &GeneratorsConfig{Excludes: []string{"a/b"}}},
			expectError: "invalid generator name",
		},
		{
			name:        "duplicate image",
			settings:    &Settings{Image: []*image.ImageConfiguration{{Name: "db"}, {Name: "db"}}},
			expectError: `duplicate image name: "db"`,
		},
		{
			name:        "blank image name",
			settings:    &Settings{Image: []*image.ImageConfiguration{{Name: " "}}},
			expectError: "image name is required",
		},
		{
			name:        "duplicate variable",
			settings:    &Settings{Variables: []*VariableConfig{{Name: "v"}, {Name: "v"}}},
			expectError: `duplicate variable name: "v"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.settings)
			if tt.expectError == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.expectError) {
				t.Errorf("Validate() error = %v, expected %q", err, tt.expectError)
			}
		})
	}
}

type fakeChecker map[string]bool

func (f fakeChecker) HasGenerator(name string) bool { return f[name] }

func TestValidateGeneratorsExist(t *testing.T) {
	checker := fakeChecker{"spring-boot": true}

	tests := []struct {
		name        string
		settings    *Settings
		expectError string
	}{
		{
			name: "all known",
			settings: &Settings{
				Generators: &GeneratorsConfig{Includes: []string{"spring-boot"}},
				Generator:  []*GeneratorConfig{{Name: "spring-boot"}},
			},
		},
		{
			name:        "unknown generator block",
			settings:    &Settings{Generator: []*GeneratorConfig{{Name: "quarkus"}}},
			expectError: `unknown generator: "quarkus"`,
		},
		{
			name:        "unknown include",
			settings:    &Settings{Generators: &GeneratorsConfig{Includes: []string{"quarkus"}}},
			expectError: "unknown generator in includes",
		},
		{
			name:        "unknown exclude",
			settings:    &Settings{Generators: &GeneratorsConfig{Excludes: []string{"quarkus"}}},
			expectError: "unknown generator in excludes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGeneratorsExist(tt.settings, checker)
			if tt.expectError == "" {
				if err != nil {
					t.Errorf("ValidateGeneratorsExist() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.expectError) {
				t.Errorf("ValidateGeneratorsExist() error = %v, expected %q", err, tt.expectError)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	if got := FormatError(nil, "imagegen.hcl"); got != "" {
		t.Errorf("FormatError(nil) = %q, expected empty", got)
	}

	got := FormatError(Validate(&Settings{Mode: "nomad"}), "imagegen.hcl")
	if !strings.Contains(got, "File: imagegen.hcl") || !strings.Contains(got, "unknown platform mode") {
		t.Errorf("FormatError() = %q", got)
	}
}
