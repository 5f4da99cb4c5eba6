package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/thecloudstation/imagegen/internal/hclfunc"
)

// ErrNotFound is returned by ParseFile when the settings file does not exist
var ErrNotFound = errors.New("settings file not found")

// ParseFile parses an HCL settings file
func ParseFile(path string) (*Settings, error) {
	// Resolve absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, absPath)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(absPath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	return decode(file)
}

// ParseBytes parses HCL settings from a byte slice
func ParseBytes(data []byte, filename string) (*Settings, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	return decode(file)
}

func decode(file *hcl.File) (*Settings, error) {
	// PASS 1: Decode with empty context to extract variable definitions.
	// Diagnostics from unresolved var.X references are expected here.
	var partial Settings
	_ = gohcl.DecodeBody(file.Body, hclfunc.NewEvalContext(nil), &partial)

	resolvedVars := resolveVariables(partial.Variables)

	// PASS 2: Re-decode with resolved variables in context
	var settings Settings
	diags := gohcl.DecodeBody(file.Body, hclfunc.NewEvalContext(resolvedVars), &settings)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings: %s", diags.Error())
	}

	return &settings, nil
}

// resolveVariables resolves variable values from their definitions.
// The first non-empty environment variable listed in Env wins over Default.
func resolveVariables(variables []*VariableConfig) map[string]string {
	resolved := make(map[string]string)

	for _, v := range variables {
		if v == nil {
			continue
		}

		var value string
		for _, envName := range v.Env {
			if envVal := os.Getenv(envName); envVal != "" {
				value = envVal
				break
			}
		}

		if value == "" {
			value = v.Default
		}

		resolved[v.Name] = value
	}

	return resolved
}

// LoadSettings parses and validates a settings file. A missing file yields empty
// settings; an empty path does too.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return &Settings{}, nil
	}

	settings, err := ParseFile(path)
	if errors.Is(err, ErrNotFound) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(settings); err != nil {
		return nil, err
	}

	return settings, nil
}
