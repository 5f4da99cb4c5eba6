// Package output encodes generated image configurations in the supported formats.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/thecloudstation/imagegen/internal/hclgen"
	"github.com/thecloudstation/imagegen/pkg/image"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// Formats lists the supported formats, default first
var Formats = []Format{FormatYAML, FormatJSON, FormatTOML, FormatHCL}

// ParseFormat converts a format name; empty means yaml
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", "yml":
		return FormatYAML, nil
	case FormatYAML, FormatJSON, FormatTOML, FormatHCL:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected yaml, json, toml or hcl)", s)
	}
}

// tomlDocument wraps the list since a TOML document must be a table
type tomlDocument struct {
	Images []image.ImageConfiguration `toml:"image"`
}

// Write encodes images to w
func Write(w io.Writer, format Format, images []image.ImageConfiguration) error {
	if images == nil {
		images = []image.ImageConfiguration{}
	}

	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(images); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(images); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil

	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(tomlDocument{Images: images}); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
		return nil

	case FormatHCL:
		data, err := hclgen.Generate(images)
		if err != nil {
			return fmt.Errorf("encoding hcl: %w", err)
		}
		_, err = w.Write(data)
		return err

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteFile encodes images to path, creating parent directories
func WriteFile(path string, format Format, images []image.ImageConfiguration) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}

	var buf bytes.Buffer
	if err := Write(&buf, format, images); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
