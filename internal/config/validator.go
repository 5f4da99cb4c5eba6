package config

import (
	"fmt"
	"strings"
)

// Validate validates settings and returns an error if invalid
func Validate(settings *Settings) error {
	if settings == nil {
		return fmt.Errorf("settings are nil")
	}

	if _, err := settings.PlatformMode(); err != nil {
		return err
	}
	if _, err := settings.BuildStrategy(); err != nil {
		return err
	}

	if err := validateVariables(settings.Variables); err != nil {
		return err
	}

	for i, g := range settings.Generator {
		if !isValidName(g.Name) {
			return fmt.Errorf("invalid generator name %q (generator block at index %d)", g.Name, i)
		}
	}
	if err := checkDuplicates("generator", generatorNames(settings)); err != nil {
		return err
	}

	if settings.Generators != nil {
		for _, name := range append(append([]string{}, settings.Generators.Includes...), settings.Generators.Excludes...) {
			if !isValidName(name) {
				return fmt.Errorf("invalid generator name %q in generators block", name)
			}
		}
		if err := checkDuplicates("included generator", settings.Generators.Includes); err != nil {
			return err
		}
	}

	imageNames := make([]string, 0, len(settings.Image))
	for i, img := range settings.Image {
		if strings.TrimSpace(img.Name) == "" {
			return fmt.Errorf("image name is required (image at index %d)", i)
		}
		imageNames = append(imageNames, img.Name)
	}
	if err := checkDuplicates("image", imageNames); err != nil {
		return err
	}

	return nil
}

func validateVariables(variables []*VariableConfig) error {
	names := make([]string, 0, len(variables))
	for _, v := range variables {
		if !isValidName(v.Name) {
			return fmt.Errorf("invalid variable name %q", v.Name)
		}
		names = append(names, v.Name)
	}
	return checkDuplicates("variable", names)
}

func generatorNames(settings *Settings) []string {
	names := make([]string, len(settings.Generator))
	for i, g := range settings.Generator {
		names[i] = g.Name
	}
	return names
}

// checkDuplicates reports the first name that appears twice
func checkDuplicates(kind string, names []string) error {
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			return fmt.Errorf("duplicate %s name: %q", kind, name)
		}
		seen[name] = true
	}
	return nil
}

// isValidName checks if a name contains only alphanumeric characters, hyphens, and underscores
func isValidName(name string) bool {
	if name == "" {
		return false
	}

	for _, ch := range name {
		if !isAlphaNumericOrDash(ch) {
			return false
		}
	}

	return true
}

// isAlphaNumericOrDash checks if a character is alphanumeric, a dash or an underscore
func isAlphaNumericOrDash(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' ||
		ch == '_'
}

// GeneratorChecker reports whether a generator is registered
type GeneratorChecker interface {
	HasGenerator(name string) bool
}

// ValidateGeneratorsExist checks that every generator the settings name is registered.
// It runs after the builtin generators have registered themselves.
func ValidateGeneratorsExist(settings *Settings, checker GeneratorChecker) error {
	for _, g := range settings.Generator {
		if !checker.HasGenerator(g.Name) {
			return fmt.Errorf("unknown generator: %q", g.Name)
		}
	}

	if settings.Generators != nil {
		for _, name := range settings.Generators.Includes {
			if !checker.HasGenerator(name) {
				return fmt.Errorf("unknown generator in includes: %q", name)
			}
		}
		for _, name := range settings.Generators.Excludes {
			if !checker.HasGenerator(name) {
				return fmt.Errorf("unknown generator in excludes: %q", name)
			}
		}
	}

	return nil
}

// FormatError formats a validation error with helpful context
func FormatError(err error, configPath string) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Settings validation failed:\n")
	sb.WriteString(fmt.Sprintf("  File: %s\n", configPath))
	sb.WriteString(fmt.Sprintf("  Error: %s\n", err.Error()))

	return sb.String()
}
