package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/thecloudstation/imagegen/internal/config"
	"github.com/thecloudstation/imagegen/internal/lifecycle"
	"github.com/thecloudstation/imagegen/internal/output"
	"github.com/thecloudstation/imagegen/internal/plugin"
	"github.com/thecloudstation/imagegen/internal/tui"
	"github.com/thecloudstation/imagegen/pkg/detect"
	"github.com/thecloudstation/imagegen/pkg/image"
	"github.com/thecloudstation/imagegen/pkg/portdetector"
	"github.com/thecloudstation/imagegen/pkg/project"
	"github.com/urfave/cli/v2"
)

// portDetector is swapped in tests
var portDetector interface {
	DetectPorts(ctx context.Context, imageName string) ([]string, error)
} = portdetector.NewDetector(nil)

func pathFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "path",
		Usage: "Path to the Maven project (default: current directory)",
		Value: ".",
	}
}

func modeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "mode",
			Usage:   "Target platform: kubernetes or openshift (overrides the settings file)",
			EnvVars: []string{"IMAGEGEN_MODE"},
		},
		&cli.StringFlag{
			Name:    "strategy",
			Usage:   "OpenShift build strategy: s2i or docker (overrides the settings file)",
			EnvVars: []string{"IMAGEGEN_STRATEGY"},
		},
		&cli.StringSliceFlag{
			Name:  "set",
			Usage: "Property override in key=value form, e.g. fabric8.generator.spring-boot.webPort=8081",
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Run the enabled generators and print the resulting image configurations",
		Description: `Load the Maven project and the settings file, run every enabled generator
over the images declared in the settings and write the final list.

EXAMPLES:
  imagegen generate
  imagegen generate --format json --output images.json
  imagegen generate --mode openshift --strategy s2i
  imagegen generate --set fabric8.generator.spring-boot.webPort=8081`,
		Flags: append([]cli.Flag{
			pathFlag(),
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: yaml, json, toml or hcl (default: from --output extension, else yaml)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to this file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "inspect-base",
				Usage: "Inspect base images with the local docker daemon and warn about exposed ports missing from the image",
			},
		}, modeFlags()...),
		Action: func(c *cli.Context) error {
			logger := hclog.Default()

			formatName := c.String("format")
			if formatName == "" {
				formatName = formatFromPath(c.String("output"))
			}
			format, err := output.ParseFormat(formatName)
			if err != nil {
				return err
			}

			execCtx, err := newExecutionContext(c, logger)
			if err != nil {
				return err
			}
			genCtx, err := execCtx.GeneratorContext()
			if err != nil {
				return err
			}

			executor := lifecycle.NewExecutor(execCtx.Settings, logger)
			images, err := executor.Execute(c.Context, genCtx, execCtx.Settings.Images())
			if err != nil {
				return err
			}

			if c.Bool("inspect-base") {
				inspectBaseImages(c.Context, c.App.ErrWriter, images, logger)
			}

			if len(images) == 0 {
				fmt.Fprintln(c.App.ErrWriter, tui.RenderInfo("no image configurations generated"))
			}

			return writeImages(c.App.Writer, c.App.ErrWriter, c.String("output"), format, images)
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List registered generators and whether they run for the project",
		Flags: append([]cli.Flag{pathFlag()}, modeFlags()...),
		Action: func(c *cli.Context) error {
			logger := hclog.Default()

			execCtx, err := newExecutionContext(c, logger)
			if err != nil {
				return err
			}
			genCtx, err := execCtx.GeneratorContext()
			if err != nil {
				return err
			}

			statuses, err := lifecycle.NewExecutor(execCtx.Settings, logger).Status(genCtx)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, tui.RenderTitle("Generators"))
			for _, s := range statuses {
				fmt.Fprintln(c.App.Writer, tui.RenderListItem(describeStatus(s), s.Enabled && s.Applicable))
			}
			return nil
		},
	}
}

func detectCommand() *cli.Command {
	return &cli.Command{
		Name:  "detect",
		Usage: "Show what imagegen detects in a project directory",
		Flags: []cli.Flag{pathFlag()},
		Action: func(c *cli.Context) error {
			result, err := detect.DetectProject(c.String("path"))
			if err != nil {
				return err
			}

			w := c.App.Writer
			buildTool := result.BuildTool
			status := tui.StatusNameSuccess
			if buildTool == detect.BuildToolNone {
				buildTool = "none"
				status = tui.StatusNameWarning
			}

			fmt.Fprintln(w, tui.RenderTitle("Project detection"))
			fmt.Fprintln(w, tui.RenderStatusLine("Build tool", buildTool, status))
			fmt.Fprintln(w, tui.RenderStatusLine("Reason", result.Reason, ""))
			if result.Project != nil {
				fmt.Fprintln(w, tui.RenderStatusLine("Coordinates", result.Project.Coordinates().String(), ""))
			}
			if result.HasDocker {
				fmt.Fprintln(w, tui.RenderStatusLine("Dockerfile", "found", tui.StatusNameWarning))
			} else {
				fmt.Fprintln(w, tui.RenderStatusLine("Dockerfile", "not found", ""))
			}
			fmt.Fprint(w, tui.RenderList("Frameworks", result.Frameworks, "none"))
			fmt.Fprint(w, tui.RenderList("Signals", result.Signals, "none"))
			return nil
		},
	}
}

// newExecutionContext loads the project and settings named by the command flags
func newExecutionContext(c *cli.Context, logger hclog.Logger) (*lifecycle.ExecutionContext, error) {
	dir := c.String("path")

	settings, err := loadSettings(dir, c.String("config"), logger)
	if err != nil {
		return nil, err
	}

	p, err := project.Load(dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded project", "coordinates", p.Coordinates().String())

	props, err := parseProperties(c.StringSlice("set"))
	if err != nil {
		return nil, err
	}

	return lifecycle.NewExecutionContext(c.Context, settings, p).
		WithLogger(logger).
		WithProperties(props).
		WithMode(c.String("mode"), c.String("strategy")), nil
}

// loadSettings finds and parses the settings file. Only an explicitly named file must exist.
func loadSettings(dir, explicit string, logger hclog.Logger) (*config.Settings, error) {
	path := config.DetectSettingsFile(dir, explicit)
	if path == "" {
		logger.Debug("no settings file found, using defaults", "dir", dir)
		return &config.Settings{}, nil
	}

	if explicit != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("settings file %s: %w", path, config.ErrNotFound)
		}
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, fmt.Errorf("%s", strings.TrimSpace(config.FormatError(err, path)))
	}
	if err := config.ValidateGeneratorsExist(settings, plugin.Default()); err != nil {
		return nil, fmt.Errorf("%s", strings.TrimSpace(config.FormatError(err, path)))
	}

	logger.Debug("loaded settings", "path", path, "images", len(settings.Image))
	return settings, nil
}

// parseProperties converts key=value pairs; later pairs win
func parseProperties(pairs []string) (map[string]string, error) {
	props := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set value %q (expected key=value)", pair)
		}
		props[key] = value
	}
	return props, nil
}

// formatFromPath picks the output format from a file extension
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return string(output.FormatJSON)
	case ".toml":
		return string(output.FormatTOML)
	case ".hcl":
		return string(output.FormatHCL)
	default:
		return ""
	}
}

// writeImages prints images to stdout, or writes them to path and reports it on stderr
func writeImages(stdout, stderr io.Writer, path string, format output.Format, images []image.ImageConfiguration) error {
	if path == "" {
		return output.Write(stdout, format, images)
	}

	if err := output.WriteFile(path, format, images); err != nil {
		return err
	}

	fmt.Fprintln(stderr, tui.RenderSuccess(fmt.Sprintf("wrote %d image configuration(s) to %s (%s)", len(images), path, format)))
	return nil
}

// inspectBaseImages warns about ports a docker base image exposes that the image does
// not list. Inspection failures are reported as warnings.
func inspectBaseImages(ctx context.Context, w io.Writer, images []image.ImageConfiguration, logger hclog.Logger) {
	for _, img := range images {
		if img.Build == nil || img.Build.From == "" {
			continue
		}

		basePorts, err := portDetector.DetectPorts(ctx, img.Build.From)
		if err != nil {
			logger.Warn("base image inspection failed", "image", img.Name, "from", img.Build.From, "error", err)
			continue
		}

		missing := portdetector.MissingPorts(basePorts, img.Build.Ports)
		if len(missing) == 0 {
			continue
		}
		fmt.Fprintln(w, tui.RenderWarning(fmt.Sprintf("%s: base image %s exposes ports not configured: %s",
			img.Name, img.Build.From, strings.Join(missing, ", "))))
	}
}

func describeStatus(s lifecycle.GeneratorStatus) string {
	var state []string
	if s.Enabled {
		state = append(state, "enabled")
	} else {
		state = append(state, "disabled")
	}
	if s.Applicable {
		state = append(state, "applicable")
	} else {
		state = append(state, "not applicable")
	}
	return fmt.Sprintf("%s (%s)", s.Name, strings.Join(state, ", "))
}
