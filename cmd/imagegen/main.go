package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/thecloudstation/imagegen/internal/tui"
	"github.com/urfave/cli/v2"

	// Import builtin generators to register them
	_ "github.com/thecloudstation/imagegen/builtin/springboot"
)

var (
	// Build-time variables set via ldflags
	// Example: go build -ldflags "-X main.Version=1.0.0"
	Version = "v0.1.0"
)

func newApp() *cli.App {
	return &cli.App{
		Name:                   "imagegen",
		Usage:                  "Generate container image configurations for Maven projects",
		Version:                Version,
		UseShortOptionHandling: true,
		EnableBashCompletion:   true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to settings file (default: imagegen.hcl in the project directory)",
				EnvVars: []string{"IMAGEGEN_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (trace, debug, info, warn, error)",
				EnvVars: []string{"IMAGEGEN_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			generateCommand(),
			listCommand(),
			detectCommand(),
		},
		Before: func(c *cli.Context) error {
			level := hclog.LevelFromString(c.String("log-level"))
			if level == hclog.NoLevel {
				return fmt.Errorf("unknown log level %q", c.String("log-level"))
			}
			logger := hclog.New(&hclog.LoggerOptions{
				Name:   "imagegen",
				Level:  level,
				Color:  hclog.AutoColor,
				Output: os.Stderr,
			})
			hclog.SetDefault(logger)

			return nil
		},
	}
}

// run executes the app and returns the process exit code
func run(app *cli.App, args []string, stderr io.Writer) int {
	if err := app.Run(args); err != nil {
		fmt.Fprintln(stderr, tui.RenderError(fmt.Sprintf("Error: %v", err)))
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(newApp(), os.Args, os.Stderr))
}
