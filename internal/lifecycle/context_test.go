package lifecycle

import (
	"context"
	"testing"

	"github.com/thecloudstation/imagegen/internal/config"
	"github.com/thecloudstation/imagegen/pkg/component"
	"github.com/thecloudstation/imagegen/pkg/project"
)

func TestExecutionContext_GeneratorContext(t *testing.T) {
	p := &project.Project{ArtifactID: "orders"}

	tests := []struct {
		name           string
		settings       *config.Settings
		mode           string
		strategy       string
		project        *project.Project
		expectMode     component.PlatformMode
		expectStrategy component.BuildStrategy
		wantErr        bool
	}{
		{
			name:           "defaults",
			project:        p,
			expectMode:     component.ModeKubernetes,
			expectStrategy: component.StrategyS2I,
		},
		{
			name:           "from settings",
			settings:       &config.Settings{Mode: "openshift", Strategy: "docker"},
			project:        p,
			expectMode:     component.ModeOpenShift,
			expectStrategy: component.StrategyDocker,
		},
		{
			name:           "overrides win",
			settings:       &config.Settings{Mode: "kubernetes", Strategy: "docker"},
			mode:           "openshift",
			strategy:       "s2i",
			project:        p,
			expectMode:     component.ModeOpenShift,
			expectStrategy: component.StrategyS2I,
		},
		{name: "invalid mode", mode: "nomad", project: p, wantErr: true},
		{name: "invalid strategy", strategy: "kaniko", project: p, wantErr: true},
		{name: "no project", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ectx := NewExecutionContext(context.Background(), tt.settings, tt.project).
				WithMode(tt.mode, tt.strategy).
				WithProperties(map[string]string{"fabric8.generator.name": "%a"})

			genCtx, err := ectx.GeneratorContext()
			if (err != nil) != tt.wantErr {
				t.Fatalf("GeneratorContext() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if genCtx.Mode != tt.expectMode || genCtx.Strategy != tt.expectStrategy {
				t.Errorf("mode/strategy = %s/%s, expected %s/%s", genCtx.Mode, genCtx.Strategy, tt.expectMode, tt.expectStrategy)
			}
			if genCtx.Properties["fabric8.generator.name"] != "%a" {
				t.Errorf("properties not copied: %v", genCtx.Properties)
			}
			if genCtx.Project != tt.project {
				t.Error("project not passed through")
			}
		})
	}
}
