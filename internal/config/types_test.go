package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnabledGenerators(t *testing.T) {
	available := []string{"java-exec", "spring-boot", "vertx"}

	tests := []struct {
		name       string
		generators *GeneratorsConfig
		expected   []string
	}{
		{"no filter", nil, available},
		{"excludes", &GeneratorsConfig{Excludes: []string{"vertx"}}, []string{"java-exec", "spring-boot"}},
		{"includes keep their order", &GeneratorsConfig{Includes: []string{"vertx", "spring-boot"}}, []string{"vertx", "spring-boot"}},
		{
			"excludes apply to includes",
			&GeneratorsConfig{Includes: []string{"vertx", "spring-boot"}, Excludes: []string{"vertx"}},
			[]string{"spring-boot"},
		},
		{"everything excluded", &GeneratorsConfig{Excludes: available}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Settings{Generators: tt.generators}
			if diff := cmp.Diff(tt.expected, s.EnabledGenerators(available)); diff != "" {
				t.Errorf("EnabledGenerators() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGeneratorConfigIsACopy(t *testing.T) {
	s := &Settings{Generator: []*GeneratorConfig{{Name: "spring-boot", Options: map[string]string{"webPort": "9000"}}}}

	options := s.GeneratorConfig("spring-boot")
	options["webPort"] = "1"

	if got := s.Generator[0].Options["webPort"]; got != "9000" {
		t.Errorf("settings changed through the returned map: webPort = %q", got)
	}
	if got := s.GeneratorConfig("missing"); len(got) != 0 {
		t.Errorf("GeneratorConfig(missing) = %v, expected empty", got)
	}
}

func TestSettingsModeAndStrategy(t *testing.T) {
	s := &Settings{}
	mode, err := s.PlatformMode()
	if err != nil || mode != "kubernetes" {
		t.Errorf("PlatformMode() = %q, %v", mode, err)
	}
	strategy, err := s.BuildStrategy()
	if err != nil || strategy != "s2i" {
		t.Errorf("BuildStrategy() = %q, %v", strategy, err)
	}
}
