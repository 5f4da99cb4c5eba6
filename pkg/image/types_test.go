package image

import "testing"

func TestContainsBuildConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		configs  []ImageConfiguration
		expected bool
	}{
		{
			name:     "nil list",
			configs:  nil,
			expected: false,
		},
		{
			name:     "only pulled images",
			configs:  []ImageConfiguration{{Name: "postgres:16"}, {Name: "redis:7"}},
			expected: false,
		},
		{
			name: "one built image",
			configs: []ImageConfiguration{
				{Name: "postgres:16"},
				{Name: "demo:latest", Build: &BuildConfiguration{From: "java:17"}},
			},
			expected: true,
		},
		{
			name:     "empty build configuration still counts",
			configs:  []ImageConfiguration{{Name: "demo", Build: &BuildConfiguration{}}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsBuildConfiguration(tt.configs); got != tt.expected {
				t.Errorf("ContainsBuildConfiguration() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
