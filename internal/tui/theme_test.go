package tui

import (
	"strings"
	"testing"
)

func TestRenderMessages(t *testing.T) {
	tests := []struct {
		name   string
		render func(string) string
		marker string
	}{
		{"success", RenderSuccess, StatusSuccess},
		{"error", RenderError, StatusError},
		{"warning", RenderWarning, StatusWarning},
		{"info", RenderInfo, StatusInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.render("3 images generated")
			if !strings.Contains(got, tt.marker) {
				t.Errorf("missing marker %q in %q", tt.marker, got)
			}
			if !strings.Contains(got, "3 images generated") {
				t.Errorf("missing text in %q", got)
			}
		})
	}
}

func TestRenderListItem(t *testing.T) {
	if got := RenderListItem("spring-boot", true); !strings.Contains(got, ListCursor+" spring-boot") {
		t.Errorf("active item = %q", got)
	}
	if got := RenderListItem("spring-boot", false); !strings.Contains(got, ListBullet+" spring-boot") {
		t.Errorf("inactive item = %q", got)
	}
}

func TestRenderStatusLine(t *testing.T) {
	for _, status := range []string{StatusNameSuccess, StatusNameError, StatusNameWarning, ""} {
		t.Run(status, func(t *testing.T) {
			got := RenderStatusLine("Build tool", "maven", status)
			if !strings.Contains(got, "Build tool:") || !strings.Contains(got, "maven") {
				t.Errorf("RenderStatusLine() = %q", got)
			}
		})
	}
}

func TestRenderList(t *testing.T) {
	got := RenderList("Signals", []string{"Maven wrapper (mvnw)", "Java/Maven project (pom.xml)"}, "none")
	if !strings.Contains(got, "Signals") {
		t.Errorf("missing header in %q", got)
	}
	if strings.Count(got, "\n") != 3 {
		t.Errorf("expected header and two items, got %q", got)
	}

	empty := RenderList("Signals", nil, "none")
	if !strings.Contains(empty, "none") {
		t.Errorf("missing placeholder in %q", empty)
	}
}
