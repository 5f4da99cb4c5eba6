package detect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/thecloudstation/imagegen/pkg/project"
)

// Build tools
const (
	BuildToolMaven  = "maven"
	BuildToolGradle = "gradle"
	BuildToolNone   = ""
)

// frameworkPlugins maps Maven build plugins to the framework they indicate
var frameworkPlugins = map[string]string{
	"org.springframework.boot:spring-boot-maven-plugin": "spring-boot",
	"io.quarkus:quarkus-maven-plugin":                   "quarkus",
	"io.reactiverse:vertx-maven-plugin":                 "vertx",
	"org.apache.karaf.tooling:karaf-maven-plugin":       "karaf",
	"org.wildfly.swarm:wildfly-swarm-plugin":            "wildfly-swarm",
}

// DetectionResult contains the result of project detection
type DetectionResult struct {
	BuildTool  string   // maven, gradle or empty
	Frameworks []string // Frameworks recognized from build plugins, sorted
	Reason     string   // Why this build tool was selected
	Signals    []string // Files that triggered detection
	HasDocker  bool     // Whether a Dockerfile was found

	// Project is the loaded Maven project, nil for other build tools
	Project *project.Project
}

// DetectProject analyzes a project directory. Only Maven projects are loaded; Gradle
// projects are reported but not parsed. A malformed pom.xml is an error.
func DetectProject(rootDir string) (*DetectionResult, error) {
	result := &DetectionResult{
		Reason:     "no build descriptor found",
		Frameworks: []string{},
		Signals:    detectProjectSignals(rootDir),
	}

	for _, df := range []string{"Dockerfile", "dockerfile"} {
		if fileExists(filepath.Join(rootDir, df)) {
			result.HasDocker = true
			break
		}
	}

	if fileExists(filepath.Join(rootDir, project.POMFile)) {
		p, err := project.Load(rootDir)
		if err != nil && !errors.Is(err, project.ErrNoPOM) {
			return nil, fmt.Errorf("failed to load maven project: %w", err)
		}
		result.BuildTool = BuildToolMaven
		result.Reason = "pom.xml found"
		result.Project = p
		result.Frameworks = detectFrameworks(p)
		return result, nil
	}

	for _, gradle := range []string{"build.gradle", "build.gradle.kts"} {
		if fileExists(filepath.Join(rootDir, gradle)) {
			result.BuildTool = BuildToolGradle
			result.Reason = gradle + " found - gradle projects are not supported by any generator"
			return result, nil
		}
	}

	return result, nil
}

func detectFrameworks(p *project.Project) []string {
	frameworks := []string{}
	for key, framework := range frameworkPlugins {
		if p.HasPlugin(key) {
			frameworks = append(frameworks, framework)
		}
	}
	sort.Strings(frameworks)
	return frameworks
}

// detectProjectSignals returns files that indicate project type (for logging), sorted
func detectProjectSignals(rootDir string) []string {
	signals := []string{}

	projectFiles := map[string]string{
		"pom.xml":          "Java/Maven project",
		"mvnw":             "Maven wrapper",
		"build.gradle":     "Java/Gradle project",
		"build.gradle.kts": "Kotlin/Gradle project",
		"Dockerfile":       "Dockerfile",
		"imagegen.hcl":     "imagegen settings",

		"src/main/resources/application.properties": "Spring configuration",
		"src/main/resources/application.yml":        "Spring configuration",
	}

	for file, desc := range projectFiles {
		if fileExists(filepath.Join(rootDir, filepath.FromSlash(file))) {
			signals = append(signals, desc+" ("+file+")")
		}
	}
	sort.Strings(signals)

	return signals
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// HasFramework reports whether the result lists a framework
func (r *DetectionResult) HasFramework(name string) bool {
	for _, f := range r.Frameworks {
		if f == name {
			return true
		}
	}
	return false
}
