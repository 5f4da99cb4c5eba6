package springboot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/thecloudstation/imagegen/internal/generator"
	"github.com/thecloudstation/imagegen/internal/plugin"
	"github.com/thecloudstation/imagegen/pkg/component"
	"github.com/thecloudstation/imagegen/pkg/image"
)

const (
	// Name is the registered generator name
	Name = "spring-boot"

	// PluginKey identifies the Spring Boot Maven plugin
	PluginKey = "org.springframework.boot:spring-boot-maven-plugin"

	// Assembly layout of the application inside the image
	AssemblyBaseDir       = "/app"
	AssemblyDescriptorRef = "artifact-with-includes"
)

// Default base images
const (
	JavaImage    = "fabric8/java-alpine-openjdk8-jdk:1.1.10"
	S2IImage     = "fabric8/s2i-java:1.3.3"
	FuseImage    = "jboss-fuse-6/fis-java-openshift"
	FuseS2IImage = "jboss-fuse-6/fis-java-openshift"
)

// Port options in the order they appear in the generated image
var (
	KeyWebPort        = generator.Key{Name: "webPort", Default: "8080"}
	KeyJolokiaPort    = generator.Key{Name: "jolokiaPort", Default: "8778"}
	KeyPrometheusPort = generator.Key{Name: "prometheusPort", Default: "9779"}
)

var portKeys = []generator.Key{KeyWebPort, KeyJolokiaPort, KeyPrometheusPort}

// Generator contributes a Java runtime image for Spring Boot applications
type Generator struct {
	generator.Base
}

// New creates a Spring Boot generator bound to ctx
func New(ctx *component.GeneratorContext) component.Generator {
	return &Generator{
		Base: generator.NewBase(Name, ctx, generator.NewDefaultFromSelector(ctx, JavaImage, S2IImage, FuseImage, FuseS2IImage)),
	}
}

// IsApplicable reports whether the project declares the Spring Boot Maven plugin
func (g *Generator) IsApplicable() bool {
	return g.Project().HasPlugin(PluginKey)
}

// Customize appends the default Spring Boot image unless the generator does not apply
// or a build configuration already exists
func (g *Generator) Customize(ctx context.Context, configs []image.ImageConfiguration) ([]image.ImageConfiguration, error) {
	if !g.IsApplicable() || !g.ShouldAddDefaultImage(configs) {
		return configs, nil
	}

	ports, err := g.ExtractPorts()
	if err != nil {
		return nil, err
	}

	build := &image.BuildConfiguration{
		Ports: ports,
		Assembly: &image.AssemblyConfiguration{
			BaseDir:       AssemblyBaseDir,
			DescriptorRef: AssemblyDescriptorRef,
		},
	}
	if err := g.AddFrom(build); err != nil {
		return nil, err
	}
	g.AddLatestTagIfSnapshot(build)

	config := image.ImageConfiguration{
		Name:  g.ImageName(),
		Alias: g.Alias(),
		Build: build,
	}
	g.Logger().Debug("adding default image", "name", config.Name, "ports", strings.Join(ports, ","))

	return append(configs, config), nil
}

// ExtractPorts returns the configured web, jolokia and prometheus ports. Blank and zero
// values are left out; anything else that is not an integer is an error.
func (g *Generator) ExtractPorts() ([]string, error) {
	var ports []string
	for _, key := range portKeys {
		port := g.Get(key)
		if strings.TrimSpace(port) == "" {
			continue
		}

		n, err := strconv.ParseInt(port, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q for generator %s: %w", key.Name, port, Name, err)
		}
		if n == 0 {
			continue
		}
		ports = append(ports, port)
	}
	return ports, nil
}

func init() {
	plugin.Register(Name, &plugin.Plugin{
		Generator: New,
	})
}
