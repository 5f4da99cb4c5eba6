package portdetector

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/docker/docker/client"
)

const (
	// InspectionTimeout is the max time to wait for docker inspect
	InspectionTimeout = 5 * time.Second
)

// ImageConfig holds the parts of an image config relevant to port detection
type ImageConfig struct {
	ExposedPorts map[string]struct{} `json:"ExposedPorts"`
	Env          []string            `json:"Env"`
}

// ImageInspection holds the relevant data from docker inspect
type ImageInspection struct {
	Config ImageConfig `json:"Config"`
}

// Inspector returns the inspection data of a local image
type Inspector interface {
	Inspect(ctx context.Context, imageName string) (*ImageInspection, error)
}

// DockerInspector inspects images through the local docker daemon
type DockerInspector struct{}

// Inspect calls docker inspect and returns the parsed result
func (DockerInspector) Inspect(ctx context.Context, imageName string) (*ImageInspection, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	defer cli.Close()

	inspectData, _, err := cli.ImageInspectWithRaw(ctx, imageName)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect image: %w", err)
	}

	inspection := &ImageInspection{}
	if inspectData.Config == nil {
		return inspection, nil
	}
	inspection.Config.Env = inspectData.Config.Env

	if inspectData.Config.ExposedPorts != nil {
		inspection.Config.ExposedPorts = make(map[string]struct{})
		for port := range inspectData.Config.ExposedPorts {
			inspection.Config.ExposedPorts[string(port)] = struct{}{}
		}
	}

	return inspection, nil
}

// Detector finds the ports a base image exposes
type Detector struct {
	inspector Inspector
	timeout   time.Duration
}

// NewDetector creates a detector; a nil inspector uses the docker daemon
func NewDetector(inspector Inspector) *Detector {
	if inspector == nil {
		inspector = DockerInspector{}
	}
	return &Detector{inspector: inspector, timeout: InspectionTimeout}
}

// DetectPorts inspects an image and returns its ports in ascending order.
// EXPOSE directives win over the PORT env var. No ports is not an error.
func (d *Detector) DetectPorts(ctx context.Context, imageName string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	inspection, err := d.inspector.Inspect(ctx, imageName)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect image %s: %w", imageName, err)
	}

	if ports := extractExposedPorts(inspection); len(ports) > 0 {
		return formatPorts(ports), nil
	}
	return formatPorts(extractEnvPorts(inspection)), nil
}

// MissingPorts returns the base image ports that the configured list does not contain
func MissingPorts(basePorts, configured []string) []string {
	have := make(map[string]bool, len(configured))
	for _, p := range configured {
		have[strings.TrimSpace(p)] = true
	}

	var missing []string
	for _, p := range basePorts {
		if !have[p] {
			missing = append(missing, p)
		}
	}
	return missing
}

// extractExposedPorts extracts port numbers from Config.ExposedPorts
func extractExposedPorts(inspection *ImageInspection) []int {
	if inspection.Config.ExposedPorts == nil {
		return nil
	}

	var ports []int
	for portSpec := range inspection.Config.ExposedPorts {
		// "8080/tcp" or "8080/udp"
		parts := strings.Split(portSpec, "/")
		if port, err := strconv.Atoi(parts[0]); err == nil && isValidPort(port) {
			ports = append(ports, port)
		}
	}

	return ports
}

// extractEnvPorts extracts port numbers from PORT environment variables
func extractEnvPorts(inspection *ImageInspection) []int {
	var ports []int

	for _, env := range inspection.Config.Env {
		if strings.HasPrefix(env, "PORT=") {
			portStr := strings.TrimPrefix(env, "PORT=")
			if port, err := strconv.Atoi(portStr); err == nil && isValidPort(port) {
				ports = append(ports, port)
			}
		}
	}

	return ports
}

func formatPorts(ports []int) []string {
	if len(ports) == 0 {
		return nil
	}
	sort.Ints(ports)

	out := make([]string, 0, len(ports))
	for i, p := range ports {
		if i > 0 && ports[i-1] == p {
			continue
		}
		out = append(out, strconv.Itoa(p))
	}
	return out
}

// isValidPort checks if a port number is in the valid range
func isValidPort(port int) bool {
	return port > 0 && port <= 65535
}
