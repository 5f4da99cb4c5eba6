package image

// ImageConfiguration describes one container image the host will build
type ImageConfiguration struct {
	// Name is the full image name (e.g., "example/demo:latest")
	Name string `hcl:"name,label" json:"name" yaml:"name" toml:"name"`

	// Alias is a short reference to the image (optional)
	Alias string `hcl:"alias,optional" json:"alias,omitempty" yaml:"alias,omitempty" toml:"alias,omitempty"`

	// Build is the build configuration; nil means the image is pulled, not built
	Build *BuildConfiguration `hcl:"build,block" json:"build,omitempty" yaml:"build,omitempty" toml:"build,omitempty"`
}

// BuildConfiguration holds everything needed to assemble an image
type BuildConfiguration struct {
	// From is the base image reference
	From string `hcl:"from,optional" json:"from,omitempty" yaml:"from,omitempty" toml:"from,omitempty"`

	// FromExt is an extended base image reference (e.g., an OpenShift ImageStreamTag)
	FromExt map[string]string `hcl:"from_ext,optional" json:"fromExt,omitempty" yaml:"fromExt,omitempty" toml:"fromExt,omitempty"`

	// Ports are the exposed ports, in order
	Ports []string `hcl:"ports,optional" json:"ports,omitempty" yaml:"ports,omitempty" toml:"ports,omitempty"`

	// Tags are additional tags to apply to the image
	Tags []string `hcl:"tags,optional" json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`

	// Assembly describes how the application artifacts are laid out in the image
	Assembly *AssemblyConfiguration `hcl:"assembly,block" json:"assembly,omitempty" yaml:"assembly,omitempty" toml:"assembly,omitempty"`
}

// AssemblyConfiguration references a predefined file layout for packaging artifacts
type AssemblyConfiguration struct {
	// BaseDir is the directory inside the image that receives the artifacts
	BaseDir string `hcl:"basedir,optional" json:"basedir,omitempty" yaml:"basedir,omitempty" toml:"basedir,omitempty"`

	// DescriptorRef names the predefined assembly descriptor
	DescriptorRef string `hcl:"descriptor_ref,optional" json:"descriptorRef,omitempty" yaml:"descriptorRef,omitempty" toml:"descriptorRef,omitempty"`
}

// HasBuild reports whether the image carries a build configuration
func (c ImageConfiguration) HasBuild() bool {
	return c.Build != nil
}

// ContainsBuildConfiguration reports whether any image in the list is built rather than pulled
func ContainsBuildConfiguration(configs []ImageConfiguration) bool {
	for _, c := range configs {
		if c.HasBuild() {
			return true
		}
	}
	return false
}
