package generator

import (
	"strings"

	"github.com/thecloudstation/imagegen/pkg/component"
)

// Keys of an extended base image reference
const (
	FromExtKind      = "kind"
	FromExtName      = "name"
	FromExtNamespace = "namespace"

	// ImageStreamTagKind is the FromExt kind for OpenShift image stream tags
	ImageStreamTagKind = "ImageStreamTag"

	// DefaultImageStreamNamespace is where builder image streams live on OpenShift
	DefaultImageStreamNamespace = "openshift"
)

// Build plugins whose version marks a Red Hat (Fuse) product build
var fabric8PluginKeys = []string{
	"io.fabric8:fabric8-maven-plugin",
	"org.jboss.redhat-fuse:fabric8-maven-plugin",
}

// FromSelector picks the base image of a generated build
type FromSelector interface {
	// From returns the plain base image reference
	From() string

	// ImageStreamTagFromExt returns the builder image as an OpenShift ImageStreamTag
	ImageStreamTagFromExt() map[string]string

	// IsRedHat reports whether the Fuse image family applies
	IsRedHat() bool
}

// DefaultFromSelector chooses between four static images by build mode and product flavour
type DefaultFromSelector struct {
	ctx *component.GeneratorContext

	JavaImage      string
	S2IImage       string
	RedHatImage    string
	RedHatS2IImage string
}

// NewDefaultFromSelector creates a selector over the four image references
func NewDefaultFromSelector(ctx *component.GeneratorContext, javaImage, s2iImage, redHatImage, redHatS2IImage string) *DefaultFromSelector {
	return &DefaultFromSelector{
		ctx:            ctx,
		JavaImage:      javaImage,
		S2IImage:       s2iImage,
		RedHatImage:    redHatImage,
		RedHatS2IImage: redHatS2IImage,
	}
}

// From returns the image for the current mode
func (s *DefaultFromSelector) From() string {
	s2i := s.ctx != nil && s.ctx.IsS2I()
	switch {
	case s.IsRedHat() && s2i:
		return s.RedHatS2IImage
	case s.IsRedHat():
		return s.RedHatImage
	case s2i:
		return s.S2IImage
	default:
		return s.JavaImage
	}
}

// ImageStreamTagFromExt returns the S2I image of the current flavour as an ImageStreamTag
// in the shared openshift namespace
func (s *DefaultFromSelector) ImageStreamTagFromExt() map[string]string {
	ref := s.S2IImage
	if s.IsRedHat() {
		ref = s.RedHatS2IImage
	}
	if ref == "" {
		return nil
	}

	name := ParseImageName(ref)
	return map[string]string{
		FromExtKind:      ImageStreamTagKind,
		FromExtName:      name.SimpleName + ":" + name.TagOrLatest(),
		FromExtNamespace: DefaultImageStreamNamespace,
	}
}

// IsRedHat reports whether the project is built with a Red Hat release of the fabric8 plugin
func (s *DefaultFromSelector) IsRedHat() bool {
	if s.ctx == nil || s.ctx.Project == nil {
		return false
	}
	for _, key := range fabric8PluginKeys {
		if plugin, ok := s.ctx.Project.Plugin(key); ok {
			return strings.Contains(plugin.Version, "redhat")
		}
	}
	return false
}

// ImageName is a parsed image reference
type ImageName struct {
	Registry   string
	User       string
	SimpleName string
	Tag        string
	Digest     string
}

// ParseImageName splits "registry/user/name:tag@digest" into its parts. A leading
// component counts as registry only when it looks like a host.
func ParseImageName(ref string) ImageName {
	var n ImageName

	if i := strings.Index(ref, "@"); i >= 0 {
		n.Digest = ref[i+1:]
		ref = ref[:i]
	}
	if i := strings.LastIndex(ref, ":"); i > strings.LastIndex(ref, "/") {
		n.Tag = ref[i+1:]
		ref = ref[:i]
	}

	parts := strings.Split(ref, "/")
	if len(parts) > 1 && looksLikeRegistry(parts[0]) {
		n.Registry = parts[0]
		parts = parts[1:]
	}
	n.SimpleName = parts[len(parts)-1]
	if len(parts) > 1 {
		n.User = strings.Join(parts[:len(parts)-1], "/")
	}
	return n
}

// TagOrLatest returns the tag, or "latest" when none is set
func (n ImageName) TagOrLatest() string {
	if n.Tag == "" {
		return LatestTag
	}
	return n.Tag
}

func looksLikeRegistry(s string) bool {
	return strings.ContainsAny(s, ".:") || s == "localhost"
}

// imageStreamTagFromName turns a user supplied "namespace/name:tag" into an ImageStreamTag
func imageStreamTagFromName(from string) map[string]string {
	name := ParseImageName(from)
	ext := map[string]string{
		FromExtKind: ImageStreamTagKind,
		FromExtName: name.SimpleName + ":" + name.TagOrLatest(),
	}
	if name.User != "" {
		ext[FromExtNamespace] = name.User
	}
	return ext
}
