// Package project reads the parts of a Maven project model that generators look at:
// coordinates, properties and declared build plugins, including those inherited from a
// parent pom that is available on disk.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

const (
	// POMFile is the name of the Maven project descriptor
	POMFile = "pom.xml"

	// DefaultPluginGroupID is the groupId Maven assumes for plugins that omit it
	DefaultPluginGroupID = "org.apache.maven.plugins"

	// SnapshotSuffix marks an unreleased Maven version
	SnapshotSuffix = "-SNAPSHOT"

	maxParentDepth = 10
)

// ErrNoPOM is returned when a directory has no pom.xml
var ErrNoPOM = errors.New("pom.xml not found")

var propertyRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// Coordinates identify a Maven artifact
type Coordinates struct {
	GroupID    string
	ArtifactID string
	Version    string

	// RelativePath is only set for parent references
	RelativePath string
}

// String returns the "groupId:artifactId:version" form
func (c Coordinates) String() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// Plugin is a build plugin declared in <build><plugins>
type Plugin struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// Key returns the "groupId:artifactId" identifier of the plugin
func (p Plugin) Key() string {
	return p.GroupID + ":" + p.ArtifactID
}

// Project is the effective view of a Maven project
type Project struct {
	// Dir is the directory holding pom.xml
	Dir string

	GroupID    string
	ArtifactID string
	Version    string
	Packaging  string

	// Properties are the <properties> of the project merged over its parent's
	Properties map[string]string

	// Plugins are the declared build plugins, parent plugins first
	Plugins []Plugin

	// Parent is the <parent> reference, nil when absent
	Parent *Coordinates
}

// Load reads dir/pom.xml and resolves a local parent pom if there is one
func Load(dir string) (*Project, error) {
	return load(dir, 0)
}

func load(dir string, depth int) (*Project, error) {
	return loadFile(filepath.Join(dir, POMFile), depth)
}

// loadFile reads the pom at path; the project directory is the one holding it
func loadFile(path string, depth int) (*Project, error) {
	dir := filepath.Dir(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w in %s", ErrNoPOM, dir)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	p, err := fromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid project %s: %w", path, err)
	}
	p.Dir = dir

	if p.Parent != nil && depth < maxParentDepth {
		if parent := loadParent(dir, p.Parent, depth); parent != nil {
			p.inherit(parent)
		}
	}
	if p.GroupID == "" && p.Parent != nil {
		p.GroupID = p.Parent.GroupID
	}
	if p.Version == "" && p.Parent != nil {
		p.Version = p.Parent.Version
	}

	p.interpolate()
	return p, nil
}

// Parse reads a project from pom.xml content without resolving a parent pom
func Parse(data []byte) (*Project, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse pom: %w", err)
	}

	p, err := fromDocument(doc)
	if err != nil {
		return nil, err
	}
	if p.Parent != nil {
		if p.GroupID == "" {
			p.GroupID = p.Parent.GroupID
		}
		if p.Version == "" {
			p.Version = p.Parent.Version
		}
	}

	p.interpolate()
	return p, nil
}

func fromDocument(doc *etree.Document) (*Project, error) {
	root := doc.Root()
	if root == nil || root.Tag != "project" {
		return nil, fmt.Errorf("root element must be <project>")
	}

	p := &Project{
		GroupID:    childText(root, "groupId"),
		ArtifactID: childText(root, "artifactId"),
		Version:    childText(root, "version"),
		Packaging:  childText(root, "packaging"),
		Properties: make(map[string]string),
	}
	if p.Packaging == "" {
		p.Packaging = "jar"
	}

	if parent := root.SelectElement("parent"); parent != nil {
		p.Parent = &Coordinates{
			GroupID:      childText(parent, "groupId"),
			ArtifactID:   childText(parent, "artifactId"),
			Version:      childText(parent, "version"),
			RelativePath: "../" + POMFile,
		}
		// An empty <relativePath/> disables the local lookup
		if rel := parent.SelectElement("relativePath"); rel != nil {
			p.Parent.RelativePath = strings.TrimSpace(rel.Text())
		}
	}

	if props := root.SelectElement("properties"); props != nil {
		for _, el := range props.ChildElements() {
			p.Properties[el.FullTag()] = strings.TrimSpace(el.Text())
		}
	}

	for _, el := range root.FindElements("./build/plugins/plugin") {
		plugin := Plugin{
			GroupID:    childText(el, "groupId"),
			ArtifactID: childText(el, "artifactId"),
			Version:    childText(el, "version"),
		}
		if plugin.ArtifactID == "" {
			continue
		}
		if plugin.GroupID == "" {
			plugin.GroupID = DefaultPluginGroupID
		}
		p.Plugins = append(p.Plugins, plugin)
	}

	return p, nil
}

// loadParent returns the parent project when it exists locally and matches the reference
func loadParent(dir string, ref *Coordinates, depth int) *Project {
	if ref.RelativePath == "" {
		return nil
	}

	// relativePath names either a pom file or a directory holding pom.xml
	parentPath := filepath.Join(dir, ref.RelativePath)
	if !strings.EqualFold(filepath.Ext(parentPath), ".xml") {
		parentPath = filepath.Join(parentPath, POMFile)
	}
	if filepath.Clean(parentPath) == filepath.Join(filepath.Clean(dir), POMFile) {
		return nil
	}

	parent, err := loadFile(parentPath, depth+1)
	if err != nil {
		return nil
	}
	if parent.GroupID != ref.GroupID || parent.ArtifactID != ref.ArtifactID {
		return nil
	}
	return parent
}

// inherit merges the parent's coordinates, properties and plugins under the child's
func (p *Project) inherit(parent *Project) {
	if p.GroupID == "" {
		p.GroupID = parent.GroupID
	}
	if p.Version == "" {
		p.Version = parent.Version
	}

	props := make(map[string]string, len(parent.Properties)+len(p.Properties))
	for k, v := range parent.Properties {
		props[k] = v
	}
	for k, v := range p.Properties {
		props[k] = v
	}
	p.Properties = props

	own := make(map[string]Plugin, len(p.Plugins))
	for _, plugin := range p.Plugins {
		own[plugin.Key()] = plugin
	}

	merged := make([]Plugin, 0, len(parent.Plugins)+len(p.Plugins))
	seen := make(map[string]bool)
	for _, plugin := range parent.Plugins {
		if override, ok := own[plugin.Key()]; ok {
			if override.Version == "" {
				override.Version = plugin.Version
			}
			plugin = override
		}
		merged = append(merged, plugin)
		seen[plugin.Key()] = true
	}
	for _, plugin := range p.Plugins {
		if !seen[plugin.Key()] {
			merged = append(merged, plugin)
		}
	}
	p.Plugins = merged
}

// interpolate expands ${...} references in the version, properties and plugin versions
func (p *Project) interpolate() {
	raw := p.Properties
	p.Version = p.expand(p.Version, raw)

	resolved := make(map[string]string, len(raw))
	for k, v := range raw {
		resolved[k] = p.expand(v, raw)
	}
	p.Properties = resolved

	for i := range p.Plugins {
		p.Plugins[i].Version = p.expand(p.Plugins[i].Version, resolved)
	}
}

func (p *Project) expand(s string, props map[string]string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return propertyRef.ReplaceAllStringFunc(s, func(match string) string {
		name := propertyRef.FindStringSubmatch(match)[1]
		switch name {
		case "project.version", "pom.version":
			if p.Version != "" && !strings.Contains(p.Version, "${") {
				return p.Version
			}
		case "project.groupId", "pom.groupId":
			return p.GroupID
		case "project.artifactId", "pom.artifactId":
			return p.ArtifactID
		}
		if v, ok := props[name]; ok && !strings.Contains(v, "${") {
			return v
		}
		return match
	})
}

// HasPlugin reports whether a build plugin with the given "groupId:artifactId" key is declared
func (p *Project) HasPlugin(key string) bool {
	_, ok := p.Plugin(key)
	return ok
}

// Plugin returns the declared build plugin with the given "groupId:artifactId" key
func (p *Project) Plugin(key string) (Plugin, bool) {
	if p == nil {
		return Plugin{}, false
	}
	for _, plugin := range p.Plugins {
		if plugin.Key() == key {
			return plugin, true
		}
	}
	return Plugin{}, false
}

// Property returns a project property
func (p *Project) Property(key string) (string, bool) {
	if p == nil || p.Properties == nil {
		return "", false
	}
	v, ok := p.Properties[key]
	return v, ok
}

// IsSnapshot reports whether the project version is an unreleased snapshot
func (p *Project) IsSnapshot() bool {
	return p != nil && strings.HasSuffix(p.Version, SnapshotSuffix)
}

// Coordinates returns the project's own coordinates
func (p *Project) Coordinates() Coordinates {
	return Coordinates{GroupID: p.GroupID, ArtifactID: p.ArtifactID, Version: p.Version}
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
