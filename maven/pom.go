// Package maven resolves dependency descriptors (POMs) from Maven-style
// repositories and adapts them to licensegate's validation types.
package maven

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/licensegate/licensegate/licensegate"
)

// Project is the parsed form of a project descriptor.
type Project struct {
	licensegate.DependencyRef

	Licenses     []licensegate.License
	Dependencies []Dependency
}

// Dependency is a dependency declaration of a project descriptor.
type Dependency struct {
	licensegate.DependencyRef

	Scope    string
	Optional bool
}

type pomXML struct {
	XMLName      xml.Name        `xml:"project"`
	Parent       pomParent       `xml:"parent"`
	GroupID      string          `xml:"groupId"`
	ArtifactID   string          `xml:"artifactId"`
	Version      string          `xml:"version"`
	Licenses     []pomLicense    `xml:"licenses>license"`
	Dependencies []pomDependency `xml:"dependencies>dependency"`
	Properties   pomProperties   `xml:"properties"`
}

type pomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

type pomLicense struct {
	Name string `xml:"name"`
	URL  string `xml:"url"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}

// pomProperties flattens the free-form <properties> block into a map.
type pomProperties struct {
	entries map[string]string
}

func (p *pomProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.entries = make(map[string]string)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			p.entries[t.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// ParseProject parses a project descriptor. Coordinates missing from the
// project element fall back to the parent declaration, and ${...}
// references are interpolated from the project coordinates and the
// <properties> block.
func ParseProject(r io.Reader) (*Project, error) {
	var raw pomXML
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("unable to parse project descriptor: %w", err)
	}

	groupID := firstNonEmpty(raw.GroupID, raw.Parent.GroupID)
	version := firstNonEmpty(raw.Version, raw.Parent.Version)

	props := raw.Properties.entries
	if props == nil {
		props = make(map[string]string)
	}
	props["project.groupId"] = groupID
	props["project.artifactId"] = raw.ArtifactID
	props["project.version"] = version

	project := &Project{
		DependencyRef: licensegate.DependencyRef{
			GroupID:    groupID,
			ArtifactID: raw.ArtifactID,
			Version:    version,
		},
	}

	for _, l := range raw.Licenses {
		project.Licenses = append(project.Licenses, licensegate.License{
			Name: interpolate(strings.TrimSpace(l.Name), props),
			URL:  strings.TrimSpace(l.URL),
		})
	}

	for _, d := range raw.Dependencies {
		if d.GroupID == "" || d.ArtifactID == "" {
			continue
		}
		project.Dependencies = append(project.Dependencies, Dependency{
			DependencyRef: licensegate.DependencyRef{
				GroupID:    interpolate(strings.TrimSpace(d.GroupID), props),
				ArtifactID: interpolate(strings.TrimSpace(d.ArtifactID), props),
				Version:    interpolate(strings.TrimSpace(d.Version), props),
			},
			Scope:    strings.TrimSpace(d.Scope),
			Optional: strings.EqualFold(strings.TrimSpace(d.Optional), "true"),
		})
	}

	return project, nil
}

// ParseProjectFile parses the project descriptor at the given path.
func ParseProjectFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open project descriptor: %w", err)
	}
	defer f.Close()
	return ParseProject(f)
}

var propertyRef = regexp.MustCompile(`\$\{([^}]+)\}`)

func interpolate(s string, props map[string]string) string {
	return propertyRef.ReplaceAllStringFunc(s, func(ref string) string {
		key := ref[2 : len(ref)-1]
		if value, ok := props[key]; ok {
			return value
		}
		return ref
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
