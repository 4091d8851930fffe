package licensegate

// License is a single declared license entry from a dependency descriptor.
// Declared metadata is trusted as-is; nothing here inspects artifact
// contents to verify it.
type License struct {
	// Name is the declared license name. Descriptors can carry a license
	// block without a name; such an entry has an empty Name.
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Named reports whether the entry carries a license name. An unnamed
// entry counts the same as no license at all.
func (l License) Named() bool {
	return l.Name != ""
}

func (l License) String() string {
	if !l.Named() {
		return "(unnamed)"
	}
	return l.Name
}

// LicenseNames returns the display names of a license list, preserving order.
func LicenseNames(licenses []License) []string {
	names := make([]string, 0, len(licenses))
	for _, l := range licenses {
		names = append(names, l.String())
	}
	return names
}
