package feature

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// UnknownFeatureTagError is returned when the matrix has no entry for a
// (tag, target) pair. Classification fails closed on this error: an unknown
// tag must never be silently treated as supported.
type UnknownFeatureTagError struct {
	Tag    FeatureTag
	Target string
}

func (e *UnknownFeatureTagError) Error() string {
	return fmt.Sprintf("no capability entry for feature %s on target dialect %s", e.Tag, e.Target)
}

// matrixKey identifies one (tag, target dialect) cell.
type matrixKey struct {
	tag    FeatureTag
	target string
}

// CapabilityMatrix maps (FeatureTag, target dialect) pairs to verdicts.
// Built once at startup and read-only thereafter; safe for unsynchronized
// concurrent reads.
type CapabilityMatrix struct {
	entries map[matrixKey]Capability
	targets []string
}

// NewMatrix returns the built-in capability matrix covering the given
// target dialect names.
func NewMatrix(targets []string) *CapabilityMatrix {
	m := &CapabilityMatrix{
		entries: make(map[matrixKey]Capability),
		targets: append([]string(nil), targets...),
	}
	for _, row := range builtinMatrix {
		for target, c := range row.verdicts {
			m.entries[matrixKey{tag: row.tag, target: target}] = c
		}
	}
	return m
}

// Lookup returns the capability for a tag on a target dialect.
// Returns an UnknownFeatureTagError if the cell is absent.
func (m *CapabilityMatrix) Lookup(tag FeatureTag, target string) (Capability, error) {
	c, ok := m.entries[matrixKey{tag: tag, target: target}]
	if !ok {
		return Capability{}, &UnknownFeatureTagError{Tag: tag, Target: target}
	}
	return c, nil
}

// Targets returns the target dialect names this matrix was built for.
func (m *CapabilityMatrix) Targets() []string {
	return m.targets
}

// Validate checks that every feature tag has an entry for every target
// dialect. Returns the sorted list of missing cells as a single error.
func (m *CapabilityMatrix) Validate() error {
	var missing []string
	for _, tag := range All() {
		for _, target := range m.targets {
			if _, ok := m.entries[matrixKey{tag: tag, target: target}]; !ok {
				missing = append(missing, fmt.Sprintf("%s/%s", tag, target))
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("capability matrix incomplete, missing %d entries: %v", len(missing), missing)
}

// rewriteOverride is one entry in a rewrite-rules override file.
type rewriteOverride struct {
	Feature string `yaml:"feature"`
	Target  string `yaml:"target"`
	Verdict string `yaml:"verdict,omitempty"`
	Rewrite string `yaml:"rewrite,omitempty"`
}

// overrideFile is the shape of a rewrite-rules YAML file.
type overrideFile struct {
	Rewrites []rewriteOverride `yaml:"rewrites"`
}

// LoadOverrides applies curated rewrite rules from a YAML file on top of the
// built-in matrix. Overrides may change a cell's verdict, its rewrite text,
// or both. Unknown feature names or verdicts are errors, not warnings.
func (m *CapabilityMatrix) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading rewrite rules %s: %w", path, err)
	}

	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing rewrite rules %s: %w", path, err)
	}

	for i, o := range f.Rewrites {
		tag, err := Parse(o.Feature)
		if err != nil {
			return fmt.Errorf("rewrite rule %d: %w", i, err)
		}

		key := matrixKey{tag: tag, target: o.Target}
		c, ok := m.entries[key]
		if !ok {
			return fmt.Errorf("rewrite rule %d: %w", i, &UnknownFeatureTagError{Tag: tag, Target: o.Target})
		}

		if o.Verdict != "" {
			v, err := parseVerdict(o.Verdict)
			if err != nil {
				return fmt.Errorf("rewrite rule %d: %w", i, err)
			}
			c.Verdict = v
		}
		if o.Rewrite != "" {
			c.Rewrite = o.Rewrite
		}
		m.entries[key] = c
	}
	return nil
}

// parseVerdict resolves a verdict name from an override file.
func parseVerdict(s string) (Verdict, error) {
	switch s {
	case "supported":
		return Supported, nil
	case "supported-with-rewrite":
		return SupportedWithRewrite, nil
	case "unsupported":
		return Unsupported, nil
	default:
		return 0, fmt.Errorf("unknown verdict %q", s)
	}
}
