package driver

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the declaration manifest for one compilation unit. It stands
// in for the host front end: it declares the struct types and exported
// variables of a kernel the way the front end would hand them over.
type Manifest struct {
	Unit    UnitSection     `toml:"unit"`
	Structs []StructSection `toml:"struct"`
	Exports []ExportSection `toml:"export"`
}

// UnitSection names the unit and selects its target.
type UnitSection struct {
	Name    string   `toml:"name"`
	Target  string   `toml:"target"`
	Sources []string `toml:"sources"`
}

// StructSection declares one record type.
type StructSection struct {
	Name    string `toml:"name"`
	Typedef string `toml:"typedef"`
	Union   bool   `toml:"union"`
	Packed  bool   `toml:"packed"`
	Opaque  bool   `toml:"opaque"` // forward declaration only
	// FlexArray marks a trailing flexible array member, which the type
	// expression grammar cannot spell.
	FlexArray bool           `toml:"flexible_array"`
	Fields    []FieldSection `toml:"fields"`
}

// FieldSection declares one record field. Type uses the manifest type
// expression grammar (see ParseTypeExpr).
type FieldSection struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"`
	BitField bool   `toml:"bitfield"`
}

// ExportSection declares one exported global variable.
type ExportSection struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// LoadManifest parses a unit manifest from a TOML file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("unit") || strings.TrimSpace(m.Unit.Name) == "" {
		return nil, fmt.Errorf("%s: missing [unit].name", path)
	}
	seen := make(map[string]bool, len(m.Structs))
	for i := range m.Structs {
		name := strings.TrimSpace(m.Structs[i].Name)
		if name == "" {
			return nil, fmt.Errorf("%s: struct #%d has no name", path, i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%s: struct %q declared twice", path, name)
		}
		seen[name] = true
		m.Structs[i].Name = name
		if m.Structs[i].Opaque && len(m.Structs[i].Fields) > 0 {
			return nil, fmt.Errorf("%s: struct %q is opaque but has fields", path, name)
		}
	}
	for i := range m.Exports {
		if strings.TrimSpace(m.Exports[i].Name) == "" {
			return nil, fmt.Errorf("%s: export #%d has no name", path, i+1)
		}
		if strings.TrimSpace(m.Exports[i].Type) == "" {
			return nil, fmt.Errorf("%s: export %q has no type", path, m.Exports[i].Name)
		}
	}
	return &m, nil
}
