package model

// MappingConfig user-saved run configuration: pinned column bindings,
// skills of interest and branding. Exported/imported as a JSON file and
// persisted in the store between sessions.
type MappingConfig struct {
	CompanyName string                    `json:"company_name,omitempty"`
	Columns     map[CanonicalField]string `json:"columns"`
	Skills      []string                  `json:"skills"`
}

// DefaultSkills stock skills-of-interest list used before the user saves one
func DefaultSkills() []string {
	return []string{
		"B2B Member Success",
		"B2B Success Activation",
		"B2B Success Info",
		"B2B Success Tech Support",
		"MS Activation",
		"MS Info",
		"MS Loyalty",
		"MS Tech Support",
		"PM Connect",
	}
}

// Overrides pinned bindings as a BindingSet, blanks dropped
func (c *MappingConfig) Overrides() BindingSet {
	out := BindingSet{}
	if c == nil {
		return out
	}
	for field, column := range c.Columns {
		if column == "" {
			continue
		}
		out[field] = Binding{Field: field, Column: column, Source: BindingOverride}
	}
	return out
}
