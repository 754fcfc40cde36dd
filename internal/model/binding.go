package model

// BindingSource how a binding was produced
type BindingSource string

const (
	BindingAuto     BindingSource = "auto"     // exact normalized match
	BindingContains BindingSource = "contains" // substring fallback match
	BindingOverride BindingSource = "override" // pinned by the user
)

// Binding resolved association between a canonical field and a dataset column
type Binding struct {
	Field  CanonicalField `json:"field"`
	Column string         `json:"column"`
	Source BindingSource  `json:"source"`
}

// BindingSet partial function CanonicalField -> column; unresolved fields are absent
type BindingSet map[CanonicalField]Binding

// Column bound column name for a field, ok=false when unresolved
func (b BindingSet) Column(f CanonicalField) (string, bool) {
	bind, ok := b[f]
	if !ok || bind.Column == "" {
		return "", false
	}
	return bind.Column, true
}

// MissingMandatory mandatory fields still unresolved, in display order
func (b BindingSet) MissingMandatory() []CanonicalField {
	missing := []CanonicalField{}
	for _, f := range MandatoryFields() {
		if _, ok := b.Column(f); !ok {
			missing = append(missing, f)
		}
	}
	return missing
}
