package parser

import (
	"strings"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

// FieldMapper resolves arbitrary report headers onto canonical KPI fields
// using normalized synonym matching: an exact pass first, then a containment
// fallback for verbose or abbreviated vendor headers.
type FieldMapper struct {
	synonyms map[model.CanonicalField][]string
}

// NewFieldMapper creates a field mapper with the stock synonym lists
func NewFieldMapper() *FieldMapper {
	return &FieldMapper{synonyms: defaultSynonyms()}
}

// defaultSynonyms known alternate header spellings per canonical field
func defaultSynonyms() map[model.CanonicalField][]string {
	return map[model.CanonicalField][]string{
		model.FieldSkill: {
			"skill", "skill name", "skill group", "group", "queue", "split",
			"team", "program", "department", "dept", "category",
			"line of business", "lob",
		},
		model.FieldCalls: {
			"calls", "total calls", "calls offered", "offered", "inbound calls",
			"in calls", "total contacts", "contacts", "total interactions",
			"volume",
		},
		model.FieldAgentsStaffed: {
			"agents staffed", "agents", "agent count", "staffed agents",
			"distinct agents", "distinct agent count", "unique agents",
			"logged in agents", "logged-in agents", "logged in",
			"agents (distinct)", "agents (unique)",
		},
		model.FieldAHT: {
			"average handle time", "aht", "avg handle time", "avg handling time",
			"avg handle", "average handling time", "aht (s)", "aht (sec)",
			"talk+hold+acw", "handle time",
		},
		model.FieldAbandonCount: {
			"abandoned count", "abandoned", "abandon count", "aband count",
			"abandoned calls", "aband qty", "aband num", "aband total",
		},
		model.FieldAbandonPct: {
			"abandon %", "abandoned (%rec)", "abandoned percent", "abandoned %",
			"abandonment rate", "abandon rate", "aband %", "aband pct",
			"abandonment %", "abandonment pct", "abn %", "abn pct",
		},
		model.FieldTimestamp: {
			"date", "interval start", "interval", "timestamp", "period start",
			"report date", "day",
		},
	}
}

// Synonyms synonym list for one field (for the mapping UI)
func (m *FieldMapper) Synonyms(f model.CanonicalField) []string {
	return m.synonyms[f]
}

// Normalize comparison key: lowercase, ASCII letters and digits only.
// "Abandoned (%rec)" and "abandoned%rec" both normalize to "abandonedrec".
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve produces a binding per canonical field, or leaves it unresolved.
// User overrides pin a binding ahead of auto-detection; an override naming a
// column absent from this dataset is ignored and auto-detection runs instead.
func (m *FieldMapper) Resolve(columns []string, overrides model.BindingSet) model.BindingSet {
	out := model.BindingSet{}

	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	for _, field := range model.AllFields() {
		if ov, ok := overrides[field]; ok && present[ov.Column] {
			out[field] = model.Binding{Field: field, Column: ov.Column, Source: model.BindingOverride}
			continue
		}
		if col, source, ok := m.FindColumn(columns, m.synonyms[field]); ok {
			out[field] = model.Binding{Field: field, Column: col, Source: source}
		}
	}

	return out
}

// FindColumn runs the two-pass match for one synonym list.
//
// Pass 1 (exact): first synonym whose normalized form equals a normalized
// column name wins. Columns with duplicate normalized names resolve to the
// last duplicate, consistently (map build order).
//
// Pass 2 (containment): columns iterated in dataset order; the first column
// whose normalized name contains a normalized synonym, or is contained by
// one, wins. Known trade-off: fields sharing a substring can mis-bind; the
// mapping UI lets the user override any binding.
func (m *FieldMapper) FindColumn(columns []string, synonyms []string) (string, model.BindingSource, bool) {
	normToCol := make(map[string]string, len(columns))
	for _, c := range columns {
		if n := Normalize(c); n != "" {
			normToCol[n] = c
		}
	}

	normSyns := make([]string, 0, len(synonyms))
	for _, s := range synonyms {
		if n := Normalize(s); n != "" {
			normSyns = append(normSyns, n)
		}
	}

	for _, ns := range normSyns {
		if col, ok := normToCol[ns]; ok {
			return col, model.BindingAuto, true
		}
	}

	for _, c := range columns {
		nc := Normalize(c)
		if nc == "" {
			continue
		}
		for _, ns := range normSyns {
			if strings.Contains(nc, ns) || strings.Contains(ns, nc) {
				return c, model.BindingContains, true
			}
		}
	}

	return "", "", false
}
