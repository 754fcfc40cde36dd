package model

// CanonicalField fixed KPI role a report column can be bound to
type CanonicalField string

const (
	FieldSkill         CanonicalField = "skill"
	FieldCalls         CanonicalField = "calls"
	FieldAgentsStaffed CanonicalField = "agents_staffed"
	FieldAHT           CanonicalField = "aht"
	FieldAbandonCount  CanonicalField = "abandon_count"
	FieldAbandonPct    CanonicalField = "abandon_pct"
	FieldTimestamp     CanonicalField = "timestamp"
)

// AllFields resolver-visible fields in display order
func AllFields() []CanonicalField {
	return []CanonicalField{
		FieldSkill,
		FieldCalls,
		FieldAgentsStaffed,
		FieldAHT,
		FieldAbandonCount,
		FieldAbandonPct,
		FieldTimestamp,
	}
}

// MandatoryFields fields aggregation cannot run without
func MandatoryFields() []CanonicalField {
	return []CanonicalField{
		FieldSkill,
		FieldCalls,
		FieldAgentsStaffed,
		FieldAHT,
	}
}

// FieldLabel human-readable label used in reports and error messages
func FieldLabel(f CanonicalField) string {
	switch f {
	case FieldSkill:
		return "Skill"
	case FieldCalls:
		return "Calls"
	case FieldAgentsStaffed:
		return "Agents Staffed"
	case FieldAHT:
		return "AHT"
	case FieldAbandonCount:
		return "Abandoned (count)"
	case FieldAbandonPct:
		return "Abandon %"
	case FieldTimestamp:
		return "Timestamp"
	default:
		return string(f)
	}
}

// IsMandatory reports whether the field must be bound before aggregation
func IsMandatory(f CanonicalField) bool {
	for _, m := range MandatoryFields() {
		if m == f {
			return true
		}
	}
	return false
}
