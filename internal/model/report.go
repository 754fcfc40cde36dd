package model

import "time"

// SkillRecord one normalized dataset row. AHT keeps the original display
// string; AHTSeconds is the separately parsed value used for weighting.
type SkillRecord struct {
	Skill         string `json:"skill"`
	Calls         int    `json:"calls"`
	AgentsStaffed int    `json:"agentsStaffed"`
	AHT           string `json:"aht"`
	AHTSeconds    Metric `json:"ahtSeconds"`
	AbandonPct    Metric `json:"abandonPct"`
}

// SkillLookup per-skill answer for one skills-of-interest entry
type SkillLookup struct {
	Skill      string `json:"skill"`
	Found      bool   `json:"found"`
	AHT        string `json:"aht"`
	AbandonPct Metric `json:"abandonPct"`
}

// AggregateResult full derived output of one aggregation run
type AggregateResult struct {
	TotalCalls      int    `json:"totalCalls"`
	TotalAgents     int    `json:"totalAgents"`
	TotalAbandonPct Metric `json:"totalAbandonPct"`
	TotalAHTSeconds Metric `json:"totalAhtSeconds"`

	// AgentsOverridden set when a secondary totals dataset replaced the sums
	CallsOverridden  bool `json:"callsOverridden"`
	AgentsOverridden bool `json:"agentsOverridden"`

	Table  []SkillRecord `json:"table"`
	Skills []SkillLookup `json:"skills"`
}

// TrendPeriod bucket granularity for trend aggregation
type TrendPeriod string

const (
	PeriodDay   TrendPeriod = "day"
	PeriodWeek  TrendPeriod = "week" // ISO week starting Monday
	PeriodMonth TrendPeriod = "month"
)

// TrendBucket calls-weighted aggregates for one (skill, period) group
type TrendBucket struct {
	Skill      string `json:"skill"`
	Period     string `json:"period"` // 2006-01-02 / 2006-W02 / 2006-01
	Calls      int    `json:"calls"`
	AHTSeconds Metric `json:"ahtSeconds"`
	AbandonPct Metric `json:"abandonPct"`
}

// Snapshot immutable persisted copy of one aggregation run
type Snapshot struct {
	ID          string          `json:"id"`
	ContentHash string          `json:"contentHash"`
	Source      string          `json:"source"`
	CreatedAt   time.Time       `json:"createdAt"`
	Result      AggregateResult `json:"result"`
}
