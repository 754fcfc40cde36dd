package calculator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArciniegaPatriot/DopeReport/internal/calculator"
	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

func snapshotAt(day int, table ...model.SkillRecord) model.Snapshot {
	return model.Snapshot{
		ID:        "snap",
		CreatedAt: time.Date(2026, 2, day, 9, 0, 0, 0, time.UTC),
		Result:    model.AggregateResult{Table: table},
	}
}

func TestMergeSnapshotsDaily(t *testing.T) {
	snaps := []model.Snapshot{
		snapshotAt(2,
			model.SkillRecord{Skill: "MS Info", Calls: 100, AHTSeconds: model.Metric(100), AbandonPct: model.Metric(10)},
			model.SkillRecord{Skill: "PM Connect", Calls: 50, AHTSeconds: model.Metric(200), AbandonPct: model.UnknownMetric()},
		),
		snapshotAt(2,
			model.SkillRecord{Skill: "MS Info", Calls: 100, AHTSeconds: model.Metric(200), AbandonPct: model.Metric(20)},
		),
		snapshotAt(3,
			model.SkillRecord{Skill: "MS Info", Calls: 10, AHTSeconds: model.UnknownMetric(), AbandonPct: model.Metric(5)},
		),
	}

	buckets := calculator.MergeSnapshots(snaps, model.PeriodDay)
	require.Len(t, buckets, 3)

	// two same-day snapshots fold into one MS Info bucket
	assert.Equal(t, "MS Info", buckets[0].Skill)
	assert.Equal(t, "2026-02-02", buckets[0].Period)
	assert.Equal(t, 200, buckets[0].Calls)
	assert.InDelta(t, 150.0, buckets[0].AHTSeconds.Value(), 0.001)
	assert.InDelta(t, 15.0, buckets[0].AbandonPct.Value(), 0.001)

	// a snapshot with unknown AHT keeps the abandon figure but reports AHT unknown
	assert.Equal(t, "2026-02-03", buckets[1].Period)
	assert.False(t, buckets[1].AHTSeconds.Known())
	assert.InDelta(t, 5.0, buckets[1].AbandonPct.Value(), 0.001)

	// unknown rate zero-fills against the calls denominator
	assert.Equal(t, "PM Connect", buckets[2].Skill)
	assert.InDelta(t, 0.0, buckets[2].AbandonPct.Value(), 0.001)
}

func TestMergeSnapshotsEmpty(t *testing.T) {
	assert.Empty(t, calculator.MergeSnapshots(nil, model.PeriodMonth))
}
