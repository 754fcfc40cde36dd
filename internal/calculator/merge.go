package calculator

import (
	"sort"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

// MergeSnapshots folds persisted snapshots into per-skill trend buckets,
// keyed by the snapshot capture time. Snapshots only carry per-row rates
// (no raw abandon counts), so the abandon figure is the calls-weighted rate
// average with the same zero-fill policy as the dataset totals.
func MergeSnapshots(snaps []model.Snapshot, period model.TrendPeriod) []model.TrendBucket {
	groups := make(map[string]*trendGroup)
	keys := make(map[string][2]string)

	for _, snap := range snaps {
		label := PeriodLabel(snap.CreatedAt, period)
		for _, rec := range snap.Result.Table {
			key := rec.Skill + "\x00" + label
			g := groups[key]
			if g == nil {
				g = &trendGroup{}
				groups[key] = g
				keys[key] = [2]string{rec.Skill, label}
			}

			g.calls += rec.Calls
			if rec.AHTSeconds.Known() {
				g.ahtNum += rec.AHTSeconds.Value() * float64(rec.Calls)
				g.ahtDen += float64(rec.Calls)
			}
			if rec.AbandonPct.Known() {
				g.abandonNum += rec.AbandonPct.Value() / 100 * float64(rec.Calls)
			}
			g.abandonCalls += rec.Calls
		}
	}

	out := make([]model.TrendBucket, 0, len(groups))
	for key, g := range groups {
		bucket := model.TrendBucket{
			Skill:      keys[key][0],
			Period:     keys[key][1],
			Calls:      g.calls,
			AHTSeconds: model.UnknownMetric(),
			AbandonPct: model.UnknownMetric(),
		}
		if g.ahtDen > 0 {
			bucket.AHTSeconds = model.Metric(g.ahtNum / g.ahtDen)
		}
		if g.abandonCalls > 0 {
			bucket.AbandonPct = model.Metric(g.abandonNum / float64(g.abandonCalls) * 100)
		}
		out = append(out, bucket)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Skill != out[j].Skill {
			return out[i].Skill < out[j].Skill
		}
		return out[i].Period < out[j].Period
	})

	return out
}
