package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ArciniegaPatriot/DopeReport/internal/calculator"
	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

// TrendsResponse trend buckets for one period granularity
type TrendsResponse struct {
	Period  model.TrendPeriod   `json:"period"`
	Source  string              `json:"source"` // "latest" or "history"
	Buckets []model.TrendBucket `json:"buckets"`
}

// GetTrends per-skill trend buckets
// GET /api/v1/trends?period=day|week|month&source=latest|history&skill=
//
// source=latest groups the in-memory report by its timestamp column;
// source=history merges the stored snapshots by creation time. An optional
// skill parameter filters the buckets, case-insensitively.
func (h *Handler) GetTrends(c *gin.Context) {
	period, ok := parsePeriod(c.DefaultQuery("period", "day"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be day, week or month"})
		return
	}

	source := c.DefaultQuery("source", "latest")
	switch source {
	case "latest":
		h.latestTrends(c, period)
	case "history":
		h.historyTrends(c, period)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "source must be latest or history"})
	}
}

func filterSkill(buckets []model.TrendBucket, skill string) []model.TrendBucket {
	if skill == "" {
		return buckets
	}
	out := make([]model.TrendBucket, 0, len(buckets))
	for _, b := range buckets {
		if strings.EqualFold(b.Skill, skill) {
			out = append(out, b)
		}
	}
	return out
}

func (h *Handler) latestTrends(c *gin.Context, period model.TrendPeriod) {
	state := h.getLatest()
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report imported"})
		return
	}

	buckets, err := calculator.Trends(state.dataset, state.bindings, period)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, TrendsResponse{Period: period, Source: "latest", Buckets: filterSkill(buckets, c.Query("skill"))})
}

func (h *Handler) historyTrends(c *gin.Context, period model.TrendPeriod) {
	snaps, err := h.store.ListSnapshots(0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load snapshots"})
		return
	}

	buckets := calculator.MergeSnapshots(snaps, period)
	c.JSON(http.StatusOK, TrendsResponse{Period: period, Source: "history", Buckets: filterSkill(buckets, c.Query("skill"))})
}

func parsePeriod(s string) (model.TrendPeriod, bool) {
	switch s {
	case string(model.PeriodDay):
		return model.PeriodDay, true
	case string(model.PeriodWeek):
		return model.PeriodWeek, true
	case string(model.PeriodMonth):
		return model.PeriodMonth, true
	}
	return "", false
}
