package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

// SnapshotSummary snapshot listing entry, without the full table
type SnapshotSummary struct {
	ID              string       `json:"id"`
	ContentHash     string       `json:"contentHash"`
	Source          string       `json:"source"`
	CreatedAt       string       `json:"createdAt"`
	TotalCalls      int          `json:"totalCalls"`
	TotalAgents     int          `json:"totalAgents"`
	TotalAbandonPct model.Metric `json:"totalAbandonPct"`
	SkillCount      int          `json:"skillCount"`
}

// ListSnapshots newest-first history of imported reports
// GET /api/v1/snapshots?limit=N
func (h *Handler) ListSnapshots(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	snaps, err := h.store.ListSnapshots(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load snapshots"})
		return
	}

	out := make([]SnapshotSummary, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, SnapshotSummary{
			ID:              snap.ID,
			ContentHash:     snap.ContentHash,
			Source:          snap.Source,
			CreatedAt:       snap.CreatedAt.Format(time.RFC3339),
			TotalCalls:      snap.Result.TotalCalls,
			TotalAgents:     snap.Result.TotalAgents,
			TotalAbandonPct: snap.Result.TotalAbandonPct,
			SkillCount:      len(snap.Result.Table),
		})
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": out, "count": len(out)})
}
