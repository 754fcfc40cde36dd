package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatusResponse system status response
type StatusResponse struct {
	Initialized    bool   `json:"initialized"`    // a report has been imported this session
	SnapshotCount  int    `json:"snapshotCount"`  // historical snapshots stored
	LastImportTime string `json:"lastImportTime"` // newest snapshot timestamp, RFC 3339
	LatestSource   string `json:"latestSource"`   // file name of the in-memory report
}

// GetStatus system status
// GET /api/v1/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{}

	if count, err := h.store.CountSnapshots(); err == nil {
		resp.SnapshotCount = count
	}
	if last, err := h.store.LastImportTime(); err == nil && !last.IsZero() {
		resp.LastImportTime = last.Format(time.RFC3339)
	}

	if state := h.getLatest(); state != nil {
		resp.Initialized = true
		resp.LatestSource = state.dataset.Source
	}

	c.JSON(http.StatusOK, resp)
}
