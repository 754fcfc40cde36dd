package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArciniegaPatriot/DopeReport/internal/importer"
)

// FetchRequest remote report request
type FetchRequest struct {
	URL     string `json:"url" binding:"required"`
	Persist *bool  `json:"persist"`
}

// Fetch pull a report from an HTTP(S) URL and import it (SSE streaming
// response, same event stream as POST /import)
// POST /api/v1/fetch
func (h *Handler) Fetch(c *gin.Context) {
	var req FetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dataset, err := h.fetcher.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	persist := true
	if req.Persist != nil {
		persist = *req.Persist
	}

	h.runImport(c, importer.Options{
		Dataset: dataset,
		Persist: persist,
	})
}
