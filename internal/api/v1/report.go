package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArciniegaPatriot/DopeReport/internal/exporter"
)

// GetReport aggregate result of the most recent import
// GET /api/v1/report
func (h *Handler) GetReport(c *gin.Context) {
	state := h.getLatest()
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report imported"})
		return
	}
	c.JSON(http.StatusOK, state.result)
}

// GetReportMarkdown markdown rendering of the most recent import
// GET /api/v1/report/markdown
func (h *Handler) GetReportMarkdown(c *gin.Context) {
	state := h.getLatest()
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report imported"})
		return
	}

	companyName := h.companyName()
	md := exporter.BuildMarkdown(state.result, companyName)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

// companyName from the stored mapping config, empty when unset
func (h *Handler) companyName() string {
	cfg, err := h.store.LoadMappingConfig()
	if err != nil {
		return ""
	}
	return cfg.CompanyName
}
