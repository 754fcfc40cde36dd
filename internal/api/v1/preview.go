package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

// PreviewResponse head of a report plus resolved bindings
type PreviewResponse struct {
	Source   string           `json:"source"`
	Columns  []string         `json:"columns"`
	Rows     [][]string       `json:"rows"`
	RowCount int              `json:"rowCount"`
	Bindings model.BindingSet `json:"bindings"`
}

// GetPreview preview the most recent import
// GET /api/v1/preview
func (h *Handler) GetPreview(c *gin.Context) {
	state := h.getLatest()
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report imported"})
		return
	}

	c.JSON(http.StatusOK, PreviewResponse{
		Source:   state.dataset.Source,
		Columns:  state.dataset.Columns,
		Rows:     state.dataset.Preview(h.previewRows),
		RowCount: len(state.dataset.Rows),
		Bindings: state.bindings,
	})
}

// PostPreview dry-run an upload: read it, resolve its columns against the
// stored overrides and return the head rows, without aggregating or
// touching the latest-import state
// POST /api/v1/preview
func (h *Handler) PostPreview(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no uploaded file"})
		return
	}

	dataset, err := readUpload(fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mappingCfg, err := h.store.LoadMappingConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load mapping config"})
		return
	}

	bindings := h.mapper.Resolve(dataset.Columns, mappingCfg.Overrides())

	c.JSON(http.StatusOK, PreviewResponse{
		Source:   dataset.Source,
		Columns:  dataset.Columns,
		Rows:     dataset.Preview(h.previewRows),
		RowCount: len(dataset.Rows),
		Bindings: bindings,
	})
}
