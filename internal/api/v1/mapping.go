package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

// GetMapping current mapping configuration
// GET /api/v1/mapping
func (h *Handler) GetMapping(c *gin.Context) {
	cfg, err := h.store.LoadMappingConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load mapping config"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateMapping replace the mapping configuration
// PUT /api/v1/mapping
func (h *Handler) UpdateMapping(c *gin.Context) {
	var cfg model.MappingConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mapping config"})
		return
	}

	if err := validateMapping(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveMappingConfig(&cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save mapping config"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// ExportMapping download the mapping configuration as JSON
// GET /api/v1/mapping/export
func (h *Handler) ExportMapping(c *gin.Context) {
	cfg, err := h.store.LoadMappingConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load mapping config"})
		return
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode mapping config"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="mapping-config.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// ImportMapping replace the mapping configuration from an uploaded JSON
// file (form field "file") or a raw JSON body
// POST /api/v1/mapping/import
func (h *Handler) ImportMapping(c *gin.Context) {
	var data []byte

	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
			return
		}
		defer f.Close()
		data, err = io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
			return
		}
	} else {
		var err error
		data, err = io.ReadAll(c.Request.Body)
		if err != nil || len(data) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no mapping config provided"})
			return
		}
	}

	var cfg model.MappingConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mapping config JSON"})
		return
	}

	if err := validateMapping(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveMappingConfig(&cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save mapping config"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func validateMapping(cfg *model.MappingConfig) error {
	for field := range cfg.Columns {
		if !knownField(field) {
			return &unknownFieldError{field: field}
		}
	}
	return nil
}

type unknownFieldError struct {
	field model.CanonicalField
}

func (e *unknownFieldError) Error() string {
	return "unknown canonical field: " + string(e.field)
}

func knownField(field model.CanonicalField) bool {
	for _, f := range model.AllFields() {
		if f == field {
			return true
		}
	}
	return false
}
