package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArciniegaPatriot/DopeReport/internal/calculator"
	"github.com/ArciniegaPatriot/DopeReport/internal/exporter"
	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

// ExportCSV by-skill table as CSV
// GET /api/v1/export/csv
func (h *Handler) ExportCSV(c *gin.Context) {
	state := h.getLatest()
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report imported"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="by-skill.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(exporter.BySkillDelimited(state.result, ',')))
}

// ExportTSV by-skill table as TSV, for spreadsheet paste
// GET /api/v1/export/tsv
func (h *Handler) ExportTSV(c *gin.Context) {
	state := h.getLatest()
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report imported"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="by-skill.tsv"`)
	c.Data(http.StatusOK, "text/tab-separated-values; charset=utf-8", []byte(exporter.BySkillDelimited(state.result, '\t')))
}

// ExportKPICSV headline totals as a one-row CSV
// GET /api/v1/export/kpi.csv
func (h *Handler) ExportKPICSV(c *gin.Context) {
	state := h.getLatest()
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report imported"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="kpi.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(exporter.KPIDelimited(state.result)))
}

// ExportText by-skill table rendered for terminal/chat paste
// GET /api/v1/export/text
func (h *Handler) ExportText(c *gin.Context) {
	state := h.getLatest()
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report imported"})
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(exporter.BySkillText(state.result)))
}

// ExportStream build the XLSX workbook (SSE progress, then a one-time
// download URL)
// POST /api/v1/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	state := h.getLatest()
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report imported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(exportProgressEvent{
		Type:      "start",
		Message:   "building workbook",
		Data:      map[string]any{"source": state.dataset.Source},
		Timestamp: time.Now(),
	})

	// trends sheet is best-effort; a report without a timestamp column
	// still exports summary and by-skill
	var trends []model.TrendBucket
	if buckets, err := calculator.Trends(state.dataset, state.bindings, model.PeriodDay); err == nil {
		trends = buckets
	}

	file, err := exporter.BuildWorkbook(state.result, trends, h.companyName())
	if err != nil {
		send(exportProgressEvent{
			Type:      "error",
			Message:   "export failed: " + err.Error(),
			Timestamp: time.Now(),
		})
		return
	}
	defer file.Close()

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("dopereport_export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := file.SaveAs(tempPath); err != nil {
		send(exportProgressEvent{
			Type:      "error",
			Message:   "failed to write export file: " + err.Error(),
			Timestamp: time.Now(),
		})
		_ = os.Remove(tempPath)
		return
	}

	fileName := fmt.Sprintf("kpi-report-%s.xlsx", time.Now().Format("2006-01-02"))
	token := h.downloads.put(tempPath, fileName, 10*time.Minute)

	send(exportProgressEvent{
		Type:    "done",
		Message: "export complete",
		Data: map[string]any{
			"downloadUrl": "/api/v1/export/download/" + token,
		},
		Timestamp: time.Now(),
	})
}

// DownloadExport one-time download of a built workbook
// GET /api/v1/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "export file missing"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, item.fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
