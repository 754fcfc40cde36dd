package v1

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArciniegaPatriot/DopeReport/internal/importer"
	"github.com/ArciniegaPatriot/DopeReport/internal/model"
	"github.com/ArciniegaPatriot/DopeReport/internal/parser"
)

// Import ingest an uploaded report (SSE streaming response)
// POST /api/v1/import
//
// Form fields: "file" the report, optional "totals" a second all-skills
// export used to override the headline calls/agents totals, optional
// "persist" ("true" by default) to append a snapshot.
func (h *Handler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no uploaded file"})
		return
	}

	dataset, err := readUpload(files[0])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var secondary *model.Dataset
	if totals := form.File["totals"]; len(totals) > 0 {
		secondary, err = readUpload(totals[0])
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("totals file: %s", err.Error())})
			return
		}
	}

	persist := c.DefaultPostForm("persist", "true") == "true"

	h.runImport(c, importer.Options{
		Dataset:   dataset,
		Secondary: secondary,
		Persist:   persist,
	})
}

// runImport streams coordinator progress as SSE and captures the final
// result for preview/report/export
func (h *Handler) runImport(c *gin.Context, opts importer.Options) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	progressChan := h.coordinator.Import(opts)

	for event := range progressChan {
		if event.Type == "done" {
			if res, ok := event.Data.(importer.Result); ok {
				h.setLatest(&importState{
					dataset:  opts.Dataset,
					bindings: res.Bindings,
					result:   res.Aggregate,
				})
			}
		}

		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

func readUpload(fh *multipart.FileHeader) (*model.Dataset, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	return parser.ReadAny(f, fh.Filename)
}
