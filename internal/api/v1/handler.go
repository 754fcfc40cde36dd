package v1

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/ArciniegaPatriot/DopeReport/internal/fetch"
	"github.com/ArciniegaPatriot/DopeReport/internal/importer"
	"github.com/ArciniegaPatriot/DopeReport/internal/model"
	"github.com/ArciniegaPatriot/DopeReport/internal/parser"
	"github.com/ArciniegaPatriot/DopeReport/internal/store"
)

// Handler V1 API handler
type Handler struct {
	store       *store.Store
	coordinator *importer.Coordinator
	mapper      *parser.FieldMapper
	fetcher     *fetch.Client
	downloads   *exportDownloadStore
	previewRows int

	// latest import, held in memory for preview/report/export
	mu     sync.RWMutex
	latest *importState
}

type importState struct {
	dataset  *model.Dataset
	bindings model.BindingSet
	result   *model.AggregateResult
}

// Options handler construction options
type Options struct {
	Store       *store.Store
	Fetcher     *fetch.Client
	PreviewRows int
}

// NewHandler creates a V1 API handler
func NewHandler(opts Options) *Handler {
	previewRows := opts.PreviewRows
	if previewRows <= 0 {
		previewRows = 20
	}
	return &Handler{
		store:       opts.Store,
		coordinator: importer.NewCoordinator(opts.Store),
		mapper:      parser.NewFieldMapper(),
		fetcher:     opts.Fetcher,
		downloads:   newExportDownloadStore(),
		previewRows: previewRows,
	}
}

// RegisterRoutes registers V1 API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// system status
	router.GET("/status", h.GetStatus)

	// report ingestion
	router.POST("/import", h.Import)
	router.POST("/fetch", h.Fetch)
	router.GET("/preview", h.GetPreview)
	router.POST("/preview", h.PostPreview)

	// mapping configuration
	router.GET("/mapping", h.GetMapping)
	router.PUT("/mapping", h.UpdateMapping)
	router.GET("/mapping/export", h.ExportMapping)
	router.POST("/mapping/import", h.ImportMapping)

	// aggregate report
	router.GET("/report", h.GetReport)
	router.GET("/report/markdown", h.GetReportMarkdown)

	// trends and history
	router.GET("/trends", h.GetTrends)
	router.GET("/snapshots", h.ListSnapshots)

	// exports
	router.GET("/export/csv", h.ExportCSV)
	router.GET("/export/tsv", h.ExportTSV)
	router.GET("/export/kpi.csv", h.ExportKPICSV)
	router.GET("/export/text", h.ExportText)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
}

func (h *Handler) setLatest(state *importState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = state
}

func (h *Handler) getLatest() *importState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}
