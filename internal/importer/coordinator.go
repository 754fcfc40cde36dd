package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ArciniegaPatriot/DopeReport/internal/calculator"
	"github.com/ArciniegaPatriot/DopeReport/internal/model"
	"github.com/ArciniegaPatriot/DopeReport/internal/parser"
	"github.com/ArciniegaPatriot/DopeReport/internal/store"
)

// Coordinator drives one import: read the report, resolve columns, aggregate
// and append a snapshot, streaming progress events to the caller.
type Coordinator struct {
	store  *store.Store
	mapper *parser.FieldMapper
}

// NewCoordinator creates an import coordinator
func NewCoordinator(st *store.Store) *Coordinator {
	return &Coordinator{
		store:  st,
		mapper: parser.NewFieldMapper(),
	}
}

// Options one import run
type Options struct {
	Dataset   *model.Dataset
	Secondary *model.Dataset // optional all-skills totals export

	// Persist append a snapshot to the historical store on success
	Persist bool
}

// ProgressEvent import progress, streamed to the UI as SSE
type ProgressEvent struct {
	Type      string      `json:"type"` // start/resolved/aggregated/snapshot/done/error
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Result final state of a finished import
type Result struct {
	Bindings  model.BindingSet       `json:"bindings"`
	Aggregate *model.AggregateResult `json:"aggregate"`
	Snapshot  *model.Snapshot        `json:"snapshot,omitempty"`
	Appended  bool                   `json:"appended"`
}

// Import runs the pipeline, returning a progress channel that closes when
// the run finishes. The run itself is synchronous and idempotent; only the
// event delivery is buffered.
func (c *Coordinator) Import(opts Options) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doImport(opts Options, progressChan chan ProgressEvent) {
	c.sendProgress(progressChan, ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("importing %s", opts.Dataset.Source),
		Data:      map[string]interface{}{"source": opts.Dataset.Source, "rows": len(opts.Dataset.Rows)},
		Timestamp: time.Now(),
	})

	if opts.Dataset.Empty() {
		c.fail(progressChan, fmt.Errorf("%s: %w", opts.Dataset.Source, calculator.ErrEmptyDataset))
		return
	}

	mappingCfg, err := c.store.LoadMappingConfig()
	if err != nil {
		c.fail(progressChan, err)
		return
	}

	bindings := c.mapper.Resolve(opts.Dataset.Columns, mappingCfg.Overrides())
	c.sendProgress(progressChan, ProgressEvent{
		Type:      "resolved",
		Message:   fmt.Sprintf("resolved %d of %d fields", len(bindings), len(model.AllFields())),
		Data:      bindings,
		Timestamp: time.Now(),
	})

	var secondaryBindings model.BindingSet
	if !opts.Secondary.Empty() {
		secondaryBindings = c.mapper.Resolve(opts.Secondary.Columns, mappingCfg.Overrides())
	}

	result, err := calculator.Aggregate(calculator.Input{
		Dataset:           opts.Dataset,
		Bindings:          bindings,
		Skills:            mappingCfg.Skills,
		Secondary:         opts.Secondary,
		SecondaryBindings: secondaryBindings,
	})
	if err != nil {
		c.fail(progressChan, err)
		return
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "aggregated",
		Message:   fmt.Sprintf("aggregated %d rows, %d calls", len(result.Table), result.TotalCalls),
		Timestamp: time.Now(),
	})

	final := Result{Bindings: bindings, Aggregate: result}

	if opts.Persist {
		snap, appended, err := c.appendSnapshot(opts.Dataset.Source, result)
		if err != nil {
			c.fail(progressChan, err)
			return
		}
		final.Snapshot = snap
		final.Appended = appended

		msg := "snapshot appended"
		if !appended {
			msg = "identical snapshot already stored"
		}
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "snapshot",
			Message:   msg,
			Data:      map[string]interface{}{"id": snap.ID, "hash": snap.ContentHash, "appended": appended},
			Timestamp: time.Now(),
		})
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   "import complete",
		Data:      final,
		Timestamp: time.Now(),
	})
}

// appendSnapshot persists an immutable copy of the run, deduplicated by
// content hash so re-importing the same report is a no-op
func (c *Coordinator) appendSnapshot(source string, result *model.AggregateResult) (*model.Snapshot, bool, error) {
	hash, err := ContentHash(source, result)
	if err != nil {
		return nil, false, err
	}

	snap := &model.Snapshot{
		ID:          uuid.New().String(),
		ContentHash: hash,
		Source:      source,
		CreatedAt:   time.Now().UTC(),
		Result:      *result,
	}

	appended, err := c.store.AppendSnapshot(snap)
	if err != nil {
		return nil, false, fmt.Errorf("failed to append snapshot: %w", err)
	}
	return snap, appended, nil
}

// ContentHash deterministic hash over the source name and aggregate output
func ContentHash(source string, result *model.AggregateResult) (string, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to hash result: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(source))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *Coordinator) fail(ch chan ProgressEvent, err error) {
	c.sendProgress(ch, ProgressEvent{
		Type:      "error",
		Message:   err.Error(),
		Timestamp: time.Now(),
	})
}

// sendProgress drops events when the channel is full rather than blocking
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}
