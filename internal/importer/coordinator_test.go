package importer_test

import (
	"path/filepath"
	"testing"

	"github.com/ArciniegaPatriot/DopeReport/internal/importer"
	"github.com/ArciniegaPatriot/DopeReport/internal/model"
	"github.com/ArciniegaPatriot/DopeReport/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDataset() *model.Dataset {
	return &model.Dataset{
		Source:  "report.csv",
		Columns: []string{"Skill", "Calls", "Agents Staffed", "AHT", "Abandoned Count"},
		Rows: [][]string{
			{"MS Info", "100", "10", "2:00", "5"},
			{"PM Connect", "50", "5", "4:00", "5"},
		},
	}
}

func collect(t *testing.T, ch <-chan importer.ProgressEvent) []importer.ProgressEvent {
	t.Helper()
	var events []importer.ProgressEvent
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

func eventTypes(events []importer.ProgressEvent) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func TestImportPipeline(t *testing.T) {
	c := importer.NewCoordinator(newTestStore(t))

	events := collect(t, c.Import(importer.Options{Dataset: sampleDataset(), Persist: true}))

	want := []string{"start", "resolved", "aggregated", "snapshot", "done"}
	got := eventTypes(events)
	if len(got) != len(want) {
		t.Fatalf("events=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events=%v, want %v", got, want)
		}
	}

	final, ok := events[len(events)-1].Data.(importer.Result)
	if !ok {
		t.Fatalf("done event data=%T, want importer.Result", events[len(events)-1].Data)
	}
	if !final.Appended {
		t.Error("first import should append a snapshot")
	}
	if final.Aggregate.TotalCalls != 150 {
		t.Errorf("TotalCalls=%d, want 150", final.Aggregate.TotalCalls)
	}
	if final.Snapshot == nil || final.Snapshot.ContentHash == "" {
		t.Errorf("snapshot=%+v", final.Snapshot)
	}
}

func TestImportReimportDeduplicates(t *testing.T) {
	s := newTestStore(t)
	c := importer.NewCoordinator(s)

	first := collect(t, c.Import(importer.Options{Dataset: sampleDataset(), Persist: true}))
	second := collect(t, c.Import(importer.Options{Dataset: sampleDataset(), Persist: true}))

	firstResult := first[len(first)-1].Data.(importer.Result)
	secondResult := second[len(second)-1].Data.(importer.Result)

	if !firstResult.Appended {
		t.Error("first import should append")
	}
	if secondResult.Appended {
		t.Error("identical re-import must not append")
	}

	count, err := s.CountSnapshots()
	if err != nil || count != 1 {
		t.Fatalf("CountSnapshots=(%d,%v), want 1", count, err)
	}
}

func TestImportWithoutPersist(t *testing.T) {
	s := newTestStore(t)
	c := importer.NewCoordinator(s)

	events := collect(t, c.Import(importer.Options{Dataset: sampleDataset()}))

	got := eventTypes(events)
	for _, typ := range got {
		if typ == "snapshot" {
			t.Fatalf("events=%v, no snapshot event expected without persist", got)
		}
	}

	count, _ := s.CountSnapshots()
	if count != 0 {
		t.Errorf("CountSnapshots=%d, want 0", count)
	}
}

func TestImportEmptyDataset(t *testing.T) {
	c := importer.NewCoordinator(newTestStore(t))

	ds := &model.Dataset{Source: "empty.csv", Columns: []string{"Skill"}}
	events := collect(t, c.Import(importer.Options{Dataset: ds}))

	last := events[len(events)-1]
	if last.Type != "error" {
		t.Fatalf("last event=%s, want error", last.Type)
	}
}

func TestImportUsesStoredOverrides(t *testing.T) {
	s := newTestStore(t)

	// pin AHT to a column auto-detection would never pick
	cfg := &model.MappingConfig{
		Columns: map[model.CanonicalField]string{
			model.FieldAHT: "Talk Seconds",
		},
		Skills: []string{"MS Info"},
	}
	if err := s.SaveMappingConfig(cfg); err != nil {
		t.Fatalf("SaveMappingConfig: %v", err)
	}

	ds := &model.Dataset{
		Source:  "report.csv",
		Columns: []string{"Skill", "Calls", "Agents Staffed", "AHT", "Talk Seconds"},
		Rows: [][]string{
			{"MS Info", "100", "10", "9:59", "30"},
		},
	}

	c := importer.NewCoordinator(s)
	events := collect(t, c.Import(importer.Options{Dataset: ds}))

	final := events[len(events)-1].Data.(importer.Result)
	b := final.Bindings[model.FieldAHT]
	if b.Column != "Talk Seconds" || b.Source != model.BindingOverride {
		t.Errorf("AHT binding=%+v, want pinned Talk Seconds", b)
	}
	if got := final.Aggregate.TotalAHTSeconds.Value(); got != 30 {
		t.Errorf("TotalAHTSeconds=%v, want 30", got)
	}

	if len(final.Aggregate.Skills) != 1 || !final.Aggregate.Skills[0].Found {
		t.Errorf("Skills=%+v", final.Aggregate.Skills)
	}
}

func TestContentHashDeterministic(t *testing.T) {
	result := &model.AggregateResult{
		TotalCalls:      150,
		TotalAbandonPct: model.UnknownMetric(),
		TotalAHTSeconds: model.Metric(160),
	}

	h1, err := importer.ContentHash("report.csv", result)
	if err != nil {
		t.Fatalf("ContentHash: %v", err)
	}
	h2, err := importer.ContentHash("report.csv", result)
	if err != nil {
		t.Fatalf("ContentHash: %v", err)
	}
	if h1 != h2 {
		t.Errorf("hash not deterministic: %s vs %s", h1, h2)
	}

	h3, _ := importer.ContentHash("other.csv", result)
	if h3 == h1 {
		t.Error("different source must hash differently")
	}

	other := &model.AggregateResult{
		TotalCalls:      151,
		TotalAbandonPct: model.UnknownMetric(),
		TotalAHTSeconds: model.Metric(160),
	}
	h4, _ := importer.ContentHash("report.csv", other)
	if h4 == h1 {
		t.Error("different result must hash differently")
	}
}
