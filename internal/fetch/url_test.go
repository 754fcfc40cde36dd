package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ArciniegaPatriot/DopeReport/internal/fetch"
)

func TestFetchCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("Skill,Calls\nMS Info,120\n"))
	}))
	defer srv.Close()

	c := fetch.NewClient(5 * time.Second)
	ds, err := c.Fetch(context.Background(), srv.URL+"/daily/report.csv")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if ds.Source != "report.csv" {
		t.Errorf("Source=%q, want report.csv", ds.Source)
	}
	if got := ds.Cell(0, 1); got != "120" {
		t.Errorf("Cell(0,1)=%q, want 120", got)
	}
}

func TestFetchDefaultFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Skill,Calls\nMS Info,120\n"))
	}))
	defer srv.Close()

	c := fetch.NewClient(5 * time.Second)
	ds, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if ds.Source != "remote-report.csv" {
		t.Errorf("Source=%q, want remote-report.csv", ds.Source)
	}
}

func TestFetchRejectsScheme(t *testing.T) {
	c := fetch.NewClient(time.Second)
	if _, err := c.Fetch(context.Background(), "ftp://example.com/report.csv"); err == nil {
		t.Fatal("expected scheme error")
	}
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := fetch.NewClient(time.Second)
	if _, err := c.Fetch(context.Background(), srv.URL+"/missing.csv"); err == nil {
		t.Fatal("expected status error")
	}
}
