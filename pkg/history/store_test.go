// Unit tests for the sqlite analysis history store
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package history

import (
	"path/filepath"
	"testing"

	"gcode-inspect/pkg/analysis"
	"gcode-inspect/pkg/gcode"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport() analysis.Report {
	return analysis.Report{
		Lines:            120,
		PrePrint:         gcode.Range{Start: 0, End: 14},
		PostPrint:        gcode.Range{Start: 110, End: 120},
		Planar:           true,
		FirstLayerHeight: 200,
		LayerHeight:      200,
	}
}

// TestRecordAndRecent tests the insert/query round trip.
func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	id, err := s.RecordAnalysis("benchy.gcode", sampleReport())
	if err != nil {
		t.Fatalf("RecordAnalysis: %v", err)
	}
	if id == 0 {
		t.Error("expected nonzero row id")
	}

	records, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Name != "benchy.gcode" {
		t.Errorf("Name = %q", r.Name)
	}
	if r.Lines != 120 || r.PrePrintEnd != 14 || r.PostPrintStart != 110 {
		t.Errorf("stored ranges mismatch: %+v", r)
	}
	if !r.Planar {
		t.Error("Planar not stored")
	}
	if r.FirstLayerHeight != 200 || r.LayerHeight != 200 {
		t.Errorf("layer heights mismatch: %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

// TestRecentOrderAndLimit tests newest-first ordering and the limit.
func TestRecentOrderAndLimit(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"a.gcode", "b.gcode", "c.gcode"} {
		if _, err := s.RecordAnalysis(name, sampleReport()); err != nil {
			t.Fatalf("RecordAnalysis(%s): %v", name, err)
		}
	}

	records, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "c.gcode" || records[1].Name != "b.gcode" {
		t.Errorf("order = [%s, %s], want newest first", records[0].Name, records[1].Name)
	}
}

// TestRecentEmpty tests querying a fresh store.
func TestRecentEmpty(t *testing.T) {
	s := openTestStore(t)
	records, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
