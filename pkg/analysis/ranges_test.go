// Unit tests for pre-print and post-print range derivation
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package analysis

import (
	"errors"
	"testing"

	"gcode-inspect/pkg/gcode"
)

// TestPrePrintWithoutPurgeLine tests that pre-print stops at the first
// extrusion shape when that shape is real geometry.
func TestPrePrintWithoutPurgeLine(t *testing.T) {
	c := cursorFor(t, `M104 S200
G28
G1 X50 Y50 F3000
G1 X60 Y60 E5
G1 X70 Y60 E10`)

	got, err := c.PrePrint()
	if err != nil {
		t.Fatalf("PrePrint: %v", err)
	}
	want := gcode.Range{Start: 0, End: 3}
	if got != want {
		t.Errorf("PrePrint = %v, want %v", got, want)
	}
}

// TestPrePrintSkipsPurgeLine tests that a leading purge line is folded
// into the pre-print range, which then ends at the next extrusion shape.
func TestPrePrintSkipsPurgeLine(t *testing.T) {
	c := cursorFor(t, `G28
G1 X1 Y10 F3000
G1 X1 Y30 E5
G1 X1 Y50 E10
G1 X1 Y70 E15
G1 X50 Y50
G1 X60 Y50 E20
G1 X70 Y50 E25`)

	got, err := c.PrePrint()
	if err != nil {
		t.Fatalf("PrePrint: %v", err)
	}
	want := gcode.Range{Start: 0, End: 6}
	if got != want {
		t.Errorf("PrePrint = %v, want %v", got, want)
	}
}

// TestPrePrintPurgeOnlyFile tests the degenerate file whose only extrusion
// is the purge blob itself.
func TestPrePrintPurgeOnlyFile(t *testing.T) {
	c := cursorFor(t, purgeSrc)

	got, err := c.PrePrint()
	if err != nil {
		t.Fatalf("PrePrint: %v", err)
	}
	want := gcode.Range{Start: 0, End: 5}
	if got != want {
		t.Errorf("PrePrint = %v, want %v", got, want)
	}
}

// TestPostPrint tests that post-print covers everything after the last
// extrusion shape.
func TestPostPrint(t *testing.T) {
	c := cursorFor(t, `G28
G1 X60 Y60 E5
G1 X70 Y60 E10
G1 X0 Y0
M104 S0
M84`)

	got, err := c.PostPrint()
	if err != nil {
		t.Fatalf("PostPrint: %v", err)
	}
	want := gcode.Range{Start: 3, End: 6}
	if got != want {
		t.Errorf("PostPrint = %v, want %v", got, want)
	}
}

// TestPostPrintEmptyTail tests a file ending on an extrusion move.
func TestPostPrintEmptyTail(t *testing.T) {
	c := cursorFor(t, "G1 X60 Y60 E5\nG1 X70 Y60 E10")

	got, err := c.PostPrint()
	if err != nil {
		t.Fatalf("PostPrint: %v", err)
	}
	want := gcode.Range{Start: 2, End: 2}
	if got != want {
		t.Errorf("PostPrint = %v, want %v", got, want)
	}
	if got.Len() != 0 {
		t.Errorf("PostPrint length = %d, want 0", got.Len())
	}
}

// TestRangesNoShapes tests the distinct no-shapes error on files without
// any extrusion.
func TestRangesNoShapes(t *testing.T) {
	c := cursorFor(t, "G28\nG1 X10 Y10 F3000\nM104 S0")

	if _, err := c.PrePrint(); !errors.Is(err, ErrNoShapes) {
		t.Errorf("PrePrint: err = %v, want ErrNoShapes", err)
	}
	if _, err := c.PostPrint(); !errors.Is(err, ErrNoShapes) {
		t.Errorf("PostPrint: err = %v, want ErrNoShapes", err)
	}
}
