// Unit tests for extrusion classification and shape segmentation
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"gcode-inspect/pkg/gcode"
)

// TestIsExtrusion tests the net-positive-E-plus-displacement rule.
func TestIsExtrusion(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"xy move with E increase", "G1 X10 Y10 E1", true},
		{"z move with E increase", "G1 Z0.4 E1", true},
		{"no spatial displacement", "G1 E1", false},
		{"E constant", "G1 X10 Y10", false},
		{"retraction while moving", "G1 X10 Y10 E-1", false},
		{"feedrate only", "G1 F1800", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cursorFor(t, tt.src)
			if got := c.IsExtrusion(); got != tt.want {
				t.Errorf("IsExtrusion(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

// TestIsExtrusionNeverTrueWithoutEIncrease tests that any move with
// non-increasing E is travel, whatever the displacement.
func TestIsExtrusionNeverTrueWithoutEIncrease(t *testing.T) {
	c := cursorFor(t, "G1 X10 Y10 Z5 E2\nG1 X20 Y20 Z10 E2\nG1 X30 Y5 Z1 E1")
	for {
		if c.Pos().E() <= c.PrevPos().E() && c.IsExtrusion() {
			t.Errorf("line %d: IsExtrusion true without E increase", c.Index())
		}
		if _, err := c.Next(); err != nil {
			break
		}
	}
}

// TestNonplanarExtrusion tests Z-changing extrusion detection.
func TestNonplanarExtrusion(t *testing.T) {
	c := cursorFor(t, "G1 X10 Y10 Z0.3 E1")
	if !c.NonplanarExtrusion() {
		t.Error("expected nonplanar extrusion for Z-changing extrusion move")
	}
	c = cursorFor(t, "G1 X10 Y10 E1")
	if c.NonplanarExtrusion() {
		t.Error("planar extrusion move flagged as nonplanar")
	}
}

// TestSingleShapeSplitsOnTravel tests the segmentation scenario from the
// package contract: three extrusion moves form one shape; a trailing
// travel-only move splits off a second.
func TestSingleShapeSplitsOnTravel(t *testing.T) {
	c := cursorFor(t, "G1 X10 Y10 E10\nG1 X20 Y20 E20\nG1 X30 Y30 E30")
	want := []Shape{{Start: 0, End: 2, Extrusion: true}}
	if diff := cmp.Diff(want, c.Shapes()); diff != "" {
		t.Errorf("shapes mismatch (-want +got):\n%s", diff)
	}

	c = cursorFor(t, "G1 X10 Y10 E10\nG1 X20 Y20 E20\nG1 X30 Y30 E30\nG1 X0 Y0")
	want = []Shape{
		{Start: 0, End: 2, Extrusion: true},
		{Start: 3, End: 3, Extrusion: false},
	}
	if diff := cmp.Diff(want, c.Shapes()); diff != "" {
		t.Errorf("shapes mismatch (-want +got):\n%s", diff)
	}
}

// TestShapesAlternate tests a mixed file with interleaved travel.
func TestShapesAlternate(t *testing.T) {
	c := cursorFor(t, `G28
G1 X10 Y10 F3000
G1 X20 Y10 E1
G1 X20 Y20 E2
G1 X50 Y50
G1 X60 Y50 E3
M104 S0`)
	want := []Shape{
		{Start: 0, End: 1, Extrusion: false},
		{Start: 2, End: 3, Extrusion: true},
		{Start: 4, End: 4, Extrusion: false},
		{Start: 5, End: 5, Extrusion: true},
		{Start: 6, End: 6, Extrusion: false},
	}
	if diff := cmp.Diff(want, c.Shapes()); diff != "" {
		t.Errorf("shapes mismatch (-want +got):\n%s", diff)
	}
}

// TestShapesPartition tests the partition property: contiguous,
// non-overlapping, covering every index exactly once, alternating
// classification.
func TestShapesPartition(t *testing.T) {
	srcs := []string{
		"G1 X1",
		"G1 X10 Y10 E1",
		"G28\nG90\nM83\nG1 X5 Y5 E1\nG1 X6 Y6 E2\nG1 X50 Y50\nG1 X51 Y51 E3\nM104 S0\nG28",
		"G1 E1\nG1 X1 Y1 E2\nG1 E2\nG1 X2 Y2 E3",
	}
	for _, src := range srcs {
		model := gcode.ParseString(src)
		c := NewCursor(model, DefaultTolerances())
		shapes := c.Shapes()

		next := 0
		for i, s := range shapes {
			if s.Start != next {
				t.Errorf("%q: shape %d starts at %d, want %d", src, i, s.Start, next)
			}
			if s.End < s.Start {
				t.Errorf("%q: shape %d is inverted: %+v", src, i, s)
			}
			if i > 0 && shapes[i-1].Extrusion == s.Extrusion {
				t.Errorf("%q: shapes %d and %d share classification", src, i-1, i)
			}
			next = s.End + 1
		}
		if next != model.Len() {
			t.Errorf("%q: partition covers [0,%d), want [0,%d)", src, next, model.Len())
		}
	}
}

// TestNextShapeLeavesCursorOnBoundary tests that NextShape backs up to the
// shape's last line after detecting the flip.
func TestNextShapeLeavesCursorOnBoundary(t *testing.T) {
	c := cursorFor(t, "G1 X10 Y10 E1\nG1 X20 Y20 E2\nG1 X0 Y0")
	s, err := c.NextShape()
	if err != nil {
		t.Fatalf("NextShape: %v", err)
	}
	if s.Start != 0 || s.End != 1 || !s.Extrusion {
		t.Errorf("shape = %+v, want extrusion 0..=1", s)
	}
	if c.Index() != 1 {
		t.Errorf("cursor index = %d, want 1", c.Index())
	}
}
