// Unit tests for the G-code tokenizer and emitter
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package gcode

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestParseMove tests G1 axis parameter extraction.
func TestParseMove(t *testing.T) {
	m := ParseString("G1 X1.0 Y2.0 Z3.0 E4.0 F5.0")
	if m.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", m.Len())
	}
	want := Move(Some(1000), Some(2000), Some(3000), Some(4000), Some(5000))
	if diff := cmp.Diff(want, m.Lines[0].Command); diff != "" {
		t.Errorf("parsed move mismatch (-want +got):\n%s", diff)
	}
}

// TestParseMoveWhitespace tests that whitespace inside a command is
// collapsed before parsing.
func TestParseMoveWhitespace(t *testing.T) {
	a := ParseString("G1 X 1.0 Y2.0")
	b := ParseString("G1X1.0Y2.0")
	if diff := cmp.Diff(a.Lines[0].Command, b.Lines[0].Command); diff != "" {
		t.Errorf("whitespace-collapsed parses differ (-a +b):\n%s", diff)
	}
}

// TestParsePartialMove tests that absent axes stay absent.
func TestParsePartialMove(t *testing.T) {
	m := ParseString("G1 E0.5")
	cmd := m.Lines[0].Command
	if cmd.Kind != KindMove {
		t.Fatalf("expected move, got %v", cmd.Kind)
	}
	if cmd.X.Valid || cmd.Y.Valid || cmd.Z.Valid || cmd.F.Valid {
		t.Error("expected X/Y/Z/F to be absent")
	}
	if !cmd.E.Valid || cmd.E.Value != 500 {
		t.Errorf("expected E=500, got %+v", cmd.E)
	}
}

// TestParseComment tests comment splitting on the first ';'.
func TestParseComment(t *testing.T) {
	m := ParseString("G1 X10 ; outer wall; second part")
	if got := m.Lines[0].Comment; got != " outer wall; second part" {
		t.Errorf("comment = %q", got)
	}
	if m.Lines[0].Command.Kind != KindMove {
		t.Errorf("expected move, got %v", m.Lines[0].Command.Kind)
	}
}

// TestParseDispatch tests command classification.
func TestParseDispatch(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"G1 X1", KindMove},
		{"G0 X1", KindMove},
		{"G28", KindHome},
		{"G28 W", KindHome},
		{"G90", KindAbsoluteXYZ},
		{"G91", KindRelativeXYZ},
		{"M82", KindAbsoluteE},
		{"M83", KindRelativeE},
		{"M104 S200", KindRaw},
		{"T0", KindRaw},
		{"; just a comment", KindRaw},
	}
	for _, tt := range tests {
		m := ParseString(tt.in)
		if m.Len() != 1 {
			t.Errorf("ParseString(%q): expected 1 line, got %d", tt.in, m.Len())
			continue
		}
		if got := m.Lines[0].Command.Kind; got != tt.want {
			t.Errorf("ParseString(%q): kind = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestParseMalformedMoveIsRaw tests lossless degradation of a G1 with a
// bad axis value.
func TestParseMalformedMoveIsRaw(t *testing.T) {
	m := ParseString("G1 X1.0 Qfoo")
	cmd := m.Lines[0].Command
	if cmd.Kind != KindRaw {
		t.Fatalf("expected raw fallback, got %v", cmd.Kind)
	}
	if cmd.Raw != "G1 X1.0 Qfoo" {
		t.Errorf("raw text = %q, want original", cmd.Raw)
	}
}

// TestParseModeFlags tests that the model records the last mode switch.
func TestParseModeFlags(t *testing.T) {
	m := ParseString("G90\nG91\nM83\nM82")
	if !m.RelativeXYZ {
		t.Error("expected RelativeXYZ after trailing G91")
	}
	if m.RelativeE {
		t.Error("expected absolute E after trailing M82")
	}
}

// TestParseSkipsBlankLines tests that empty lines are dropped.
func TestParseSkipsBlankLines(t *testing.T) {
	m := ParseString("G1 X1\n\n\r\nG1 X2\r")
	if m.Len() != 2 {
		t.Errorf("expected 2 lines, got %d", m.Len())
	}
}

// TestEmitRoundTrip tests that emitted text reparses to the same model.
func TestEmitRoundTrip(t *testing.T) {
	src := strings.Join([]string{
		"G28 ; home",
		"G90",
		"M83",
		"G1 X10.5 Y-2 E0.75 F1800",
		"M104 S200",
		"G1 Z0.2",
	}, "\n")

	first := ParseString(src)
	second := ParseString(first.String())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("round trip mismatch (-first +second):\n%s", diff)
	}
}

// TestEmitCanonical tests canonical rendering of a move.
func TestEmitCanonical(t *testing.T) {
	m := ParseString("g1  x10.500 y2 f1800")
	if got := m.Lines[0].Command.String(); got != "G1 X10.5 Y2 F1800" {
		t.Errorf("emit = %q, want %q", got, "G1 X10.5 Y2 F1800")
	}
}

// TestParseReader tests the io.Reader entry point.
func TestParseReader(t *testing.T) {
	m, err := Parse(strings.NewReader("G1 X1\nG1 X2\nG1 X3\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Len() != 3 {
		t.Errorf("expected 3 lines, got %d", m.Len())
	}
}
