// Line and model containers for parsed G-code
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package gcode

import (
	"fmt"
	"io"
	"strings"
)

// Line is one physical source line: a command plus its trailing comment
// (empty when the line had none). Lines are addressed only by their index
// in the Model.
type Line struct {
	Command Command
	Comment string
}

// String renders the line, re-attaching the comment.
func (l Line) String() string {
	if l.Comment != "" {
		return l.Command.String() + ";" + l.Comment
	}
	return l.Command.String()
}

// Range is a half-open index range [Start, End) into a Model's lines.
type Range struct {
	Start int
	End   int
}

// Len returns the number of lines covered.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Model is the ordered line sequence produced by the tokenizer, plus the
// dominant positioning modes (set from the last mode switch seen) and the
// metadata derived by analysis. The line sequence is append-only; analysis
// never reorders or splices it.
type Model struct {
	Lines []Line

	// RelativeXYZ and RelativeE summarize the last mode-switch command in
	// the file. Position replay tracks modes line by line on its own; these
	// flags describe the file's dominant convention.
	RelativeXYZ bool
	RelativeE   bool

	// Derived metadata, populated by analysis.
	PrePrint         Range
	PostPrint        Range
	FirstLayerHeight Microns
	LayerHeight      Microns
}

// Len returns the number of lines.
func (m *Model) Len() int {
	return len(m.Lines)
}

// Emit writes the whole model back out as G-code text, one line per Line.
func (m *Model) Emit(w io.Writer) error {
	for i := range m.Lines {
		if _, err := io.WriteString(w, m.Lines[i].String()); err != nil {
			return fmt.Errorf("emit line %d: %w", i, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("emit line %d: %w", i, err)
		}
	}
	return nil
}

// String renders the model as G-code text.
func (m *Model) String() string {
	var b strings.Builder
	_ = m.Emit(&b)
	return b.String()
}
