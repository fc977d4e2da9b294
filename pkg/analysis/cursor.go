// Stateful traversal over a parsed G-code model
//
// The cursor replays the line sequence to reconstruct the absolute toolhead
// position over time. Relative moves are resolved into absolute terms as the
// cursor advances, so backward movement re-derives state by replaying from
// the start rather than inverting deltas (relative moves are not invertible
// without the full history).
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package analysis

import (
	"errors"
	"fmt"

	"gcode-inspect/pkg/gcode"
)

// Traversal sentinels. Navigation primitives return these instead of
// running off either end of the line sequence.
var (
	// ErrStartOfFile is returned by Prev/PeekPrev at index 0.
	ErrStartOfFile = errors.New("start of file")

	// ErrEndOfFile is returned by Next/PeekNext at the last line.
	ErrEndOfFile = errors.New("end of file")

	// ErrNoShapes is returned by PrePrint/PostPrint when the model contains
	// no extrusion shapes at all.
	ErrNoShapes = errors.New("no shapes found")
)

// Position is the absolute 5-axis machine state [x, y, z, e, f] in Microns.
// All components, including E, are absolute accumulators regardless of the
// source line's relative/absolute mode.
type Position [5]gcode.Microns

// X returns the absolute X coordinate.
func (p Position) X() gcode.Microns { return p[0] }

// Y returns the absolute Y coordinate.
func (p Position) Y() gcode.Microns { return p[1] }

// Z returns the absolute Z coordinate.
func (p Position) Z() gcode.Microns { return p[2] }

// E returns the absolute extrusion accumulator.
func (p Position) E() gcode.Microns { return p[3] }

// F returns the last commanded feedrate, or MinMicrons if never set.
func (p Position) F() gcode.Microns { return p[4] }

// home is the state before any line has run: origin for all motion axes,
// feedrate unset.
func home() Position {
	return Position{0, 0, 0, 0, gcode.MinMicrons}
}

// Cursor traverses a Model line by line, maintaining the absolute position
// after the line at the current index and a snapshot of the position just
// before it. The Model is read-only from the Cursor's perspective; any
// number of cursors may share one Model.
type Cursor struct {
	model *gcode.Model
	tol   Tolerances

	idx  int
	pos  Position
	prev Position

	// Positioning modes in effect at the current index, threaded through
	// replay. Both start absolute (G90/M82 defaults).
	relXYZ bool
	relE   bool
}

// NewCursor creates a cursor positioned at index 0 with the line at index 0
// already applied.
func NewCursor(m *gcode.Model, tol Tolerances) *Cursor {
	c := &Cursor{model: m, tol: tol}
	c.Reset()
	return c
}

// Model returns the underlying model.
func (c *Cursor) Model() *gcode.Model { return c.model }

// Index returns the current line index.
func (c *Cursor) Index() int { return c.idx }

// Pos returns the absolute position after the line at the current index.
func (c *Cursor) Pos() Position { return c.pos }

// PrevPos returns the snapshot taken immediately before the current line
// was applied.
func (c *Cursor) PrevPos() Position { return c.prev }

// Reset jumps to index 0 and recomputes position as if starting from the
// home state.
func (c *Cursor) Reset() {
	c.idx = 0
	c.relXYZ = false
	c.relE = false
	c.prev = home()
	c.pos = home()
	if c.model.Len() > 0 {
		c.update()
	}
}

// update applies the command at the current index, deriving the new
// position from the previous one.
func (c *Cursor) update() {
	cmd := c.model.Lines[c.idx].Command
	switch cmd.Kind {
	case gcode.KindMove:
		pos := c.prev
		if cmd.X.Valid {
			pos[0] = resolve(c.prev[0], cmd.X.Value, c.relXYZ)
		}
		if cmd.Y.Valid {
			pos[1] = resolve(c.prev[1], cmd.Y.Value, c.relXYZ)
		}
		if cmd.Z.Valid {
			pos[2] = resolve(c.prev[2], cmd.Z.Value, c.relXYZ)
		}
		if cmd.E.Valid {
			pos[3] = resolve(c.prev[3], cmd.E.Value, c.relE)
		}
		if cmd.F.Valid {
			// Feedrate is always an absolute setting.
			pos[4] = cmd.F.Value
		}
		c.pos = pos
	case gcode.KindHome:
		// Homing is a discontinuity: all motion axes return to zero.
		c.pos = Position{0, 0, 0, 0, c.prev[4]}
	case gcode.KindAbsoluteXYZ:
		c.relXYZ = false
		c.pos = c.prev
	case gcode.KindRelativeXYZ:
		c.relXYZ = true
		c.pos = c.prev
	case gcode.KindAbsoluteE:
		c.relE = false
		c.pos = c.prev
	case gcode.KindRelativeE:
		c.relE = true
		c.pos = c.prev
	default:
		// Raw lines are position-inert.
		c.pos = c.prev
	}
}

// resolve turns one axis parameter into an absolute coordinate.
func resolve(prev, param gcode.Microns, relative bool) gcode.Microns {
	if relative {
		return prev.Add(param)
	}
	return param
}

// Next advances to the following line and returns the new position. It
// fails with ErrEndOfFile, without moving, when already at the last line.
func (c *Cursor) Next() (Position, error) {
	if c.idx >= c.model.Len()-1 {
		return c.pos, ErrEndOfFile
	}
	c.prev = c.pos
	c.idx++
	c.update()
	return c.pos, nil
}

// Prev retreats to the preceding line and returns its position. It fails
// with ErrStartOfFile, without moving, at index 0. Position is re-derived
// by replaying from the start of the file.
func (c *Cursor) Prev() (Position, error) {
	if c.idx == 0 {
		return c.pos, ErrStartOfFile
	}
	target := c.idx - 1
	c.Reset()
	for c.idx < target {
		if _, err := c.Next(); err != nil {
			return c.pos, err
		}
	}
	return c.pos, nil
}

// PeekNext returns the command at the following index without moving.
func (c *Cursor) PeekNext() (gcode.Command, error) {
	if c.idx >= c.model.Len()-1 {
		return gcode.Command{}, ErrEndOfFile
	}
	return c.model.Lines[c.idx+1].Command, nil
}

// PeekPrev returns the command at the preceding index without moving.
func (c *Cursor) PeekPrev() (gcode.Command, error) {
	if c.idx == 0 {
		return gcode.Command{}, ErrStartOfFile
	}
	return c.model.Lines[c.idx-1].Command, nil
}

// ChildAt constructs an independent cursor positioned at idx by replaying
// from the start. The receiver's own traversal state is never touched, so
// forward-looking heuristics can probe the sequence freely.
func (c *Cursor) ChildAt(idx int) (*Cursor, error) {
	if idx < 0 || idx >= c.model.Len() {
		return nil, fmt.Errorf("child cursor at %d: index out of range [0,%d)", idx, c.model.Len())
	}
	child := NewCursor(c.model, c.tol)
	for child.idx < idx {
		if _, err := child.Next(); err != nil {
			return nil, err
		}
	}
	return child, nil
}
