// Per-line move classification
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package analysis

// IsExtrusion reports whether the line at the current index deposits
// material: the absolute E value must exceed the previous E value AND at
// least one of X, Y, Z must have moved. A move that only pushes filament
// (no spatial displacement) is a de-retraction, not extrusion; a move with
// zero or negative net E is travel.
func (c *Cursor) IsExtrusion() bool {
	if c.pos.E() <= c.prev.E() {
		return false
	}
	return c.moved(0) || c.moved(1) || c.moved(2)
}

// NonplanarExtrusion reports whether the current line is an extrusion move
// that also changes Z, i.e. adaptive or non-planar layering.
func (c *Cursor) NonplanarExtrusion() bool {
	return c.IsExtrusion() && c.moved(2)
}

// moved reports whether axis i changed by more than the motion tolerance
// between the previous and current positions.
func (c *Cursor) moved(i int) bool {
	return c.pos[i].Sub(c.prev[i]).Abs() > c.tol.MotionEpsilon
}
