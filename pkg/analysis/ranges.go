// Pre-print and post-print range derivation
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package analysis

import "gcode-inspect/pkg/gcode"

// PrePrint returns the setup range at the head of the file: everything
// before the first real printed feature. When the first extrusion shape is
// a purge line, the range extends past it to the start of the next
// extrusion shape. Fails with ErrNoShapes when the file contains no
// extrusion shapes. Resets the cursor.
func (c *Cursor) PrePrint() (gcode.Range, error) {
	ex := extrusionShapes(c.Shapes())
	if len(ex) == 0 {
		return gcode.Range{}, ErrNoShapes
	}
	purge, err := c.IsPurgeLine(ex[0])
	if err != nil {
		return gcode.Range{}, err
	}
	if !purge {
		return gcode.Range{Start: 0, End: ex[0].Start}, nil
	}
	if len(ex) > 1 {
		return gcode.Range{Start: 0, End: ex[1].Start}, nil
	}
	// The purge blob is the only extrusion in the file.
	return gcode.Range{Start: 0, End: ex[0].End + 1}, nil
}

// PostPrint returns the cleanup range at the tail of the file: everything
// after the last extrusion shape. Fails with ErrNoShapes when the file
// contains no extrusion shapes. Resets the cursor.
func (c *Cursor) PostPrint() (gcode.Range, error) {
	ex := extrusionShapes(c.Shapes())
	if len(ex) == 0 {
		return gcode.Range{}, ErrNoShapes
	}
	last := ex[len(ex)-1]
	return gcode.Range{Start: last.End + 1, End: c.model.Len()}, nil
}

// extrusionShapes filters a partition down to its extrusion runs.
func extrusionShapes(shapes []Shape) []Shape {
	var ex []Shape
	for _, s := range shapes {
		if s.Extrusion {
			ex = append(ex, s)
		}
	}
	return ex
}
