// Shape segmentation: partitioning the file into extrusion/travel runs
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package analysis

import (
	"errors"
	"fmt"
)

// Shape is a maximal contiguous run of lines sharing one extrusion/travel
// classification. Start and End are inclusive line indices.
type Shape struct {
	Start     int  `json:"start"`
	End       int  `json:"end"`
	Extrusion bool `json:"extrusion"`
}

func (s Shape) String() string {
	kind := "travel"
	if s.Extrusion {
		kind = "extrusion"
	}
	return fmt.Sprintf("%s %d..=%d", kind, s.Start, s.End)
}

// Contains reports whether idx falls inside the shape.
func (s Shape) Contains(idx int) bool {
	return idx >= s.Start && idx <= s.End
}

// NextShape walks forward from the current index until the extrusion
// classification flips, backs up one step, and returns the run covered.
// The cursor is left on the shape's last line. At end of file the run
// simply ends on the last line.
func (c *Cursor) NextShape() (Shape, error) {
	start := c.idx
	class := c.IsExtrusion()
	for {
		if _, err := c.Next(); err != nil {
			if errors.Is(err, ErrEndOfFile) {
				return Shape{Start: start, End: c.idx, Extrusion: class}, nil
			}
			return Shape{}, err
		}
		if c.IsExtrusion() != class {
			if _, err := c.Prev(); err != nil {
				return Shape{}, err
			}
			return Shape{Start: start, End: c.idx, Extrusion: class}, nil
		}
	}
}

// Shapes resets to index 0 and segments the whole file into alternating
// extrusion/travel runs. The result is a gap-free, non-overlapping
// partition of all line indices; every higher-level heuristic builds on it.
// An empty model yields nil.
func (c *Cursor) Shapes() []Shape {
	c.Reset()
	if c.model.Len() == 0 {
		return nil
	}
	var shapes []Shape
	for {
		s, err := c.NextShape()
		if err != nil {
			// NextShape only fails on a Prev at index 0, which cannot
			// happen after at least one successful Next.
			break
		}
		shapes = append(shapes, s)
		if _, err := c.Next(); err != nil {
			break
		}
	}
	return shapes
}
