// Purge/prime line detection
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package analysis

import "math"

// IsPurgeLine reports whether the given extrusion shape is nozzle
// prime/purge material rather than the first real printed feature. Three
// gates must all pass, in this order:
//
//  1. The shape must contain the very first extrusion event in the file.
//     Anything printed after earlier extrusion cannot be a purge line.
//  2. No position inside the shape may exceed the purge margin on both X
//     and Y; a move into the interior print area is real geometry.
//  3. With 3 or more extrusion points the points must be collinear: the
//     absolute slope between each consecutive pair must match within the
//     slope tolerance.
//
// Probing is done on child cursors, so the receiver's traversal state is
// untouched.
func (c *Cursor) IsPurgeLine(s Shape) (bool, error) {
	first, err := c.atFirstExtrusion(s)
	if err != nil {
		return false, err
	}
	if !first {
		return false, nil
	}

	probe, err := c.ChildAt(s.Start)
	if err != nil {
		return false, err
	}
	var xs, ys []float64
	for {
		pos := probe.Pos()
		if pos.X() > c.tol.PurgeMargin && pos.Y() > c.tol.PurgeMargin {
			return false, nil
		}
		if probe.IsExtrusion() {
			xs = append(xs, pos.X().Float())
			ys = append(ys, pos.Y().Float())
		}
		if probe.Index() >= s.End {
			break
		}
		if _, err := probe.Next(); err != nil {
			break
		}
	}

	if len(xs) >= 3 && !collinear(xs, ys, c.tol.SlopeEpsilon) {
		return false, nil
	}
	return true, nil
}

// atFirstExtrusion reports whether no extrusion move occurs before the
// shape's first line, i.e. the shape is reachable as the first extrusion
// event when scanning backward from inside it.
func (c *Cursor) atFirstExtrusion(s Shape) (bool, error) {
	if s.Start == 0 {
		return true, nil
	}
	probe, err := c.ChildAt(0)
	if err != nil {
		return false, err
	}
	for probe.Index() < s.Start {
		if probe.IsExtrusion() {
			return false, nil
		}
		if _, err := probe.Next(); err != nil {
			break
		}
	}
	return true, nil
}

// collinear checks that the absolute slope between each consecutive point
// pair is the same within eps. Vertical segments (zero run) only match
// other vertical segments.
func collinear(xs, ys []float64, eps float64) bool {
	prev, prevVertical := segmentSlope(xs[0], ys[0], xs[1], ys[1])
	for i := 2; i < len(xs); i++ {
		slope, vertical := segmentSlope(xs[i-1], ys[i-1], xs[i], ys[i])
		if vertical != prevVertical {
			return false
		}
		if !vertical && math.Abs(slope-prev) > eps {
			return false
		}
		prev, prevVertical = slope, vertical
	}
	return true
}

// segmentSlope returns the absolute slope |dy/dx| of the segment, flagging
// vertical segments separately to avoid dividing by zero.
func segmentSlope(x0, y0, x1, y1 float64) (slope float64, vertical bool) {
	dx := x1 - x0
	if dx == 0 {
		return 0, true
	}
	return math.Abs((y1 - y0) / dx), false
}
