// Planarity check and layer height inference
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package analysis

import (
	"sort"

	"gcode-inspect/pkg/gcode"
)

// IsPlanar scans forward from the current position and reports whether
// every extrusion move holds Z constant. The trivial empty scan is planar.
func (c *Cursor) IsPlanar() bool {
	for {
		if c.NonplanarExtrusion() {
			return false
		}
		if _, err := c.Next(); err != nil {
			return true
		}
	}
}

// LayerHeights infers the first-layer height and the height of subsequent
// layers from the Z values of the extrusion moves. Resets the cursor.
//
// Non-planar prints return (0, 0) immediately. Otherwise the distinct
// extrusion heights, ascending, decide the result:
//
//	0 heights        -> (0, 0)
//	1 height  h      -> (h, 0)
//	2 heights        -> (delta, 0)
//	3 heights        -> (first delta, second delta)
//	4 or more        -> (first delta, second delta) when every later delta
//	                    equals the second; (first delta, 0) when the stack
//	                    turns irregular after the first layer.
func (c *Cursor) LayerHeights() (first, layer gcode.Microns) {
	c.Reset()
	if !c.IsPlanar() {
		return gcode.ZeroMicrons, gcode.ZeroMicrons
	}

	heights := c.extrusionHeights()
	switch len(heights) {
	case 0:
		return gcode.ZeroMicrons, gcode.ZeroMicrons
	case 1:
		return heights[0], gcode.ZeroMicrons
	case 2:
		return heights[1].Sub(heights[0]), gcode.ZeroMicrons
	}

	first = heights[1].Sub(heights[0])
	layer = heights[2].Sub(heights[1])
	for i := 3; i < len(heights); i++ {
		if heights[i].Sub(heights[i-1]) != layer {
			// Irregular spacing after the first layer.
			return first, gcode.ZeroMicrons
		}
	}
	return first, layer
}

// extrusionHeights collects the Z value of every extrusion move, then
// returns the distinct values in ascending order. Resets the cursor.
func (c *Cursor) extrusionHeights() []gcode.Microns {
	c.Reset()
	if c.model.Len() == 0 {
		return nil
	}
	var zs []gcode.Microns
	for {
		if c.IsExtrusion() {
			z := c.Pos().Z()
			if len(zs) == 0 || zs[len(zs)-1] != z {
				zs = append(zs, z)
			}
		}
		if _, err := c.Next(); err != nil {
			break
		}
	}
	sort.Slice(zs, func(i, j int) bool { return zs[i] < zs[j] })
	return dedupe(zs)
}

// dedupe removes consecutive equal values in place.
func dedupe(zs []gcode.Microns) []gcode.Microns {
	out := zs[:0]
	for _, z := range zs {
		if len(out) == 0 || out[len(out)-1] != z {
			out = append(out, z)
		}
	}
	return out
}
