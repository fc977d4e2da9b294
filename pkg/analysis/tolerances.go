// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package analysis

import "gcode-inspect/pkg/gcode"

// Tolerances holds the geometric constants the classification heuristics
// depend on. They are printer and bed-size dependent, so they are carried
// explicitly instead of hard-coded.
type Tolerances struct {
	// PurgeMargin is the border strip of the bed, measured from the origin,
	// inside which a purge line is expected to stay. A shape that moves
	// beyond this margin on both X and Y is real printed geometry.
	PurgeMargin gcode.Microns

	// SlopeEpsilon is the tolerance used when comparing consecutive
	// point-to-point slopes for collinearity.
	SlopeEpsilon float64

	// MotionEpsilon is the minimum per-axis displacement that counts as
	// movement. Zero means any nonzero fixed-point change counts.
	MotionEpsilon gcode.Microns
}

// DefaultTolerances returns the documented defaults: 2 mm purge margin,
// 1e-6 slope tolerance, exact motion comparison.
func DefaultTolerances() Tolerances {
	return Tolerances{
		PurgeMargin:   2000,
		SlopeEpsilon:  1e-6,
		MotionEpsilon: 0,
	}
}
