// Full-file analysis pipeline
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

// Report is the derived structural metadata for one file.
type Report struct {
	Lines            int           `json:"lines"`
	PrePrint         gcode.Range   `json:"pre_print"`
	PostPrint        gcode.Range   `json:"post_print"`
	Planar           bool          `json:"planar"`
	FirstLayerHeight gcode.Microns `json:"first_layer_height_um"`
	LayerHeight      gcode.Microns `json:"layer_height_um"`
	Shapes           []Shape       `json:"shapes"`
}

// Analyze runs the whole pipeline over a model: shape partition, pre/post
// print ranges, planarity and layer heights. The model's derived metadata
// fields are annotated in place. Models with no extrusion at all fail with
// ErrNoShapes.
func Analyze(m *gcode.Model, tol Tolerances) (Report, error) {
	c := NewCursor(m, tol)

	pre, err := c.PrePrint()
	if err != nil {
		return Report{}, fmt.Errorf("pre-print range: %w", err)
	}
	post, err := c.PostPrint()
	if err != nil {
		return Report{}, fmt.Errorf("post-print range: %w", err)
	}

	first, layer := c.LayerHeights()

	c.Reset()
	planar := c.IsPlanar()

	rep := Report{
		Lines:            m.Len(),
		PrePrint:         pre,
		PostPrint:        post,
		Planar:           planar,
		FirstLayerHeight: first,
		LayerHeight:      layer,
		Shapes:           c.Shapes(),
	}

	m.PrePrint = pre
	m.PostPrint = post
	m.FirstLayerHeight = first
	m.LayerHeight = layer

	return rep, nil
}

// IsNoShapes reports whether err means the file had nothing to analyze.
func IsNoShapes(err error) bool {
	return errors.Is(err, ErrNoShapes)
}
