// G-code command model
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package gcode

import "strings"

// Kind identifies a recognized command variant. The set is closed: anything
// the tokenizer cannot classify becomes KindRaw and is carried verbatim.
type Kind int

const (
	// KindRaw is an unrecognized or malformed line, preserved as-is.
	// Raw lines have no positional effect.
	KindRaw Kind = iota

	// KindMove is a linear move (G0/G1) with up to five axis parameters.
	KindMove

	// KindHome (G28) resets X/Y/Z/E to zero.
	KindHome

	// KindAbsoluteXYZ (G90) switches X/Y/Z interpretation to absolute.
	KindAbsoluteXYZ

	// KindRelativeXYZ (G91) switches X/Y/Z interpretation to relative.
	KindRelativeXYZ

	// KindAbsoluteE (M82) switches E interpretation to absolute.
	KindAbsoluteE

	// KindRelativeE (M83) switches E interpretation to relative.
	KindRelativeE
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindHome:
		return "home"
	case KindAbsoluteXYZ:
		return "absolute_xyz"
	case KindRelativeXYZ:
		return "relative_xyz"
	case KindAbsoluteE:
		return "absolute_e"
	case KindRelativeE:
		return "relative_e"
	default:
		return "raw"
	}
}

// Param is an optional axis parameter on a move. A move that does not
// address an axis leaves Valid false and the axis unchanged.
type Param struct {
	Value Microns
	Valid bool
}

// Some returns a present parameter.
func Some(v Microns) Param {
	return Param{Value: v, Valid: true}
}

// Command is one recognized instruction. Only the fields relevant to its
// Kind are meaningful: X/Y/Z/E/F for KindMove, Raw for KindRaw and KindHome
// (the original text, kept for round-tripping).
type Command struct {
	Kind Kind

	X, Y, Z, E, F Param

	Raw string
}

// Move builds a KindMove command from optional axis parameters.
func Move(x, y, z, e, f Param) Command {
	return Command{Kind: KindMove, X: x, Y: y, Z: z, E: e, F: f}
}

// String renders the command back to canonical G-code text. Only present
// parameters are printed; numeric values follow Microns.String (3 decimals,
// trailing zeros trimmed). Raw commands round-trip their original text.
func (c Command) String() string {
	switch c.Kind {
	case KindMove:
		var b strings.Builder
		b.WriteString("G1")
		for _, p := range []struct {
			letter byte
			param  Param
		}{
			{'X', c.X}, {'Y', c.Y}, {'Z', c.Z}, {'E', c.E}, {'F', c.F},
		} {
			if p.param.Valid {
				b.WriteByte(' ')
				b.WriteByte(p.letter)
				b.WriteString(p.param.Value.String())
			}
		}
		return b.String()
	case KindHome:
		if c.Raw != "" {
			return c.Raw
		}
		return "G28"
	case KindAbsoluteXYZ:
		return "G90"
	case KindRelativeXYZ:
		return "G91"
	case KindAbsoluteE:
		return "M82"
	case KindRelativeE:
		return "M83"
	default:
		return c.Raw
	}
}
