// Fixed-point micrometer arithmetic for toolhead positions
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package gcode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Microns is a signed fixed-point distance: one unit is one micrometer,
// so 1 mm == 1000 Microns. All position arithmetic in the analyzer is done
// in Microns to keep equality and ordering exact over thousands of
// accumulated moves.
type Microns int64

const (
	// ZeroMicrons is the origin/zero distance.
	ZeroMicrons Microns = 0

	// MinMicrons is the "unset" sentinel, used for axes that have never
	// been homed or addressed. It is never a real coordinate.
	MinMicrons Microns = math.MinInt64

	maxMicrons Microns = math.MaxInt64
)

// micronsPerMM is the fixed-point scale factor.
const micronsPerMM = 1000

// Add returns m+n, saturating at the integer extremes instead of wrapping.
func (m Microns) Add(n Microns) Microns {
	sum := m + n
	if (n > 0 && sum < m) || (n < 0 && sum > m) {
		if n > 0 {
			return maxMicrons
		}
		return MinMicrons
	}
	return sum
}

// Sub returns m-n with the same saturation behavior as Add.
func (m Microns) Sub(n Microns) Microns {
	diff := m - n
	if (n < 0 && diff < m) || (n > 0 && diff > m) {
		if n < 0 {
			return maxMicrons
		}
		return MinMicrons
	}
	return diff
}

// Abs returns the absolute value. Abs of the MinMicrons sentinel saturates
// to the maximum rather than overflowing.
func (m Microns) Abs() Microns {
	if m == MinMicrons {
		return maxMicrons
	}
	if m < 0 {
		return -m
	}
	return m
}

// Float returns the value in millimeters.
func (m Microns) Float() float64 {
	return float64(m) / micronsPerMM
}

// MicronsFromFloat converts a millimeter value to Microns, truncating
// toward zero. Precision beyond 3 decimal digits is discarded.
func MicronsFromFloat(mm float64) (Microns, error) {
	if math.IsNaN(mm) {
		return ZeroMicrons, fmt.Errorf("microns: NaN")
	}
	return Microns(math.Trunc(mm * micronsPerMM)), nil
}

// ParseMicrons parses a decimal millimeter string such as "0.2" or "-15".
func ParseMicrons(s string) (Microns, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ZeroMicrons, fmt.Errorf("microns: parse %q: %w", s, err)
	}
	return MicronsFromFloat(f)
}

// String renders the value in millimeters with up to 3 decimal digits,
// trailing zeros trimmed ("0.2", not "0.200").
func (m Microns) String() string {
	s := strconv.FormatFloat(m.Float(), 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
