// Tokenizer: raw G-code text to a Model
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package gcode

import (
	"fmt"
	"io"
	"strings"
)

// Parse reads UTF-8 G-code text and produces a Model. Each physical line is
// split on the first ';' into command text and comment; the command text is
// whitespace-collapsed and dispatched on its first letter+digits token.
// Anything unrecognized or malformed degrades to a Raw line carrying the
// original text, so every input round-trips losslessly.
func Parse(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gcode: read input: %w", err)
	}
	return ParseString(string(data)), nil
}

// ParseString parses in-memory G-code text. It cannot fail: unrecognized
// lines become Raw.
func ParseString(text string) *Model {
	m := &Model{}
	for _, raw := range splitLines(text) {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		line := parseLine(raw)
		switch line.Command.Kind {
		case KindAbsoluteXYZ:
			m.RelativeXYZ = false
		case KindRelativeXYZ:
			m.RelativeXYZ = true
		case KindAbsoluteE:
			m.RelativeE = false
		case KindRelativeE:
			m.RelativeE = true
		}
		m.Lines = append(m.Lines, line)
	}
	return m
}

// splitLines splits on '\n' and '\r', tolerating any line-ending flavor.
func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(c rune) bool {
		return c == '\n' || c == '\r'
	})
}

// parseLine classifies one physical line.
func parseLine(raw string) Line {
	cmdText, comment, _ := strings.Cut(raw, ";")
	// Collapse all whitespace so "G1 X 1.0" and "G1X1.0" parse the same.
	collapsed := strings.Join(strings.Fields(cmdText), "")
	original := strings.TrimSpace(cmdText)

	letter, digits, rest := splitWord(collapsed)
	switch letter + digits {
	case "G0", "G1":
		if cmd, ok := parseMoveParams(rest); ok {
			return Line{Command: cmd, Comment: comment}
		}
	case "G28":
		return Line{Command: Command{Kind: KindHome, Raw: original}, Comment: comment}
	case "G90":
		return Line{Command: Command{Kind: KindAbsoluteXYZ}, Comment: comment}
	case "G91":
		return Line{Command: Command{Kind: KindRelativeXYZ}, Comment: comment}
	case "M82":
		return Line{Command: Command{Kind: KindAbsoluteE}, Comment: comment}
	case "M83":
		return Line{Command: Command{Kind: KindRelativeE}, Comment: comment}
	}
	return Line{Command: Command{Kind: KindRaw, Raw: original}, Comment: comment}
}

// splitWord splits a collapsed command into its leading letter, the digit
// run that follows, and everything after ("G28W" -> "G", "28", "W").
func splitWord(s string) (letter, digits, rest string) {
	if s == "" {
		return "", "", ""
	}
	letter = strings.ToUpper(s[:1])
	i := 1
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return letter, s[1:i], s[i:]
}

// isNumberChar reports whether c can appear in an axis value.
func isNumberChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+'
}

// parseMoveParams parses the axis words after "G1"/"G0", e.g. "X1.0Y2.0".
// It returns ok=false when the text contains anything that is not a valid
// [XYZEF]<number> sequence; the caller then degrades the line to Raw.
func parseMoveParams(s string) (Command, bool) {
	cmd := Command{Kind: KindMove}
	for len(s) > 0 {
		axis := s[0]
		if axis >= 'a' && axis <= 'z' {
			axis -= 'a' - 'A'
		}
		j := 1
		for j < len(s) && isNumberChar(s[j]) {
			j++
		}
		if j == 1 {
			return Command{}, false
		}
		val, err := ParseMicrons(s[1:j])
		if err != nil {
			return Command{}, false
		}
		switch axis {
		case 'X':
			cmd.X = Some(val)
		case 'Y':
			cmd.Y = Some(val)
		case 'Z':
			cmd.Z = Some(val)
		case 'E':
			cmd.E = Some(val)
		case 'F':
			cmd.F = Some(val)
		default:
			return Command{}, false
		}
		s = s[j:]
	}
	return cmd, true
}
