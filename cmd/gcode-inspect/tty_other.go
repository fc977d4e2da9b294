//go:build !linux && !darwin

package main

// stderrIsTerminal always reports false where terminal detection is not
// implemented; log output stays uncolored.
func stderrIsTerminal() bool {
	return false
}
