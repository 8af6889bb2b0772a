// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the progress rendering mode.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeLinear forces the linear progress renderer.
	ModeLinear
	// ModeQuiet disables progress rendering.
	ModeQuiet
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeQuiet:
		return "quiet"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode based on the environment.
// Progress is rendered when stderr is a terminal or a CI environment variable is set.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stderr.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	if isTTY || ci == "true" || ci == "1" {
		return ModeLinear
	}
	return ModeQuiet
}

// ResolveMode applies the user's flag to the detected mode.
// userFlag should be one of: "auto", "linear", "ci", "quiet", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "linear", "ci":
		return ModeLinear
	case "quiet":
		return ModeQuiet
	default:
		return autoDetected
	}
}
