package nix

import "go.trai.ch/rustci/internal/adapters/shell"

func NewManagerWithOutput(flake string, output shell.OutputFunc) *Manager {
	return &Manager{flake: flake, output: output}
}

var ParseBuildResults = parseBuildResults
