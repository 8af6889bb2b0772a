// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rustci/internal/adapters/backend"
	_ "go.trai.ch/rustci/internal/adapters/config"
	_ "go.trai.ch/rustci/internal/adapters/environ"
	_ "go.trai.ch/rustci/internal/adapters/hostpath"
	_ "go.trai.ch/rustci/internal/adapters/logger"
	_ "go.trai.ch/rustci/internal/adapters/nix"
	_ "go.trai.ch/rustci/internal/adapters/pkgx"
	_ "go.trai.ch/rustci/internal/adapters/plugin"
	_ "go.trai.ch/rustci/internal/adapters/shell"
	// Register app and catalog nodes.
	_ "go.trai.ch/rustci/internal/app"
	_ "go.trai.ch/rustci/internal/catalog"
)
