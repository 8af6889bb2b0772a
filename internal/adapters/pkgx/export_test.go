package pkgx

import (
	"go.trai.ch/rustci/internal/adapters/shell"
	"go.trai.ch/rustci/internal/core/ports"
)

func NewManagerWith(logger ports.Logger, output shell.OutputFunc, lookPath shell.LookPathFunc) *Manager {
	return &Manager{
		logger:   logger,
		output:   output,
		lookPath: lookPath,
	}
}
