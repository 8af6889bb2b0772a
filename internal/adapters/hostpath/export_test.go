package hostpath

import "go.trai.ch/rustci/internal/adapters/shell"

func NewManagerWithLookPath(lookPath shell.LookPathFunc) *Manager {
	return &Manager{lookPath: lookPath}
}
