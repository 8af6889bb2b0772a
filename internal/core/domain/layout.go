package domain

import (
	"path/filepath"
	"time"
)

const (
	// StateDirName is the name of the per-project state directory.
	StateDirName = ".rustci"

	// ProjectFileName is the name of the YAML project file.
	ProjectFileName = "rustci.yaml"

	// ProjectFileNameTOML is the name of the TOML project file.
	ProjectFileNameTOML = "rustci.toml"

	// PluginSocketName is the name of the plugin service socket.
	PluginSocketName = "plugin.sock"

	// TraceFileName is the default name of the span export file.
	TraceFileName = "trace.json"

	// DefaultIdleTimeout is how long the plugin service waits for a request before exiting.
	DefaultIdleTimeout = 10 * time.Minute

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// SocketPerm is the permission of the plugin socket (rw-------).
	SocketPerm = 0o600
)

// DefaultStatePath returns the state directory relative to the project root.
func DefaultStatePath() string {
	return StateDirName
}

// DefaultPluginSocketPath returns the default path of the plugin socket.
// It joins .rustci and plugin.sock.
func DefaultPluginSocketPath() string {
	return filepath.Join(StateDirName, PluginSocketName)
}

// DefaultTracePath returns the default path of the span export file.
// It joins .rustci and trace.json.
func DefaultTracePath() string {
	return filepath.Join(StateDirName, TraceFileName)
}
