package domain

import (
	"os"
	"path/filepath"
)

const (
	// ExplorerDirName is the name of the local state directory.
	ExplorerDirName = ".explorer"

	// CacheDirName is the name of the on-disk result cache directory.
	CacheDirName = "cache"

	// ConfigFileName is the default configuration file name.
	ConfigFileName = "explorer.yaml"

	// ConfigEnvVar names the environment variable that overrides the config path.
	ConfigEnvVar = "EXPLORER_CONFIG"

	// ControlSocketFile is the name of the worker control socket.
	ControlSocketFile = "worker.sock"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// SocketPerm is the permission for the control socket (rw-------).
	SocketPerm = 0o600
)

// DefaultConfigPath returns the config path from EXPLORER_CONFIG, falling back to explorer.yaml.
func DefaultConfigPath() string {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p
	}
	return ConfigFileName
}

// DefaultCachePath returns the default directory of the on-disk result cache.
// It joins .explorer and cache.
func DefaultCachePath() string {
	return filepath.Join(ExplorerDirName, CacheDirName)
}

// DefaultControlSocketPath returns the default path of the worker control socket.
// It joins .explorer and worker.sock.
func DefaultControlSocketPath() string {
	return filepath.Join(ExplorerDirName, ControlSocketFile)
}
