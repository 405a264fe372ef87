// Package ipc resolves the Hyprland control socket paths.
package ipc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNoRuntimeDir = errors.New("XDG_RUNTIME_DIR is not set")
	ErrNoInstance   = errors.New("HYPRLAND_INSTANCE_SIGNATURE is not set (is Hyprland running?)")
)

// Paths holds the two per-instance control sockets.
type Paths struct {
	// Request is the one-shot command/query socket (.socket.sock).
	Request string
	// Event is the long-lived notification socket (.socket2.sock).
	Event string
}

// SocketPaths resolves both socket paths from the process environment.
func SocketPaths() (Paths, error) {
	return SocketPathsEnv(os.Getenv)
}

// SocketPathsEnv resolves socket paths through an explicit environment lookup.
func SocketPathsEnv(getenv func(string) string) (Paths, error) {
	runtimeDir := strings.TrimSpace(getenv("XDG_RUNTIME_DIR"))
	if runtimeDir == "" {
		return Paths{}, ErrNoRuntimeDir
	}

	instance := strings.TrimSpace(getenv("HYPRLAND_INSTANCE_SIGNATURE"))
	if instance == "" {
		return Paths{}, ErrNoInstance
	}

	dir := filepath.Join(runtimeDir, "hypr", instance)
	return Paths{
		Request: filepath.Join(dir, ".socket.sock"),
		Event:   filepath.Join(dir, ".socket2.sock"),
	}, nil
}
