package preferences

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/csf-dashboard/internal/config"
)

// configPath returns name inside the configured config directory, falling
// back to the XDG default.
func configPath(name string) string {
	dir := config.Get("config_dir", "")
	if dir == "" {
		dir = filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), config.AppName)
	}
	return filepath.Join(dir, name)
}

// statePath returns name inside the configured state directory.
func statePath(name string) string {
	dir := config.Get("state_dir", "")
	if dir == "" {
		dir = filepath.Join(xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state")), config.AppName)
	}
	return filepath.Join(dir, name)
}

func xdgDir(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, fallback)
}
