// Package where resolves the application's filesystem locations.
package where

import (
	"os"
	"path/filepath"

	"github.com/playdeck/playdeck/constant"
	"github.com/playdeck/playdeck/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory when set.
const EnvConfigPath = "PLAYDECK_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honouring PLAYDECK_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Playdeck))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Playdeck))
}

// Logs resolves the directory daily log files are written to.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History resolves the watch history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Movies resolves the cache of movie metadata fetched from the streaming API.
func Movies() string {
	return filepath.Join(Cache(), "movies.json")
}

// Sockets resolves the directory engine IPC sockets are created in.
func Sockets() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Playdeck))
}
