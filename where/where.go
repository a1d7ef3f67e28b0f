// Package where resolves the application's directories on every platform.
package where

import (
	"os"
	"path/filepath"

	"github.com/anisan-cli/reel/constant"
	"github.com/anisan-cli/reel/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "REEL_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honouring REEL_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory holding the dated log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Temp resolves the directory for player IPC sockets and other transient files.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}
