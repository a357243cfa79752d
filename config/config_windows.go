//go:build windows

package config

import (
	"os"
	"path/filepath"
)

func getDefaultPidFile() string {
	return filepath.Join(os.Getenv("programdata"), "gcolor", "gcolord.pid")
}
