//go:build !windows

package config

func getDefaultPidFile() string {
	return "/var/run/gcolord.pid"
}
