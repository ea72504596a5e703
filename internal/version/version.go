// Package version хранит сведения о сборке, заданные через -ldflags.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// BuildInfo — сведения о сборке для логов и ops-эндпоинта /version.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Info returns version information populated via -ldflags.
func Info() (v, c, d string) { return version, GetCommit(), date }

// GetVersion возвращает версию сборки.
func GetVersion() string { return version }

// GetCommit возвращает коммит. Без -ldflags берётся vcs.revision из сведений модуля.
func GetCommit() string {
	if commit != "unknown" {
		return commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}
	return commit
}

// GetDate возвращает дату сборки.
func GetDate() string { return date }

// Get собирает BuildInfo.
func Get() BuildInfo {
	return BuildInfo{
		Version:   GetVersion(),
		Commit:    GetCommit(),
		Date:      GetDate(),
		GoVersion: runtime.Version(),
	}
}

func String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", GetVersion(), GetCommit(), GetDate())
}
