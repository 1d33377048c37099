// Package version exposes build metadata for the contribfang binary.
package version

import "runtime/debug"

// Build metadata, overridable at link time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// InitBinaryVersion fills unset build metadata from the embedded Go
// build info when the binary was not stamped via ldflags.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && Commit == "unknown" {
			Commit = setting.Value
		}

		if setting.Key == "vcs.time" && Date == "unknown" {
			Date = setting.Value
		}
	}
}
