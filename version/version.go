package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/dendrascience/skillpack/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info describes the running skillpack build.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Package string `json:"package"`
}

// build holds what the toolchain stamped into the binary. Keys are
// "main" for the module version plus the vcs.* settings.
func build() map[string]string {
	stamped := make(map[string]string)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return stamped
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		stamped["main"] = v
	}
	for _, s := range info.Settings {
		stamped[s.Key] = s.Value
	}
	return stamped
}

// pick prefers an ldflags value over the stamped one under key.
func pick(injected, placeholder string, stamped map[string]string, key, fallback string) string {
	if injected != "" && injected != placeholder {
		return injected
	}
	if v := stamped[key]; v != "" {
		return v
	}
	return fallback
}

func GetVersion() string {
	return pick(Version, "dev", build(), "main", "development")
}

func GetCommit() string {
	return pick(Commit, "unknown", build(), "vcs.revision", "unknown")
}

func GetBuildDate() string {
	return pick(Date, "unknown", build(), "vcs.time", "unknown")
}

// GetInfo reads the build info once for all three fields.
func GetInfo() Info {
	stamped := build()
	return Info{
		Version: pick(Version, "dev", stamped, "main", "development"),
		Commit:  pick(Commit, "unknown", stamped, "vcs.revision", "unknown"),
		Date:    pick(Date, "unknown", stamped, "vcs.time", "unknown"),
		Package: "skillpack",
	}
}

// GetFullVersion is what --version prints: the version, then a short
// commit and build date when the binary carries them.
func GetFullVersion() string {
	return formatFull(GetInfo())
}

func formatFull(info Info) string {
	if info.Commit == "unknown" || len(info.Commit) <= 7 {
		return info.Version
	}
	short := info.Commit[:7]
	if info.Date != "unknown" {
		return fmt.Sprintf("%s (%s, built %s)", info.Version, short, info.Date)
	}
	return fmt.Sprintf("%s (%s)", info.Version, short)
}
