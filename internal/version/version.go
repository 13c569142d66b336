package version

import (
	"runtime"

	"github.com/samcharles93/edictsave/pkg/savefmt"
)

var (
	// Version is the release version (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = ""
	// BuildTime is the build timestamp (set via -ldflags).
	BuildTime = ""
	// Game names the game module build whose saves this binary reads (set via
	// -ldflags). Saves from another game build are refused.
	Game = "lazarus"
)

type Info struct {
	Version   string
	Commit    string
	BuildTime string
}

func Resolve() Info {
	resolved := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}

	if resolved.Version == "" {
		if resolved.BuildTime != "" {
			resolved.Version = resolved.BuildTime
		} else {
			resolved.Version = "dev"
		}
	}

	return resolved
}

func String() string {
	info := Resolve()
	if info.Commit == "" {
		return info.Version
	}
	return info.Version + " (" + shortCommit(info.Commit) + ")"
}

func shortCommit(commit string) string {
	if len(commit) <= 12 {
		return commit
	}
	return commit[:12]
}

// Identity is what this binary stamps into save headers and requires of loaded
// saves.
func Identity() savefmt.Identity {
	return savefmt.Identity{
		Version: savefmt.FormatVersion,
		Game:    Game,
		OS:      OSName(runtime.GOOS),
		Arch:    ArchName(runtime.GOARCH),
	}
}

// OSName maps a GOOS value to the operating system name used in save headers.
func OSName(goos string) string {
	switch goos {
	case "darwin":
		return "MacOS X"
	case "freebsd":
		return "FreeBSD"
	case "openbsd":
		return "OpenBSD"
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	default:
		return "Unknown"
	}
}

// ArchName maps a GOARCH value to the architecture name used in save headers.
func ArchName(goarch string) string {
	switch goarch {
	case "386":
		return "x86"
	case "amd64":
		return "x86-64"
	default:
		return "unknown"
	}
}
