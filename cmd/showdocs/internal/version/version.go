// Package version holds build metadata. The variables are meant to be set
// with -ldflags "-X github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/version.Version=...".
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/fatih/color"
)

var (
	Version   = "1.0.0"
	BuildDate = ""
	GitCommit = "unknown"
)

// Info is the resolved build metadata.
type Info struct {
	Version   string
	BuildDate string
	GitCommit string
	Platform  string
}

// Get fills missing commit and date from the embedded VCS build info.
func Get() Info {
	info := Info{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		Platform:  PlatformName(runtime.GOOS),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "unknown" || info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			}
		}
	}
	if info.BuildDate == "" {
		info.BuildDate = "unknown"
	}
	return info
}

// PlatformName maps GOOS to the name shown in the banner.
func PlatformName(goos string) string {
	switch goos {
	case "windows":
		return "Windows"
	case "darwin":
		return "macOS"
	case "linux":
		return "Linux"
	default:
		return "Unix"
	}
}

// Print writes the startup banner.
func Print(w io.Writer, info Info) {
	color.New(color.Bold).Fprintf(w, "v%s\n", info.Version)
	fmt.Fprintf(w, "Built: %s\n", info.BuildDate)
	fmt.Fprintf(w, "Commit: %s\n", info.GitCommit)
	fmt.Fprintf(w, "Platform: %s\n\n", info.Platform)
}
