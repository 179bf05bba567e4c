package versioninfo

// Version and BuildDate are overridden at build time via -ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
)

type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
}
