// Package version holds build metadata surfaced by the status report.
package version

import "runtime"

// Overridable at build time:
//
//	go build -ldflags "-X gosaku/internal/version.Version=1.2.3 -X gosaku/internal/version.BuildDate=2026-08-30"
var (
	AppName        = "gosaku"
	AppDescription = "Debug and diagnostic commands for Discord bots"
	Version        = "dev"
	BuildDate      = ""
)

var (
	GoVersion = runtime.Version()
	Platform  = runtime.GOOS
)
