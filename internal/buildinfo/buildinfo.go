package buildinfo

import (
	"runtime"
	"strings"
)

const (
	devVersion = "dev"
	unknown    = "unknown"
)

// set with -ldflags "-X vtc-portal/internal/buildinfo.version=..." on release builds
var (
	version   = devVersion
	commitID  = unknown
	buildTime = unknown
	goBuild   = unknown
)

func Version() string {
	return version
}

func VersionWithPrefix() string {
	if version == devVersion {
		return version
	}
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

func CommitID() string {
	return commitID
}

func ShortCommitID() string {
	if commitID == unknown {
		return unknown
	}
	const n = 7
	if len(commitID) <= n {
		return commitID
	}
	return commitID[:n]
}

func BuildTime() string {
	return buildTime
}

func GoBuild() string {
	return goBuild
}

// Info is the build metadata served by the health endpoint.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoBuild   string `json:"goBuild"`
}

func Current() Info {
	goBuild := GoBuild()
	if goBuild == unknown {
		goBuild = runtime.Version()
	}
	return Info{
		Version:   VersionWithPrefix(),
		Commit:    ShortCommitID(),
		BuildTime: BuildTime(),
		GoBuild:   goBuild,
	}
}
