package version

import (
	"bytes"
	"errors"
	"runtime"
	"runtime/debug"
	"sync"
	"text/template"
)

type versionInfo struct {
	Version   string
	GitCommit string
	Dirty     bool
}

const unknownVersion = "<unknown>"

var (
	// Set with -ldflags "-X github.com/NilFoundation/flagset/common/version.gitTag=...".
	gitTag string

	versionInfoCache versionInfo
	versionInfoOnce  sync.Once
)

func GetVersionInfo() versionInfo {
	versionInfoOnce.Do(func() {
		versionInfoCache = versionInfo{Version: gitTag, GitCommit: unknownVersion}
		if commit, dirty, err := ParseBuildInfo(); err == nil && commit != "" {
			versionInfoCache.GitCommit = commit
			versionInfoCache.Dirty = dirty
		}
		if versionInfoCache.Version == "" {
			versionInfoCache.Version = "0.1.0"
		}
	})
	return versionInfoCache
}

// ParseBuildInfo returns the VCS revision recorded by the go tool.
func ParseBuildInfo() (string, bool, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false, errors.New("failed to read build info")
	}
	var (
		gitHash string
		dirty   bool
	)
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			gitHash = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	return gitHash, dirty, nil
}

func HasGitInfo() bool {
	return GetVersionInfo().GitCommit != unknownVersion
}

func BuildVersionString(appTitle string) string {
	info := GetVersionInfo()
	commit := info.GitCommit
	if info.Dirty {
		commit += "-dirty"
	}
	return FormatVersion(versionTmpl, map[string]any{
		"Title":   appTitle,
		"Version": info.Version,
		"OS":      runtime.GOOS,
		"Arch":    runtime.GOARCH,
		"Commit":  commit,
	})
}

func FormatVersion(tmpl string, args map[string]any) string {
	t := template.Must(template.New("version").Parse(tmpl))
	buf := new(bytes.Buffer)
	if err := t.Execute(buf, args); err != nil {
		panic(err)
	}
	return buf.String()
}

var versionTmpl = `{{ .Title }}
 Version:	{{ .Version }}
 OS/Arch:	{{ .OS }}/{{ .Arch }}
 Git commit:	{{ .Commit }}`
