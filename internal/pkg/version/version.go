// Package version 빌드 시점에 주입된 메타데이터와 실행 환경 정보를 제공합니다.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const unknown = "unknown"

// 다음 변수들은 링커 플래그(-ldflags "-X ...")를 통해 주입됩니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	buildDate     = ""
)

var (
	once    sync.Once
	current Info

	// readBuildInfo 테스트에서 교체 가능하도록 변수로 선언합니다.
	readBuildInfo = debug.ReadBuildInfo
)

// Info 애플리케이션의 빌드 정보입니다.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Dirty     bool   `json:"dirty"`
}

// Get 애플리케이션의 빌드 정보를 반환합니다.
func Get() Info {
	once.Do(func() {
		current = enrich(Info{
			Version:   strings.TrimSpace(appVersion),
			Commit:    strings.TrimSpace(gitCommitHash),
			BuildDate: strings.TrimSpace(buildDate),
		})
	})
	return current
}

// enrich 비어 있는 항목을 런타임 정보와 VCS 메타데이터로 채웁니다.
func enrich(bi Info) Info {
	bi.GoVersion = runtime.Version()
	bi.OS = runtime.GOOS
	bi.Arch = runtime.GOARCH

	if val, ok := readBuildInfo(); ok {
		for _, setting := range val.Settings {
			switch setting.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = setting.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" {
					bi.BuildDate = setting.Value
				}
			case "vcs.modified":
				bi.Dirty = bi.Dirty || setting.Value == "true"
			}
		}
		if bi.Version == "" && val.Main.Version != "" && val.Main.Version != "(devel)" {
			bi.Version = val.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" {
		bi.Commit = unknown
	}

	return bi
}

// ToFields 빌드 정보를 구조적 로깅용 맵으로 반환합니다.
func (i Info) ToFields() map[string]any {
	return map[string]any{
		"version":    i.Version,
		"commit":     i.Commit,
		"build_date": i.BuildDate,
		"go_version": i.GoVersion,
		"os":         i.OS,
		"arch":       i.Arch,
		"dirty":      i.Dirty,
	}
}

// String 빌드 정보를 한 줄로 요약합니다.
func (i Info) String() string {
	if i.Version == "" {
		return unknown
	}
	v := i.Version
	if i.Dirty {
		v += "+dirty"
	}

	var details []string
	if i.Commit != "" && i.Commit != unknown {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		details = append(details, "commit: "+commit)
	}
	if i.BuildDate != "" {
		details = append(details, "date: "+i.BuildDate)
	}
	if i.GoVersion != "" {
		details = append(details, "go_version: "+i.GoVersion)
	}
	if i.OS != "" && i.Arch != "" {
		details = append(details, fmt.Sprintf("platform: %s/%s", i.OS, i.Arch))
	}

	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}
