package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name        string
		settings    map[string]string
		wantVersion string
		wantCommit  string
	}{
		{
			name:     "empty",
			settings: nil,
		},
		{
			name: "clean",
			settings: map[string]string{
				"vcs.revision": "0123456789abcdef",
				"vcs.time":     "2026-03-14T09:26:53Z",
				"vcs.modified": "false",
			},
			wantVersion: "dev-20260314",
			wantCommit:  "0123456",
		},
		{
			name: "dirty short revision",
			settings: map[string]string{
				"vcs.revision": "abc",
				"vcs.modified": "true",
			},
			wantCommit: "abc-dirty",
		},
		{
			name:     "bad time",
			settings: map[string]string{"vcs.time": "yesterday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &debug.BuildInfo{}
			for k, v := range tt.settings {
				info.Settings = append(info.Settings, debug.BuildSetting{Key: k, Value: v})
			}
			v, c := fromBuildInfo(info)
			if v != tt.wantVersion || c != tt.wantCommit {
				t.Errorf("fromBuildInfo() = (%q, %q), want (%q, %q)", v, c, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}

func TestFull(t *testing.T) {
	if Version == "" || Commit == "" {
		t.Fatal("version not initialized")
	}
	if got := Full(); !strings.Contains(got, Version) || !strings.Contains(got, Commit) {
		t.Errorf("Full() = %q", got)
	}
	if !strings.Contains(Platform(), "/") {
		t.Errorf("Platform() = %q", Platform())
	}
}
