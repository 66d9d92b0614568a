package core

import (
	"runtime/debug"
	"testing"
)

func TestVersionFromBuildInfo(t *testing.T) {
	tests := []struct {
		name string
		info *debug.BuildInfo
		want string
	}{
		{
			name: "tagged release",
			info: &debug.BuildInfo{Main: debug.Module{Version: "v1.2.0"}},
			want: "v1.2.0",
		},
		{
			name: "local build with vcs info",
			info: &debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "82903d1d8810ab1b"},
				},
			},
			want: "devel-82903d1",
		},
		{
			name: "dirty local build",
			info: &debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "82903d1d8810ab1b"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			want: "devel-82903d1-dirty",
		},
		{
			name: "pseudo-version falls back to vcs",
			info: &debug.BuildInfo{
				Main: debug.Module{Version: "v0.0.0-20260217105831-82903d1d8810"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "82903d1d8810ab1b"},
				},
			},
			want: "devel-82903d1",
		},
		{
			name: "nothing available",
			info: &debug.BuildInfo{},
			want: "devel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := versionFromBuildInfo(tt.info); got != tt.want {
				t.Errorf("versionFromBuildInfo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"v1.12.0", "1.12.0"},
		{"1.12.0", "1.12.0"},
		{"devel-ad721b3", "devel-ad721b3"},
		{"devel-ad721b3-dirty", "devel-ad721b3-dirty"},
		{"devel", "devel"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatVersion(tt.input); got != tt.want {
			t.Errorf("FormatVersion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsPseudoVersion(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"v0.0.0-20260217105831-82903d1d8810", true},
		{"v0.0.0-20260217105831-82903d1d8810+dirty", true},
		{"v1.12.1-0.20260217105831-82903d1d8810", true},
		{"v1.12.0", false},
		{"v2.0.0-rc1", false},
		{"(devel)", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isPseudoVersion(tt.input); got != tt.want {
			t.Errorf("isPseudoVersion(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
