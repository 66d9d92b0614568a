package cmd

import (
	"errors"
	"testing"
	"time"
)

func TestClassifyArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		duration time.Duration
		token    string
		wantErr  bool
	}{
		{name: "duration with unit", args: []string{"90m"}, duration: 90 * time.Minute},
		{name: "compound duration", args: []string{"1h30m"}, duration: 90 * time.Minute},
		{name: "seconds", args: []string{"45s"}, duration: 45 * time.Second},
		{name: "bare number is a pid", args: []string{"28082"}, token: "28082"},
		{name: "pid keyword", args: []string{"pid", "28082"}, token: "28082"},
		{name: "search term", args: []string{"node"}, token: "node"},
		{name: "term that starts numeric", args: []string{"8080/tcp"}, token: "8080/tcp"},
		{name: "zero duration", args: []string{"0s"}, wantErr: true},
		{name: "bare zero", args: []string{"0"}, wantErr: true},
		{name: "pid keyword with junk", args: []string{"pid", "abc"}, wantErr: true},
		{name: "pid keyword with zero", args: []string{"pid", "0"}, wantErr: true},
		{name: "unknown keyword", args: []string{"watch", "28082"}, wantErr: true},
		{name: "empty token", args: []string{""}, wantErr: true},
		{name: "three args", args: []string{"a", "b", "c"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := classifyArgs(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("classifyArgs(%v) succeeded, want error", tt.args)
				}
				var ue *UsageError
				if !errors.As(err, &ue) {
					t.Errorf("classifyArgs(%v) = %v, want a UsageError", tt.args, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("classifyArgs(%v): %v", tt.args, err)
			}
			if mode.duration != tt.duration || mode.token != tt.token {
				t.Errorf("classifyArgs(%v) = {%v %q}, want {%v %q}",
					tt.args, mode.duration, mode.token, tt.duration, tt.token)
			}
		})
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCommand()

	want := map[string]bool{"resolve": false, "status": false, "version": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("root command is missing %q", name)
		}
	}
}
