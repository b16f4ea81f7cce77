package version

import (
	"strings"
	"testing"
)

func TestFull(t *testing.T) {
	// Save and restore package state
	origVersion := Version
	origCommit := GitCommit
	origTime := BuildTime
	defer func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origTime
	}()

	tests := []struct {
		name    string
		version string
		commit  string
		time    string
		want    string
	}{
		{
			name:    "version only",
			version: "1.0.0",
			commit:  "",
			time:    "",
			want:    "1.0.0",
		},
		{
			name:    "version with commit",
			version: "1.0.0",
			commit:  "abc123",
			time:    "",
			want:    "1.0.0-abc123",
		},
		{
			name:    "version with commit and time",
			version: "1.0.0",
			commit:  "abc123",
			time:    "2026-01-01",
			want:    "1.0.0-abc123 (2026-01-01)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.version
			GitCommit = tt.commit
			BuildTime = tt.time
			if got := Full(); got != tt.want {
				t.Errorf("Full() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should never be empty")
	}
	if !strings.Contains(Full(), Version) {
		t.Errorf("Full() = %q should contain Version %q", Full(), Version)
	}
}
