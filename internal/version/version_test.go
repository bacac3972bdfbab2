package version

import (
	"testing"

	"github.com/fatih/color"
)

func override(t *testing.T, v, commit, date string) {
	t.Helper()
	origV, origC, origD := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = origV, origC, origD })
}

func TestString(t *testing.T) {
	tests := []struct {
		name          string
		v, commit, at string
		want          string
	}{
		{"bare", "1.2.3", "", "", "fire 1.2.3"},
		{"commit", "1.2.3", "abc123", "", "fire 1.2.3 (abc123)"},
		{"full", "0.1.0-dev", "abc123", "2026-01-15T10:30:00Z", "fire 0.1.0-dev (abc123) built 2026-01-15T10:30:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override(t, tt.v, tt.commit, tt.at)
			if got := String(false); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColoredKeepsText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	for _, v := range []string{"0.1.0-dev", "2.0.1", "nightly"} {
		if got := Colored(v); got != v {
			t.Errorf("Colored(%q) = %q without colour support", v, got)
		}
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	if got := Colored("1.2.3"); got == "1.2.3" {
		t.Fatal("expected ANSI escapes")
	}
	if got := Colored("nightly"); got != "nightly" {
		t.Fatalf("non-semver must pass through, got %q", got)
	}
}
