package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.Commit == "" {
		t.Error("Commit should not be empty")
	}
	if info.BuildTime == "" {
		t.Error("BuildTime should not be empty")
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("GoVersion = %q, want go prefix", info.GoVersion)
	}
}

func TestString(t *testing.T) {
	s := String()

	expected := Version + " (" + Commit + ") built at " + BuildTime
	if s != expected {
		t.Errorf("String() = %q, want %q", s, expected)
	}
}
