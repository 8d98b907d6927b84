package util

import (
	"path/filepath"
	"testing"
)

func TestConfigDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got, want := ConfigDir(), filepath.Join("/tmp/xdg", "ragterm"); got != want {
		t.Fatalf("ConfigDir = %q, want %q", got, want)
	}
}

func TestStateDirFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/tester")
	if got, want := StateDir(), filepath.Join("/home/tester", ".local", "state", "ragterm"); got != want {
		t.Fatalf("StateDir = %q, want %q", got, want)
	}
}
