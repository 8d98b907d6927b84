package ui

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/ragterm/internal/settings"
)

func TestDebugLogFollowsSettings(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	path := filepath.Join(t.TempDir(), "state", "ragterm.log")
	dl := NewDebugLog(path)
	t.Cleanup(func() { dl.Close() })

	m, _, _ := newTestModel(t, nil)
	m.debugLog = dl
	require.NoError(t, dl.Set(false))

	on := settings.Defaults()
	on.DebugMode = true
	m, _ = press(t, m, settingsChangedMsg{settings: on})
	require.True(t, dl.Enabled())
	log.Printf("while debugging")

	m, _ = press(t, m, settingsChangedMsg{settings: settings.Defaults()})
	require.False(t, dl.Enabled())
	log.Printf("after debugging")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "while debugging")
	require.NotContains(t, string(data), "after debugging")
	require.Empty(t, m.settingsStatus)
}

func TestDebugLogFlagOverridesSettings(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	dl := NewDebugLog(filepath.Join(t.TempDir(), "ragterm.log"))
	t.Cleanup(func() { dl.Close() })

	m, _, _ := newTestModel(t, nil)
	m.cfg.Debug = true
	m.debugLog = dl
	m, _ = press(t, m, settingsChangedMsg{settings: settings.Defaults()})
	require.True(t, dl.Enabled())
}
