package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	st, err := NewStore(filepath.Join(t.TempDir(), "settings.toml")).Load()
	require.NoError(t, err)
	require.Equal(t, Defaults(), st)
	require.Equal(t, 5, st.MaxSections)
	require.Equal(t, 8, st.MaxDocs)
	require.False(t, st.DebugMode)
}

func TestSaveThenLoadPersistsAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	want := Settings{MaxSections: 3, MaxDocs: 12, APIKey: "sk-test", DebugMode: true, Theme: "light"}
	require.NoError(t, NewStore(path).Save(want))

	got, err := NewStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveOverwritesWholeRecord(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.toml"))
	require.NoError(t, store.Save(Settings{MaxSections: 2, MaxDocs: 2, APIKey: "old", DebugMode: true}))
	require.NoError(t, store.Save(Settings{MaxSections: 4, MaxDocs: 4}))
	got, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, got.APIKey)
	require.False(t, got.DebugMode)
	require.Equal(t, DefaultTheme, got.Theme)
}

func TestClampRanges(t *testing.T) {
	cases := []struct {
		in, want Settings
	}{
		{Settings{MaxSections: 0, MaxDocs: 0}, Settings{MaxSections: 1, MaxDocs: 1, Theme: DefaultTheme}},
		{Settings{MaxSections: 11, MaxDocs: 21, Theme: "light"}, Settings{MaxSections: 10, MaxDocs: 20, Theme: "light"}},
		{Settings{MaxSections: 7, MaxDocs: 15, Theme: "dark"}, Settings{MaxSections: 7, MaxDocs: 15, Theme: "dark"}},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.in.Clamp())
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_key = \"abc\"\n"), 0o600))
	got, err := NewStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, "abc", got.APIKey)
	require.Equal(t, DefaultMaxSections, got.MaxSections)
	require.Equal(t, DefaultMaxDocs, got.MaxDocs)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_sections = = 3"), 0o600))
	_, err := NewStore(path).Load()
	require.Error(t, err)
}

func TestWatchReportsExternalSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	store := NewStore(path)
	require.NoError(t, store.Save(Defaults()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan Settings, 4)
	go func() { _ = store.Watch(ctx, func(s Settings) { got <- s }) }()

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, NewStore(path).Save(Settings{MaxSections: 9, MaxDocs: 3}))

	select {
	case s := <-got:
		require.Equal(t, 9, s.MaxSections)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report the save")
	}
}

func TestWatchCreatesMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragterm", "settings.toml")
	store := NewStore(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan Settings, 4)
	watchErr := make(chan error, 1)
	go func() { watchErr <- store.Watch(ctx, func(s Settings) { got <- s }) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, store.Save(Settings{MaxSections: 4, MaxDocs: 6}))

	select {
	case s := <-got:
		require.Equal(t, 4, s.MaxSections)
		require.Equal(t, 6, s.MaxDocs)
	case err := <-watchErr:
		t.Fatalf("Watch returned before the save was seen: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report the first save")
	}
}
