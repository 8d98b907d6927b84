package ui

import (
	"context"
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/ragterm/internal/api"
	"github.com/DaanHessen/ragterm/internal/settings"
	"github.com/DaanHessen/ragterm/internal/store"
	"github.com/DaanHessen/ragterm/internal/util"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, client *api.Client, history store.History, st *settings.Store, cfg util.Config) error {
	saved, err := st.Load()
	if err != nil {
		log.Printf("using default settings: %v", err)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dl := NewDebugLog(filepath.Join(util.StateDir(), "ragterm.log"))
	if err := dl.Set(cfg.Debug || saved.DebugMode); err != nil {
		log.Printf("debug log: %v", err)
	}
	defer dl.Close()

	m := initialModel(ctx, client, history, st, saved, cfg)
	m.debugLog = dl
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())

	go func() {
		if err := st.Watch(ctx, func(s settings.Settings) {
			program.Send(settingsChangedMsg{settings: s})
		}); err != nil {
			log.Printf("settings watch disabled: %v", err)
		}
	}()

	_, err = program.Run()
	if err == tea.ErrProgramKilled && ctx.Err() != nil {
		return nil
	}
	return err
}
