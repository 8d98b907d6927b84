package ui

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// DebugLog points the standard logger at a file while debug is on and
// discards output otherwise. The TUI owns stdout, so stderr is never used.
type DebugLog struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

func NewDebugLog(path string) *DebugLog { return &DebugLog{path: path} }

// Set turns file logging on or off. Repeated calls with the same value are
// no-ops.
func (d *DebugLog) Set(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if on {
		if d.f != nil {
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(d.path), 0o700); err != nil {
			log.SetOutput(io.Discard)
			return errors.Wrap(err, "create log dir")
		}
		f, err := tea.LogToFile(d.path, "ragterm")
		if err != nil {
			log.SetOutput(io.Discard)
			return errors.Wrap(err, "open log file")
		}
		d.f = f
		return nil
	}
	log.SetOutput(io.Discard)
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return errors.Wrap(err, "close log file")
}

func (d *DebugLog) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.f != nil
}

// Close stops file logging and restores stderr for messages printed after
// the program exits.
func (d *DebugLog) Close() error {
	err := d.Set(false)
	log.SetOutput(os.Stderr)
	return err
}
