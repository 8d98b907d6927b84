// Package text turns answer markdown into styled terminal output.
package text

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/pkg/errors"
)

const (
	darkCodeTheme  = "monokai"
	lightCodeTheme = "github"
	minWrap        = 20
)

// Renderer renders markdown for a given theme and width. The underlying
// glamour renderer is rebuilt lazily when either changes.
type Renderer struct {
	mu    sync.Mutex
	dark  bool
	width int
	tr    *glamour.TermRenderer
}

// NewRenderer returns a renderer for the dark or light palette.
func NewRenderer(dark bool, width int) *Renderer {
	return &Renderer{dark: dark, width: width}
}

func (r *Renderer) SetWidth(width int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width != r.width {
		r.width = width
		r.tr = nil
	}
}

func (r *Renderer) SetDark(dark bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dark != r.dark {
		r.dark = dark
		r.tr = nil
	}
}

// Render returns md styled for the terminal. On failure the raw markdown is
// returned together with the error so callers can still show something.
func (r *Renderer) Render(md string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tr == nil {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStyles(styleFor(r.dark)),
			glamour.WithWordWrap(wrapWidth(r.width)),
			glamour.WithEmoji(),
		)
		if err != nil {
			return md, errors.Wrap(err, "build markdown renderer")
		}
		r.tr = tr
	}
	out, err := r.tr.Render(md)
	if err != nil {
		return md, errors.Wrap(err, "render markdown")
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// MustRender is Render with the error dropped.
func (r *Renderer) MustRender(md string) string {
	out, _ := r.Render(md)
	return out
}

func styleFor(dark bool) ansi.StyleConfig {
	if dark {
		cfg := styles.DarkStyleConfig
		cfg.CodeBlock.Theme = darkCodeTheme
		return cfg
	}
	cfg := styles.LightStyleConfig
	cfg.CodeBlock.Theme = lightCodeTheme
	return cfg
}

func wrapWidth(w int) int {
	// leave room for the card border and padding
	w -= 4
	if w < minWrap {
		return minWrap
	}
	return w
}
