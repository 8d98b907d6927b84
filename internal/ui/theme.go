package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Dark      bool
	Surface   lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	AccentAlt lipgloss.Color
	Border    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var palettes = map[string]palette{
	"dark": {
		Dark:      true,
		Surface:   lipgloss.Color("#1e1e1e"),
		Text:      lipgloss.Color("#d4d4d4"),
		Muted:     lipgloss.Color("#858585"),
		Accent:    lipgloss.Color("#569cd6"),
		AccentAlt: lipgloss.Color("#c586c0"),
		Border:    lipgloss.Color("#3c3c3c"),
		Success:   lipgloss.Color("#6a9955"),
		Warning:   lipgloss.Color("#dcdcaa"),
		Error:     lipgloss.Color("#f44747"),
	},
	"light": {
		Surface:   lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#1f2328"),
		Muted:     lipgloss.Color("#656d76"),
		Accent:    lipgloss.Color("#1976d2"),
		AccentAlt: lipgloss.Color("#9c27b0"),
		Border:    lipgloss.Color("#d0d7de"),
		Success:   lipgloss.Color("#2e7d32"),
		Warning:   lipgloss.Color("#ed6c02"),
		Error:     lipgloss.Color("#d32f2f"),
	},
	"catppuccin": {
		Dark:      true,
		Surface:   lipgloss.Color("#313244"),
		Text:      lipgloss.Color("#cdd6f4"),
		Muted:     lipgloss.Color("#a6adc8"),
		Accent:    lipgloss.Color("#cba6f7"),
		AccentAlt: lipgloss.Color("#f38ba8"),
		Border:    lipgloss.Color("#585b70"),
		Success:   lipgloss.Color("#94e2d5"),
		Warning:   lipgloss.Color("#f9e2af"),
		Error:     lipgloss.Color("#f38ba8"),
	},
	"dracula": {
		Dark:      true,
		Surface:   lipgloss.Color("#343746"),
		Text:      lipgloss.Color("#f8f8f2"),
		Muted:     lipgloss.Color("#6272a4"),
		Accent:    lipgloss.Color("#ff79c6"),
		AccentAlt: lipgloss.Color("#bd93f9"),
		Border:    lipgloss.Color("#44475a"),
		Success:   lipgloss.Color("#50fa7b"),
		Warning:   lipgloss.Color("#f1fa8c"),
		Error:     lipgloss.Color("#ff5555"),
	},
	"gruvbox": {
		Dark:      true,
		Surface:   lipgloss.Color("#3c3836"),
		Text:      lipgloss.Color("#ebdbb2"),
		Muted:     lipgloss.Color("#a89984"),
		Accent:    lipgloss.Color("#fabd2f"),
		AccentAlt: lipgloss.Color("#d3869b"),
		Border:    lipgloss.Color("#665c54"),
		Success:   lipgloss.Color("#b8bb26"),
		Warning:   lipgloss.Color("#fe8019"),
		Error:     lipgloss.Color("#fb4934"),
	},
	"solarized_dark": {
		Dark:      true,
		Surface:   lipgloss.Color("#073642"),
		Text:      lipgloss.Color("#fdf6e3"),
		Muted:     lipgloss.Color("#93a1a1"),
		Accent:    lipgloss.Color("#b58900"),
		AccentAlt: lipgloss.Color("#268bd2"),
		Border:    lipgloss.Color("#586e75"),
		Success:   lipgloss.Color("#859900"),
		Warning:   lipgloss.Color("#cb4b16"),
		Error:     lipgloss.Color("#dc322f"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["dark"]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	card     lipgloss.Style
	selected lipgloss.Style
	muted    lipgloss.Style
	accent   lipgloss.Style
	success  lipgloss.Style
	errText  lipgloss.Style
	tab      lipgloss.Style
	tabOn    lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		subtitle: lipgloss.NewStyle().Foreground(p.Muted),
		card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		selected: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Accent).Padding(0, 1),
		muted:    lipgloss.NewStyle().Foreground(p.Muted),
		accent:   lipgloss.NewStyle().Foreground(p.AccentAlt),
		success:  lipgloss.NewStyle().Foreground(p.Success),
		errText:  lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		tab:      lipgloss.NewStyle().Padding(0, 1).Foreground(p.Muted),
		tabOn:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(p.Text).Background(p.Surface),
	}
}
