package theme

import "github.com/charmbracelet/lipgloss"

func color(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func init() {
	Register(Palette{
		Name:       "tokyonight",
		Accent:     color("#2e7de9", "#82aaff"),
		Link:       color("#9854f1", "#c099ff"),
		Todo:       color("#0db9d7", "#7dcfff"),
		InProgress: color("#b15c00", "#ff966c"),
		Done:       color("#587539", "#c3e88d"),
		Error:      color("#f52a65", "#ff757f"),
		Text:       color("#3760bf", "#c8d3f5"),
		TextMuted:  color("#848cb5", "#636da6"),
		Selected:   color("#c8c9ce", "#2f334d"),
		Border:     color("#a8aecb", "#3b4261"),
	})
	Register(Palette{
		Name:       "dracula",
		Accent:     color("#7e57c2", "#bd93f9"),
		Link:       color("#0097a7", "#8be9fd"),
		Todo:       color("#0097a7", "#8be9fd"),
		InProgress: color("#f9a825", "#f1fa8c"),
		Done:       color("#388e3c", "#50fa7b"),
		Error:      color("#d32f2f", "#ff5555"),
		Text:       color("#212121", "#f8f8f2"),
		TextMuted:  color("#757575", "#6272a4"),
		Selected:   color("#e0e0e0", "#44475a"),
		Border:     color("#bdbdbd", "#44475a"),
	})
	Register(Palette{
		Name:       "nord",
		Accent:     color("#5e81ac", "#88c0d0"),
		Link:       color("#5e81ac", "#81a1c1"),
		Todo:       color("#5e81ac", "#8fbcbb"),
		InProgress: color("#d08770", "#ebcb8b"),
		Done:       color("#8fbcbb", "#a3be8c"),
		Error:      color("#bf616a", "#bf616a"),
		Text:       color("#2e3440", "#eceff4"),
		TextMuted:  color("#4c566a", "#616e88"),
		Selected:   color("#d8dee9", "#3b4252"),
		Border:     color("#d8dee9", "#434c5e"),
	})
	Register(Palette{
		Name:       "gruvbox",
		Accent:     color("#076678", "#83a598"),
		Link:       color("#8f3f71", "#d3869b"),
		Todo:       color("#427b58", "#8ec07c"),
		InProgress: color("#b57614", "#fabd2f"),
		Done:       color("#79740e", "#b8bb26"),
		Error:      color("#9d0006", "#fb4934"),
		Text:       color("#3c3836", "#ebdbb2"),
		TextMuted:  color("#7c6f64", "#928374"),
		Selected:   color("#ebdbb2", "#3c3836"),
		Border:     color("#d5c4a1", "#504945"),
	})
	Register(Palette{
		Name:       "github",
		Accent:     color("#0969da", "#58a6ff"),
		Link:       color("#8250df", "#bc8cff"),
		Todo:       color("#0969da", "#58a6ff"),
		InProgress: color("#9a6700", "#d29922"),
		Done:       color("#1a7f37", "#3fb950"),
		Error:      color("#cf222e", "#f85149"),
		Text:       color("#1f2328", "#e6edf3"),
		TextMuted:  color("#656d76", "#7d8590"),
		Selected:   color("#eaeef2", "#21262d"),
		Border:     color("#d0d7de", "#30363d"),
	})
}
