// Package theme holds the named color palettes of the terminal board.
package theme

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultName is the palette used when no theme is configured.
const DefaultName = "tokyonight"

// Palette maps board roles to adaptive colors so the same palette reads on
// light and dark terminals.
type Palette struct {
	Name string

	Accent lipgloss.AdaptiveColor // header, focused column border
	Link   lipgloss.AdaptiveColor // action keys, issue numbers

	Todo       lipgloss.AdaptiveColor
	InProgress lipgloss.AdaptiveColor
	Done       lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor

	Text      lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor
	Selected  lipgloss.AdaptiveColor // selected card background
	Border    lipgloss.AdaptiveColor
}

var registry = struct {
	mu      sync.RWMutex
	byName  map[string]Palette
	current string
}{byName: make(map[string]Palette), current: DefaultName}

// Register adds a palette under its name, replacing any previous entry.
func Register(p Palette) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.byName[p.Name] = p
}

// Set switches to a registered palette. It reports whether name was found.
func Set(name string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, ok := registry.byName[name]; !ok {
		return false
	}
	registry.current = name
	return true
}

// Current returns the active palette.
func Current() Palette {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.byName[registry.current]
}

// CurrentName returns the name of the active palette.
func CurrentName() string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.current
}

// Available lists registered palette names in sorted order.
func Available() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return sortedNames()
}

// Cycle advances to the next palette in sorted order and returns its name.
func Cycle() string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	names := sortedNames()
	if len(names) == 0 {
		return ""
	}
	next := 0
	for i, name := range names {
		if name == registry.current {
			next = (i + 1) % len(names)
			break
		}
	}
	registry.current = names[next]
	return registry.current
}

func sortedNames() []string {
	names := make([]string, 0, len(registry.byName))
	for name := range registry.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
