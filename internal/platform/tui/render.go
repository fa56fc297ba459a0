package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cave/internal/core"
)

// styleCache maps core.Color to lipgloss styles. Cave colours are 24-bit and
// mostly fade over time, so styles are built on first use.
var styleCache = struct {
	sync.RWMutex
	styles map[core.Color]lipgloss.Style
}{styles: map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}}

// styleFor returns the foreground style for c.
func styleFor(c core.Color) lipgloss.Style {
	styleCache.RLock()
	s, ok := styleCache.styles[c]
	styleCache.RUnlock()
	if ok {
		return s
	}

	s = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	styleCache.Lock()
	styleCache.styles[c] = s
	styleCache.Unlock()
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if startColor.IsDefault() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
