package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/sim"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Status is the host state shown in the HUD.
type Status struct {
	Paused  bool
	Pending bool // a reloaded config waits for the next restart
	RunID   string
}

// DrawFrame draws a snapshot, the ground band and the HUD onto s.
func DrawFrame(s *core.Screen, proj Projection, snap sim.Snapshot, terminated bool, st Status) {
	s.Clear()

	for y := proj.GroundRow(); y < s.Height(); y++ {
		for x := range s.Width() {
			s.Set(x, y, '▒', core.ColorGray)
		}
	}

	for _, o := range snap.Obstacles {
		s.DrawRect(proj.Rect(o.Box), '▓', core.ColorRed)
	}

	playerColor := core.ColorGreen
	if terminated {
		playerColor = core.ColorYellow
	}
	s.DrawRect(proj.Rect(snap.Player.Box), '█', playerColor)

	hud := fmt.Sprintf(" t %.1fs  obstacles %d", snap.Time, len(snap.Obstacles))
	if st.Pending {
		hud += "  config reloaded (r applies)"
	}
	s.DrawText(0, 0, hud, core.ColorDefault)

	switch {
	case terminated:
		msg := "GAME OVER  r restart  q quit"
		if st.RunID != "" {
			msg += "  run " + st.RunID[:min(8, len(st.RunID))]
		}
		centerText(s, s.Height()/2, msg, core.ColorYellow)
	case st.Paused:
		centerText(s, s.Height()/2, "PAUSED", core.ColorBlue)
	}
}

func centerText(s *core.Screen, y int, text string, c core.Color) {
	x := (s.Width() - len([]rune(text))) / 2
	s.DrawText(max(x, 0), y, text, c)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
