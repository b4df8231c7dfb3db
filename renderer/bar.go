package renderer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 20

var (
	barDone = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	barTodo = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
)

// progressBar draws percent as a bar of width cells followed by the number.
// Colors are only emitted when the output supports them.
func progressBar(percent, width int) string {
	percent = min(max(percent, 0), 100)
	done := (percent*width + 50) / 100
	return fmt.Sprintf("%s%s %d%%",
		barDone.Render(strings.Repeat("█", done)),
		barTodo.Render(strings.Repeat("░", width-done)),
		percent)
}
