package component

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/despectus/despectus/internal/ui/styles"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

func NewTextInputModel(value string, placeholder string) textinput.Model {
	input := textinput.New()
	input.Cursor.Style = styles.CursorStyle
	input.SetValue(value)
	input.CharLimit = 127
	input.Placeholder = placeholder
	input.PromptStyle = styles.NoStyle
	input.TextStyle = styles.NoStyle

	return input
}

func NewUnstyledTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderHeader(false).
		Headers(headers...)
}

// Truncate shortens plain text to fit width terminal cells. Champion and riot names can
// contain wide characters so byte or rune counts are not enough.
func Truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}

	return runewidth.Truncate(value, width, ellipsis)
}
