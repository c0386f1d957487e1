package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/despectus/despectus/internal/rank"
)

var (
	Gold     = lipgloss.Color("#c8aa6e")
	GoldDark = lipgloss.Color("#785a28")
	Teal     = lipgloss.Color("#0ac8b9")
	TealDark = lipgloss.Color("#005a82")

	Black       = lipgloss.Color("#111111")
	Gray        = lipgloss.Color("#3e3e3e")
	GrayDark    = lipgloss.Color("#1e2328")
	GrayDarkAlt = lipgloss.Color("#0f0f0f")
	White       = lipgloss.Color("#cccccc")
	Whiter      = lipgloss.Color("#aaaaaa")

	Win  = lipgloss.Color("#3fb950")
	Loss = lipgloss.Color("#e84057")

	ContainerTitle       = lipgloss.NewStyle().Bold(true)
	ContainerBorder      = lipgloss.DoubleBorder()
	ContainerStyle       = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(GoldDark)
	ContainerStyleActive = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(Gold)

	HeaderContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)
	ContentContainerStyle = lipgloss.NewStyle().Align(lipgloss.Center)
	FooterContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)

	FocusedStyle = lipgloss.NewStyle().Foreground(Gold)
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(Black)
	CursorStyle  = FocusedStyle
	NoStyle      = lipgloss.NewStyle()
	HelpStyle    = BlurredStyle

	FocusedSubmitButton = lipgloss.NewStyle().Foreground(Gold).Render("[ Save ]")
	BlurredSubmitButton = fmt.Sprintf("[ %s ]", BlurredStyle.Render("Save"))

	TitleName  = lipgloss.NewStyle().Foreground(Gold).Bold(true)
	TitleTag   = lipgloss.NewStyle().Foreground(Whiter)
	TitleLevel = lipgloss.NewStyle().Foreground(Teal).PaddingLeft(2)

	PanelLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right).Width(12)
	PanelValue = lipgloss.NewStyle()

	HeaderStyle        = lipgloss.NewStyle().Foreground(Gold).Bold(true).Align(lipgloss.Left).PaddingLeft(0)
	TableRowValuesEven = lipgloss.NewStyle().Background(GrayDark)
	TableRowValuesOdd  = lipgloss.NewStyle().Background(GrayDarkAlt)
	ResultWin          = lipgloss.NewStyle().Foreground(Win).Bold(true)
	ResultLoss         = lipgloss.NewStyle().Foreground(Loss).Bold(true)

	StatusError   = lipgloss.NewStyle().Foreground(Loss).Bold(true).PaddingLeft(1).PaddingRight(2)
	StatusMessage = lipgloss.NewStyle().Foreground(Win).Bold(true).PaddingLeft(1).PaddingRight(2)
	StatusAbsent  = lipgloss.NewStyle().Foreground(Whiter).PaddingLeft(1).PaddingRight(2)
	StatusBusy    = lipgloss.NewStyle().Foreground(Teal).PaddingLeft(1).PaddingRight(2)
	StatusUpdated = lipgloss.NewStyle().Foreground(Gray).PaddingRight(2)
	StatusHelp    = lipgloss.NewStyle().Foreground(Gray).Bold(true).PaddingRight(2)
	StatusVersion = lipgloss.NewStyle().Foreground(Gold).Bold(true).PaddingLeft(1).PaddingRight(2)

	RefreshButton     = lipgloss.NewStyle().Foreground(Black).Background(Gold).Bold(true).Padding(0, 1)
	RefreshButtonBusy = lipgloss.NewStyle().Foreground(Whiter).Background(Gray).Padding(0, 1)

	InfoMessage = lipgloss.NewStyle().Align(lipgloss.Center).Padding(1).Foreground(Whiter)

	HelpBox = lipgloss.NewStyle().Padding(3)

	IconRefresh = "⟳"
	IconNoGames = "🍃"
	IconWarning = "⚠"
)

// TierColour returns the accent used for a tier label.
func TierColour(tier rank.Tier) lipgloss.Color {
	switch tier {
	case rank.Iron:
		return lipgloss.Color("#6b6462")
	case rank.Bronze:
		return lipgloss.Color("#a0715e")
	case rank.Silver:
		return lipgloss.Color("#99a3a7")
	case rank.Gold:
		return lipgloss.Color("#cd8837")
	case rank.Platinum:
		return lipgloss.Color("#4e9996")
	case rank.Emerald:
		return lipgloss.Color("#2ead73")
	case rank.Diamond:
		return lipgloss.Color("#576bce")
	case rank.Master:
		return lipgloss.Color("#9d48e0")
	case rank.Grandmaster:
		return lipgloss.Color("#cd4545")
	case rank.Challenger:
		return lipgloss.Color("#f4c874")
	default:
		return Whiter
	}
}

func DetailRow(label string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelLabel.Render(label+" "),
		PanelValue.Render(value))
}

// WrapX will wrap a centered string with the supplied character up to the length specified.
func WrapX(width int, value string, character string) string {
	all := max(0, width-lipgloss.Width(value))

	return strings.Repeat(character, all/2) + value + strings.Repeat(character, all/2)
}

func TitleBorder(border lipgloss.Border, width int, title string) lipgloss.Border {
	border.Top = WrapX(width, "║"+title+"║", border.Top)

	return border
}
