package pages

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/despectus/despectus/internal/ui/component"
	"github.com/despectus/despectus/internal/ui/model"
)

// Main is the dashboard: three cards across the top with the match history below.
type Main struct {
	profile   component.ProfileModel
	ranked    component.RankedModel
	summary   component.SummaryModel
	matches   component.MatchesModel
	viewState model.ViewState
}

func NewMain() Main {
	return Main{
		profile: component.NewProfileModel(),
		ranked:  component.NewRankedModel(),
		summary: component.NewSummaryModel(),
		matches: component.NewMatchesModel(),
	}
}

func (m Main) Init() tea.Cmd {
	return tea.Batch(
		m.profile.Init(),
		m.ranked.Init(),
		m.summary.Init(),
		m.matches.Init())
}

func (m Main) Update(msg tea.Msg) (Main, tea.Cmd) {
	if viewState, ok := msg.(model.ViewState); ok {
		m.viewState = viewState
	}

	cmds := make([]tea.Cmd, 4)
	m.profile, cmds[0] = m.profile.Update(msg)
	m.ranked, cmds[1] = m.ranked.Update(msg)
	m.summary, cmds[2] = m.summary.Update(msg)
	m.matches, cmds[3] = m.matches.Update(msg)

	return m, tea.Batch(cmds...)
}

func (m Main) View() string {
	third := m.viewState.Width / 3
	last := m.viewState.Width - third*2

	upper := lipgloss.JoinHorizontal(lipgloss.Top,
		m.profile.Render(third, m.viewState.Upper),
		m.ranked.Render(third, m.viewState.Upper),
		m.summary.Render(last, m.viewState.Upper))

	return lipgloss.JoinVertical(lipgloss.Left, upper, m.matches.Render(m.viewState.Lower))
}
