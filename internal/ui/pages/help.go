package pages

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/despectus/despectus/internal/ui/command"
	"github.com/despectus/despectus/internal/ui/input"
	"github.com/despectus/despectus/internal/ui/model"
	"github.com/despectus/despectus/internal/ui/styles"
)

// BuildInfo is shown on the help page.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func NewHelp(build BuildInfo, configPath string, cachePath string, logPath string) Help {
	return Help{
		helpView:   help.New(),
		build:      build,
		configPath: configPath,
		cachePath:  cachePath,
		logPath:    logPath,
	}
}

type Help struct {
	helpView   help.Model
	viewState  model.ViewState
	build      BuildInfo
	configPath string
	cachePath  string
	logPath    string
}

func (m Help) Init() tea.Cmd {
	return nil
}

func (m Help) Update(msg tea.Msg) (Help, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg
	case tea.KeyMsg:
		if m.viewState.Page == model.PageHelp && key.Matches(msg, input.Default.Back) {
			m.viewState.Page = model.PageMain

			return m, command.SetViewState(m.viewState)
		}
	}

	return m, nil
}

func (m Help) View() string {
	left := m.helpView.FullHelpView([][]key.Binding{
		{
			input.Default.Refresh,
			input.Default.Increase,
			input.Default.Decrease,
		},
	})

	right := m.helpView.FullHelpView([][]key.Binding{
		{
			input.Default.Config,
			input.Default.Help,
			input.Default.Back,
			input.Default.Quit,
		},
	})

	helpContent := lipgloss.JoinHorizontal(lipgloss.Top, styles.HelpBox.Render(left), styles.HelpBox.Render(right))

	commit := m.build.Commit
	if len(commit) > 8 {
		commit = commit[0:8]
	}

	content := lipgloss.JoinVertical(lipgloss.Center, helpContent,
		styles.DetailRow("Version", m.build.Version),
		styles.DetailRow("Commit", commit),
		styles.DetailRow("Date", m.build.Date),
		styles.DetailRow("Config", m.configPath),
		styles.DetailRow("Cache", m.cachePath),
		styles.DetailRow("Log", m.logPath),
	)

	return lipgloss.Place(m.viewState.Width, m.viewState.Upper+m.viewState.Lower,
		lipgloss.Center, lipgloss.Center, content)
}
