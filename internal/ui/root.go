package ui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/despectus/despectus/internal/config"
	"github.com/despectus/despectus/internal/refresh"
	"github.com/despectus/despectus/internal/ui/command"
	"github.com/despectus/despectus/internal/ui/component"
	"github.com/despectus/despectus/internal/ui/input"
	"github.com/despectus/despectus/internal/ui/model"
	"github.com/despectus/despectus/internal/ui/pages"
	"github.com/despectus/despectus/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

const (
	footerHeight = 1
	// upperHeight is the height of the summoner, ranked and summary row.
	upperHeight = 10
)

// rootModel is the top level model for the ui side of the app.
type rootModel struct {
	viewState   model.ViewState
	mainPage    pages.Main
	configPage  *pages.Config
	helpPage    pages.Help
	statusModel component.StatusBarModel
	avgLPPerWin int
	parent      chan<- any
}

func newRootModel(conf config.Config, build pages.BuildInfo, writer config.Writer, paths Paths, parent chan<- any) rootModel {
	return rootModel{
		viewState:   model.ViewState{Page: model.PageMain},
		mainPage:    pages.NewMain(),
		configPage:  pages.NewConfig(conf, writer, parent),
		helpPage:    pages.NewHelp(build, writer.Path(), paths.Cache, paths.Log),
		statusModel: component.NewStatusBarModel(build.Version),
		avgLPPerWin: config.ClampAvgLPPerWin(conf.AvgLPPerWin),
		parent:      parent,
	}
}

func (m rootModel) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("despectus"),
		m.mainPage.Init(),
		m.configPage.Init(),
		m.helpPage.Init(),
		m.statusModel.Init(),
		command.Tick(),
	)
}

func (m rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.viewState.Width = msg.Width
		m.viewState.Height = msg.Height
		m.viewState.Upper = min(upperHeight, max(0, msg.Height-footerHeight))
		m.viewState.Lower = max(0, msg.Height-footerHeight-m.viewState.Upper)

		return m, command.SetViewState(m.viewState)
	case model.ViewState:
		m.viewState = msg
	case config.Config:
		m.avgLPPerWin = config.ClampAvgLPPerWin(msg.AvgLPPerWin)
	case refresh.Snapshot:
		m.avgLPPerWin = msg.AvgLPPerWin
	case command.TickMsg:
		return m.propagateWith(inMsg, command.Tick())
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft &&
			m.viewState.Page == model.PageMain && zone.Get(component.RefreshZone).InBounds(msg) {
			return m, m.refresh()
		}
	case tea.KeyMsg:
		if cmd, handled := m.onKey(msg); handled {
			return m, cmd
		}
	}

	return m.propagate(inMsg)
}

// onKey handles the global bindings. Outside of the main and help pages keys belong to the
// focused page so typing into an input does not trigger them.
func (m rootModel) onKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}

	if m.viewState.Page == model.PageConfig {
		return nil, false
	}

	switch {
	case key.Matches(msg, input.Default.Quit):
		return tea.Quit, true
	case key.Matches(msg, input.Default.Help):
		state := m.viewState
		if state.Page == model.PageHelp {
			state.Page = model.PageMain
		} else {
			state.Page = model.PageHelp
		}

		return command.SetViewState(state), true
	case key.Matches(msg, input.Default.Config):
		state := m.viewState
		state.Page = model.PageConfig

		return command.SetViewState(state), true
	case m.viewState.Page != model.PageMain:
		return nil, false
	case key.Matches(msg, input.Default.Refresh):
		return m.refresh(), true
	case key.Matches(msg, input.Default.Increase):
		return m.changeAvgLPPerWin(1), true
	case key.Matches(msg, input.Default.Decrease):
		return m.changeAvgLPPerWin(-1), true
	}

	return nil, false
}

func (m rootModel) refresh() tea.Cmd {
	if m.statusModel.Busy() {
		return nil
	}

	return command.Request(m.parent, command.RefreshRequest{})
}

func (m rootModel) changeAvgLPPerWin(delta int) tea.Cmd {
	value := config.ClampAvgLPPerWin(m.avgLPPerWin + delta)
	if value == m.avgLPPerWin {
		return nil
	}

	return command.Request(m.parent, command.AvgLPPerWinRequest{Value: value})
}

func (m rootModel) View() string {
	if m.viewState.Width == 0 || m.viewState.Height == 0 {
		return ""
	}

	var content string

	switch m.viewState.Page {
	case model.PageConfig:
		content = m.configPage.View()
	case model.PageHelp:
		content = m.helpPage.View()
	default:
		content = m.mainPage.View()
	}

	ctr := styles.ContentContainerStyle.
		Width(m.viewState.Width).
		Height(m.viewState.Upper + m.viewState.Lower).
		MaxHeight(m.viewState.Upper + m.viewState.Lower).
		Render(content)
	ftr := styles.FooterContainerStyle.Width(m.viewState.Width).Render(m.statusModel.View())

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, ctr, ftr))
}

func (m rootModel) propagate(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.propagateWith(msg, nil)
}

func (m rootModel) propagateWith(msg tea.Msg, extra tea.Cmd) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 5)

	m.mainPage, cmds[0] = m.mainPage.Update(msg)
	m.configPage, cmds[1] = m.configPage.Update(msg)
	m.helpPage, cmds[2] = m.helpPage.Update(msg)
	m.statusModel, cmds[3] = m.statusModel.Update(msg)
	cmds[4] = extra

	return m, tea.Batch(cmds...)
}

// logMsg is useful for debugging events. Tail the log file ~/.config/despectus/despectus.log
func logMsg(inMsg tea.Msg) {
	switch inMsg.(type) {
	case command.TickMsg, spinner.TickMsg, tea.MouseMsg:
	case config.Config:
		// Carries the api key.
		slog.Debug("tea.Msg", slog.String("msg", "config updated"))
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}
