package pages

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/despectus/despectus/internal/config"
	"github.com/despectus/despectus/internal/ui/command"
	"github.com/despectus/despectus/internal/ui/component"
	"github.com/despectus/despectus/internal/ui/input"
	"github.com/despectus/despectus/internal/ui/model"
	"github.com/despectus/despectus/internal/ui/styles"
)

type configIdx int

const (
	fieldAPIKey configIdx = iota
	fieldAvgLPPerWin
	fieldRefreshSeconds
	fieldSave
)

// maxRefreshSeconds keeps the auto refresh at least once a day.
const maxRefreshSeconds = 86400

type Config struct {
	fields     []*component.ValidatingTextInputModel
	focusIndex configIdx
	config     config.Config
	viewState  model.ViewState
	writer     config.Writer
	parent     chan<- any
}

func NewConfig(conf config.Config, writer config.Writer, parent chan<- any) *Config {
	return &Config{
		config: conf,
		fields: []*component.ValidatingTextInputModel{
			component.NewValidatingTextInputModel("Riot API key", conf.RiotAPIKey, "RGAPI-…",
				component.APIKeyValidator{}).Masked(),
			component.NewValidatingTextInputModel("LP per win", strconv.Itoa(conf.AvgLPPerWin), "22",
				component.IntRangeValidator{Min: config.MinAvgLPPerWin, Max: config.MaxAvgLPPerWin}),
			component.NewValidatingTextInputModel("Refresh (s)", strconv.Itoa(conf.RefreshSeconds), "300",
				component.IntRangeValidator{Min: 10, Max: maxRefreshSeconds}),
		},
		focusIndex: fieldAPIKey,
		writer:     writer,
		parent:     parent,
	}
}

func (m *Config) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Config) Update(msg tea.Msg) (*Config, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		if msg.Page == model.PageConfig && m.viewState.Page != model.PageConfig {
			m.viewState = msg
			m.focusIndex = fieldAPIKey

			return m, m.focus()
		}

		m.viewState = msg

		return m, nil
	case config.Config:
		m.config = msg
		if m.viewState.Page != model.PageConfig {
			m.reset()
		}

		return m, nil
	case tea.KeyMsg:
		if m.viewState.Page != model.PageConfig {
			return m, nil
		}

		switch {
		case key.Matches(msg, input.Default.Back):
			m.reset()
			m.viewState.Page = model.PageMain

			return m, command.SetViewState(m.viewState)
		case key.Matches(msg, input.Default.Up):
			if m.focusIndex > 0 {
				return m, m.changeInput(input.Up)
			}

			return m, nil
		case key.Matches(msg, input.Default.Down):
			if m.focusIndex < fieldSave {
				return m, m.changeInput(input.Down)
			}

			return m, nil
		case key.Matches(msg, input.Default.Accept):
			if m.focusIndex == fieldSave {
				return m, m.save()
			}

			return m, m.changeInput(input.Down)
		}
	}

	if m.viewState.Page != model.PageConfig || m.focusIndex == fieldSave {
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.focusIndex], cmd = m.fields[m.focusIndex].Update(msg)

	return m, cmd
}

func (m *Config) save() tea.Cmd {
	for _, field := range m.fields {
		if field.Input.Err != nil {
			return command.SetStatusMessage("Config is not valid, cannot save", true)
		}
	}

	conf := m.config
	conf.RiotAPIKey = strings.TrimSpace(m.fields[fieldAPIKey].Input.Value())
	conf.AvgLPPerWin, _ = strconv.Atoi(strings.TrimSpace(m.fields[fieldAvgLPPerWin].Input.Value()))
	conf.RefreshSeconds, _ = strconv.Atoi(strings.TrimSpace(m.fields[fieldRefreshSeconds].Input.Value()))
	conf = conf.Normalize()

	if err := m.writer.Write(conf); err != nil {
		return command.SetStatusMessage(err.Error(), true)
	}

	m.config = conf
	m.viewState.Page = model.PageMain

	return tea.Batch(
		command.Request(m.parent, command.ConfigSavedRequest{Config: conf}),
		command.SetConfig(conf),
		command.SetStatusMessage("Saved config", false),
		command.SetViewState(m.viewState))
}

// reset discards unsaved edits.
func (m *Config) reset() {
	m.fields[fieldAPIKey].Input.SetValue(m.config.RiotAPIKey)
	m.fields[fieldAvgLPPerWin].Input.SetValue(strconv.Itoa(m.config.AvgLPPerWin))
	m.fields[fieldRefreshSeconds].Input.SetValue(strconv.Itoa(m.config.RefreshSeconds))
}

func (m *Config) changeInput(dir input.Direction) tea.Cmd {
	switch dir {
	case input.Up:
		m.focusIndex--
	case input.Down:
		m.focusIndex++
	}

	return m.focus()
}

func (m *Config) focus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.fields {
		if configIdx(i) == m.focusIndex {
			cmd = m.fields[i].Focus()
		} else {
			m.fields[i].Blur()
		}
	}

	return cmd
}

func (m *Config) View() string {
	fields := make([]string, 0, len(m.fields)+2)
	for _, field := range m.fields {
		fields = append(fields, field.View())
	}

	fields = append(fields, "")
	if m.focusIndex == fieldSave {
		fields = append(fields, styles.FocusedSubmitButton)
	} else {
		fields = append(fields, styles.BlurredSubmitButton)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, fields...)

	return lipgloss.Place(m.viewState.Width, m.viewState.Upper+m.viewState.Lower,
		lipgloss.Center, lipgloss.Center, content)
}
