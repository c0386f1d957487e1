package component

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/despectus/despectus/internal/refresh"
	"github.com/despectus/despectus/internal/ui/command"
	"github.com/despectus/despectus/internal/ui/input"
	"github.com/despectus/despectus/internal/ui/model"
	"github.com/despectus/despectus/internal/ui/styles"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
)

// RefreshZone is the clickable refresh button id.
const RefreshZone = "refresh"

type StatusBarModel struct {
	viewState   model.ViewState
	version     string
	status      refresh.Status
	stage       refresh.Stage
	statusMsg   string
	statusError bool
	updatedAt   time.Time
	now         time.Time
	update      string
	spinner     spinner.Model
}

func NewStatusBarModel(version string) StatusBarModel {
	return StatusBarModel{
		version: version,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styles.StatusBusy)),
		status:  refresh.Status{Message: "Starting…", Kind: refresh.StatusBusy},
		now:     time.Now(),
	}
}

func (m StatusBarModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m StatusBarModel) Update(msg tea.Msg) (StatusBarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg
	case refresh.Status:
		m.status = msg
	case refresh.Stage:
		m.stage = msg
	case refresh.Snapshot:
		m.updatedAt = msg.UpdatedAt
	case command.TickMsg:
		m.now = time.Time(msg)
	case command.UpdateAvailableMsg:
		m.update = "Update available: v" + msg.Version
	case command.StatusMsg:
		m.statusMsg = msg.Message
		m.statusError = msg.Err

		return m, command.ClearErrorAfter(command.ClearMessageTimeout)
	case command.ClearStatusMessageMsg:
		m.statusError = false
		m.statusMsg = ""
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

// Busy reports whether a refresh cycle is currently running.
func (m StatusBarModel) Busy() bool {
	return m.stage != refresh.Idle && m.stage != refresh.Published
}

func (m StatusBarModel) View() string {
	button := styles.RefreshButton.Render(styles.IconRefresh + " Refresh")
	if m.Busy() {
		button = styles.RefreshButtonBusy.Render(m.spinner.View() + " " + m.stage.String())
	}

	left := []string{
		zone.Mark(RefreshZone, button),
		styles.StatusVersion.Render(m.version),
	}

	var right []string
	if !m.updatedAt.IsZero() {
		right = append(right, styles.StatusUpdated.Render("updated "+humanize.RelTime(m.updatedAt, m.now, "ago", "from now")))
	}
	if m.update != "" {
		right = append(right, styles.StatusBusy.Render(m.update))
	}
	right = append(right, styles.StatusHelp.Render(fmt.Sprintf("%s %s", input.Default.Help.Help().Key, input.Default.Help.Help().Desc)))

	leftView := lipgloss.JoinHorizontal(lipgloss.Top, left...)
	rightView := lipgloss.JoinHorizontal(lipgloss.Top, right...)
	available := max(0, m.viewState.Width-lipgloss.Width(leftView)-lipgloss.Width(rightView))

	middle := lipgloss.NewStyle().Width(available).Render(m.message(available))

	return lipgloss.NewStyle().Width(m.viewState.Width).Background(styles.Black).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, leftView, middle, rightView))
}

// message renders the current status, transient ui messages take precedence.
func (m StatusBarModel) message(width int) string {
	text, style := m.status.Message, styles.StatusMessage

	switch {
	case m.statusMsg != "" && m.statusError:
		text, style = m.statusMsg, styles.StatusError
	case m.statusMsg != "":
		text = m.statusMsg
	case m.status.Kind == refresh.StatusError:
		style = styles.StatusError
	case m.status.Kind == refresh.StatusAbsent:
		style = styles.StatusAbsent
	case m.status.Kind == refresh.StatusBusy:
		style = styles.StatusBusy
	}

	// Padding takes three cells.
	return style.Render(truncate.StringWithTail(text, uint(max(0, width-3)), ellipsis)) //nolint:gosec
}
