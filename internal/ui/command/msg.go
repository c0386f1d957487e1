package command

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/despectus/despectus/internal/config"
	"github.com/despectus/despectus/internal/ui/model"
)

func SetViewState(state model.ViewState) tea.Cmd {
	return func() tea.Msg { return state }
}

const ClearMessageTimeout = time.Second * 10

type ClearStatusMessageMsg struct{}

func ClearErrorAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return ClearStatusMessageMsg{}
	})
}

// StatusMsg is a transient message raised by the ui itself, it takes precedence over the
// refresh status until cleared.
type StatusMsg struct {
	Message string
	Err     bool
}

func SetStatusMessage(msg string, err bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: msg, Err: err}
	}
}

func SetConfig(config config.Config) tea.Cmd {
	return func() tea.Msg { return config }
}

// TickMsg redraws relative timestamps.
type TickMsg time.Time

func Tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// UpdateAvailableMsg is sent by the app when a newer release was found.
type UpdateAvailableMsg struct {
	Version string
	URL     string
}

// Requests sent from the ui to the app.

type RefreshRequest struct{}

type AvgLPPerWinRequest struct {
	Value int
}

type ConfigSavedRequest struct {
	Config config.Config
}

// Request delivers a request to the app without blocking the ui.
func Request(parent chan<- any, req any) tea.Cmd {
	if parent == nil {
		return nil
	}

	return func() tea.Msg {
		parent <- req

		return nil
	}
}
