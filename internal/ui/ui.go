// Package ui renders the dashboard. It owns no state beyond presentation, everything shown
// arrives as messages from the refresh orchestrator via Send.
package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/despectus/despectus/internal/config"
	"github.com/despectus/despectus/internal/ui/pages"
	zone "github.com/lrstanley/bubblezone"
)

var ErrUIExit = errors.New("ui error returned")

// Paths are shown on the help page.
type Paths struct {
	Cache string
	Log   string
}

type UI struct {
	program *tea.Program
}

// New builds the program. Requests made by the user (refresh, lp per win changes, saved config)
// are delivered to parent.
func New(ctx context.Context, conf config.Config, build pages.BuildInfo, writer config.Writer,
	paths Paths, parent chan<- any,
) *UI {
	zone.NewGlobal()

	return &UI{
		program: tea.NewProgram(
			newRootModel(conf, build, writer, paths, parent),
			tea.WithMouseCellMotion(),
			tea.WithAltScreen(),
			tea.WithContext(ctx),
			tea.WithFPS(30)),
	}
}

func (t UI) Run() error {
	if _, err := t.program.Run(); err != nil {
		return errors.Join(err, ErrUIExit)
	}

	return nil
}

func (t UI) Send(msg tea.Msg) {
	t.program.Send(msg)
}
