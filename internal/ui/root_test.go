package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/despectus/despectus/internal/config"
	"github.com/despectus/despectus/internal/refresh"
	"github.com/despectus/despectus/internal/ui/command"
	"github.com/despectus/despectus/internal/ui/model"
	"github.com/despectus/despectus/internal/ui/pages"
	"github.com/stretchr/testify/require"
)

type memoryWriter struct {
	written []config.Config
}

func (w *memoryWriter) Write(conf config.Config) error {
	w.written = append(w.written, conf)

	return nil
}

func (w *memoryWriter) Path() string { return "despectus.yaml" }

func newTestRoot(t *testing.T, conf config.Config) (rootModel, chan any) {
	t.Helper()

	parent := make(chan any, 8)
	root := newRootModel(conf.Normalize(), pages.BuildInfo{Version: "v1.0.0"}, &memoryWriter{},
		Paths{Cache: "cache", Log: "despectus.log"}, parent)

	next, _ := root.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	root, _ = next.(rootModel)

	return root, parent
}

func runCmd(t *testing.T, cmd tea.Cmd) {
	t.Helper()

	require.NotNil(t, cmd)
	cmd()
}

func keyMsg(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func TestRootWindowSize(t *testing.T) {
	root, _ := newTestRoot(t, config.Config{})

	require.Equal(t, 120, root.viewState.Width)
	require.Equal(t, upperHeight, root.viewState.Upper)
	require.Equal(t, 40-footerHeight-upperHeight, root.viewState.Lower)
}

func TestRootRefreshKey(t *testing.T) {
	root, parent := newTestRoot(t, config.Config{})

	cmd, handled := root.onKey(keyMsg("r"))
	require.True(t, handled)
	runCmd(t, cmd)
	require.Equal(t, command.RefreshRequest{}, <-parent)

	// Ignored while a cycle is running.
	next, _ := root.Update(refresh.FetchingLocal)
	root, _ = next.(rootModel)
	cmd, handled = root.onKey(keyMsg("r"))
	require.True(t, handled)
	require.Nil(t, cmd)
}

func TestRootAvgLPPerWinKeys(t *testing.T) {
	root, parent := newTestRoot(t, config.Config{AvgLPPerWin: 22})

	cmd, _ := root.onKey(keyMsg("+"))
	runCmd(t, cmd)
	require.Equal(t, command.AvgLPPerWinRequest{Value: 23}, <-parent)

	cmd, _ = root.onKey(keyMsg("-"))
	runCmd(t, cmd)
	require.Equal(t, command.AvgLPPerWinRequest{Value: 21}, <-parent)

	next, _ := root.Update(config.Config{AvgLPPerWin: config.MaxAvgLPPerWin})
	root, _ = next.(rootModel)
	cmd, handled := root.onKey(keyMsg("+"))
	require.True(t, handled)
	require.Nil(t, cmd)
}

func TestRootConfigPageCapturesKeys(t *testing.T) {
	root, _ := newTestRoot(t, config.Config{})

	state := root.viewState
	state.Page = model.PageConfig
	next, _ := root.Update(state)
	root, _ = next.(rootModel)

	_, handled := root.onKey(keyMsg("r"))
	require.False(t, handled)
	_, handled = root.onKey(keyMsg("q"))
	require.False(t, handled)

	cmd, handled := root.onKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.True(t, handled)
	require.NotNil(t, cmd)
}

func TestRootHelpToggle(t *testing.T) {
	root, _ := newTestRoot(t, config.Config{})

	cmd, handled := root.onKey(keyMsg("h"))
	require.True(t, handled)
	state, ok := cmd().(model.ViewState)
	require.True(t, ok)
	require.Equal(t, model.PageHelp, state.Page)
}
