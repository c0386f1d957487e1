package pages_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/despectus/despectus/internal/config"
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

func typeText(page *pages.Config, value string) *pages.Config {
	for _, r := range value {
		page, _ = page.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return page
}

func TestConfigSave(t *testing.T) {
	writer := &memoryWriter{}
	parent := make(chan any, 1)
	conf := config.Config{AvgLPPerWin: 22, RefreshSeconds: 300}.Normalize()

	page := pages.NewConfig(conf, writer, parent)
	page, _ = page.Update(model.ViewState{Page: model.PageConfig, Width: 100, Upper: 10, Lower: 20})

	page = typeText(page, "RGAPI-abc")
	page, _ = page.Update(tea.KeyMsg{Type: tea.KeyTab})
	page, _ = page.Update(tea.KeyMsg{Type: tea.KeyTab})
	page, _ = page.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	for _, sub := range batch {
		if sub != nil {
			sub()
		}
	}

	require.Len(t, writer.written, 1)
	require.Equal(t, "RGAPI-abc", writer.written[0].RiotAPIKey)
	require.Equal(t, 22, writer.written[0].AvgLPPerWin)

	saved, ok := (<-parent).(command.ConfigSavedRequest)
	require.True(t, ok)
	require.Equal(t, "RGAPI-abc", saved.Config.RiotAPIKey)
}

func TestConfigRejectsInvalid(t *testing.T) {
	writer := &memoryWriter{}
	page := pages.NewConfig(config.Config{AvgLPPerWin: 22, RefreshSeconds: 300}, writer, nil)
	page, _ = page.Update(model.ViewState{Page: model.PageConfig, Width: 100, Upper: 10, Lower: 20})

	page = typeText(page, "bad key")
	for range 3 {
		page, _ = page.Update(tea.KeyMsg{Type: tea.KeyTab})
	}

	_, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	status, ok := cmd().(command.StatusMsg)
	require.True(t, ok)
	require.True(t, status.Err)
	require.Empty(t, writer.written)
}
