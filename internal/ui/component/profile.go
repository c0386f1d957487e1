package component

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/despectus/despectus/internal/refresh"
	"github.com/despectus/despectus/internal/ui/model"
	"github.com/despectus/despectus/internal/ui/styles"
)

type ProfileModel struct {
	snapshot *refresh.Snapshot
}

func NewProfileModel() ProfileModel {
	return ProfileModel{}
}

func (m ProfileModel) Init() tea.Cmd {
	return nil
}

func (m ProfileModel) Update(msg tea.Msg) (ProfileModel, tea.Cmd) {
	if snapshot, ok := msg.(refresh.Snapshot); ok {
		m.snapshot = &snapshot
	}

	return m, nil
}

func (m ProfileModel) Render(width int, height int) string {
	if m.snapshot == nil {
		return model.Container("Summoner", width, height,
			styles.InfoMessage.Width(width-2).Render("Waiting for the League Client"), false)
	}

	identity := m.snapshot.Identity
	nameWidth := max(1, width-4-lipgloss.Width("#"+identity.TagLine))

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleName.Render(Truncate(identity.GameName, nameWidth))+styles.TitleTag.Render("#"+identity.TagLine),
		"",
		styles.DetailRow("Level", strconv.Itoa(identity.Level)),
		styles.DetailRow("Platform", m.snapshot.Platform.String()),
		styles.DetailRow("Routing", m.snapshot.Cluster.String()),
		styles.DetailRow("Icon", fmt.Sprintf("#%d", identity.ProfileIconID)),
	)

	return model.Container("Summoner", width, height, content, false)
}
