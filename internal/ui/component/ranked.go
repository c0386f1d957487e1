package component

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/despectus/despectus/internal/rank"
	"github.com/despectus/despectus/internal/refresh"
	"github.com/despectus/despectus/internal/ui/model"
	"github.com/despectus/despectus/internal/ui/styles"
)

type RankedModel struct {
	snapshot *refresh.Snapshot
}

func NewRankedModel() RankedModel {
	return RankedModel{}
}

func (m RankedModel) Init() tea.Cmd {
	return nil
}

func (m RankedModel) Update(msg tea.Msg) (RankedModel, tea.Cmd) {
	if snapshot, ok := msg.(refresh.Snapshot); ok {
		m.snapshot = &snapshot
	}

	return m, nil
}

func (m RankedModel) Render(width int, height int) string {
	return model.Container("Ranked Solo/Duo", width, height, m.content(width), false)
}

func (m RankedModel) content(width int) string {
	if m.snapshot == nil {
		return ""
	}

	standing := m.snapshot.Ranked
	if standing == nil {
		return styles.InfoMessage.Width(width - 2).Render("Unranked")
	}

	rows := []string{
		lipgloss.NewStyle().Foreground(styles.TierColour(standing.Tier)).Bold(true).Render(FormatStanding(*standing)),
		"",
		styles.DetailRow("Record", FormatRecord(standing.Wins, standing.Losses, standing.WinRate())),
	}

	if m.snapshot.NextRankLabel != nil && m.snapshot.EstimatedGamesToNext != nil {
		rows = append(rows,
			styles.DetailRow("Next", *m.snapshot.NextRankLabel),
			styles.DetailRow("Estimate", FormatEstimate(*m.snapshot.EstimatedGamesToNext, m.snapshot.AvgLPPerWin)))
	} else if standing.Tier == rank.Challenger {
		rows = append(rows, styles.DetailRow("Next", "Top of the ladder"))
	} else {
		// Division could not be parsed, no estimate is possible.
		rows = append(rows, styles.DetailRow("Next", "—"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
