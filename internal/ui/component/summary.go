package component

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/despectus/despectus/internal/refresh"
	"github.com/despectus/despectus/internal/ui/model"
	"github.com/despectus/despectus/internal/ui/styles"
)

type SummaryModel struct {
	snapshot *refresh.Snapshot
}

func NewSummaryModel() SummaryModel {
	return SummaryModel{}
}

func (m SummaryModel) Init() tea.Cmd {
	return nil
}

func (m SummaryModel) Update(msg tea.Msg) (SummaryModel, tea.Cmd) {
	if snapshot, ok := msg.(refresh.Snapshot); ok {
		m.snapshot = &snapshot
	}

	return m, nil
}

func (m SummaryModel) Render(width int, height int) string {
	title := "Recent Solo/Duo"
	if m.snapshot != nil && len(m.snapshot.Matches) > 0 {
		title = fmt.Sprintf("Last %d Solo/Duo", len(m.snapshot.Matches))
	}

	return model.Container(title, width, height, m.content(width), false)
}

func (m SummaryModel) content(width int) string {
	if m.snapshot == nil {
		return ""
	}

	if m.snapshot.MatchesSkipped {
		return styles.InfoMessage.Width(width - 2).Render(styles.IconWarning + " Set a Riot API key (E) to load matches")
	}

	summary := m.snapshot.Stats.Summary
	if summary == nil {
		return styles.InfoMessage.Width(width - 2).Render("No ranked solo games found " + styles.IconNoGames)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.DetailRow("Win rate", FormatRecord(summary.Wins, summary.Losses, summary.WinRate)),
		styles.DetailRow("Avg KDA", fmt.Sprintf("%.2f", summary.AvgKDA)),
		styles.DetailRow("Best KDA", fmt.Sprintf("%.2f", summary.BestKDA)),
		styles.DetailRow("Avg CS", fmt.Sprintf("%.1f", summary.AvgCS)),
		styles.DetailRow("Avg length", FormatMinutes(summary.AvgDuration)),
		styles.DetailRow("Most played", Truncate(FormatTopChampions(m.snapshot.Stats.TopChampions), max(1, width-16))),
	)
}
