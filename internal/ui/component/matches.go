package component

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/despectus/despectus/internal/refresh"
	"github.com/despectus/despectus/internal/stats"
	"github.com/despectus/despectus/internal/ui/model"
	"github.com/despectus/despectus/internal/ui/styles"
)

type matchTableCol int

const (
	colResult matchTableCol = iota
	colChampion
	colScore
	colKDA
	colCS
	colCSPerMin
	colVision
	colDuration
	colMatchID
)

type matchTableSize int

const (
	colResultSize   matchTableSize = 6
	colChampionSize matchTableSize = 16
	colScoreSize    matchTableSize = 10
	colKDASize      matchTableSize = 7
	colCSSize       matchTableSize = 6
	colCSPerMinSize matchTableSize = 6
	colVisionSize   matchTableSize = 7
	colDurationSize matchTableSize = 6
	colMatchIDSize  matchTableSize = -1
)

type MatchesModel struct {
	rows      []stats.MatchRow
	skipped   bool
	viewState model.ViewState
	ready     bool
	viewport  viewport.Model
}

func NewMatchesModel() MatchesModel {
	return MatchesModel{}
}

func (m MatchesModel) Init() tea.Cmd {
	return nil
}

func (m MatchesModel) Update(msg tea.Msg) (MatchesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg
		if !m.ready {
			m.viewport = viewport.New(max(1, msg.Width-2), max(1, msg.Lower-2))
			m.ready = true
		} else {
			m.viewport.Width = max(1, msg.Width-2)
			m.viewport.Height = max(1, msg.Lower-2)
		}
		m.viewport.SetContent(m.content())
	case refresh.Snapshot:
		m.rows = msg.Matches
		m.skipped = msg.MatchesSkipped
		if m.ready {
			m.viewport.SetContent(m.content())
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

// MatchCells renders a row into its table cells.
func MatchCells(row stats.MatchRow) []string {
	return []string{
		FormatResult(row.Win),
		Truncate(row.ChampionName, int(colChampionSize)),
		row.KDAString(),
		fmt.Sprintf("%.2f", row.KDA()),
		strconv.Itoa(row.CS),
		fmt.Sprintf("%.1f", row.CSPerMinute()),
		strconv.Itoa(row.VisionScore),
		fmt.Sprintf("%dm", row.DurationMinutes),
		row.MatchID,
	}
}

func (m MatchesModel) content() string {
	if len(m.rows) == 0 {
		message := "No ranked solo games found " + styles.IconNoGames
		if m.skipped {
			message = "Match history needs a Riot API key, press E to add one"
		}

		return styles.InfoMessage.Width(max(1, m.viewState.Width-2)).Render(message)
	}

	rows := make([][]string, len(m.rows))
	for idx, row := range m.rows {
		rows[idx] = MatchCells(row)
	}

	fixed := int(colResultSize + colChampionSize + colScoreSize + colKDASize + colCSSize +
		colCSPerMinSize + colVisionSize + colDurationSize)

	return NewUnstyledTable("Result", "Champion", "K/D/A", "KDA", "CS", "CS/m", "Vision", "Time", "Match").
		Rows(rows...).
		StyleFunc(func(row int, col int) lipgloss.Style {
			var width matchTableSize
			switch matchTableCol(col) {
			case colResult:
				width = colResultSize
			case colChampion:
				width = colChampionSize
			case colScore:
				width = colScoreSize
			case colKDA:
				width = colKDASize
			case colCS:
				width = colCSSize
			case colCSPerMin:
				width = colCSPerMinSize
			case colVision:
				width = colVisionSize
			case colDuration:
				width = colDurationSize
			case colMatchID:
				width = matchTableSize(max(8, m.viewState.Width-fixed-4))
			}

			switch {
			case row == table.HeaderRow:
				return styles.HeaderStyle.Width(int(width))
			case matchTableCol(col) == colResult && m.rows[row].Win:
				return styles.ResultWin.Width(int(width))
			case matchTableCol(col) == colResult:
				return styles.ResultLoss.Width(int(width))
			case row%2 == 0:
				return styles.TableRowValuesEven.Width(int(width))
			default:
				return styles.TableRowValuesOdd.Width(int(width))
			}
		}).
		Render()
}

func (m MatchesModel) Render(height int) string {
	m.viewport.Height = max(1, height-2)

	return model.Container("Match History", m.viewState.Width, height, m.viewport.View(), true)
}
