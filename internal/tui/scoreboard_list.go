package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/snakeworks/termsnake/internal/leaderboard"
)

// scoreItem is the list item backing one leaderboard row.
type scoreItem struct {
	Rank  int
	Name  string
	Score int
}

// List item interface methods.
func (it scoreItem) Title() string       { return it.Name }
func (it scoreItem) Description() string { return "" }
func (it scoreItem) FilterValue() string { return it.Name }

// scoreDelegate renders scoreItem rows with a right-justified score.
type scoreDelegate struct{}

func (d scoreDelegate) Height() int                             { return 1 }
func (d scoreDelegate) Spacing() int                            { return 0 }
func (d scoreDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d scoreDelegate) Render(w io.Writer, m list.Model, _ int, listItem list.Item) {
	it, ok := listItem.(scoreItem)
	if !ok {
		return
	}
	lineStyle := lipgloss.NewStyle()
	if it.Rank == 1 {
		lineStyle = lineStyle.Foreground(lipgloss.Color("208")).Bold(true)
	}

	left := fmt.Sprintf("%2d. %s", it.Rank, it.Name)
	right := fmt.Sprintf("%d", it.Score)
	padding := m.Width() - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	_, _ = fmt.Fprint(w, lineStyle.Render(left+spaces(padding)+right))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(n).Render("")
}

func newScoreboardList() list.Model {
	lst := list.New([]list.Item{}, scoreDelegate{}, scoreboardWidth, scoreboardHeight)
	lst.SetShowTitle(false)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.SetShowPagination(false)
	return lst
}

// scoreboardView renders entries through lst without mutating the caller's copy.
func scoreboardView(lst list.Model, entries []leaderboard.Entry) string {
	items := make([]list.Item, 0, len(entries))
	for i, e := range entries {
		items = append(items, scoreItem{Rank: i + 1, Name: e.Name, Score: e.Score})
	}
	_ = lst.SetItems(items)
	return lst.View()
}
