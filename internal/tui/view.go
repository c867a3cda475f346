package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/snakeworks/termsnake/internal/app"
	"github.com/snakeworks/termsnake/internal/engine"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	wonStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	lostStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	headerStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("241"))

	wallStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	foodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	headStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	bodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
)

// Renderer turns a Frame into text. It is shared by the interactive program
// and by replays, which print the final frame.
type Renderer struct {
	fill       progress.Model
	scoreboard list.Model
}

// NewRenderer returns a Renderer with default widths.
func NewRenderer() Renderer {
	return Renderer{
		fill:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(fillBarWidth), progress.WithoutPercentage()),
		scoreboard: newScoreboardList(),
	}
}

// Render draws f without help or outer placement.
func (r Renderer) Render(f app.Frame) string {
	var b strings.Builder
	b.WriteString(renderTitle())
	b.WriteString("\n\n")

	switch f.State {
	case app.MainMenu, app.Options:
		b.WriteString(renderMenu(f.Menu, f.Selected))
	case app.EnterName:
		b.WriteString("Enter your name:\n\n")
		b.WriteString(selectedStyle.Render("> " + f.NameBuffer + "_"))
		b.WriteString("\n\n")
		b.WriteString(subtitleStyle.Render("letters only, up to 20"))
	case app.EnterDifficulty:
		b.WriteString(renderDifficulties(f))
	case app.SnakeGame:
		b.WriteString(r.renderGame(f))
	case app.Scoreboard:
		b.WriteString("Leaderboard\n\n")
		if len(f.Leaderboard) == 0 {
			b.WriteString(subtitleStyle.Render("Leaderboard is empty."))
		} else {
			b.WriteString(scoreboardView(r.scoreboard, f.Leaderboard))
		}
	}

	if f.Notice != "" {
		b.WriteString("\n\n")
		b.WriteString(noticeStyle.Render(f.Notice))
	}
	return b.String()
}

func renderTitle() string {
	return titleStyle.Render("termsnake") + " " + subtitleStyle.Render("a snake for your terminal")
}

func renderMenu(items []string, selected int) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		if i == selected {
			lines = append(lines, selectedStyle.Render("> "+item))
			continue
		}
		lines = append(lines, strings.Repeat(" ", menuIndent)+item)
	}
	return strings.Join(lines, "\n")
}

func renderDifficulties(f app.Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s! Choose a difficulty:\n\n", f.Header.Player)
	for i, d := range f.Difficulties {
		fmt.Fprintf(&b, "  %d  %-7s %dx%d\n", i, d.Level, d.Width, d.Height)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r Renderer) renderGame(f app.Frame) string {
	h := f.Header
	header := headerStyle.Render(fmt.Sprintf("Difficulty: %s  Score: %d  Player: %s  Time: %s",
		h.Difficulty, h.Score, h.Player, h.Elapsed))

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for _, row := range f.Grid {
		b.WriteString(renderRow(row))
		b.WriteString("\n")
	}

	pct := 0.0
	if h.Capacity > 0 {
		pct = float64(h.Length) / float64(h.Capacity)
	}
	b.WriteString(r.fill.ViewAs(pct))
	fmt.Fprintf(&b, " %d/%d\n\n", h.Length, h.Capacity)

	switch f.SubState {
	case engine.CanBegin:
		b.WriteString(subtitleStyle.Render("Get ready..."))
	case engine.Won:
		b.WriteString(wonStyle.Render(fmt.Sprintf("You won with %d points!", h.Score)))
	case engine.Lost:
		b.WriteString(lostStyle.Render(fmt.Sprintf("Game over! Final score: %d", h.Score)))
	case engine.NotInitialized, engine.Ongoing:
	}
	return b.String()
}

func renderRow(row string) string {
	var b strings.Builder
	for _, c := range row {
		s := string(c)
		switch c {
		case engine.GlyphWall:
			b.WriteString(wallStyle.Render(s))
		case engine.GlyphFood:
			b.WriteString(foodStyle.Render(s))
		case engine.GlyphHead:
			b.WriteString(headStyle.Render(s))
		case engine.GlyphBody:
			b.WriteString(bodyStyle.Render(s))
		default:
			b.WriteString(s)
		}
	}
	return b.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}
	f := m.machine.Frame()
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderer.Render(f),
		"",
		m.help.View(m.keys.forFrame(f)),
	)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
