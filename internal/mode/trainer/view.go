package trainer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/helixdojo/internal/challenge"
	"github.com/zjrosen/helixdojo/internal/keys"
	"github.com/zjrosen/helixdojo/internal/scoring"
	"github.com/zjrosen/helixdojo/internal/ui/markdown"
	"github.com/zjrosen/helixdojo/internal/ui/overlay"
	"github.com/zjrosen/helixdojo/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	var view string
	switch m.screen {
	case screenPlay:
		view = m.viewPlay()
	case screenResult:
		view = m.viewResult()
	default:
		view = m.viewMenu()
	}
	return m.toast.Overlay(view, m.width, m.height)
}

// ============================================================================
// Menu
// ============================================================================

func (m Model) viewMenu() string {
	cats := m.catalog.Categories()
	summary := fmt.Sprintf("%d challenges", m.catalog.Len())
	if total := m.board.TotalStars(); total > 0 {
		summary += fmt.Sprintf(", %d stars earned", total)
	}
	title := styles.TitleStyle.Render("helixdojo") + "  " + styles.MutedStyle.Render(summary)

	var tabs []string
	for i, cat := range cats {
		label := cat.Label()
		if i == m.category {
			tabs = append(tabs, styles.SelectionIndicatorStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, styles.MutedStyle.Render(" "+label+" "))
		}
	}

	var rows []string
	if len(cats) > 0 {
		for i, c := range m.catalog.ByCategory(cats[m.category]) {
			rows = append(rows, m.menuRow(c, i == m.cursor))
		}
	}
	listWidth := max(m.width-2, 40)
	list := styles.RenderPanel(strings.Join(rows, "\n"), "Challenges", listWidth, 0, true)

	parts := []string{title, strings.Join(tabs, " "), list}
	h := m.help
	h.ShowAll = m.showHelp
	parts = append(parts, h.View(keys.Menu))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) menuRow(c challenge.Challenge, focused bool) string {
	indicator := "  "
	if focused {
		indicator = styles.SelectionIndicatorStyle.Render("> ")
	}
	stars := styles.EmptyStarStyle.Render("   ")
	if e, ok := m.board.Best(c.ID); ok {
		stars = styles.FormatStars(e.Stars)
	}
	name := styles.TruncateString(c.Name, max(m.width-30, 16))
	return fmt.Sprintf("%s%s %s %s",
		indicator,
		padRight(name, max(m.width-30, 16)),
		styles.DifficultyStyle(c.Difficulty).Render(padRight(string(c.Difficulty), 8)),
		stars)
}

// ============================================================================
// Play
// ============================================================================

func (m Model) sideWidth() int {
	return max(m.width/3, 30)
}

func (m Model) viewPlay() string {
	c, hasChallenge := m.session.Challenge()
	side := m.sideWidth()
	main := max(m.width-side, 30)

	title := "Sandbox"
	if hasChallenge {
		title = c.Name
	}
	buffer := styles.RenderPanel(renderBuffer(m.session.Snapshot()), title, main, 0, true)

	left := []string{buffer}
	if hasChallenge && m.showTarget {
		left = append(left, styles.RenderPanel(m.renderDiff(), "Target", main, 0, false))
	}
	left = append(left, m.statusBar())

	var right []string
	if hasChallenge {
		right = append(right, styles.RenderPanel(m.renderDescription(c), "Challenge", side, 0, false))
		if len(m.hints) > 0 {
			right = append(right, styles.RenderPanel(m.renderHints(side-4), "Hints", side, 0, false))
		}
	}
	if m.showKeyGuide {
		right = append(right, styles.RenderPanel(m.renderMarkdown(markdown.KeyGuide), "Keys", side, 0, false))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, left...)
	if len(right) > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, lipgloss.JoinVertical(lipgloss.Left, right...))
	}

	parts := []string{body}
	if m.lastLog != "" {
		parts = append(parts, styles.MutedStyle.Render(styles.TruncateString(m.lastLog, m.width)))
	}
	parts = append(parts, m.help.View(keys.Play))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) statusBar() string {
	snap := m.session.Snapshot()
	badge := styles.ModeStyle(snap.Mode.Kind).Render(snap.ModeLabel)
	fields := []string{badge}
	if snap.Pending != "" {
		fields = append(fields, styles.PendingStyle.Render(snap.Pending))
	}
	fields = append(fields,
		fmt.Sprintf("keys %d", m.session.Keystrokes()),
		styles.FormatElapsed(m.session.Elapsed()),
	)
	if c, ok := m.session.Challenge(); ok {
		fields = append(fields, fmt.Sprintf("par %d", c.OptimalKeystrokes))
	}
	return styles.StatusBarStyle.Render(strings.Join(fields, "  "))
}

// renderDiff shows the target with missing text highlighted and extra
// buffer text struck through.
func (m Model) renderDiff() string {
	var b strings.Builder
	for _, seg := range m.session.Diff() {
		switch seg.Kind {
		case scoring.SegmentMissing:
			b.WriteString(renderLines(seg.Text, styles.DiffMissingStyle))
		case scoring.SegmentExtra:
			b.WriteString(renderLines(seg.Text, styles.DiffExtraStyle))
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// renderLines styles each line separately so borders do not bleed across
// line breaks.
func renderLines(text string, style lipgloss.Style) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDescription(c challenge.Challenge) string {
	header := styles.DifficultyStyle(c.Difficulty).Render(string(c.Difficulty)) + " " +
		styles.MutedStyle.Render(c.Category.Label())
	return header + "\n\n" + m.renderMarkdown(c.Description)
}

func (m Model) renderHints(width int) string {
	out := make([]string, len(m.hints))
	for i, h := range m.hints {
		out[i] = wordwrap.String(fmt.Sprintf("%d. %s", i+1, h), max(width, 10))
	}
	return strings.Join(out, "\n")
}

func (m Model) renderMarkdown(src string) string {
	if m.markdown == nil {
		return src
	}
	out, err := m.markdown.Render(src)
	if err != nil {
		return src
	}
	return out
}

// ============================================================================
// Result
// ============================================================================

func (m Model) viewResult() string {
	r, _ := m.session.Result()
	c, _ := m.session.Challenge()

	lines := []string{
		styles.SuccessStyle.Render("Challenge complete!"),
		"",
		styles.TitleStyle.Render(c.Name),
		styles.FormatStars(r.Stars()),
		"",
		fmt.Sprintf("Keystrokes  %d (par %d)", r.Keystrokes, r.OptimalKeystrokes),
		fmt.Sprintf("Hints       %d", r.HintsUsed),
		fmt.Sprintf("Time        %s", styles.FormatElapsed(m.session.Elapsed())),
		fmt.Sprintf("Score       %d", r.Score()),
	}
	if m.newBest {
		lines = append(lines, "", styles.PendingStyle.Render("New best!"))
	}
	lines = append(lines, "", m.help.View(keys.Result))
	panel := styles.RenderPanel(strings.Join(lines, "\n"), "Result", max(m.width/2, 40), 0, true)

	// The finished buffer stays visible around the result panel.
	return overlay.Place(overlay.Config{Width: m.width, Height: m.height}, panel, m.viewPlay())
}
