package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/zjrosen/helixdojo/internal/ui/styles"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	json   bool
}

// NewFormatter creates a new formatter. With asJSON set every method
// writes indented JSON instead of text.
func NewFormatter(writer io.Writer, asJSON bool) *Formatter {
	return &Formatter{
		writer: writer,
		json:   asJSON,
	}
}

// FormatChallenges writes the challenge list as a table or JSON.
func (f *Formatter) FormatChallenges(challenges []ChallengeDTO) error {
	if f.json {
		return f.encode(challenges)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)).
		Headers("ID", "NAME", "CATEGORY", "DIFFICULTY", "PAR", "SOURCE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TitleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, c := range challenges {
		t.Row(c.ID, c.Name, c.Category, c.Difficulty, strconv.Itoa(c.OptimalKeystrokes), c.Source)
	}
	_, err := fmt.Fprintln(f.writer, t.Render())
	return err
}

// FormatReplay writes a replay outcome.
func (f *Formatter) FormatReplay(r ReplayDTO) error {
	if f.json {
		return f.encode(r)
	}

	completed := "no"
	if r.Completed {
		completed = "yes"
	}
	_, err := fmt.Fprintf(f.writer,
		"Challenge   %s\nCompleted   %s\nKeystrokes  %d (par %d)\nScore       %d\nStars       %s\n",
		r.ChallengeID, completed, r.Keystrokes, r.OptimalKeystrokes, r.Score, styles.FormatStars(r.Stars))
	if err != nil {
		return err
	}
	if !r.Completed {
		_, err = fmt.Fprintf(f.writer, "\n%s\n", r.Buffer)
	}
	return err
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
