package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/opendata-tools/govcat/pkg/catalog"
)

var (
	pickerSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	pickerDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// DatasetPickerModel is the bubbletea model for choosing one dataset when a
// reference matched several records.
type DatasetPickerModel struct {
	Records  []catalog.DatasetRecord
	Cursor   int
	Selected *catalog.DatasetRecord
	Height   int
	Offset   int
}

// NewDatasetPickerModel creates a picker over records.
func NewDatasetPickerModel(records []catalog.DatasetRecord) DatasetPickerModel {
	return DatasetPickerModel{
		Records: records,
		Height:  15,
	}
}

func (m DatasetPickerModel) Init() tea.Cmd {
	return nil
}

func (m DatasetPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Records)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Records[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DatasetPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Dataset"))
	b.WriteString("\n")
	b.WriteString(pickerDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Records) {
		end = len(m.Records)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		rec := m.Records[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor, rec.ID, truncate(rec.Title, 40), rec.Publisher, fmt.Sprint(len(rec.Distributions)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "Identifier", "Title", "Publisher", "Files").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return pickerSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(pickerDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Records))))

	return b.String()
}

// pickDataset runs the interactive picker. It returns nil when the user quit
// without choosing, and an error when no TTY is attached (the caller then
// reports the ambiguity instead).
func pickDataset(records []catalog.DatasetRecord) (*catalog.DatasetRecord, error) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return nil, fmt.Errorf("interactive selection needs a terminal")
	}

	final, err := tea.NewProgram(NewDatasetPickerModel(records)).Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}
	model, ok := final.(DatasetPickerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected picker model type")
	}
	return model.Selected, nil
}
