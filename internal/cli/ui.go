package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/opendata-tools/govcat/pkg/catalog"
	"github.com/opendata-tools/govcat/pkg/dataset"
)

// Color palette
var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// Public styles
var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// Internal styles
var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder      = lipgloss.NewStyle().Foreground(colorDim)
)

// Icons
const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(13)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// renderRecordList renders search results as one table.
func renderRecordList(records []catalog.DatasetRecord) string {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{rec.ID, truncate(rec.Title, 48), rec.Publisher, fmt.Sprint(len(rec.Distributions))}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Identifier", "Title", "Publisher", "Files").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// printResult summarizes one fetch result: per-entry outcome lines and a
// preview of each parsed table.
func printResult(res *dataset.FetchResult, preview int) {
	fmt.Println(StyleTitle.Render(displayTitle(&res.Dataset)))
	if res.Dataset.Publisher != "" {
		printKeyValue("Publisher", res.Dataset.Publisher)
	}
	if res.Dataset.Description != "" {
		printKeyValue("Description", truncate(res.Dataset.Description, 100))
	}
	fmt.Println()

	for i := range res.Entries {
		entry := &res.Entries[i]
		if !entry.Parsed() {
			printWarning("%s (%s): %s", entry.Name, entry.Format, entry.Reason)
			printDetail("%s", entry.URL)
			continue
		}

		suffix := ""
		if entry.Encoding != "" {
			suffix = " · " + entry.Encoding
		}
		printSuccess("%s (%s%s): %d rows × %d columns", entry.Name, entry.Format, suffix,
			entry.Table.NumRows(), entry.Table.NumCols())
		if preview > 0 {
			fmt.Println(indent(renderTablePreview(entry, preview), "  "))
		}
	}

	fmt.Println()
	printDetail("%d parsed · %d placeholders", res.ParsedCount(), res.PlaceholderCount())
}

// renderTablePreview renders the first rows of a parsed entry.
func renderTablePreview(entry *dataset.Entry, limit int) string {
	rows := entry.Table.Rows
	truncated := false
	if len(rows) > limit {
		rows = rows[:limit]
		truncated = true
	}

	display := make([][]string, len(rows))
	for i, row := range rows {
		display[i] = make([]string, len(row))
		for j, cell := range row {
			display[i][j] = truncate(cell, 24)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(entry.Table.Columns...).
		Rows(display...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle()
		})

	out := t.Render()
	if truncated {
		out += "\n" + StyleDim.Render(fmt.Sprintf("… %d more rows", entry.Table.NumRows()-limit))
	}
	return out
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// displayTitle picks the best display name for a record.
func displayTitle(rec *catalog.DatasetRecord) string {
	if rec.Title != "" {
		return rec.Title
	}
	return rec.ID
}
