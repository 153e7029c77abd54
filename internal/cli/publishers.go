package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/opendata-tools/govcat/pkg/catalog"
)

// publishersCommand creates the publishers command.
func (c *CLI) publishersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publishers",
		Short: "List the publisher directory",
		Long: `List the embedded publisher directory: the organisations whose datasets
this client targets, with the identifiers accepted by 'search --publisher'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pubs := catalog.Publishers()

			rows := make([][]string, len(pubs))
			for i, p := range pubs {
				rows[i] = []string{p.ID, p.Label, p.Homepage}
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(styleBorder).
				Headers("Identifier", "Publisher", "Homepage").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return styleHeader
					}
					if col == 2 {
						return StyleDim
					}
					return lipgloss.NewStyle()
				})

			fmt.Println(t.Render())
			printDetail("%d publishers", len(pubs))
			return nil
		},
	}
}
