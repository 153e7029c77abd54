package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opendata-tools/govcat/pkg/catalog"
	"github.com/opendata-tools/govcat/pkg/formats"
)

// formatsCommand creates the formats command.
func (c *CLI) formatsCommand() *cobra.Command {
	var (
		formatsStr string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "formats <identifier>",
		Short: "List a dataset's distributions and the resolved fetch order",
		Long: `List every distribution a dataset offers and mark which of them the
priority list selects, in fetch order. Nothing is downloaded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priority, err := c.priorityFor(formatsStr)
			if err != nil {
				return err
			}

			client := c.newCatalogClient(cmd, noCache)
			defer client.Close()

			records, err := client.DatasetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("No dataset with identifier %q", args[0])
				return nil
			}

			for _, rec := range records {
				c.printFormats(&rec, priority)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "formats", "f", "", "format priority list (e.g. csv,xlsx,xml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache")

	return cmd
}

// priorityFor resolves the flag-supplied priority list, falling back to the
// configured one.
func (c *CLI) priorityFor(formatsStr string) (formats.Priority, error) {
	if formatsStr == "" {
		return c.priority()
	}
	return formats.ParsePriority(formatsStr)
}

// printFormats renders one record's distributions with their selection rank.
func (c *CLI) printFormats(rec *catalog.DatasetRecord, priority formats.Priority) {
	fmt.Println(StyleTitle.Render(displayTitle(rec)))
	printKeyValue("Priority", priority.String())

	selected := formats.Keys(rec.Distributions, priority,
		func(d catalog.Distribution) formats.Format { return d.Format },
		func(d catalog.Distribution) string { return d.URL })
	rank := make(map[string]int, len(selected))
	for i, url := range selected {
		rank[url] = i + 1
	}

	for _, d := range rec.Distributions {
		if n, ok := rank[d.URL]; ok {
			printSuccess("#%d %s (%s)", n, d.Name, d.Format)
		} else {
			printDetail("-- %s (%s)", d.Name, d.Format)
		}
		printDetail("   %s", d.URL)
	}

	if len(selected) == 0 {
		printWarning("No distribution is in an acceptable format")
	}
	fmt.Println()
}
