package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opendata-tools/govcat/pkg/catalog"
)

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		publisher string
		maxPages  int
		noCache   bool
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog for datasets",
		Long: `Search the catalog for datasets matching a keyword query.

The search walks the catalog's paginated list endpoint until the API stops
advertising further pages (or the page budget runs out) and prints one line
per matching dataset. Use --publisher to restrict results to a single
publisher from the directory (see 'govcat publishers').`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := c.newCatalogClient(cmd, noCache)
			defer client.Close()

			opts := catalog.SearchOptions{
				MaxPages: maxPages,
				Refresh:  refresh,
			}
			if publisher != "" {
				if p, ok := catalog.LookupPublisher(publisher); ok {
					opts.Publisher = p.ID
				} else {
					opts.Publisher = publisher
				}
			}

			spinner := newSpinner(cmd.Context(), fmt.Sprintf("Searching for %q...", args[0]))
			spinner.Start()
			records, err := client.Search(cmd.Context(), args[0], opts)
			if err != nil {
				spinner.StopWithError("Search failed")
				return err
			}
			spinner.Stop()

			if len(records) == 0 {
				printInfo("No datasets match %q", args[0])
				return nil
			}

			fmt.Println(renderRecordList(records))
			printDetail("%d datasets", len(records))
			return nil
		},
	}

	cmd.Flags().StringVarP(&publisher, "publisher", "p", "", "restrict to one publisher (id or label)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "page budget for the paginator")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and refetch")

	return cmd
}
