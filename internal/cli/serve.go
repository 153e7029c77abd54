package cli

import (
	"github.com/spf13/cobra"

	"github.com/opendata-tools/govcat/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the read-only JSON facade",
		Long: `Run a read-only HTTP facade over the catalog client, for dashboards that
want search results and format listings as JSON.

Endpoints:
  GET /healthz
  GET /api/search?q=<query>&publisher=<id>&pages=<n>
  GET /api/datasets/{id}?formats=<list>&encoding=<label>
  GET /api/datasets/{id}/formats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := c.newCatalogClient(cmd, noCache)
			defer client.Close()

			loader, err := c.newLoader()
			if err != nil {
				return err
			}

			srv := server.New(client, loader, c.Logger)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache")

	return cmd
}
